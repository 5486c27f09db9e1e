package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kronika/internal/db"
	"github.com/kronika/internal/logger"
	"github.com/kronika/internal/service"
)

const listCacheTTL = 5 * time.Minute

type articlePayload struct {
	Title        db.TextInput `json:"title" binding:"required"`
	Excerpt      db.TextInput `json:"excerpt"`
	Content      db.TextInput `json:"content"`
	CategoryID   *uint        `json:"categoryId"`
	CoverURL     string       `json:"coverUrl"`
	VideoURL     string       `json:"videoUrl"`
	VideoOnly    bool         `json:"videoOnly"`
	ReadingTime  string       `json:"readingTime"`
	Meta         *articleMeta `json:"meta"`
	PreserveSlug bool         `json:"preserveSlug"`
}

type articleMeta struct {
	CoverPosition db.CoverPosition `json:"coverPosition"`
}

func (p articlePayload) toInput(authorID uint) service.ArticleInput {
	input := service.ArticleInput{
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		CategoryID:  p.CategoryID,
		CoverURL:    p.CoverURL,
		VideoURL:    p.VideoURL,
		VideoOnly:   p.VideoOnly,
		ReadingTime: p.ReadingTime,
		AuthorID:    authorID,
	}
	if p.Meta != nil {
		input.CoverPosition = p.Meta.CoverPosition
	}
	return input
}

// ListArticles returns one page of published standard articles with
// locale-aware field projection.
func (a *API) ListArticles(c *gin.Context) {
	videoOnly := false
	a.listArticles(c, &videoOnly, "articles")
}

// ListVideos returns one page of published video-only articles.
func (a *API) ListVideos(c *gin.Context) {
	videoOnly := true
	a.listArticles(c, &videoOnly, "videos")
}

func (a *API) listArticles(c *gin.Context, videoOnly *bool, cachePrefix string) {
	lang := a.requestLocale(c).Language
	pageNo, limit := parsePagination(c)
	categorySlug := c.Query("cat")

	cacheKey := cachePrefix + ":" + lang + ":" + c.Request.URL.RawQuery
	if cached, ok, err := a.cache.Get(c.Request.Context(), cacheKey); err == nil && ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	result, err := a.articles.List(service.ArticleFilter{
		CategorySlug: categorySlug,
		VideoOnly:    videoOnly,
		PageNo:       pageNo,
		Limit:        limit,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to list articles")
		respondError(c, http.StatusInternalServerError, "failed to list articles")
		return
	}

	views := make([]gin.H, 0, len(result.Articles))
	for i := range result.Articles {
		views = append(views, publicArticleView(&result.Articles[i], lang, false))
	}

	body := gin.H{
		"articles":   views,
		"total":      result.Total,
		"pageNo":     result.PageNo,
		"limit":      result.Limit,
		"totalPages": result.TotalPages,
	}

	if encoded, err := json.Marshal(body); err == nil {
		if err := a.cache.Set(c.Request.Context(), cacheKey, string(encoded), listCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to cache article list")
		}
	}

	c.JSON(http.StatusOK, body)
}

// GetArticle returns one published article with rendered content.
func (a *API) GetArticle(c *gin.Context) {
	lang := a.requestLocale(c).Language

	article, err := a.articles.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
			return
		}
		logger.Error().Err(err).Str("slug", c.Param("slug")).Msg("failed to load article")
		respondError(c, http.StatusInternalServerError, "failed to load article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": publicArticleView(article, lang, true)})
}

// ListCategories returns all categories with localized names.
func (a *API) ListCategories(c *gin.Context) {
	lang := a.requestLocale(c).Language

	categories, err := a.categories.List()
	if err != nil {
		logger.Error().Err(err).Msg("failed to list categories")
		respondError(c, http.StatusInternalServerError, "failed to list categories")
		return
	}

	views := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		views = append(views, categoryView(cat, lang))
	}
	c.JSON(http.StatusOK, gin.H{"categories": views})
}

// CreateArticle creates a new article. A title whose derived slug is
// already taken is rejected with a conflict rather than auto-suffixed.
func (a *API) CreateArticle(c *gin.Context) {
	var payload articlePayload
	if !bindJSON(c, &payload) {
		return
	}

	article, err := a.articles.Create(payload.toInput(currentUserID(c)))
	if err != nil {
		var fields service.ValidationErrors
		switch {
		case errors.As(err, &fields):
			respondFieldErrors(c, fields)
		case errors.Is(err, service.ErrSlugTaken):
			respondError(c, http.StatusConflict, "an article with this slug already exists")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "category does not exist")
		default:
			logger.Error().Err(err).Msg("failed to create article")
			respondError(c, http.StatusInternalServerError, "failed to create article")
		}
		return
	}

	a.flushCache(c)
	c.JSON(http.StatusCreated, gin.H{
		"message": "article created",
		"article": adminArticleView(article),
	})
}

func (a *API) flushCache(c *gin.Context) {
	if err := a.cache.Flush(c.Request.Context()); err != nil {
		logger.Warn().Err(err).Msg("failed to flush response cache")
	}
}
