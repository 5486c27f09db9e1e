package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kronika/internal/logger"
	"github.com/kronika/internal/service"
)

// GetArticleForEdit returns the full editable field set of one article.
func (a *API) GetArticleForEdit(c *gin.Context) {
	article, err := a.articles.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
			return
		}
		logger.Error().Err(err).Str("slug", c.Param("slug")).Msg("failed to load article for edit")
		respondError(c, http.StatusInternalServerError, "failed to load article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": adminArticleView(article)})
}

// UpdateArticle performs a full-document write. Slug renegotiation runs
// only when the title-derived candidate changed and the caller did not
// request preservation; the response reports whether the visible
// identifier moved so the client can migrate its draft key and redirect.
func (a *API) UpdateArticle(c *gin.Context) {
	slug := c.Param("slug")

	var payload articlePayload
	if !bindJSON(c, &payload) {
		return
	}

	result, err := a.articles.Update(slug, payload.toInput(currentUserID(c)), payload.PreserveSlug)
	if err != nil {
		var fields service.ValidationErrors
		switch {
		case errors.As(err, &fields):
			respondFieldErrors(c, fields)
		case errors.Is(err, service.ErrArticleNotFound):
			respondError(c, http.StatusNotFound, "article not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "category does not exist")
		case errors.Is(err, service.ErrSlugExhausted):
			logger.Error().Str("slug", slug).Msg("slug negotiation exhausted")
			respondError(c, http.StatusInternalServerError, "failed to update article")
		default:
			logger.Error().Err(err).Str("slug", slug).Msg("failed to update article")
			respondError(c, http.StatusInternalServerError, "failed to update article")
		}
		return
	}

	if result.SlugChanged {
		if err := a.drafts.Migrate(a.draftKeyFor(c, slug), a.draftKeyFor(c, result.NewSlug)); err != nil {
			logger.Warn().Err(err).Msg("failed to migrate draft key")
		}
	}

	a.flushCache(c)
	c.JSON(http.StatusOK, gin.H{
		"message":     "article updated",
		"article":     adminArticleView(result.Article),
		"slugChanged": result.SlugChanged,
		"newSlug":     result.NewSlug,
	})
}

// DeleteArticle removes an article permanently.
func (a *API) DeleteArticle(c *gin.Context) {
	slug := c.Param("slug")

	if err := a.articles.Delete(slug); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			respondError(c, http.StatusNotFound, "article not found")
			return
		}
		logger.Error().Err(err).Str("slug", slug).Msg("failed to delete article")
		respondError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	a.flushCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}
