package service

import (
	"errors"
	"strings"

	"github.com/kronika/internal/db"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrCategoryNotFound = errors.New("category not found")
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the flattened list handed back on a 400.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// ArticleService wraps article persistence and slug negotiation.
type ArticleService struct {
	db *gorm.DB
}

// ArticleInput carries the full editable field set of one article.
type ArticleInput struct {
	Title         db.TextInput
	Excerpt       db.TextInput
	Content       db.TextInput
	CategoryID    *uint
	CoverURL      string
	CoverPosition db.CoverPosition
	VideoURL      string
	VideoOnly     bool
	ReadingTime   string
	AuthorID      uint
}

// UpdateResult reports whether the externally visible identifier moved.
type UpdateResult struct {
	Article     *db.Article
	SlugChanged bool
	NewSlug     string
}

// ArticleFilter describes the public listing query.
type ArticleFilter struct {
	CategorySlug string
	VideoOnly    *bool
	PageNo       int
	Limit        int
}

// ArticleListResult aggregates one page of articles.
type ArticleListResult struct {
	Articles   []db.Article
	Total      int64
	TotalPages int
	PageNo     int
	Limit      int
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// Validate enforces the conditional field requirements: a video-only
// article needs a video URL; a standard article needs sanitized non-empty
// content and a category.
func (s *ArticleService) Validate(input ArticleInput) ValidationErrors {
	var errs ValidationErrors

	title := input.Title.Normalize()
	if title.IsEmpty() {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}

	if input.VideoOnly {
		if strings.TrimSpace(input.VideoURL) == "" {
			errs = append(errs, FieldError{Field: "videoUrl", Message: "video url is required for video articles"})
		}
	} else {
		content := input.Content.Normalize()
		if PlainText(content.EN) == "" && PlainText(content.PL) == "" {
			errs = append(errs, FieldError{Field: "content", Message: "content is required"})
		}
		if input.CategoryID == nil {
			errs = append(errs, FieldError{Field: "categoryId", Message: "category is required"})
		}
	}

	if !input.CoverPosition.Valid() {
		errs = append(errs, FieldError{Field: "meta.coverPosition", Message: "cover position must be top, center, bottom or an x/y pair"})
	}

	return errs
}

// SlugTaken reports whether a slug belongs to any article other than the
// one identified by excludeID.
func (s *ArticleService) SlugTaken(candidate string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&db.Article{}).Where("slug = ?", candidate)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new article. The slug is derived from the title; a
// collision fails the create rather than auto-suffixing.
func (s *ArticleService) Create(input ArticleInput) (*db.Article, error) {
	if errs := s.Validate(input); len(errs) > 0 {
		return nil, errs
	}

	if err := s.checkCategory(input); err != nil {
		return nil, err
	}

	title := input.Title.Normalize()
	slug := MakeSlug(title.Get("en"))
	if slug == "" {
		slug = fallbackSlug
	}

	taken, err := s.SlugTaken(slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	article := db.Article{
		Slug:          slug,
		Title:         title,
		Excerpt:       input.Excerpt.Normalize(),
		CoverURL:      strings.TrimSpace(input.CoverURL),
		CoverPosition: input.CoverPosition,
		VideoURL:      strings.TrimSpace(input.VideoURL),
		VideoOnly:     input.VideoOnly,
		Status:        "published",
		AuthorID:      input.AuthorID,
	}
	s.applyContentFields(&article, input)

	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}
	return s.GetBySlug(article.Slug)
}

// Update applies a full-document write to the article identified by slug.
// Unless preserveSlug is set, a changed title renegotiates the slug with
// numeric suffixing; the result reports the outcome so the caller can
// migrate draft keys and redirect.
func (s *ArticleService) Update(slug string, input ArticleInput, preserveSlug bool) (*UpdateResult, error) {
	var existing db.Article
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if errs := s.Validate(input); len(errs) > 0 {
		return nil, errs
	}
	if err := s.checkCategory(input); err != nil {
		return nil, err
	}

	existing.Title = input.Title.Normalize()
	existing.Excerpt = input.Excerpt.Normalize()
	existing.CoverURL = strings.TrimSpace(input.CoverURL)
	existing.CoverPosition = input.CoverPosition
	existing.VideoURL = strings.TrimSpace(input.VideoURL)
	existing.VideoOnly = input.VideoOnly
	existing.Status = "published"
	s.applyContentFields(&existing, input)

	slugChanged := false
	candidate := MakeSlug(existing.Title.Get("en"))
	if !preserveSlug && candidate != "" && candidate != existing.Slug {
		negotiated, err := NegotiateSlug(s, candidate, existing.ID)
		if err != nil {
			return nil, err
		}
		// Negotiation can land back on the stored slug when the candidate
		// base is held by another article; that is not a move.
		if negotiated != existing.Slug {
			existing.Slug = negotiated
			slugChanged = true
		}
	}

	updates := map[string]interface{}{
		"slug":           existing.Slug,
		"title_en":       existing.Title.EN,
		"title_pl":       existing.Title.PL,
		"excerpt_en":     existing.Excerpt.EN,
		"excerpt_pl":     existing.Excerpt.PL,
		"content_en":     existing.Content.EN,
		"content_pl":     existing.Content.PL,
		"category_id":    existing.CategoryID,
		"cover_url":      existing.CoverURL,
		"cover_position": existing.CoverPosition,
		"video_url":      existing.VideoURL,
		"video_only":     existing.VideoOnly,
		"reading_time":   existing.ReadingTime,
		"status":         existing.Status,
	}
	if err := s.db.Model(&db.Article{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	reloaded, err := s.GetBySlug(existing.Slug)
	if err != nil {
		return nil, err
	}

	return &UpdateResult{Article: reloaded, SlugChanged: slugChanged, NewSlug: reloaded.Slug}, nil
}

// GetBySlug fetches an article with category and author preloaded.
func (s *ArticleService) GetBySlug(slug string) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("Category").Preload("Author").
		Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Delete removes an article permanently.
func (s *ArticleService) Delete(slug string) error {
	result := s.db.Unscoped().Where("slug = ?", slug).Delete(&db.Article{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

// List returns one page of published articles, newest first.
func (s *ArticleService) List(filter ArticleFilter) (*ArticleListResult, error) {
	result := &ArticleListResult{PageNo: filter.PageNo, Limit: filter.Limit}
	if result.PageNo <= 0 {
		result.PageNo = 1
	}
	if result.Limit <= 0 || result.Limit > 50 {
		result.Limit = 10
	}

	base := s.db.Model(&db.Article{}).Where("articles.status = ?", "published")
	base = s.applyFilters(base, filter)

	if err := base.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.PageNo - 1) * result.Limit

	var articles []db.Article
	dataQuery := s.db.Model(&db.Article{}).
		Preload("Category").
		Preload("Author").
		Where("articles.status = ?", "published")
	dataQuery = s.applyFilters(dataQuery, filter)

	if err := dataQuery.Order("articles.created_at desc, articles.id desc").
		Limit(result.Limit).Offset(offset).Find(&articles).Error; err != nil {
		return nil, err
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.Limit) - 1) / int64(result.Limit))
	}

	result.Articles = articles
	return result, nil
}

func (s *ArticleService) applyFilters(query *gorm.DB, filter ArticleFilter) *gorm.DB {
	if filter.VideoOnly != nil {
		query = query.Where("articles.video_only = ?", *filter.VideoOnly)
	}
	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	return query
}

// applyContentFields sets content and reading time, explicitly clearing
// both together with the category when the article is video-only and no
// replacement content was supplied.
func (s *ArticleService) applyContentFields(article *db.Article, input ArticleInput) {
	content := input.Content.Normalize()
	article.CategoryID = input.CategoryID

	if input.VideoOnly && PlainText(content.EN) == "" && PlainText(content.PL) == "" {
		article.Content = db.LocalizedText{}
		article.ReadingTime = strings.TrimSpace(input.ReadingTime)
		return
	}

	article.Content = content

	if trimmed := strings.TrimSpace(input.ReadingTime); trimmed != "" {
		article.ReadingTime = trimmed
		return
	}
	article.ReadingTime = EstimateReadingTime(content.Get("en"))
}

func (s *ArticleService) checkCategory(input ArticleInput) error {
	if input.CategoryID == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&db.Category{}).Where("id = ?", *input.CategoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
