package handler

import (
	"github.com/kronika/internal/cache"
	"github.com/kronika/internal/editor"
	"github.com/kronika/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers. Everything is passed
// in explicitly; handlers hold no package-level state.
type API struct {
	db         *gorm.DB
	articles   *service.ArticleService
	categories *service.CategoryService
	drafts     *editor.Store
	cache      cache.Store
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, store cache.Store, uploadDir, uploadURL string) *API {
	if store == nil {
		store = cache.NewMemory()
	}
	return &API{
		db:         gdb,
		articles:   service.NewArticleService(gdb),
		categories: service.NewCategoryService(gdb),
		drafts:     editor.NewStore(gdb),
		cache:      store,
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}

// DB exposes the underlying gorm instance for test seeding.
func (a *API) DB() *gorm.DB {
	return a.db
}
