package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/kronika/internal/cache"
	"github.com/kronika/internal/config"
	"github.com/kronika/internal/db"
	"github.com/kronika/internal/handler"
	"gorm.io/gorm"
)

// Setup configures the Gin engine and all routes.
func Setup(gdb *gorm.DB, store cache.Store, cfg config.AppConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("kronika_session", sessionStore))

	api := handler.NewAPI(gdb, store, cfg.UploadDir, cfg.UploadURLPath)
	r.Use(api.LocaleMiddleware())

	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/api")
	{
		public.GET("/articles", api.ListArticles)
		public.GET("/articles/:slug", api.GetArticle)
		public.GET("/videos", api.ListVideos)
		public.GET("/categories", api.ListCategories)

		authed := public.Group("")
		authed.Use(handler.AuthRequired())
		{
			authed.POST("/articles",
				handler.RequireRole(db.RoleAdmin, db.RoleEditor), api.CreateArticle)
		}
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(handler.AuthRequired(), handler.RequireRole(db.RoleAdmin))
		{
			auth.GET("/articles/:slug/edit", api.GetArticleForEdit)
			auth.PUT("/articles/:slug/edit", api.UpdateArticle)
			auth.DELETE("/articles/:slug", api.DeleteArticle)

			auth.POST("/categories", api.CreateCategory)
			auth.PUT("/categories/:id", api.UpdateCategory)
			auth.DELETE("/categories/:id", api.DeleteCategory)

			auth.GET("/drafts", api.GetDraft)
			auth.PUT("/drafts", api.SaveDraft)
			auth.DELETE("/drafts", api.DeleteDraft)

			auth.POST("/upload", api.UploadImage)
		}
	}

	return r
}
