package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kronika/internal/db"
	"github.com/kronika/internal/service"
)

// adminArticleView exposes the full locale records for the editor.
func adminArticleView(a *db.Article) gin.H {
	view := gin.H{
		"slug":        a.Slug,
		"title":       a.Title,
		"excerpt":     a.Excerpt,
		"content":     a.Content,
		"categoryId":  a.CategoryID,
		"coverUrl":    a.CoverURL,
		"videoUrl":    a.VideoURL,
		"videoOnly":   a.VideoOnly,
		"readingTime": a.ReadingTime,
		"status":      a.Status,
		"meta":        gin.H{"coverPosition": a.CoverPosition},
		"createdAt":   a.CreatedAt,
		"updatedAt":   a.UpdatedAt,
	}
	if a.Category != nil {
		view["category"] = categoryView(*a.Category, "")
	}
	return view
}

// publicArticleView projects bilingual fields onto the request language.
func publicArticleView(a *db.Article, lang string, withContent bool) gin.H {
	view := gin.H{
		"slug":        a.Slug,
		"title":       a.Title.Get(lang),
		"excerpt":     a.Excerpt.Get(lang),
		"coverUrl":    a.CoverURL,
		"videoUrl":    a.VideoURL,
		"videoOnly":   a.VideoOnly,
		"readingTime": a.ReadingTime,
		"meta":        gin.H{"coverPosition": a.CoverPosition},
		"createdAt":   a.CreatedAt,
		"updatedAt":   a.UpdatedAt,
	}
	if a.Category != nil {
		view["category"] = categoryView(*a.Category, lang)
	}
	if withContent {
		view["content"] = service.RenderContent(a.Content.Get(lang))
	}
	return view
}

// categoryView renders a category, projected when a language is given.
func categoryView(cat db.Category, lang string) gin.H {
	view := gin.H{
		"id":   cat.ID,
		"slug": cat.Slug,
	}
	if lang == "" {
		view["name"] = cat.Name
	} else {
		view["name"] = cat.Name.Get(lang)
	}
	return view
}
