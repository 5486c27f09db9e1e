package main

import (
	"fmt"
	"log"

	"github.com/kronika/internal/config"
	"github.com/kronika/internal/db"
	"github.com/kronika/internal/service"
	"gorm.io/gorm"
)

// Seeds a development database with bilingual sample content.
func main() {
	cfg := config.Load()
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}

	fmt.Println("seeding sample content...")

	if err := db.EnsureUser(gdb, "admin", "admin123", db.RoleAdmin); err != nil {
		log.Fatal("failed to seed admin: ", err)
	}
	if err := db.EnsureUser(gdb, "writer", "writer123", db.RoleEditor); err != nil {
		log.Fatal("failed to seed editor: ", err)
	}

	var admin db.User
	if err := gdb.Where("username = ?", "admin").First(&admin).Error; err != nil {
		log.Fatal("failed to load admin: ", err)
	}

	categories := seedCategories(gdb)
	seedArticles(gdb, admin.ID, categories)

	fmt.Println("done")
	fmt.Println("admin login: admin / admin123")
}

func seedCategories(gdb *gorm.DB) map[string]uint {
	svc := service.NewCategoryService(gdb)
	wanted := []db.LocalizedText{
		{EN: "Technology", PL: "Technologia"},
		{EN: "Culture", PL: "Kultura"},
		{EN: "Science", PL: "Nauka"},
	}

	ids := make(map[string]uint)
	for _, name := range wanted {
		category, err := svc.Create(db.TextInput{Localized: name})
		if err != nil {
			// Already seeded on a previous run.
			existing, listErr := svc.List()
			if listErr != nil {
				log.Fatal("failed to list categories: ", listErr)
			}
			for _, cat := range existing {
				ids[cat.Name.EN] = cat.ID
			}
			return ids
		}
		ids[category.Name.EN] = category.ID
		fmt.Printf("category: %s\n", category.Slug)
	}
	return ids
}

func seedArticles(gdb *gorm.DB, authorID uint, categories map[string]uint) {
	svc := service.NewArticleService(gdb)

	samples := []service.ArticleInput{
		{
			Title: db.TextInput{Localized: db.LocalizedText{
				EN: "Getting Started with the Editor",
				PL: "Pierwsze kroki z edytorem",
			}},
			Excerpt: db.TextInput{Localized: db.LocalizedText{
				EN: "A quick tour of the publishing workflow.",
				PL: "Szybki przegląd procesu publikacji.",
			}},
			Content: db.TextInput{Localized: db.LocalizedText{
				EN: "<p>Write, autosave, publish. The editor keeps a local draft while you type.</p>",
				PL: "<p>Pisz, zapisuj automatycznie, publikuj. Edytor przechowuje lokalny szkic podczas pisania.</p>",
			}},
			CategoryID: idPtr(categories["Technology"]),
		},
		{
			Title: db.TextInput{Localized: db.LocalizedText{
				EN: "A Weekend at the Museum",
				PL: "Weekend w muzeum",
			}},
			Content: db.TextInput{Localized: db.LocalizedText{
				EN: "<p>Notes from the new exhibition.</p>",
				PL: "<p>Notatki z nowej wystawy.</p>",
			}},
			CategoryID: idPtr(categories["Culture"]),
		},
		{
			Title:     db.TextInput{Plain: "Launch Recap Stream", IsPlain: true},
			VideoOnly: true,
			VideoURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
	}

	for _, input := range samples {
		input.AuthorID = authorID
		article, err := svc.Create(input)
		if err != nil {
			fmt.Printf("skipping article: %v\n", err)
			continue
		}
		fmt.Printf("article: %s\n", article.Slug)
	}
}

func idPtr(id uint) *uint {
	return &id
}
