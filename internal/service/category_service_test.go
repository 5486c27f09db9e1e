package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kronika/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCategoryServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:category-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Category{}, &db.Article{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestCategoryServiceCreateDerivesSlug(t *testing.T) {
	gdb := setupCategoryServiceTestDB(t)
	svc := NewCategoryService(gdb)

	category, err := svc.Create(db.TextInput{
		Localized: db.LocalizedText{EN: "World News", PL: "Wiadomości ze świata"},
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if category.Slug != "world-news" {
		t.Fatalf("expected slug world-news, got %q", category.Slug)
	}
	if category.Name.PL != "Wiadomości ze świata" {
		t.Fatalf("expected polish name kept, got %q", category.Name.PL)
	}
}

func TestCategoryServiceCreateRejectsDuplicate(t *testing.T) {
	gdb := setupCategoryServiceTestDB(t)
	svc := NewCategoryService(gdb)

	if _, err := svc.Create(plainText("Tech")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(plainText("Tech")); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryServiceUpdateRenegotiatesSlug(t *testing.T) {
	gdb := setupCategoryServiceTestDB(t)
	svc := NewCategoryService(gdb)

	if _, err := svc.Create(plainText("Culture")); err != nil {
		t.Fatalf("seed colliding category: %v", err)
	}
	category, err := svc.Create(plainText("Sports"))
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	updated, err := svc.Update(category.ID, plainText("Culture"))
	if err != nil {
		t.Fatalf("update category: %v", err)
	}
	if updated.Slug != "culture-2" {
		t.Fatalf("expected culture-2, got %q", updated.Slug)
	}
}

func TestCategoryServiceDeleteProtectsUsedCategories(t *testing.T) {
	gdb := setupCategoryServiceTestDB(t)
	svc := NewCategoryService(gdb)

	category, err := svc.Create(plainText("Tech"))
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	article := db.Article{
		Slug:       "uses-tech",
		Title:      db.LocalizedText{EN: "Uses Tech", PL: "Uses Tech"},
		CategoryID: &category.ID,
		Status:     "published",
	}
	if err := gdb.Create(&article).Error; err != nil {
		t.Fatalf("seed article: %v", err)
	}

	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := gdb.Unscoped().Delete(&article).Error; err != nil {
		t.Fatalf("remove article: %v", err)
	}
	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("delete unused category: %v", err)
	}
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
