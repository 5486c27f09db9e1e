package service

import (
	"errors"

	"github.com/kronika/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists = errors.New("category already exists")
	ErrCategoryInUse  = errors.New("category is associated with articles")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List returns all categories ordered by English name.
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("name_en asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// SlugTaken reports whether a slug belongs to another category.
func (s *CategoryService) SlugTaken(candidate string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&db.Category{}).Where("slug = ?", candidate)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a category with a slug derived from its English name.
func (s *CategoryService) Create(name db.TextInput) (*db.Category, error) {
	normalized := name.Normalize()
	if normalized.IsEmpty() {
		return nil, errors.New("category name is required")
	}

	base := MakeSlug(normalized.Get("en"))
	if base == "" {
		base = "category"
	}

	taken, err := s.SlugTaken(base, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryExists
	}

	category := db.Category{Name: normalized, Slug: base}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames a category; the slug is renegotiated from the new name.
func (s *CategoryService) Update(id uint, name db.TextInput) (*db.Category, error) {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	normalized := name.Normalize()
	if normalized.IsEmpty() {
		return nil, errors.New("category name is required")
	}

	category.Name = normalized
	candidate := MakeSlug(normalized.Get("en"))
	if candidate != "" && candidate != category.Slug {
		negotiated, err := NegotiateSlug(s, candidate, category.ID)
		if err != nil {
			return nil, err
		}
		category.Slug = negotiated
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes an unused category. Categories still referenced by
// articles are protected.
func (s *CategoryService) Delete(id uint) error {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	var inUse int64
	if err := s.db.Model(&db.Article{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	return s.db.Unscoped().Delete(&category).Error
}
