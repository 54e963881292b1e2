package recipe

import (
	"errors"
	"fmt"

	domain "github.com/example/recipe-share/domain/recipe"
	"gorm.io/gorm"
)

// gormStore is a Store backed by GORM, used when a persistent backend is
// selected instead of the in-memory default. The Recipe entity carries its
// own column mappings; Ingredients and CreatedBy serialize through their
// Valuer/Scanner implementations.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the schema and returns a persistent Store.
func NewGormStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&domain.Recipe{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Create(r *domain.Recipe) (*domain.Recipe, error) {
	stored := *r
	stored.ID = 0 // let the autoincrement column assign it
	if err := s.db.Create(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return &stored, nil
}

func (s *gormStore) FindByID(id int64) (*domain.Recipe, error) {
	var r domain.Recipe
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &r, nil
}

func (s *gormStore) FindAll() ([]*domain.Recipe, error) {
	var recipes []*domain.Recipe
	if err := s.db.Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

func (s *gormStore) Save(r *domain.Recipe) error {
	result := s.db.Model(&domain.Recipe{}).
		Where("id = ?", r.ID).
		Select("*").Omit("id").
		Updates(r)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) Delete(id int64) error {
	result := s.db.Delete(&domain.Recipe{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&domain.Recipe{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}
