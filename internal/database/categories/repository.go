// Package categories provides database operations for category management.
//
// # Usage
//
//	repo := categories.NewRepository(db)
//	category, err := repo.GetByName("Science Fiction")
package categories

import (
	"gorm.io/gorm"

	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new category.
func (r *Repository) Create(name string) (*entities.Category, error) {
	category := &entities.Category{Name: name}
	if err := r.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID retrieves a category by ID.
func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByName retrieves a category by its exact name.
func (r *Repository) GetByName(name string) (*entities.Category, error) {
	var category entities.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns all categories ordered by name.
func (r *Repository) List() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// Rename updates a category's name.
func (r *Repository) Rename(id uint, name string) error {
	return r.db.Model(&entities.Category{}).Where("id = ?", id).Update("name", name).Error
}

// Delete removes a category.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Category{}, id).Error
}

// CountBooks returns how many books reference the category.
func (r *Repository) CountBooks(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
