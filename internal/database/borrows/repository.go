// Package borrows provides read access to the borrow ledger.
//
// Borrow rows are created and mutated only by the circulation service, inside
// its transactions; this repository serves the read-side queries.
package borrows

import (
	"gorm.io/gorm"

	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

// Repository handles borrow ledger queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrows repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a borrow with its book.
func (r *Repository) GetByID(id uint) (*entities.Borrow, error) {
	var borrow entities.Borrow
	err := r.db.Preload("Book").First(&borrow, id).Error
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// ListForUser returns the user's full borrow history, most recent first.
func (r *Repository) ListForUser(userID uint) ([]entities.Borrow, error) {
	var borrows []entities.Borrow
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("borrow_date DESC").
		Find(&borrows).Error
	return borrows, err
}

// ListActiveForUser returns the user's outstanding borrows, most recent first.
func (r *Repository) ListActiveForUser(userID uint) ([]entities.Borrow, error) {
	var borrows []entities.Borrow
	err := r.db.Preload("Book").
		Where("user_id = ? AND return_date IS NULL", userID).
		Order("borrow_date DESC").
		Find(&borrows).Error
	return borrows, err
}
