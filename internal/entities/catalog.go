package entities

import (
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is a title in the catalog. Quantity counts the copies currently on the
// shelf, i.e. it already excludes checked-out copies and is never negative.
type Book struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"index;size:100" json:"title"`
	Author     string    `gorm:"index;size:100" json:"author"`
	Quantity   int       `gorm:"not null;default:0" json:"quantity"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (Book) TableName() string {
	return "books"
}
