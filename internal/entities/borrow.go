package entities

import (
	"time"
)

// Borrow links a user to a book they checked out. A row with a nil ReturnDate
// is an active borrow; ReturnDate is set exactly once and never cleared.
// Borrow rows are append-only history and are never deleted.
type Borrow struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	BookID     uint       `gorm:"index;not null" json:"book_id"`
	BorrowDate time.Time  `gorm:"index" json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	// No DB-level constraint on BookID: returned borrows are kept as history
	// even after the book itself is deleted.
	Book Book `gorm:"foreignKey:BookID;constraint:-" json:"-"`
}

func (Borrow) TableName() string {
	return "borrows"
}

// IsActive reports whether the book is still out.
func (b *Borrow) IsActive() bool {
	return b.ReturnDate == nil
}

// IsOverdue reports whether the borrow is active and past its due date at the
// given instant.
func (b *Borrow) IsOverdue(now time.Time) bool {
	return b.ReturnDate == nil && now.After(b.DueDate)
}

// DaysOverdue returns the whole days between the current date and the due
// date, or 0 when the borrow is not overdue.
func (b *Borrow) DaysOverdue(now time.Time) int {
	if !b.IsOverdue(now) {
		return 0
	}
	due := b.DueDate.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)
	return int(today.Sub(due).Hours() / 24)
}
