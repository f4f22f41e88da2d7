package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBorrow_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("active and past due date", func(t *testing.T) {
		b := &Borrow{DueDate: now.Add(-48 * time.Hour)}
		assert.True(t, b.IsOverdue(now))
	})

	t.Run("active and before due date", func(t *testing.T) {
		b := &Borrow{DueDate: now.Add(48 * time.Hour)}
		assert.False(t, b.IsOverdue(now))
	})

	t.Run("returned borrows are never overdue", func(t *testing.T) {
		returned := now.Add(-24 * time.Hour)
		b := &Borrow{DueDate: now.Add(-48 * time.Hour), ReturnDate: &returned}
		assert.False(t, b.IsOverdue(now))
	})
}

func TestBorrow_DaysOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("zero when not overdue", func(t *testing.T) {
		b := &Borrow{DueDate: now.Add(24 * time.Hour)}
		assert.Equal(t, 0, b.DaysOverdue(now))
	})

	t.Run("zero when returned", func(t *testing.T) {
		returned := now
		b := &Borrow{DueDate: now.AddDate(0, 0, -20), ReturnDate: &returned}
		assert.Equal(t, 0, b.DaysOverdue(now))
	})

	t.Run("whole days past due", func(t *testing.T) {
		b := &Borrow{DueDate: now.AddDate(0, 0, -20)}
		assert.Equal(t, 20, b.DaysOverdue(now))
	})

	t.Run("same day overdue counts as zero days", func(t *testing.T) {
		b := &Borrow{DueDate: now.Add(-time.Hour)}
		assert.True(t, b.IsOverdue(now))
		assert.Equal(t, 0, b.DaysOverdue(now))
	})
}

func TestBorrow_IsActive(t *testing.T) {
	returned := time.Now()

	assert.True(t, (&Borrow{}).IsActive())
	assert.False(t, (&Borrow{ReturnDate: &returned}).IsActive())
}
