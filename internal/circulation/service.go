// Package circulation mediates state changes between a book's availability
// count and a user's borrowing history.
//
// Every mutating operation runs inside a single database transaction: the
// precondition reads and the writes commit or roll back as one unit, so the
// "quantity never negative" and "one active borrow per user and book"
// invariants hold under concurrent requests.
package circulation

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Bayanda-Msibi/library-management-system/internal/database/borrows"
	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrBorrowNotFound  = errors.New("borrow not found")
	ErrOutOfStock      = errors.New("book is out of stock")
	ErrAlreadyBorrowed = errors.New("user already has this title checked out")
	ErrNotBorrower     = errors.New("borrow belongs to another user")

	// ErrAlreadyReturned marks a return of a borrow that is already closed.
	// It is an informational no-op, not a failure: state is left untouched
	// and callers typically surface it as a notice rather than an error.
	ErrAlreadyReturned = errors.New("borrow already returned")
)

// Service orchestrates borrow/return transitions against the catalog and the
// borrow ledger.
type Service struct {
	db         *gorm.DB
	borrows    *borrows.Repository
	loanPeriod time.Duration
	now        func() time.Time
}

// NewService creates a circulation service. loanPeriodDays is the due-date
// offset for new borrows.
func NewService(db *gorm.DB, loanPeriodDays int) *Service {
	return &Service{
		db:         db,
		borrows:    borrows.NewRepository(db),
		loanPeriod: time.Duration(loanPeriodDays) * 24 * time.Hour,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time source. Tests use this for deterministic
// due dates.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// BorrowBook checks a copy of the book out to the user.
//
// Fails with ErrBookNotFound, ErrOutOfStock when no copy is on the shelf, or
// ErrAlreadyBorrowed when the user already holds an active borrow of the same
// title. On success the new borrow row and the quantity decrement commit
// atomically.
func (s *Service) BorrowBook(userID, bookID uint) (*entities.Borrow, error) {
	now := s.now()
	borrow := &entities.Borrow{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: now,
		DueDate:    now.Add(s.loanPeriod),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return fmt.Errorf("failed to load book: %w", err)
		}
		if book.Quantity <= 0 {
			return ErrOutOfStock
		}

		var active int64
		err := tx.Model(&entities.Borrow{}).
			Where("user_id = ? AND book_id = ? AND return_date IS NULL", userID, bookID).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to check active borrows: %w", err)
		}
		if active > 0 {
			return ErrAlreadyBorrowed
		}

		if err := tx.Create(borrow).Error; err != nil {
			return fmt.Errorf("failed to create borrow: %w", err)
		}

		// Guarded decrement: the quantity > 0 condition makes the invariant
		// hold even if another transaction took the last copy between our
		// read and this write.
		res := tx.Model(&entities.Book{}).
			Where("id = ? AND quantity > 0", bookID).
			Update("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement quantity: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrOutOfStock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return borrow, nil
}

// ReturnBook closes a borrow and puts the copy back on the shelf.
//
// Only the borrowing user may return it (ErrNotBorrower otherwise). Returning
// an already-returned borrow yields ErrAlreadyReturned and changes nothing;
// the guarded update guarantees that of two concurrent returns exactly one
// increments the quantity.
func (s *Service) ReturnBook(borrowID, actingUserID uint) (*entities.Borrow, error) {
	var borrow entities.Borrow

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&borrow, borrowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBorrowNotFound
			}
			return fmt.Errorf("failed to load borrow: %w", err)
		}
		if borrow.UserID != actingUserID {
			return ErrNotBorrower
		}
		if borrow.ReturnDate != nil {
			return ErrAlreadyReturned
		}

		returnedAt := s.now()
		res := tx.Model(&entities.Borrow{}).
			Where("id = ? AND return_date IS NULL", borrowID).
			Update("return_date", returnedAt)
		if res.Error != nil {
			return fmt.Errorf("failed to close borrow: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReturned
		}
		borrow.ReturnDate = &returnedAt

		err := tx.Model(&entities.Book{}).
			Where("id = ?", borrow.BookID).
			Update("quantity", gorm.Expr("quantity + 1")).Error
		if err != nil {
			return fmt.Errorf("failed to increment quantity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// ListBorrows returns the user's borrow history ordered by borrow date
// descending.
func (s *Service) ListBorrows(userID uint) ([]entities.Borrow, error) {
	return s.borrows.ListForUser(userID)
}

// ListActiveBorrows returns the user's outstanding borrows ordered by borrow
// date descending.
func (s *Service) ListActiveBorrows(userID uint) ([]entities.Borrow, error) {
	return s.borrows.ListActiveForUser(userID)
}

// GetBorrow retrieves a single borrow with its book.
func (s *Service) GetBorrow(id uint) (*entities.Borrow, error) {
	borrow, err := s.borrows.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBorrowNotFound
		}
		return nil, err
	}
	return borrow, nil
}

// Now exposes the service clock to callers that derive overdue status.
func (s *Service) Now() time.Time {
	return s.now()
}
