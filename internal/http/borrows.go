package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bayanda-Msibi/library-management-system/internal/circulation"
	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

// BorrowsController handles checkout and return endpoints.
type BorrowsController struct {
	circulation *circulation.Service
}

// NewBorrowsController creates a new borrows controller.
func NewBorrowsController(svc *circulation.Service) *BorrowsController {
	return &BorrowsController{circulation: svc}
}

// borrowView augments a borrow row with overdue state computed at read time.
type borrowView struct {
	entities.Borrow
	IsOverdue   bool `json:"is_overdue"`
	DaysOverdue int  `json:"days_overdue"`
}

func (bc *BorrowsController) toViews(borrows []entities.Borrow) []borrowView {
	now := bc.circulation.Now()
	views := make([]borrowView, 0, len(borrows))
	for _, b := range borrows {
		views = append(views, borrowView{
			Borrow:      b,
			IsOverdue:   b.IsOverdue(now),
			DaysOverdue: b.DaysOverdue(now),
		})
	}
	return views
}

// Borrow checks a copy of a book out to the authenticated user.
//
//	POST /api/books/:id/borrow
func (bc *BorrowsController) Borrow(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrow, err := bc.circulation.BorrowBook(GetUserID(c), bookID)
	if err != nil {
		switch {
		case errors.Is(err, circulation.ErrBookNotFound):
			respondNotFound(c, "book")
		case errors.Is(err, circulation.ErrOutOfStock):
			respondConflict(c, "book is out of stock")
		case errors.Is(err, circulation.ErrAlreadyBorrowed):
			respondConflict(c, "you already have this book checked out")
		default:
			respondStorageConflict(c, err, "borrow book")
		}
		return
	}

	respondCreated(c, borrow)
}

// Return closes the authenticated user's borrow and restocks the copy.
// Returning an already-closed borrow is reported as success without
// touching any state.
//
//	POST /api/borrows/:id/return
func (bc *BorrowsController) Return(c *gin.Context) {
	borrowID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrow, err := bc.circulation.ReturnBook(borrowID, GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, circulation.ErrAlreadyReturned):
			respondSuccess(c, "book was already returned")
		case errors.Is(err, circulation.ErrBorrowNotFound):
			respondNotFound(c, "borrow")
		case errors.Is(err, circulation.ErrNotBorrower):
			respondForbidden(c, "borrow belongs to another user")
		default:
			respondStorageConflict(c, err, "return book")
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "book returned", Data: borrow})
}

// Get returns a single borrow. Users see only their own borrows; admins can
// inspect anyone's.
//
//	GET /api/borrows/:id
func (bc *BorrowsController) Get(c *gin.Context) {
	borrowID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrow, err := bc.circulation.GetBorrow(borrowID)
	if err != nil {
		if errors.Is(err, circulation.ErrBorrowNotFound) {
			respondNotFound(c, "borrow")
		} else {
			respondInternalError(c, err, "get borrow")
		}
		return
	}

	if borrow.UserID != GetUserID(c) && GetUserRole(c) != entities.UserRoleAdmin {
		respondForbidden(c, "borrow belongs to another user")
		return
	}

	now := bc.circulation.Now()
	c.JSON(http.StatusOK, borrowView{
		Borrow:      *borrow,
		IsOverdue:   borrow.IsOverdue(now),
		DaysOverdue: borrow.DaysOverdue(now),
	})
}

// List returns the authenticated user's full borrowing history, newest first.
//
//	GET /api/borrows
func (bc *BorrowsController) List(c *gin.Context) {
	borrows, err := bc.circulation.ListBorrows(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list borrows")
		return
	}
	c.JSON(http.StatusOK, gin.H{"borrows": bc.toViews(borrows)})
}

// ListActive returns only the user's open borrows.
//
//	GET /api/borrows/active
func (bc *BorrowsController) ListActive(c *gin.Context) {
	borrows, err := bc.circulation.ListActiveBorrows(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list active borrows")
		return
	}
	c.JSON(http.StatusOK, gin.H{"borrows": bc.toViews(borrows)})
}
