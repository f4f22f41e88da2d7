package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bayanda-Msibi/library-management-system/internal/catalog"
)

// CategoriesController handles category management endpoints.
type CategoriesController struct {
	catalog *catalog.Service
}

// NewCategoriesController creates a new categories controller.
func NewCategoriesController(svc *catalog.Service) *CategoriesController {
	return &CategoriesController{catalog: svc}
}

type categoryRequest struct {
	Name string `json:"name"`
}

// List returns all categories ordered by name.
func (cc *CategoriesController) List(c *gin.Context) {
	categories, err := cc.catalog.ListCategories()
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Create adds a new category. Admin only.
func (cc *CategoriesController) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	category, err := cc.catalog.AddCategory(GetUserRole(c), strings.TrimSpace(req.Name))
	if err != nil {
		cc.respondMutationError(c, err, "create category")
		return
	}
	respondCreated(c, category)
}

// Rename changes a category's name. Admin only.
func (cc *CategoriesController) Rename(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	category, err := cc.catalog.RenameCategory(GetUserRole(c), id, strings.TrimSpace(req.Name))
	if err != nil {
		cc.respondMutationError(c, err, "rename category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete removes an empty category. Admin only.
func (cc *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.catalog.DeleteCategory(GetUserRole(c), id); err != nil {
		cc.respondMutationError(c, err, "delete category")
		return
	}
	respondSuccess(c, "category deleted")
}

// respondMutationError translates catalog errors from mutating operations.
// Unknown failures rolled back with zero mutation, so they surface as
// resubmittable conflicts.
func (cc *CategoriesController) respondMutationError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		respondForbidden(c, "admin role required")
	case errors.Is(err, catalog.ErrInvalidInput):
		respondBadRequest(c, "category name is required")
	case errors.Is(err, catalog.ErrDuplicateName):
		respondConflict(c, "category name already exists")
	case errors.Is(err, catalog.ErrCategoryNotFound):
		respondNotFound(c, "category")
	case errors.Is(err, catalog.ErrHasDependents):
		respondConflict(c, "category still has books assigned")
	default:
		respondStorageConflict(c, err, context)
	}
}
