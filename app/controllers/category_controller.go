package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/bind"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// CategoryController serves the category listing and the admin writes.
type CategoryController struct {
	service  *services.CatalogService
	maxBytes int64
}

func NewCategoryController(service *services.CatalogService, maxBytes int64) *CategoryController {
	return &CategoryController{service: service, maxBytes: maxBytes}
}

// Index handles GET /categories. Public, no auth.
func (c *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.Categories(r.Context())
	if err != nil {
		internalError(w, r, "list categories failed", err)
		return
	}
	response.Success(w, map[string]interface{}{"categories": categories})
}

// Store handles POST /categories (admin).
func (c *CategoryController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	errs, err := bind.JSON(r, &in, c.maxBytes)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.service.CreateCategory(r.Context(), in)
	switch {
	case errors.Is(err, services.ErrCategoryExists):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(w, r, "create category failed", err)
	default:
		response.Success(w, map[string]interface{}{"category": category})
	}
}

// Destroy handles DELETE /categories/{id} (admin). Products under the
// category are detached, not removed.
func (c *CategoryController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Category not found")
		return
	}

	err := c.service.DeleteCategory(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		response.NotFound(w, err.Error())
	case err != nil:
		internalError(w, r, "delete category failed", err)
	default:
		response.Message(w, "Category deleted")
	}
}
