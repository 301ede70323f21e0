package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/vitrine/app/repositories"
	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/bind"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// ProductController serves the storefront product reads and the admin
// writes.
type ProductController struct {
	service  *services.CatalogService
	maxBytes int64
}

func NewProductController(service *services.CatalogService, maxBytes int64) *ProductController {
	return &ProductController{service: service, maxBytes: maxBytes}
}

// productFilter reads the listing filters off the query string. A filter
// that fails to parse is reported, not silently dropped.
func productFilter(r *http.Request) (repositories.ProductFilter, string) {
	var filter repositories.ProductFilter
	q := r.URL.Query()

	if raw := q.Get("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return filter, "categoryId must be a positive integer"
		}
		v := uint(id)
		filter.CategoryID = &v
	}
	if raw := strings.TrimSpace(q.Get("search")); raw != "" {
		filter.Search = raw
	}
	if raw := q.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filter, "minPrice must be a non-negative number"
		}
		filter.MinPrice = &v
	}
	if raw := q.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filter, "maxPrice must be a non-negative number"
		}
		filter.MaxPrice = &v
	}
	return filter, ""
}

// Index handles GET /products. Public; lists active products, optionally
// narrowed by categoryId, search, minPrice and maxPrice.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	filter, msg := productFilter(r)
	if msg != "" {
		response.Error(w, http.StatusBadRequest, msg)
		return
	}

	products, err := c.service.Products(r.Context(), filter)
	if err != nil {
		internalError(w, r, "list products failed", err)
		return
	}
	response.Success(w, map[string]interface{}{"products": products})
}

// Show handles GET /products/{id}. Public; returns the product whether or
// not it is still active, so direct links keep working.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	product, err := c.service.Product(id)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w, err.Error())
	case err != nil:
		internalError(w, r, "load product failed", err)
	default:
		response.Success(w, map[string]interface{}{"product": product})
	}
}

// Store handles POST /products (admin).
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	errs, err := bind.JSON(r, &in, c.maxBytes)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.CreateProduct(r.Context(), in)
	if err != nil {
		internalError(w, r, "create product failed", err)
		return
	}
	response.Success(w, map[string]interface{}{"product": product})
}

// Update handles PUT /products/{id} (admin). Partial: absent fields keep
// their stored values.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	var in services.ProductUpdateInput
	errs, err := bind.JSON(r, &in, c.maxBytes)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.UpdateProduct(r.Context(), id, in)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w, err.Error())
	case err != nil:
		internalError(w, r, "update product failed", err)
	default:
		response.Success(w, map[string]interface{}{"product": product})
	}
}

// Destroy handles DELETE /products/{id} (admin). The product is
// deactivated, not removed, so past order items keep a valid reference.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	err := c.service.DeactivateProduct(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w, err.Error())
	case err != nil:
		internalError(w, r, "deactivate product failed", err)
	default:
		response.Message(w, "Product deleted")
	}
}
