package services

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/app/repositories"
	"github.com/shashiranjanraj/vitrine/pkg/cache"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
)

var (
	ErrCategoryExists   = errors.New("Category already exists")
	ErrCategoryNotFound = errors.New("Category not found")
	ErrProductNotFound  = errors.New("Product not found")
)

const (
	cacheKeyCategories = "catalog:categories"
	cacheKeyProducts   = "catalog:products:active"
	catalogCacheTTL    = 5 * time.Minute
)

// CategoryInput is the create-category request body.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"nullable,max=2000"`
	Icon        string `json:"icon" validate:"nullable,max=100"`
}

// ProductInput is the create-product request body. Rating, review count
// and active flag are server-owned and deliberately absent: whatever the
// caller sends for them is ignored.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image" validate:"required,max=512"`
	CategoryID  *uint   `json:"categoryId"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// ProductUpdateInput is the partial-update body; nil fields are untouched.
// IsActive is updatable here so an admin can reactivate a soft-deleted
// product.
type ProductUpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"nullable,gte=0"`
	Image       *string  `json:"image"`
	CategoryID  *uint    `json:"categoryId"`
	Stock       *int     `json:"stock" validate:"nullable,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

// CatalogService serves category and product operations, with a Redis
// read-through cache on the two hot listings. Admin writes invalidate.
type CatalogService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
	cache      *cache.Store
}

func NewCatalogService(
	categories *repositories.CategoryRepository,
	products *repositories.ProductRepository,
	store *cache.Store,
) *CatalogService {
	return &CatalogService{categories: categories, products: products, cache: store}
}

// Categories lists every category, served from cache when warm.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if s.cache.Get(ctx, cacheKeyCategories, &cached) {
		metrics.CacheHits.WithLabelValues(cacheKeyCategories).Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues(cacheKeyCategories).Inc()

	categories, err := s.categories.All()
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, cacheKeyCategories, categories, catalogCacheTTL)
	return categories, nil
}

// CreateCategory adds a category, defaulting the icon when omitted.
func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	existing, err := s.categories.FindByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	icon := in.Icon
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}

	category := &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Icon:        icon,
	}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	_ = s.cache.Del(ctx, cacheKeyCategories)
	return category, nil
}

// DeleteCategory hard-deletes a category and detaches its products.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	existing, err := s.categories.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, cacheKeyCategories, cacheKeyProducts)
	return nil
}

// Products lists active products matching filter. Only the unfiltered
// listing is cached; filtered queries go straight to the database.
func (s *CatalogService) Products(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	unfiltered := filter.CategoryID == nil && filter.Search == "" &&
		filter.MinPrice == nil && filter.MaxPrice == nil

	if unfiltered {
		var cached []models.Product
		if s.cache.Get(ctx, cacheKeyProducts, &cached) {
			metrics.CacheHits.WithLabelValues(cacheKeyProducts).Inc()
			return cached, nil
		}
		metrics.CacheMisses.WithLabelValues(cacheKeyProducts).Inc()
	}

	products, err := s.products.ListActive(filter)
	if err != nil {
		return nil, err
	}
	if unfiltered {
		_ = s.cache.Set(ctx, cacheKeyProducts, products, catalogCacheTTL)
	}
	return products, nil
}

// Product returns one product by id.
func (s *CatalogService) Product(id uint) (*models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct adds a product. A new product always starts active with a
// zero rating and zero reviews, regardless of what the request carried.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		CategoryID:  in.CategoryID,
		Stock:       in.Stock,
		Rating:      0,
		ReviewCount: 0,
		IsActive:    true,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	_ = s.cache.Del(ctx, cacheKeyProducts)
	return product, nil
}

// UpdateProduct applies the non-nil fields of in to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductUpdateInput) (*models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.products.Save(product); err != nil {
		return nil, err
	}
	_ = s.cache.Del(ctx, cacheKeyProducts)
	return product, nil
}

// DeactivateProduct soft-deletes a product.
func (s *CatalogService) DeactivateProduct(ctx context.Context, id uint) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.products.Deactivate(id); err != nil {
		return err
	}
	_ = s.cache.Del(ctx, cacheKeyProducts)
	return nil
}
