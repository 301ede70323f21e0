package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vitrine/app/models"
)

// ProductFilter is the optional filter set for listings. Nil/empty fields
// are simply not applied; provided fields combine with AND.
type ProductFilter struct {
	CategoryID *uint
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
}

// ProductRepository persists catalogue products.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListActive returns active products matching filter. The is_active base
// predicate always applies; shoppers never see deactivated products.
func (r *ProductRepository) ListActive(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Where("is_active = ?", true)

	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		needle := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}

	var products []models.Product
	err := q.Order("id asc").Find(&products).Error
	return products, err
}

// FindByID returns the product (active or not) or (nil, nil) when absent.
// Admin screens need deactivated products too, so no is_active predicate.
func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Save persists changes to an existing product.
func (r *ProductRepository) Save(product *models.Product) error {
	return r.db.Save(product).Error
}

// Deactivate soft-deletes a product by flipping is_active. The row stays so
// order items placed against it keep resolving.
func (r *ProductRepository) Deactivate(id uint) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
