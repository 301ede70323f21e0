package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vitrine/app/models"
)

// OrderRepository persists orders and their line items.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithItems writes the order header and all line items inside one
// transaction. Any failure rolls the whole aggregate back; the database
// never holds a header without its items or a partial item list.
func (r *OrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByUser returns the user's orders, newest first, items attached.
func (r *OrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error
	return orders, err
}

// ListAll returns every order, newest first, items attached. Admin only.
func (r *OrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("id desc").Find(&orders).Error
	return orders, err
}

// FindByID returns the order with items, or (nil, nil) when absent.
func (r *OrderRepository) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus persists a status change on an existing order.
func (r *OrderRepository) UpdateStatus(order *models.Order, status models.OrderStatus) error {
	order.Status = status
	return r.db.Model(order).Update("status", status).Error
}
