package services

import (
	"errors"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/app/repositories"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
	"github.com/shashiranjanraj/vitrine/pkg/middleware"
)

var (
	ErrItemsRequired     = errors.New("Order items are required")
	ErrOrderNotFound     = errors.New("Order not found")
	ErrUnknownStatus     = errors.New("Unknown order status")
	ErrInvalidTransition = errors.New("Invalid status transition")
)

// OrderItemInput is one checkout line. Price is the unit price the client
// saw; it is snapshotted verbatim onto the order item.
type OrderItemInput struct {
	ProductID uint    `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// PlaceOrderInput is the checkout request body. TotalPrice comes from the
// caller and is stored as-is, not recomputed from the items.
type PlaceOrderInput struct {
	Items      []OrderItemInput `json:"items" validate:"required"`
	TotalPrice float64          `json:"totalPrice" validate:"gte=0"`
}

// StatusInput is the admin status-transition body.
type StatusInput struct {
	Status string `json:"status" validate:"required"`
}

// OrderService implements checkout and order administration.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// PlaceOrder creates the order aggregate for the authenticated caller:
// header owned by the caller with status pending and the caller's email as
// customer contact, plus one item row per input line, written atomically.
// The returned order carries no items; listing fetches them.
func (s *OrderService) PlaceOrder(p *middleware.Principal, in PlaceOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrItemsRequired
	}

	order := &models.Order{
		UserID:        p.ID,
		TotalPrice:    in.TotalPrice,
		Status:        models.StatusPending,
		CustomerEmail: p.Email,
	}

	items := make([]models.OrderItem, len(in.Items))
	for i, line := range in.Items {
		items[i] = models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
	}

	if err := s.orders.CreateWithItems(order, items); err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	order.Items = nil
	return order, nil
}

// ListOrders returns the caller's orders; admins see every order.
func (s *OrderService) ListOrders(p *middleware.Principal) ([]models.Order, error) {
	if p.Role == models.RoleAdmin {
		return s.orders.ListAll()
	}
	return s.orders.ListByUser(p.ID)
}

// TransitionStatus validates the target status against the closed set and
// the transition table, then persists it.
func (s *OrderService) TransitionStatus(id uint, in StatusInput) (*models.Order, error) {
	target, err := models.ParseOrderStatus(in.Status)
	if err != nil {
		return nil, ErrUnknownStatus
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !order.Status.CanTransition(target) {
		return nil, ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(order, target); err != nil {
		return nil, err
	}
	return order, nil
}
