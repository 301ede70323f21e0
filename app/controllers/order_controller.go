package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/bind"
	"github.com/shashiranjanraj/vitrine/pkg/middleware"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// OrderController serves checkout, order history and the admin status
// transition.
type OrderController struct {
	service  *services.OrderService
	maxBytes int64
}

func NewOrderController(service *services.OrderService, maxBytes int64) *OrderController {
	return &OrderController{service: service, maxBytes: maxBytes}
}

// Index handles GET /orders. Regular users see their own orders; admins
// see everyone's.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	orders, err := c.service.ListOrders(p)
	if err != nil {
		internalError(w, r, "list orders failed", err)
		return
	}
	response.Success(w, map[string]interface{}{"orders": orders})
}

// Store handles POST /orders: checkout for the authenticated caller.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var in services.PlaceOrderInput
	errs, err := bind.JSON(r, &in, c.maxBytes)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.PlaceOrder(p, in)
	switch {
	case errors.Is(err, services.ErrItemsRequired):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(w, r, "place order failed", err)
	default:
		response.Success(w, map[string]interface{}{"order": order})
	}
}

// UpdateStatus handles PUT /orders/{id}/status (admin). The target status
// must be one of the known states and reachable from the current one.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "Order not found")
		return
	}

	var in services.StatusInput
	errs, err := bind.JSON(r, &in, c.maxBytes)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.TransitionStatus(id, in)
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, services.ErrUnknownStatus), errors.Is(err, services.ErrInvalidTransition):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(w, r, "update order status failed", err)
	default:
		response.Success(w, map[string]interface{}{"order": order})
	}
}
