// Package routes maps the HTTP surface onto the controllers.
package routes

import (
	"github.com/shashiranjanraj/vitrine/app/controllers"
	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/auth"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
	"github.com/shashiranjanraj/vitrine/pkg/middleware"
	"github.com/shashiranjanraj/vitrine/pkg/rbac"
	"github.com/shashiranjanraj/vitrine/pkg/router"
)

// Controllers bundles every handler the route table mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Category *controllers.CategoryController
	Product  *controllers.ProductController
	Order    *controllers.OrderController
	Upload   *controllers.UploadController
	Health   *controllers.HealthController
}

// Register mounts the API. Three tiers:
//
//   - public:        auth endpoints, catalog reads, health, metrics
//   - authenticated: current user, orders, upload
//   - admin:         catalog writes, order status, the full order list
//
// The admin tier chains the role gate after the auth gate, so an
// unauthenticated request to an admin route still reads as a 401, not 403.
func Register(r *router.Router, c Controllers, tokens *auth.Manager, resolve middleware.PrincipalResolver) {
	authed := middleware.RequireAuth(tokens, resolve)
	admin := rbac.HasRole(models.RoleAdmin)

	r.Get("/healthz", "health.show", c.Health.Show)
	r.Get("/metrics", "metrics.show", metrics.Handler())

	r.Post("/auth/register", "auth.register", c.Auth.Register)
	r.Post("/auth/login", "auth.login", c.Auth.Login)
	r.Get("/auth/me", "auth.me", c.Auth.Me, authed)

	r.Get("/categories", "categories.index", c.Category.Index)
	r.Post("/categories", "categories.store", c.Category.Store, authed, admin)
	r.Delete("/categories/{id}", "categories.destroy", c.Category.Destroy, authed, admin)

	r.Get("/products", "products.index", c.Product.Index)
	r.Get("/products/{id}", "products.show", c.Product.Show)
	r.Post("/products", "products.store", c.Product.Store, authed, admin)
	r.Put("/products/{id}", "products.update", c.Product.Update, authed, admin)
	r.Delete("/products/{id}", "products.destroy", c.Product.Destroy, authed, admin)

	r.Get("/orders", "orders.index", c.Order.Index, authed)
	r.Post("/orders", "orders.store", c.Order.Store, authed)
	r.Put("/orders/{id}/status", "orders.status", c.Order.UpdateStatus, authed, admin)

	r.Post("/upload", "upload.store", c.Upload.Store, authed)
}
