package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/testkit"
)

func registerBody(username, email string) map[string]interface{} {
	return map[string]interface{}{
		"username":        username,
		"email":           email,
		"password":        "secret123",
		"confirmPassword": "secret123",
	}
}

func TestRegisterLoginMeRoundtrip(t *testing.T) {
	app := testkit.NewApp(t)

	res := app.Do(t, http.MethodPost, "/auth/register", registerBody("jane", "jane@example.com"), "")
	require.Equal(t, http.StatusOK, res.Code)

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID       uint   `json:"ID"`
			Username string `json:"username"`
		} `json:"user"`
	}
	res.Bind(t, &data)
	require.NotEmpty(t, data.Token)
	assert.Equal(t, "jane", data.User.Username)

	res = app.Do(t, http.MethodGet, "/auth/me", nil, data.Token)
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &data)
	assert.Equal(t, "jane", data.User.Username)
}

func TestRegisterNeverReturnsPassword(t *testing.T) {
	app := testkit.NewApp(t)

	res := app.Do(t, http.MethodPost, "/auth/register", registerBody("jane", "jane@example.com"), "")
	require.Equal(t, http.StatusOK, res.Code)

	var data struct {
		User map[string]interface{} `json:"user"`
	}
	res.Bind(t, &data)
	assert.NotContains(t, data.User, "password")
	assert.NotContains(t, data.User, "Password")
}

func TestRegisterConfirmationMismatchWritesNothing(t *testing.T) {
	app := testkit.NewApp(t)

	body := registerBody("jane", "jane@example.com")
	body["confirmPassword"] = "different"

	res := app.Do(t, http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "The password confirmation does not match.", res.Errors(t)["password"])

	var count int64
	require.NoError(t, app.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := testkit.NewApp(t)

	res := app.Do(t, http.MethodPost, "/auth/register", registerBody("jane", "jane@example.com"), "")
	require.Equal(t, http.StatusOK, res.Code)

	res = app.Do(t, http.MethodPost, "/auth/register", registerBody("other", "jane@example.com"), "")
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Email already registered", res.Envelope.Message)

	res = app.Do(t, http.MethodPost, "/auth/register", registerBody("jane", "fresh@example.com"), "")
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Username already taken", res.Envelope.Message)
}

func TestLoginFailureBodiesMatch(t *testing.T) {
	app := testkit.NewApp(t)
	app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)

	unknown := app.Do(t, http.MethodPost, "/auth/login",
		map[string]string{"email": "nobody@example.com", "password": "secret123"}, "")
	wrong := app.Do(t, http.MethodPost, "/auth/login",
		map[string]string{"email": "jane@example.com", "password": "not-it"}, "")

	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, "Invalid credentials", unknown.Envelope.Message)
	assert.Equal(t, unknown.Envelope.Message, wrong.Envelope.Message)
}

func TestAuthGate(t *testing.T) {
	app := testkit.NewApp(t)
	_, token := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)

	res := app.Do(t, http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Authentication required", res.Envelope.Message)

	res = app.Do(t, http.MethodGet, "/auth/me", nil, "garbage.token.here")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Invalid token", res.Envelope.Message)

	// Token for a deleted account is rejected the same as a bad token.
	require.NoError(t, app.DB.Unscoped().Delete(&models.User{}, "username = ?", "jane").Error)
	res = app.Do(t, http.MethodGet, "/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Invalid token", res.Envelope.Message)
}

func TestRoleGate(t *testing.T) {
	app := testkit.NewApp(t)
	_, userToken := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)

	body := map[string]interface{}{"name": "Electronics"}

	res := app.Do(t, http.MethodPost, "/categories", body, "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = app.Do(t, http.MethodPost, "/categories", body, userToken)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "Forbidden", res.Envelope.Message)

	res = app.Do(t, http.MethodPost, "/categories", body, adminToken)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestCategoryLifecycle(t *testing.T) {
	app := testkit.NewApp(t)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)

	res := app.Do(t, http.MethodPost, "/categories",
		map[string]interface{}{"name": "Books"}, adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	var created struct {
		Category models.Category `json:"category"`
	}
	res.Bind(t, &created)
	assert.Equal(t, models.DefaultCategoryIcon, created.Category.Icon)

	// Duplicate name is rejected.
	res = app.Do(t, http.MethodPost, "/categories",
		map[string]interface{}{"name": "Books"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Category already exists", res.Envelope.Message)

	// Listing is public.
	res = app.Do(t, http.MethodGet, "/categories", nil, "")
	require.Equal(t, http.StatusOK, res.Code)

	res = app.Do(t, http.MethodDelete, fmt.Sprintf("/categories/%d", created.Category.ID), nil, adminToken)
	assert.Equal(t, http.StatusOK, res.Code)

	res = app.Do(t, http.MethodDelete, "/categories/999", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	app := testkit.NewApp(t)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)

	category := app.CreateCategory(t, "Electronics")
	product := app.CreateProduct(t, "Earbuds", 59.99, &category.ID)

	res := app.Do(t, http.MethodDelete, fmt.Sprintf("/categories/%d", category.ID), nil, adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	var stored models.Product
	require.NoError(t, app.DB.First(&stored, product.ID).Error)
	assert.Nil(t, stored.CategoryID)
}

func TestProductCreateForcesServerOwnedFields(t *testing.T) {
	app := testkit.NewApp(t)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)

	// rating, reviewCount and isActive in the body must be ignored.
	res := app.Do(t, http.MethodPost, "/products", map[string]interface{}{
		"name":        "Earbuds",
		"price":       59.99,
		"image":       "uploads/x.jpg",
		"stock":       5,
		"rating":      4.9,
		"reviewCount": 120,
		"isActive":    false,
	}, adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	var data struct {
		Product models.Product `json:"product"`
	}
	res.Bind(t, &data)
	assert.Zero(t, data.Product.Rating)
	assert.Zero(t, data.Product.ReviewCount)
	assert.True(t, data.Product.IsActive)
}

func TestProductListingFilters(t *testing.T) {
	app := testkit.NewApp(t)
	category := app.CreateCategory(t, "Electronics")
	app.CreateProduct(t, "Earbuds", 59.99, &category.ID)
	app.CreateProduct(t, "Keyboard", 89.00, &category.ID)
	app.CreateProduct(t, "Cookbook", 24.50, nil)

	var data struct {
		Products []models.Product `json:"products"`
	}

	res := app.Do(t, http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &data)
	assert.Len(t, data.Products, 3)

	res = app.Do(t, http.MethodGet, fmt.Sprintf("/products?categoryId=%d", category.ID), nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &data)
	assert.Len(t, data.Products, 2)

	res = app.Do(t, http.MethodGet, "/products?minPrice=50&maxPrice=90", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &data)
	assert.Len(t, data.Products, 2)

	res = app.Do(t, http.MethodGet, "/products?search=cook", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &data)
	require.Len(t, data.Products, 1)
	assert.Equal(t, "Cookbook", data.Products[0].Name)

	res = app.Do(t, http.MethodGet, "/products?minPrice=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestProductDeactivateKeepsDetailReachable(t *testing.T) {
	app := testkit.NewApp(t)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)
	product := app.CreateProduct(t, "Earbuds", 59.99, nil)

	res := app.Do(t, http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil, adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	var listing struct {
		Products []models.Product `json:"products"`
	}
	res = app.Do(t, http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &listing)
	assert.Empty(t, listing.Products)

	// The detail endpoint still serves the row.
	res = app.Do(t, http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil, "")
	assert.Equal(t, http.StatusOK, res.Code)

	// An admin can reactivate through the partial update.
	res = app.Do(t, http.MethodPut, fmt.Sprintf("/products/%d", product.ID),
		map[string]interface{}{"isActive": true}, adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	res = app.Do(t, http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &listing)
	assert.Len(t, listing.Products, 1)
}

func TestProductPartialUpdate(t *testing.T) {
	app := testkit.NewApp(t)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)
	product := app.CreateProduct(t, "Earbuds", 59.99, nil)

	res := app.Do(t, http.MethodPut, fmt.Sprintf("/products/%d", product.ID),
		map[string]interface{}{"price": 49.99}, adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	var data struct {
		Product models.Product `json:"product"`
	}
	res.Bind(t, &data)
	assert.Equal(t, 49.99, data.Product.Price)
	assert.Equal(t, "Earbuds", data.Product.Name)

	res = app.Do(t, http.MethodPut, "/products/999",
		map[string]interface{}{"price": 1.0}, adminToken)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestProductUpdateRejectsNegativeValues(t *testing.T) {
	app := testkit.NewApp(t)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)
	product := app.CreateProduct(t, "Earbuds", 59.99, nil)

	res := app.Do(t, http.MethodPut, fmt.Sprintf("/products/%d", product.ID),
		map[string]interface{}{"price": -10, "stock": -7}, adminToken)
	require.Equal(t, http.StatusBadRequest, res.Code)
	errs := res.Errors(t)
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "stock")

	var stored models.Product
	require.NoError(t, app.DB.First(&stored, product.ID).Error)
	assert.Equal(t, 59.99, stored.Price)
	assert.Equal(t, 10, stored.Stock)
}

func TestPlaceOrder(t *testing.T) {
	app := testkit.NewApp(t)
	_, token := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)
	product := app.CreateProduct(t, "Earbuds", 59.99, nil)

	res := app.Do(t, http.MethodPost, "/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": product.ID, "quantity": 2, "price": 59.99},
		},
		"totalPrice": 119.98,
	}, token)
	require.Equal(t, http.StatusOK, res.Code)

	var data struct {
		Order models.Order `json:"order"`
	}
	res.Bind(t, &data)
	assert.Equal(t, models.StatusPending, data.Order.Status)
	assert.Equal(t, 119.98, data.Order.TotalPrice)
	assert.Equal(t, "jane@example.com", data.Order.CustomerEmail)

	var itemCount int64
	require.NoError(t, app.DB.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}

func TestPlaceOrderRequiresItems(t *testing.T) {
	app := testkit.NewApp(t)
	_, token := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)

	res := app.Do(t, http.MethodPost, "/orders",
		map[string]interface{}{"items": []interface{}{}, "totalPrice": 0}, token)
	require.Equal(t, http.StatusBadRequest, res.Code)

	var orderCount int64
	require.NoError(t, app.DB.Model(&models.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 0, orderCount)
}

func TestPlaceOrderRejectsInvalidItems(t *testing.T) {
	app := testkit.NewApp(t)
	_, token := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)
	product := app.CreateProduct(t, "Earbuds", 59.99, nil)

	res := app.Do(t, http.MethodPost, "/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": product.ID, "quantity": 0, "price": -5},
		},
		"totalPrice": 0,
	}, token)
	require.Equal(t, http.StatusBadRequest, res.Code)
	errs := res.Errors(t)
	assert.Contains(t, errs, "items.0.quantity")
	assert.Contains(t, errs, "items.0.price")

	var orderCount, itemCount int64
	require.NoError(t, app.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, app.DB.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 0, orderCount)
	assert.EqualValues(t, 0, itemCount)
}

func TestOrderListingScopes(t *testing.T) {
	app := testkit.NewApp(t)
	jane, janeToken := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)
	_, otherToken := app.CreateUser(t, "omar", "omar@example.com", models.RoleUser)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)
	product := app.CreateProduct(t, "Earbuds", 59.99, nil)

	order := map[string]interface{}{
		"items":      []map[string]interface{}{{"productId": product.ID, "quantity": 1, "price": 59.99}},
		"totalPrice": 59.99,
	}
	require.Equal(t, http.StatusOK, app.Do(t, http.MethodPost, "/orders", order, janeToken).Code)
	require.Equal(t, http.StatusOK, app.Do(t, http.MethodPost, "/orders", order, otherToken).Code)

	var data struct {
		Orders []models.Order `json:"orders"`
	}

	res := app.Do(t, http.MethodGet, "/orders", nil, janeToken)
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &data)
	require.Len(t, data.Orders, 1)
	assert.Equal(t, jane.ID, data.Orders[0].UserID)
	assert.Len(t, data.Orders[0].Items, 1)

	res = app.Do(t, http.MethodGet, "/orders", nil, adminToken)
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &data)
	assert.Len(t, data.Orders, 2)
}

func TestOrderStatusTransitions(t *testing.T) {
	app := testkit.NewApp(t)
	_, userToken := app.CreateUser(t, "jane", "jane@example.com", models.RoleUser)
	_, adminToken := app.CreateUser(t, "boss", "boss@example.com", models.RoleAdmin)
	product := app.CreateProduct(t, "Earbuds", 59.99, nil)

	res := app.Do(t, http.MethodPost, "/orders", map[string]interface{}{
		"items":      []map[string]interface{}{{"productId": product.ID, "quantity": 1, "price": 59.99}},
		"totalPrice": 59.99,
	}, userToken)
	require.Equal(t, http.StatusOK, res.Code)

	var data struct {
		Order models.Order `json:"order"`
	}
	res.Bind(t, &data)
	path := fmt.Sprintf("/orders/%d/status", data.Order.ID)

	// Only admins may transition.
	res = app.Do(t, http.MethodPut, path, map[string]string{"status": "processing"}, userToken)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = app.Do(t, http.MethodPut, path, map[string]string{"status": "processing"}, adminToken)
	require.Equal(t, http.StatusOK, res.Code)
	res.Bind(t, &data)
	assert.Equal(t, models.StatusProcessing, data.Order.Status)

	// pending→delivered was never legal, and processing→pending is not either.
	res = app.Do(t, http.MethodPut, path, map[string]string{"status": "pending"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid status transition", res.Envelope.Message)

	res = app.Do(t, http.MethodPut, path, map[string]string{"status": "refunded"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Unknown order status", res.Envelope.Message)

	res = app.Do(t, http.MethodPut, "/orders/999/status", map[string]string{"status": "processing"}, adminToken)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestHealthz(t *testing.T) {
	app := testkit.NewApp(t)

	res := app.Do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, res.Code)
}
