package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/auth"
)

// CreateUser inserts a user directly and returns it with a valid token.
func (a *App) CreateUser(t *testing.T, username, email, role string) (*models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	user := &models.User{Username: username, Email: email, Password: hash, Role: role}
	require.NoError(t, a.DB.Create(user).Error)

	token, err := a.Tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

// CreateCategory inserts a category directly.
func (a *App) CreateCategory(t *testing.T, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Icon: models.DefaultCategoryIcon}
	require.NoError(t, a.DB.Create(category).Error)
	return category
}

// CreateProduct inserts an active product directly.
func (a *App) CreateProduct(t *testing.T, name string, price float64, categoryID *uint) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:       name,
		Price:      price,
		Image:      "uploads/test/" + name + ".jpg",
		CategoryID: categoryID,
		Stock:      10,
		IsActive:   true,
	}
	require.NoError(t, a.DB.Create(product).Error)
	return product
}
