package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerForm struct {
	Username             string `json:"username" validate:"required,alpha_dash,min=3,max=50"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
	Role                 string `json:"role" validate:"nullable,in=user,admin"`
}

func validForm() registerForm {
	return registerForm{
		Username:             "jane_doe",
		Email:                "jane@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	}
}

func TestStructValid(t *testing.T) {
	errs := Struct(validForm())
	assert.Empty(t, errs)
}

func TestStructRequired(t *testing.T) {
	f := validForm()
	f.Email = "  "

	errs := Struct(f)
	assert.Equal(t, "The email field is required.", errs["email"])
}

func TestStructEmail(t *testing.T) {
	f := validForm()
	f.Email = "not-an-email"

	errs := Struct(f)
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestStructAlphaDash(t *testing.T) {
	f := validForm()
	f.Username = "jane doe!"

	errs := Struct(f)
	assert.Contains(t, errs["username"], "letters, numbers, dashes")
}

func TestStructMinLength(t *testing.T) {
	f := validForm()
	f.Username = "jd"

	errs := Struct(f)
	assert.Equal(t, "The username must be at least 3 characters.", errs["username"])
}

func TestStructConfirmed(t *testing.T) {
	f := validForm()
	f.PasswordConfirmation = "different"

	errs := Struct(f)
	assert.Equal(t, "The password confirmation does not match.", errs["password"])
}

func TestStructNullableSkipsEmpty(t *testing.T) {
	f := validForm()
	f.Role = ""
	assert.Empty(t, Struct(f))

	f.Role = "admin"
	assert.Empty(t, Struct(f))

	f.Role = "superuser"
	errs := Struct(f)
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}

func TestStructFirstFailingRuleWins(t *testing.T) {
	f := validForm()
	f.Username = "!" // fails alpha_dash before min=3

	errs := Struct(f)
	assert.Contains(t, errs["username"], "letters, numbers, dashes")
}

func TestStructNumericBounds(t *testing.T) {
	type priced struct {
		Price float64 `json:"price" validate:"gte=0"`
		Stock int     `json:"stock" validate:"gte=0,lte=1000"`
	}

	assert.Empty(t, Struct(priced{Price: 0, Stock: 10}))

	errs := Struct(priced{Price: -1, Stock: 2000})
	assert.Equal(t, "The price must be greater than or equal to 0.", errs["price"])
	assert.Equal(t, "The stock must be less than or equal to 1000.", errs["stock"])
}

func TestConfirmedNamedSibling(t *testing.T) {
	type form struct {
		Password        string `json:"password" validate:"required,confirmed=confirmPassword"`
		ConfirmPassword string `json:"confirmPassword" validate:"required"`
	}

	assert.Empty(t, Struct(form{Password: "abc", ConfirmPassword: "abc"}))

	errs := Struct(form{Password: "abc", ConfirmPassword: "xyz"})
	assert.Equal(t, "The password confirmation does not match.", errs["password"])
}

func TestSplitRulesKeepsInParams(t *testing.T) {
	rules := splitRules("required,in=admin,user,max=50")
	assert.Equal(t, []string{"required", "in=admin,user", "max=50"}, rules)
}

func TestStructSliceRequired(t *testing.T) {
	type checkout struct {
		Items []int `json:"items" validate:"required"`
	}

	errs := Struct(checkout{})
	assert.Equal(t, "The items field is required.", errs["items"])
	assert.Empty(t, Struct(checkout{Items: []int{1}}))
}

func TestStructValidatesSliceElements(t *testing.T) {
	type line struct {
		ProductID uint    `json:"productId" validate:"required"`
		Quantity  int     `json:"quantity" validate:"required,gte=1"`
		Price     float64 `json:"price" validate:"gte=0"`
	}
	type checkout struct {
		Items []line `json:"items" validate:"required"`
	}

	assert.Empty(t, Struct(checkout{Items: []line{{ProductID: 1, Quantity: 2, Price: 9.99}}}))

	errs := Struct(checkout{Items: []line{
		{ProductID: 1, Quantity: 2, Price: 9.99},
		{ProductID: 1, Quantity: 0, Price: -5},
	}})
	assert.Equal(t, "The quantity field is required.", errs["items.1.quantity"])
	assert.Equal(t, "The price must be greater than or equal to 0.", errs["items.1.price"])
	assert.NotContains(t, errs, "items.0.quantity")
}

func TestStructDereferencesPointers(t *testing.T) {
	type patch struct {
		Price *float64 `json:"price" validate:"nullable,gte=0"`
		Stock *int     `json:"stock" validate:"nullable,gte=0"`
	}

	assert.Empty(t, Struct(patch{}), "nil fields stay optional")

	price, stock := 19.99, 3
	assert.Empty(t, Struct(patch{Price: &price, Stock: &stock}))

	price, stock = -10, -7
	errs := Struct(patch{Price: &price, Stock: &stock})
	assert.Equal(t, "The price must be greater than or equal to 0.", errs["price"])
	assert.Equal(t, "The stock must be greater than or equal to 0.", errs["stock"])
}
