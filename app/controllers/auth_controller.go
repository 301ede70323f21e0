package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/bind"
	"github.com/shashiranjanraj/vitrine/pkg/middleware"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// AuthController serves registration, login and the current-user lookup.
type AuthController struct {
	service  *services.AuthService
	maxBytes int64
}

func NewAuthController(service *services.AuthService, maxBytes int64) *AuthController {
	return &AuthController{service: service, maxBytes: maxBytes}
}

// Register handles POST /auth/register. Shape validation (including the
// password confirmation) runs before any store access; a valid request
// creates the account and returns it logged in.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	errs, err := bind.JSON(r, &in, c.maxBytes)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Register(in)
	switch {
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(w, r, "register failed", err)
	default:
		response.Success(w, map[string]interface{}{"user": user, "token": token})
	}
}

// Login handles POST /auth/login. Unknown email and wrong password produce
// byte-identical responses.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	errs, err := bind.JSON(r, &in, c.maxBytes)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Login(in)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(w, r, "login failed", err)
	default:
		response.Success(w, map[string]interface{}{"user": user, "token": token})
	}
}

// Me handles GET /auth/me for an authenticated caller.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	user, err := c.service.User(p.ID)
	if err != nil {
		internalError(w, r, "load current user failed", err)
		return
	}
	if user == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	response.Success(w, map[string]interface{}{"user": user})
}
