// Package services holds the application operations between the HTTP
// controllers and the stores. Input structs carry the validation tags, so
// controllers bind straight into them.
package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/app/repositories"
	"github.com/shashiranjanraj/vitrine/pkg/auth"
	"github.com/shashiranjanraj/vitrine/pkg/middleware"
)

// Conflict and credential errors surfaced to the client as 400s.
// The email check runs before the username check, so a request taking both
// reports the email conflict — that ordering is part of the contract.
var (
	ErrEmailTaken    = errors.New("Email already registered")
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrInvalidCredentials is shared by the unknown-email and
	// wrong-password paths so responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// RegisterInput is the registration request body.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,alpha_dash,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,confirmed=confirmPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Role            string `json:"role" validate:"nullable,in=user,admin"`
}

// LoginInput is the login request body.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService implements registration, login and principal resolution.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *auth.Manager
}

func NewAuthService(users *repositories.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a credential record and logs the new user straight in,
// returning the record and a fresh token. Uniqueness checks run email
// first, then username.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	existing, err := s.users.FindByEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	existing, err = s.users.FindByUsername(in.Username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies email + password and issues a token. Unknown email and
// wrong password both return ErrInvalidCredentials with no distinction.
func (s *AuthService) Login(in LoginInput) (*models.User, string, error) {
	user, err := s.users.FindByEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Resolve adapts the credential store to the auth gate: a verified token's
// user id either maps to a live account or the gate rejects the request.
func (s *AuthService) Resolve(_ context.Context, id uint) (*middleware.Principal, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return &middleware.Principal{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

// User returns the full record for an authenticated principal, for
// GET /auth/me.
func (s *AuthService) User(id uint) (*models.User, error) {
	return s.users.FindByID(id)
}
