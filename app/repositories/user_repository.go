// Package repositories contains the GORM-backed stores. Each repository
// receives its *gorm.DB at construction; nothing reads a global handle.
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vitrine/app/models"
)

// UserRepository is the credential store.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID looks up a user by primary key. Absence is (nil, nil), not an
// error — callers decide whether a missing user is exceptional.
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	return r.findOne("id = ?", id)
}

// FindByEmail looks up a user by email address.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	return r.findOne("email = ?", email)
}

// FindByUsername looks up a user by username.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	return r.findOne("username = ?", username)
}

// Create persists a new user record. The caller is responsible for having
// hashed the password; this layer never sees plaintext.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) findOne(query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := r.db.Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
