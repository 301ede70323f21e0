package seeders

import (
	"os"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/auth"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("catalog", SeedCatalog)
}

// SeedAdminUser creates the bootstrap admin account once. The password
// comes from SEED_ADMIN_PASSWORD so no credential lives in the repo.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error
}

// SeedCatalog inserts a small starter catalog on an empty database.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Electronics", Description: "Phones, audio and accessories", Icon: "cpu"},
		{Name: "Books", Description: "Fiction and non-fiction", Icon: "book"},
		{Name: "Home", Description: "Kitchen and living", Icon: "home"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name:       "Wireless Earbuds",
			Price:      59.99,
			Image:      "uploads/seed/earbuds.jpg",
			CategoryID: &categories[0].ID,
			Stock:      120,
			IsActive:   true,
		},
		{
			Name:       "Mechanical Keyboard",
			Price:      89.00,
			Image:      "uploads/seed/keyboard.jpg",
			CategoryID: &categories[0].ID,
			Stock:      45,
			IsActive:   true,
		},
		{
			Name:       "The Pragmatic Shopkeeper",
			Price:      24.50,
			Image:      "uploads/seed/book.jpg",
			CategoryID: &categories[1].ID,
			Stock:      200,
			IsActive:   true,
		},
		{
			Name:       "Cast Iron Skillet",
			Price:      34.95,
			Image:      "uploads/seed/skillet.jpg",
			CategoryID: &categories[2].ID,
			Stock:      60,
			IsActive:   true,
		},
	}
	return db.Create(&products).Error
}
