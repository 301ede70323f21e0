package models

import "gorm.io/gorm"

// DefaultCategoryIcon is applied when a category is created without one.
const DefaultCategoryIcon = "tag"

// Category groups products. Admin-managed; hard-deleted.
type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:100;not null;default:tag" json:"icon"`
}

// Product is a catalogue entry. Shoppers only ever see active products;
// "deleting" a product flips IsActive instead of removing the row, so
// historical order items keep a valid reference.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Image       string  `gorm:"size:512;not null" json:"image"`
	CategoryID  *uint   `gorm:"index" json:"categoryId"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Rating      float64 `gorm:"not null;default:0" json:"rating"`
	ReviewCount int     `gorm:"not null;default:0" json:"reviewCount"`
	IsActive    bool    `gorm:"not null;default:true;index" json:"isActive"`
}
