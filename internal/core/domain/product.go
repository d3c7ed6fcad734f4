package domain

import (
	"math"
	"time"
)

// Category is the fixed set of catalog categories.
type Category string

const (
	CategoryFurniture Category = "furniture"
	CategoryDecor     Category = "decor"
	CategoryLighting  Category = "lighting"
	CategoryStorage   Category = "storage"
	CategoryTextiles  Category = "textiles"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFurniture,
	CategoryDecor,
	CategoryLighting,
	CategoryStorage,
	CategoryTextiles,
}

// ValidCategory reports whether s names a known category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if Category(s) == c {
			return true
		}
	}
	return false
}

// PlaceholderImage is used when a product is created without an image.
const PlaceholderImage = "https://via.placeholder.com/300x300?text=Product+Image"

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

// Product is a single catalog entry.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice,omitempty"`
	Category      Category  `json:"category"`
	Brand         string    `json:"brand"`
	Image         string    `json:"image"`
	InStock       bool      `json:"inStock"`
	Featured      bool      `json:"featured"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HasDiscount reports whether a discount may be displayed. A product priced
// at or above its original price never shows one.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

// DiscountPercentage returns the rounded discount in percent, or 0 when no
// discount applies.
func (p *Product) DiscountPercentage() int {
	if !p.HasDiscount() {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}

// Validate checks every field constraint and returns a ValidationError
// naming the first offending field.
func (p *Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "product name is required")
	}
	if len(p.Name) > MaxNameLength {
		return NewValidationError("name", "product name cannot exceed 100 characters")
	}
	if p.Description == "" {
		return NewValidationError("description", "product description is required")
	}
	if len(p.Description) > MaxDescriptionLength {
		return NewValidationError("description", "description cannot exceed 500 characters")
	}
	if p.Price < 0 {
		return NewValidationError("price", "price cannot be negative")
	}
	if p.OriginalPrice < 0 {
		return NewValidationError("originalPrice", "original price cannot be negative")
	}
	if !ValidCategory(string(p.Category)) {
		return NewValidationError("category", "category must be one of: furniture, decor, lighting, storage, textiles")
	}
	if p.Brand == "" {
		return NewValidationError("brand", "product brand is required")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return NewValidationError("rating", "rating must be between 0 and 5")
	}
	if p.Reviews < 0 {
		return NewValidationError("reviews", "reviews count cannot be negative")
	}
	return nil
}
