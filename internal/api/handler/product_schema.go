package handler

import (
	"time"

	"github.com/devilal/catalog-api/internal/core/domain"
)

// --- Request types ---

type createProductRequest struct {
	Name          string  `json:"name"          validate:"required,max=100"`
	Description   string  `json:"description"   validate:"required,max=500"`
	Price         float64 `json:"price"         validate:"gte=0"`
	OriginalPrice float64 `json:"originalPrice" validate:"gte=0"`
	Category      string  `json:"category"      validate:"required,oneof=furniture decor lighting storage textiles"`
	Brand         string  `json:"brand"         validate:"required"`
	Image         string  `json:"image"`
	InStock       *bool   `json:"inStock"`
	Featured      bool    `json:"featured"`
	Rating        float64 `json:"rating"        validate:"gte=0,lte=5"`
	Reviews       int     `json:"reviews"       validate:"gte=0"`
}

type updateProductRequest struct {
	Name          *string  `json:"name"          validate:"omitempty,max=100"`
	Description   *string  `json:"description"   validate:"omitempty,max=500"`
	Price         *float64 `json:"price"         validate:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gte=0"`
	Category      *string  `json:"category"      validate:"omitempty,oneof=furniture decor lighting storage textiles"`
	Brand         *string  `json:"brand"`
	Image         *string  `json:"image"`
	InStock       *bool    `json:"inStock"`
	Featured      *bool    `json:"featured"`
	Rating        *float64 `json:"rating"        validate:"omitempty,gte=0,lte=5"`
	Reviews       *int     `json:"reviews"       validate:"omitempty,gte=0"`
}

// --- Response types ---

// productResponse is the transport view of a catalog entry. It adds the
// computed discount, shown only when originalPrice exceeds price.
type productResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Price              float64   `json:"price"`
	OriginalPrice      float64   `json:"originalPrice,omitempty"`
	DiscountPercentage int       `json:"discountPercentage,omitempty"`
	Category           string    `json:"category"`
	Brand              string    `json:"brand"`
	Image              string    `json:"image"`
	InStock            bool      `json:"inStock"`
	Featured           bool      `json:"featured"`
	Rating             float64   `json:"rating"`
	Reviews            int       `json:"reviews"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage(),
		Category:           string(p.Category),
		Brand:              p.Brand,
		Image:              p.Image,
		InStock:            p.InStock,
		Featured:           p.Featured,
		Rating:             p.Rating,
		Reviews:            p.Reviews,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toProductResponses(products []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
