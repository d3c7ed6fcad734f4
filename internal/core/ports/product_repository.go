package ports

import (
	"context"

	"github.com/devilal/catalog-api/internal/core/domain"
)

// ListProductsFilter carries all query parameters for listing products.
// Zero values (and the literal "all" for category/brand) impose no
// constraint. Page and Limit are assumed already clamped by the service.
type ListProductsFilter struct {
	Search   string   // case-insensitive substring match on name or description
	Category string   // equality filter; "" or "all" = no constraint
	Brand    string   // equality filter; "" or "all" = no constraint
	MinPrice *float64 // optional: price >= MinPrice
	MaxPrice *float64 // optional: price <= MaxPrice
	Featured *bool    // optional
	InStock  *bool    // optional

	SortBy    string // "name", "price" or "createdAt"
	SortOrder string // "asc" or "desc"

	Page  int // 1-based
	Limit int // rows per page
}

// ProductUpdate carries a partial product mutation. Nil fields are left
// untouched.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	Category      *string
	Brand         *string
	Image         *string
	InStock       *bool
	Featured      *bool
	Rating        *float64
	Reviews       *int
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, fields ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error

	// Count returns the number of products matching filter, ignoring pagination.
	Count(ctx context.Context, filter ListProductsFilter) (int64, error)

	// List returns one page of products matching filter in the requested
	// order. Ordering ties are broken by insertion order so pagination is
	// stable across repeated requests.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)

	// DistinctCategories returns the sorted category values currently present.
	DistinctCategories(ctx context.Context) ([]string, error)

	// DistinctBrands returns the sorted brand values currently present.
	DistinctBrands(ctx context.Context) ([]string, error)
}
