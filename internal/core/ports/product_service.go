package ports

import (
	"context"

	"github.com/devilal/catalog-api/internal/core/domain"
)

// ListProductsInput carries all parameters accepted by the list endpoint.
// Page and Limit may be out of range; the service normalizes them.
type ListProductsInput struct {
	Search   string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Featured *bool
	InStock  *bool

	SortBy    string
	SortOrder string

	Page  int
	Limit int
}

// Pagination is the page metadata returned alongside every list result.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// ListProductsResult is returned by ListProducts.
type ListProductsResult struct {
	Items      []*domain.Product
	Pagination Pagination
}

// CreateProductInput carries all data needed to create a product.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	OriginalPrice float64
	Category      string
	Brand         string
	Image         string
	InStock       *bool // defaults to true when nil
	Featured      bool
	Rating        float64
	Reviews       int
}

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ListProductsResult, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, fields ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Categories and Brands return the filter option lists: the distinct
	// values currently present in the catalog, sorted.
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
}
