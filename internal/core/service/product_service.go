package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devilal/catalog-api/internal/api/metrics"
	"github.com/devilal/catalog-api/internal/core/domain"
	"github.com/devilal/catalog-api/internal/core/ports"
)

const (
	// DefaultPageSize matches the storefront grid (12 cards per page).
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// MetaCache abstracts the cache for filter option lists (Redis). A miss is
// reported via the second return value; errors are tolerated and the caller
// falls back to the repository.
type MetaCache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Set(ctx context.Context, key string, values []string) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Cache keys for the distinct-value lists.
const (
	CacheKeyCategories = "meta:categories"
	CacheKeyBrands     = "meta:brands"
)

// ProductService implements catalog queries and admin mutations.
type ProductService struct {
	repo ports.ProductRepository
	meta MetaCache
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, meta MetaCache, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, meta: meta, log: log}
}

// ListProducts composes all supplied filters into one query, applies the
// requested sort order and returns a single page plus pagination metadata.
// The total count is computed independently of pagination; a page beyond
// the last one yields an empty result set with the current page clamped.
func (s *ProductService) ListProducts(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
	filter := ports.ListProductsFilter{
		Search:   input.Search,
		Category: input.Category,
		Brand:    input.Brand,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Featured: input.Featured,
		InStock:  input.InStock,
	}

	switch input.SortBy {
	case "name", "price", "createdAt":
		filter.SortBy = input.SortBy
	default:
		filter.SortBy = "createdAt"
	}
	if input.SortOrder == "asc" {
		filter.SortOrder = "asc"
	} else {
		filter.SortOrder = "desc"
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	page := input.Page
	if page < 1 {
		page = 1
	}

	items := []*domain.Product{}
	if page <= totalPages {
		filter.Page = page
		filter.Limit = limit
		items, err = s.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
	} else if totalPages > 0 {
		// Out-of-range request: clamp the reported page, return no items.
		page = totalPages
	} else {
		page = 1
	}

	metrics.CatalogQueriesTotal.Inc()

	return &ports.ListProductsResult{
		Items: items,
		Pagination: ports.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

// GetProduct retrieves a single product by id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduct validates and inserts a new catalog entry.
func (s *ProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}
	image := input.Image
	if image == "" {
		image = domain.PlaceholderImage
	}

	product := &domain.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Category:      domain.Category(input.Category),
		Brand:         input.Brand,
		Image:         image,
		InStock:       inStock,
		Featured:      input.Featured,
		Rating:        input.Rating,
		Reviews:       input.Reviews,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.invalidateMeta(ctx)
	metrics.CatalogMutationsTotal.WithLabelValues("create").Inc()
	s.log.Info().Str("product_id", created.ID).Str("category", string(created.Category)).Msg("product created")

	return created, nil
}

// UpdateProduct applies a partial mutation after validating each supplied
// field against the same constraints as creation.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, fields ports.ProductUpdate) (*domain.Product, error) {
	if err := validateProductUpdate(fields); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateMeta(ctx)
	metrics.CatalogMutationsTotal.WithLabelValues("update").Inc()
	s.log.Info().Str("product_id", id).Msg("product updated")

	return updated, nil
}

// DeleteProduct removes a product from the catalog.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateMeta(ctx)
	metrics.CatalogMutationsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Str("product_id", id).Msg("product deleted")

	return nil
}

// Categories returns the sorted category values currently present in the
// catalog, cached for a short TTL.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.cachedMeta(ctx, CacheKeyCategories, s.repo.DistinctCategories)
}

// Brands returns the sorted brand values currently present in the catalog.
func (s *ProductService) Brands(ctx context.Context) ([]string, error) {
	return s.cachedMeta(ctx, CacheKeyBrands, s.repo.DistinctBrands)
}

func (s *ProductService) cachedMeta(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if s.meta != nil {
		values, ok, err := s.meta.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("meta cache read failed, falling back to repository")
		} else if ok {
			metrics.MetaCacheTotal.WithLabelValues("hit").Inc()
			return values, nil
		} else {
			metrics.MetaCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	values, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}

	if s.meta != nil {
		if err := s.meta.Set(ctx, key, values); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to populate meta cache")
		}
	}
	return values, nil
}

func (s *ProductService) invalidateMeta(ctx context.Context) {
	if s.meta == nil {
		return
	}
	if err := s.meta.Invalidate(ctx, CacheKeyCategories, CacheKeyBrands); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate meta cache")
	}
}

func validateProductUpdate(f ports.ProductUpdate) error {
	if f.Name != nil {
		if *f.Name == "" {
			return domain.NewValidationError("name", "product name is required")
		}
		if len(*f.Name) > domain.MaxNameLength {
			return domain.NewValidationError("name", "product name cannot exceed 100 characters")
		}
	}
	if f.Description != nil {
		if *f.Description == "" {
			return domain.NewValidationError("description", "product description is required")
		}
		if len(*f.Description) > domain.MaxDescriptionLength {
			return domain.NewValidationError("description", "description cannot exceed 500 characters")
		}
	}
	if f.Price != nil && *f.Price < 0 {
		return domain.NewValidationError("price", "price cannot be negative")
	}
	if f.OriginalPrice != nil && *f.OriginalPrice < 0 {
		return domain.NewValidationError("originalPrice", "original price cannot be negative")
	}
	if f.Category != nil && !domain.ValidCategory(*f.Category) {
		return domain.NewValidationError("category", "category must be one of: furniture, decor, lighting, storage, textiles")
	}
	if f.Brand != nil && *f.Brand == "" {
		return domain.NewValidationError("brand", "product brand is required")
	}
	if f.Rating != nil && (*f.Rating < 0 || *f.Rating > 5) {
		return domain.NewValidationError("rating", "rating must be between 0 and 5")
	}
	if f.Reviews != nil && *f.Reviews < 0 {
		return domain.NewValidationError("reviews", "reviews count cannot be negative")
	}
	return nil
}
