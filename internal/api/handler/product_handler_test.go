package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devilal/catalog-api/internal/core/domain"
	"github.com/devilal/catalog-api/internal/core/ports"
)

type stubProductService struct {
	listFn       func(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error)
	getFn        func(ctx context.Context, id string) (*domain.Product, error)
	createFn     func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn     func(ctx context.Context, id string, fields ports.ProductUpdate) (*domain.Product, error)
	deleteFn     func(ctx context.Context, id string) error
	categoriesFn func(ctx context.Context) ([]string, error)
	brandsFn     func(ctx context.Context) ([]string, error)
}

func (s *stubProductService) ListProducts(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) UpdateProduct(ctx context.Context, id string, fields ports.ProductUpdate) (*domain.Product, error) {
	return s.updateFn(ctx, id, fields)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProductService) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFn(ctx)
}

func (s *stubProductService) Brands(ctx context.Context) ([]string, error) {
	return s.brandsFn(ctx)
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:            "prod-1",
		Name:          "Oak Dining Table",
		Description:   "Solid oak dining table",
		Price:         649,
		OriginalPrice: 849,
		Category:      domain.CategoryFurniture,
		Brand:         "WoodCraft",
		Image:         "https://example.com/table.jpg",
		InStock:       true,
		Featured:      true,
		Rating:        4.8,
		Reviews:       156,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestProductHandler_List_ForwardsQueryParams(t *testing.T) {
	var captured ports.ListProductsInput
	stub := &stubProductService{
		listFn: func(_ context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
			captured = input
			return &ports.ListProductsResult{
				Items:      []*domain.Product{sampleProduct()},
				Pagination: ports.Pagination{CurrentPage: 2, TotalPages: 4, TotalItems: 40, ItemsPerPage: 12},
			}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodGet,
		"/products?search=oak&category=furniture&brand=WoodCraft&minPrice=100&maxPrice=900&featured=true&inStock=true&sortBy=price&sortOrder=asc&page=2&limit=12", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if captured.Search != "oak" || captured.Category != "furniture" || captured.Brand != "WoodCraft" {
		t.Fatalf("filters not forwarded: %+v", captured)
	}
	if captured.MinPrice == nil || *captured.MinPrice != 100 {
		t.Fatalf("minPrice not forwarded: %+v", captured.MinPrice)
	}
	if captured.MaxPrice == nil || *captured.MaxPrice != 900 {
		t.Fatalf("maxPrice not forwarded: %+v", captured.MaxPrice)
	}
	if captured.Featured == nil || !*captured.Featured {
		t.Fatalf("featured not forwarded")
	}
	if captured.SortBy != "price" || captured.SortOrder != "asc" {
		t.Fatalf("sort not forwarded: %s/%s", captured.SortBy, captured.SortOrder)
	}
	if captured.Page != 2 || captured.Limit != 12 {
		t.Fatalf("pagination not forwarded: %d/%d", captured.Page, captured.Limit)
	}

	resp := decodeEnvelope(t, rec)
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination in envelope: %v", resp)
	}
	if pagination["currentPage"] != float64(2) || pagination["totalItems"] != float64(40) {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}
}

func TestProductHandler_List_MalformedNumber(t *testing.T) {
	stub := &stubProductService{
		listFn: func(_ context.Context, _ ports.ListProductsInput) (*ports.ListProductsResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/products?minPrice=cheap", "")

	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestProductHandler_List_MalformedBool(t *testing.T) {
	stub := &stubProductService{
		listFn: func(_ context.Context, _ ports.ListProductsInput) (*ports.ListProductsResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/products?featured=yes!", "")

	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestProductHandler_Get_Discount(t *testing.T) {
	stub := &stubProductService{
		getFn: func(_ context.Context, id string) (*domain.Product, error) {
			if id != "prod-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return sampleProduct(), nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/products/prod-1", "")
	c.SetParamNames("id")
	c.SetParamValues("prod-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	// 849 -> 649 is a 24% discount after rounding.
	if data["discountPercentage"] != float64(24) {
		t.Fatalf("unexpected discount: %v", data["discountPercentage"])
	}
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	stub := &stubProductService{
		getFn: func(_ context.Context, _ string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/products/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductHandler_Create_Success(t *testing.T) {
	stub := &stubProductService{
		createFn: func(_ context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			if input.Name != "Table Lamp" || input.Category != "lighting" {
				t.Fatalf("unexpected input: %+v", input)
			}
			p := sampleProduct()
			p.Name = input.Name
			return p, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/products",
		`{"name":"Table Lamp","description":"Classic table lamp","price":79,"category":"lighting","brand":"ClassicLights"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Product created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestProductHandler_Create_BadCategory(t *testing.T) {
	stub := &stubProductService{
		createFn: func(_ context.Context, _ ports.CreateProductInput) (*domain.Product, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewProductHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/products",
		`{"name":"Widget","description":"A widget","price":10,"category":"electronics","brand":"Acme"}`)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestProductHandler_Update_PartialFields(t *testing.T) {
	var captured ports.ProductUpdate
	stub := &stubProductService{
		updateFn: func(_ context.Context, id string, fields ports.ProductUpdate) (*domain.Product, error) {
			if id != "prod-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			captured = fields
			return sampleProduct(), nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/products/prod-1", `{"price":599,"inStock":false}`)
	c.SetParamNames("id")
	c.SetParamValues("prod-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Price == nil || *captured.Price != 599 {
		t.Fatalf("price not forwarded: %+v", captured.Price)
	}
	if captured.InStock == nil || *captured.InStock {
		t.Fatalf("inStock not forwarded")
	}
	if captured.Name != nil || captured.Category != nil {
		t.Fatalf("absent fields should stay nil: %+v", captured)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	stub := &stubProductService{
		deleteFn: func(_ context.Context, id string) error {
			if id != "prod-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/products/prod-1", "")
	c.SetParamNames("id")
	c.SetParamValues("prod-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Product deleted successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestProductHandler_Categories(t *testing.T) {
	stub := &stubProductService{
		categoriesFn: func(_ context.Context) ([]string, error) {
			return []string{"decor", "furniture", "lighting"}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/products/meta/categories", "")

	if err := h.Categories(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 3 {
		t.Fatalf("unexpected data: %v", resp["data"])
	}
}

func TestProductHandler_Brands(t *testing.T) {
	stub := &stubProductService{
		brandsFn: func(_ context.Context) ([]string, error) {
			return []string{"ArtisanCraft", "WoodCraft"}, nil
		},
	}
	h := NewProductHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/products/meta/brands", "")

	if err := h.Brands(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("unexpected data: %v", resp["data"])
	}
}
