package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devilal/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products with filtering, search, sorting and pagination.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search     query  string  false  "Substring match on name or description"
// @Param        category   query  string  false  "Category filter ('all' = no filter)"
// @Param        brand      query  string  false  "Brand filter ('all' = no filter)"
// @Param        minPrice   query  number  false  "Minimum price"
// @Param        maxPrice   query  number  false  "Maximum price"
// @Param        featured   query  bool    false  "Featured filter"
// @Param        inStock    query  bool    false  "In-stock filter"
// @Param        sortBy     query  string  false  "Sort key: name, price or createdAt"
// @Param        sortOrder  query  string  false  "asc or desc"
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        limit      query  int     false  "Items per page (default 12)"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	input, err := parseListQuery(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListProducts(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return respondPage(c, http.StatusOK, toProductResponses(result.Items), result.Pagination)
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, toProductResponse(product))
}

// Categories handles GET /products/meta/categories.
//
// @Summary      List catalog categories
// @Tags         products
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /products/meta/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, categories)
}

// Brands handles GET /products/meta/brands.
//
// @Summary      List catalog brands
// @Tags         products
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /products/meta/brands [get]
func (h *ProductHandler) Brands(c echo.Context) error {
	brands, err := h.service.Brands(c.Request().Context())
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, brands)
}

// Create handles POST /products (admin only).
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product fields"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		Brand:         req.Brand,
		Image:         req.Image,
		InStock:       req.InStock,
		Featured:      req.Featured,
		Rating:        req.Rating,
		Reviews:       req.Reviews,
	})
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusCreated, "Product created successfully", toProductResponse(product))
}

// Update handles PUT /products/:id (admin only). Only supplied fields are
// changed.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), c.Param("id"), ports.ProductUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		Brand:         req.Brand,
		Image:         req.Image,
		InStock:       req.InStock,
		Featured:      req.Featured,
		Rating:        req.Rating,
		Reviews:       req.Reviews,
	})
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "Product updated successfully", toProductResponse(product))
}

// Delete handles DELETE /products/:id (admin only).
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "Product deleted successfully", nil)
}

// parseListQuery converts the raw query string into a ListProductsInput,
// rejecting malformed numeric or boolean values with 400.
func parseListQuery(c echo.Context) (ports.ListProductsInput, error) {
	input := ports.ListProductsInput{
		Search:    c.QueryParam("search"),
		Category:  c.QueryParam("category"),
		Brand:     c.QueryParam("brand"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	var err error
	if input.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return input, err
	}
	if input.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return input, err
	}
	if input.Featured, err = queryBool(c, "featured"); err != nil {
		return input, err
	}
	if input.InStock, err = queryBool(c, "inStock"); err != nil {
		return input, err
	}
	if input.Page, err = queryInt(c, "page"); err != nil {
		return input, err
	}
	if input.Limit, err = queryInt(c, "limit"); err != nil {
		return input, err
	}
	return input, nil
}

func queryFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a number", name))
	}
	return &v, nil
}

func queryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be true or false", name))
	}
	return &v, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name))
	}
	return v, nil
}
