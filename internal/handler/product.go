package handler

import (
	"net/http"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/middleware"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.List(ctx, c.QueryParam("category"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.Get(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	product, err := h.productService.Create(ctx, middleware.UserID(c), middleware.IsAdmin(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	product, err := h.productService.Update(ctx, middleware.UserID(c), middleware.IsAdmin(c), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.productService.Delete(ctx, middleware.UserID(c), middleware.IsAdmin(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) UpdateStock(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	err := h.productService.UpdateStock(ctx, middleware.UserID(c), middleware.IsAdmin(c), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (h *ProductHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	err := h.productService.AddReview(ctx, middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "created"})
}

func (h *ProductHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.productService.ListReviews(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ProductHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.productService.ListCategories(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, categories)
}
