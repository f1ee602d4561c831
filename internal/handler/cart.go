package handler

import (
	"net/http"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/middleware"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.cartService.List(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CartAddRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := h.cartService.Add(ctx, middleware.UserID(c), &req); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "added"})
}

func (h *CartHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CartUpdateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	err := h.cartService.UpdateQuantity(ctx, middleware.UserID(c), c.Param("id"), req.Quantity)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CartHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.Remove(ctx, middleware.UserID(c), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ListWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.cartService.ListWishlist(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.WishlistAddRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := h.cartService.AddToWishlist(ctx, middleware.UserID(c), req.ProductID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "added"})
}

func (h *CartHandler) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.cartService.RemoveFromWishlist(ctx, middleware.UserID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
