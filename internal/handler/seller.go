package handler

import (
	"net/http"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/middleware"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

type SellerHandler struct {
	sellerService  service.SellerService
	payoutService  service.PayoutService
	productService service.ProductService
}

func NewSellerHandler(
	sellerService service.SellerService,
	payoutService service.PayoutService,
	productService service.ProductService,
) *SellerHandler {
	return &SellerHandler{
		sellerService:  sellerService,
		payoutService:  payoutService,
		productService: productService,
	}
}

func (h *SellerHandler) Apply(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SellerApplyRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	seller, err := h.sellerService.Apply(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"id":     seller.ID,
		"status": string(seller.VerificationStatus),
	})
}

func (h *SellerHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.sellerService.Dashboard(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, dashboard)
}

func (h *SellerHandler) ListPayouts(c echo.Context) error {
	ctx := c.Request().Context()

	payouts, err := h.payoutService.ListForSeller(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, payouts)
}

func (h *SellerHandler) RequestPayout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PayoutRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	payout, err := h.payoutService.Request(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, payout)
}

func (h *SellerHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.ListBySeller(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *SellerHandler) ListLowStock(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.ListLowStock(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}
