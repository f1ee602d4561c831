package handler

import (
	"net/http"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	sellerService service.SellerService
	payoutService service.PayoutService
	orderService  service.OrderService
}

func NewAdminHandler(
	sellerService service.SellerService,
	payoutService service.PayoutService,
	orderService service.OrderService,
) *AdminHandler {
	return &AdminHandler{
		sellerService: sellerService,
		payoutService: payoutService,
		orderService:  orderService,
	}
}

func (h *AdminHandler) ListSellers(c echo.Context) error {
	ctx := c.Request().Context()

	sellers, err := h.sellerService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, sellers)
}

func (h *AdminHandler) VerifySeller(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifySellerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	err := h.sellerService.Verify(ctx, c.Param("id"), model.VerificationStatus(req.Status))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}

func (h *AdminHandler) ListPayouts(c echo.Context) error {
	ctx := c.Request().Context()

	payouts, err := h.payoutService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, payouts)
}

func (h *AdminHandler) ResolvePayout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PayoutResolveRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	payout, err := h.payoutService.Resolve(ctx, c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, payout)
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) ResolveReturn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ReturnResolveRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	err := h.orderService.ResolveReturn(ctx, c.Param("id"), model.ReturnStatus(req.Status))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}
