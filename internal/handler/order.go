package handler

import (
	"net/http"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/middleware"
	"marketplace-api/internal/model"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	order, err := h.orderService.Checkout(ctx, middleware.UserID(c), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Get(ctx, middleware.UserID(c), middleware.IsAdmin(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	items, err := h.orderService.GetItems(ctx, order.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order": order,
		"items": items,
	})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	order, err := h.orderService.UpdateStatus(
		ctx,
		middleware.UserID(c),
		middleware.IsAdmin(c),
		c.Param("id"),
		model.OrderStatus(req.Status),
	)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(order.Status)})
}

func (h *OrderHandler) RequestReturn(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	err := h.orderService.RequestReturn(ctx, middleware.UserID(c), c.Param("id"), req.Reason)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(model.ReturnRequested)})
}
