package handler

import (
	"kzstore-backoffice/internal/dto"
	"kzstore-backoffice/internal/service"
	"net/http"

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

// TrackCart records or refreshes the caller's open cart so the recovery job
// can pick it up later.
func (h *CartHandler) TrackCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.TrackCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cart, err := h.cartService.Track(ctx, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"cart_id": cart.ID,
		"status":  cart.Status,
	})
}

// MarkRecovered flags the caller's open carts as recovered once an order
// exists for the same email.
func (h *CartHandler) MarkRecovered(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.MarkRecoveredRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.cartService.MarkRecovered(ctx, req.UserEmail, req.OrderID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
