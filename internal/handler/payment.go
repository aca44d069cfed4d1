package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/madistic/Edviron-2/internal/apperr"
	"github.com/madistic/Edviron-2/internal/dto"
	"github.com/madistic/Edviron-2/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.paymentService.CreatePayment(ctx, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) CheckPaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	collectRequestID := c.Param("collectRequestID")

	result, err := h.paymentService.CheckPaymentStatus(ctx, collectRequestID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// mapServiceError translates the typed service errors into HTTP statuses.
// Gateway failures answer 400 with the gateway's message so the caller can
// show it; anything untyped stays a 500.
func mapServiceError(err error) error {
	var validationErr *apperr.ValidationError
	if errors.As(err, &validationErr) {
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Message)
	}

	var notFoundErr *apperr.NotFoundError
	if errors.As(err, &notFoundErr) {
		return echo.NewHTTPError(http.StatusNotFound, notFoundErr.Error())
	}

	var gatewayErr *apperr.GatewayError
	if errors.As(err, &gatewayErr) {
		return echo.NewHTTPError(http.StatusBadRequest, gatewayErr.Error())
	}

	return err
}
