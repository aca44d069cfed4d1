package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/madistic/Edviron-2/internal/apperr"
	"github.com/madistic/Edviron-2/internal/dto"
	"github.com/madistic/Edviron-2/internal/service"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	ctx := c.Request().Context()

	var query dto.TransactionQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.transactionService.GetTransactions(ctx, &query)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *TransactionHandler) GetSchoolTransactions(c echo.Context) error {
	ctx := c.Request().Context()

	schoolID := c.Param("schoolId")

	var query dto.TransactionQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.transactionService.GetSchoolTransactions(ctx, schoolID, &query)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *TransactionHandler) GetTransactionStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.Param("customOrderId")

	result, err := h.transactionService.GetTransactionStatus(ctx, orderID)
	if err != nil {
		return mapServiceError(err)
	}
	if result == nil {
		return mapServiceError(&apperr.NotFoundError{Resource: "transaction", ID: orderID})
	}

	return c.JSON(http.StatusOK, result)
}
