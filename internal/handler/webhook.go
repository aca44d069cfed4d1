package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/madistic/Edviron-2/internal/dto"
	"github.com/madistic/Edviron-2/internal/service"
)

type WebhookHandler struct {
	webhookService service.WebhookService
}

func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

// HandlePaymentWebhook always answers 200: a non-success status would make
// the gateway redeliver, and redelivery storms are worse than a callback we
// already recorded in the audit log as failed.
func (h *WebhookHandler) HandlePaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		body = nil
	}

	if err := h.webhookService.ProcessWebhook(ctx, body); err != nil {
		return c.JSON(http.StatusOK, &dto.WebhookAck{
			Status:  "error",
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, &dto.WebhookAck{
		Status:  "success",
		Message: "Webhook processed successfully",
	})
}
