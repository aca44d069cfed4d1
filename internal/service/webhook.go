package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/madistic/Edviron-2/internal/apperr"
	"github.com/madistic/Edviron-2/internal/dto"
	"github.com/madistic/Edviron-2/internal/model"
	"github.com/madistic/Edviron-2/internal/repository"
)

type WebhookService interface {
	ProcessWebhook(ctx context.Context, raw []byte) error
}

type webhookServiceImpl struct {
	orderStatusRepo repository.OrderStatusRepository
	webhookLogRepo  repository.WebhookLogRepository
}

func NewWebhookService(
	orderStatusRepo repository.OrderStatusRepository,
	webhookLogRepo repository.WebhookLogRepository,
) WebhookService {
	return &webhookServiceImpl{
		orderStatusRepo: orderStatusRepo,
		webhookLogRepo:  webhookLogRepo,
	}
}

// ProcessWebhook reconciles one gateway callback into its OrderStatus and
// appends a WebhookLog row no matter how reconciliation went. The returned
// error reports the reconciliation outcome; callers must still acknowledge
// the gateway with a success response to suppress redelivery.
func (s *webhookServiceImpl) ProcessWebhook(ctx context.Context, raw []byte) error {
	var payload dto.PaymentWebhook
	procErr := json.Unmarshal(raw, &payload)
	if procErr != nil {
		procErr = apperr.Reconciliationf("malformed webhook payload: %v", procErr)
	} else {
		procErr = s.reconcile(ctx, &payload)
	}

	entry := &model.WebhookLog{
		ReceivedAt: time.Now().UTC(),
		StatusCode: payload.Status,
		Payload:    auditPayload(raw),
	}
	if procErr != nil {
		msg := procErr.Error()
		entry.Error = &msg
	}
	if err := s.webhookLogRepo.Create(ctx, entry); err != nil {
		// Losing the audit row is worse than losing the update, but at this
		// point the update (if any) already landed; surface both.
		log.Println("failed to log webhook:", err)
		if procErr == nil {
			procErr = fmt.Errorf("log webhook: %w", err)
		}
	}

	return procErr
}

func (s *webhookServiceImpl) reconcile(ctx context.Context, payload *dto.PaymentWebhook) error {
	info := payload.OrderInfo

	// order_id arrives as "<collect_id>/<transaction_id>"; the part before
	// the first slash correlates the callback to an OrderStatus. A malformed
	// key simply fails the lookup below, same as an unknown one.
	collectID := strings.SplitN(info.OrderID, "/", 2)[0]

	_, err := s.orderStatusRepo.FindByCollectID(ctx, collectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Reconciliationf("order status not found for collect_id: %s", collectID)
		}
		return fmt.Errorf("find order status: %w", err)
	}

	// Full overwrite: the gateway owns the latest truth, so absent optional
	// fields clear whatever an earlier delivery wrote. Last write wins for
	// interleaved deliveries of the same collect_id.
	update := &model.OrderStatus{
		TransactionAmount: info.TransactionAmount,
		PaymentMode:       info.PaymentMode,
		PaymentDetails:    info.PaymentDetails,
		BankReference:     info.BankReference,
		PaymentMessage:    info.PaymentMessage,
		Status:            info.Status,
		ErrorMessage:      info.ErrorMessage,
		PaymentTime:       parsePaymentTime(info.PaymentTime),
	}

	if err := s.orderStatusRepo.UpdateByCollectID(ctx, collectID, update); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	log.Printf("order status updated for collect_id %s with status %s", collectID, info.Status)
	return nil
}

func parsePaymentTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// auditPayload keeps the raw body storable in the JSON payload column even
// when the gateway sent something that is not JSON at all.
func auditPayload(raw []byte) datatypes.JSON {
	if json.Valid(raw) {
		return datatypes.JSON(raw)
	}
	quoted, err := json.Marshal(string(raw))
	if err != nil {
		return datatypes.JSON(`null`)
	}
	return datatypes.JSON(quoted)
}
