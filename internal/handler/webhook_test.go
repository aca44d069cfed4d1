package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/madistic/Edviron-2/internal/dto"
	"github.com/madistic/Edviron-2/internal/model"
	"github.com/madistic/Edviron-2/internal/repository"
	"github.com/madistic/Edviron-2/internal/service"
)

func setupWebhookHandler(t *testing.T) (*WebhookHandler, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Order{}, &model.OrderStatus{}, &model.WebhookLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := service.NewWebhookService(
		repository.NewOrderStatusRepository(db),
		repository.NewWebhookLogRepository(db),
	)
	return NewWebhookHandler(svc), db
}

func postWebhook(t *testing.T, h *WebhookHandler, body string) (*httptest.ResponseRecorder, dto.WebhookAck) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.HandlePaymentWebhook(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var ack dto.WebhookAck
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	return rec, ack
}

func TestHandlePaymentWebhookAlwaysAcksWith200(t *testing.T) {
	h, db := setupWebhookHandler(t)

	err := db.Create(&model.OrderStatus{
		CollectID:   "ord-1",
		OrderAmount: 1000,
		Status:      "pending",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}).Error
	if err != nil {
		t.Fatalf("seed status: %v", err)
	}

	tests := []struct {
		name       string
		body       string
		wantStatus string
	}{
		{
			name:       "known order",
			body:       `{"status":200,"order_info":{"order_id":"ord-1/txn1","transaction_amount":1000,"status":"success"}}`,
			wantStatus: "success",
		},
		{
			name:       "unknown order",
			body:       `{"status":200,"order_info":{"order_id":"ghost/txn1","status":"success"}}`,
			wantStatus: "error",
		},
		{
			name:       "garbage body",
			body:       "not json at all",
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ack := postWebhook(t, h, tt.body)

			// transport-level success no matter what, or the gateway retries
			if rec.Code != http.StatusOK {
				t.Errorf("HTTP status = %d, want 200", rec.Code)
			}
			if ack.Status != tt.wantStatus {
				t.Errorf("ack status = %q, want %q", ack.Status, tt.wantStatus)
			}
			if ack.Message == "" {
				t.Error("ack message is empty")
			}
		})
	}

	// three deliveries, three audit rows
	var logs int64
	if err := db.Model(&model.WebhookLog{}).Count(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if logs != 3 {
		t.Errorf("webhook logs = %d, want one per delivery", logs)
	}
}
