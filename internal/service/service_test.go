package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/madistic/Edviron-2/internal/client"
	"github.com/madistic/Edviron-2/internal/model"
	"github.com/madistic/Edviron-2/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Order{},
		&model.OrderStatus{},
		&model.WebhookLog{},
		&model.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func seedOrderWithStatus(t *testing.T, db *gorm.DB, orderID, schoolID, status string, amount float64, createdAt time.Time) {
	t.Helper()
	ctx := context.Background()

	err := repository.NewOrderRepository(db).Create(ctx, &model.Order{
		OrderID:   orderID,
		SchoolID:  schoolID,
		TrusteeID: "trustee-1",
		StudentInfo: model.StudentInfo{
			Name:  "Student " + orderID,
			ID:    "S-" + orderID,
			Email: orderID + "@example.com",
		},
		GatewayName: "Cashfree",
		CreatedAt:   createdAt,
	})
	if err != nil {
		t.Fatalf("seed order %s: %v", orderID, err)
	}

	if status == "" {
		return
	}
	err = repository.NewOrderStatusRepository(db).Create(ctx, &model.OrderStatus{
		CollectID:   orderID,
		OrderAmount: amount,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	if err != nil {
		t.Fatalf("seed status %s: %v", orderID, err)
	}
}

// fakeGateway stands in for the Edviron API in intake tests.
type fakeGateway struct {
	resp         *client.CollectRequestResponse
	err          error
	calls        int
	lastAmount   string
	lastCallback string
}

func (f *fakeGateway) CreateCollectRequest(ctx context.Context, amount, callbackURL string) (*client.CollectRequestResponse, error) {
	f.calls++
	f.lastAmount = amount
	f.lastCallback = callbackURL
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeGateway) CheckStatus(ctx context.Context, collectRequestID string) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{"status": "SUCCESS"}, nil
}
