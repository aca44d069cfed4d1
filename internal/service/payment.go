package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/madistic/Edviron-2/internal/apperr"
	"github.com/madistic/Edviron-2/internal/client"
	"github.com/madistic/Edviron-2/internal/dto"
	"github.com/madistic/Edviron-2/internal/model"
	"github.com/madistic/Edviron-2/internal/repository"
)

const gatewayName = "Cashfree"

type PaymentService interface {
	CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	CheckPaymentStatus(ctx context.Context, collectRequestID string) (map[string]interface{}, error)
}

type paymentServiceImpl struct {
	gatewayClient   client.GatewayClient
	schoolID        string
	orderRepo       repository.OrderRepository
	orderStatusRepo repository.OrderStatusRepository
}

func NewPaymentService(
	gatewayClient client.GatewayClient,
	schoolID string,
	orderRepo repository.OrderRepository,
	orderStatusRepo repository.OrderStatusRepository,
) PaymentService {
	return &paymentServiceImpl{
		gatewayClient:   gatewayClient,
		schoolID:        schoolID,
		orderRepo:       orderRepo,
		orderStatusRepo: orderStatusRepo,
	}
}

// CreatePayment writes the Order, relays the collect request to the gateway,
// then writes the pending OrderStatus. The two writes are deliberately not
// one transaction: a gateway failure leaves the Order behind with no status
// row, and that orphan is the diagnostic trace of a half-finished intake.
func (s *paymentServiceImpl) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return nil, apperr.Validationf("amount must be a number, got %q", req.Amount)
	}
	if !amount.IsPositive() {
		return nil, apperr.Validationf("amount must be positive, got %s", amount)
	}

	order := &model.Order{
		OrderID:   uuid.NewString(),
		SchoolID:  s.schoolID,
		TrusteeID: req.TrusteeID,
		StudentInfo: model.StudentInfo{
			Name:  req.StudentInfo.Name,
			ID:    req.StudentInfo.ID,
			Email: req.StudentInfo.Email,
		},
		GatewayName: gatewayName,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}
	log.Println("order created with id:", order.OrderID)

	resp, err := s.gatewayClient.CreateCollectRequest(ctx, amount.String(), req.CallbackURL)
	if err != nil {
		// Order stays behind on purpose; see above.
		return nil, err
	}

	status := &model.OrderStatus{
		CollectID:         order.OrderID,
		OrderAmount:       amount.InexactFloat64(),
		TransactionAmount: 0, // updated via webhook
		Status:            "pending",
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	if err := s.orderStatusRepo.Create(ctx, status); err != nil {
		return nil, fmt.Errorf("store order status in db: %w", err)
	}

	collectRequestID := resp.CollectRequestID
	if collectRequestID == "" {
		collectRequestID = order.OrderID
	}

	return &dto.CreatePaymentResponse{
		CollectRequestID:  collectRequestID,
		CollectRequestURL: resp.CollectRequestURL,
		Sign:              resp.Sign,
		OrderID:           order.OrderID,
		Message:           "Payment request created successfully. Redirect to the provided URL to complete payment.",
	}, nil
}

// CheckPaymentStatus proxies the gateway's status endpoint and returns its
// payload untouched; the gateway stays the settlement authority.
func (s *paymentServiceImpl) CheckPaymentStatus(ctx context.Context, collectRequestID string) (map[string]interface{}, error) {
	if collectRequestID == "" {
		return nil, apperr.Validationf("collect_request_id is required")
	}

	result, err := s.gatewayClient.CheckStatus(ctx, collectRequestID)
	if err != nil {
		return nil, err
	}

	return result, nil
}
