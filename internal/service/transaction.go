package service

import (
	"context"
	"fmt"
	"math"

	"github.com/madistic/Edviron-2/internal/apperr"
	"github.com/madistic/Edviron-2/internal/dto"
	"github.com/madistic/Edviron-2/internal/model"
	"github.com/madistic/Edviron-2/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type TransactionService interface {
	GetTransactions(ctx context.Context, query *dto.TransactionQuery) (*dto.TransactionListResponse, error)
	GetSchoolTransactions(ctx context.Context, schoolID string, query *dto.TransactionQuery) (*dto.TransactionListResponse, error)
	// GetTransactionStatus returns nil for unknown and malformed ids alike;
	// the transport layer decides how to present that.
	GetTransactionStatus(ctx context.Context, orderID string) (*dto.TransactionDetail, error)
}

type transactionServiceImpl struct {
	transactionRepo repository.TransactionRepository
}

func NewTransactionService(transactionRepo repository.TransactionRepository) TransactionService {
	return &transactionServiceImpl{transactionRepo: transactionRepo}
}

func (s *transactionServiceImpl) GetTransactions(ctx context.Context, query *dto.TransactionQuery) (*dto.TransactionListResponse, error) {
	page, limit, sort, desc, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	filter := repository.TransactionFilter{
		Status:   query.Status,
		SchoolID: query.SchoolID,
		Gateway:  query.Gateway,
	}

	rows, total, err := s.transactionRepo.List(ctx, filter, repository.TransactionPage{
		Offset: (page - 1) * limit,
		Limit:  limit,
		Sort:   sort,
		Desc:   desc,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	data := make([]*dto.TransactionRow, len(rows))
	for i, row := range rows {
		data[i] = toTransactionRow(row)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &dto.TransactionListResponse{
		Data: data,
		Pagination: dto.Pagination{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}, nil
}

// GetSchoolTransactions is the list view scoped by path: the school id from
// the route wins over any school_id filter the caller also sent.
func (s *transactionServiceImpl) GetSchoolTransactions(ctx context.Context, schoolID string, query *dto.TransactionQuery) (*dto.TransactionListResponse, error) {
	if schoolID == "" {
		return nil, apperr.Validationf("school id is required")
	}

	scoped := *query
	scoped.SchoolID = schoolID
	return s.GetTransactions(ctx, &scoped)
}

func (s *transactionServiceImpl) GetTransactionStatus(ctx context.Context, orderID string) (*dto.TransactionDetail, error) {
	row, err := s.transactionRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if row == nil {
		return nil, nil
	}

	return &dto.TransactionDetail{
		TransactionRow: *toTransactionRow(row),
		PaymentDetails: row.PaymentDetails,
		BankReference:  row.BankReference,
		PaymentMessage: row.PaymentMessage,
		ErrorMessage:   row.ErrorMessage,
	}, nil
}

func normalizeQuery(query *dto.TransactionQuery) (page, limit int, sort string, desc bool, err error) {
	page = query.Page
	if page == 0 {
		page = defaultPage
	}
	if page < 1 {
		return 0, 0, "", false, apperr.Validationf("page must be >= 1, got %d", page)
	}

	limit = query.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 || limit > maxLimit {
		return 0, 0, "", false, apperr.Validationf("limit must be between 1 and %d, got %d", maxLimit, limit)
	}

	sort = query.Sort
	if sort == "" {
		sort = "createdAt"
	}
	if !repository.IsSortable(sort) {
		return 0, 0, "", false, apperr.Validationf("unsupported sort key: %s", sort)
	}

	switch query.Order {
	case "", "desc":
		desc = true
	case "asc":
		desc = false
	default:
		return 0, 0, "", false, apperr.Validationf("order must be asc or desc, got %s", query.Order)
	}

	return page, limit, sort, desc, nil
}

func toTransactionRow(row *model.TransactionRow) *dto.TransactionRow {
	return &dto.TransactionRow{
		CollectID:         row.CollectID,
		SchoolID:          row.SchoolID,
		Gateway:           row.Gateway,
		OrderAmount:       row.OrderAmount,
		TransactionAmount: row.TransactionAmount,
		Status:            row.Status,
		CustomOrderID:     row.CollectID,
		PaymentTime:       row.PaymentTime,
		PaymentMode:       row.PaymentMode,
		StudentInfo: dto.StudentInfo{
			Name:  row.StudentName,
			ID:    row.StudentID,
			Email: row.StudentEmail,
		},
		TrusteeID: row.TrusteeID,
		CreatedAt: row.CreatedAt,
	}
}
