package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/madistic/Edviron-2/internal/model"
)

type TransactionFilter struct {
	Status   string
	SchoolID string
	Gateway  string
}

type TransactionPage struct {
	Offset int
	Limit  int
	Sort   string // key into sortColumns, caller-validated
	Desc   bool
}

// sortColumns whitelists the sortable keys; anything else never reaches SQL.
var sortColumns = map[string]string{
	"createdAt":          "orders.created_at",
	"payment_time":       "order_statuses.payment_time",
	"status":             "order_statuses.status",
	"transaction_amount": "order_statuses.transaction_amount",
}

func IsSortable(key string) bool {
	_, ok := sortColumns[key]
	return ok
}

const transactionProjection = `
	orders.order_id AS collect_id,
	orders.school_id AS school_id,
	orders.gateway_name AS gateway,
	orders.trustee_id AS trustee_id,
	orders.student_name AS student_name,
	orders.student_id AS student_id,
	orders.student_email AS student_email,
	orders.created_at AS created_at,
	order_statuses.order_amount AS order_amount,
	order_statuses.transaction_amount AS transaction_amount,
	order_statuses.status AS status,
	order_statuses.payment_time AS payment_time,
	order_statuses.payment_mode AS payment_mode,
	order_statuses.payment_details AS payment_details,
	order_statuses.bank_reference AS bank_reference,
	order_statuses.payment_message AS payment_message,
	order_statuses.error_message AS error_message`

// TransactionRepository serves the joined order+status read views. Left-outer
// join: an order whose gateway call never completed still appears, with all
// status-side fields null.
type TransactionRepository interface {
	List(ctx context.Context, filter TransactionFilter, page TransactionPage) ([]*model.TransactionRow, int64, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.TransactionRow, error)
}

type transactionRepoImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepoImpl{db: db}
}

func (r *transactionRepoImpl) joined(ctx context.Context, filter TransactionFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Table("orders").
		Joins("LEFT JOIN order_statuses ON order_statuses.collect_id = orders.order_id")

	if filter.Status != "" {
		q = q.Where("order_statuses.status = ?", filter.Status)
	}
	if filter.SchoolID != "" {
		q = q.Where("orders.school_id = ?", filter.SchoolID)
	}
	if filter.Gateway != "" {
		q = q.Where("orders.gateway_name = ?", filter.Gateway)
	}

	return q
}

func (r *transactionRepoImpl) List(ctx context.Context, filter TransactionFilter, page TransactionPage) ([]*model.TransactionRow, int64, error) {
	// Count over the full filtered set, independent of the page slice.
	var total int64
	if err := r.joined(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[page.Sort]
	if !ok {
		column = sortColumns["createdAt"]
	}
	direction := " ASC"
	if page.Desc {
		direction = " DESC"
	}

	var rows []*model.TransactionRow
	err := r.joined(ctx, filter).
		Select(transactionProjection).
		Order(column + direction).
		Offset(page.Offset).
		Limit(page.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *transactionRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.TransactionRow, error) {
	var rows []*model.TransactionRow
	err := r.db.WithContext(ctx).Table("orders").
		Joins("LEFT JOIN order_statuses ON order_statuses.collect_id = orders.order_id").
		Where("orders.order_id = ?", orderID).
		Select(transactionProjection).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}
