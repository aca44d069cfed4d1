package model

import "time"

// TransactionRow is the projection of the orders ⟕ order_statuses join.
// Status-side fields are pointers so an order with no status row yet still
// produces a row with those fields null.
type TransactionRow struct {
	CollectID         string `gorm:"column:collect_id"`
	SchoolID          string
	Gateway           string `gorm:"column:gateway"`
	TrusteeID         string
	StudentName       string
	StudentID         string
	StudentEmail      string
	CreatedAt         time.Time
	OrderAmount       *float64
	TransactionAmount *float64
	Status            *string
	PaymentTime       *time.Time
	PaymentMode       *string
	PaymentDetails    *string
	BankReference     *string
	PaymentMessage    *string
	ErrorMessage      *string
}
