package model

import (
	"time"

	"gorm.io/datatypes"
)

type StudentInfo struct {
	Name  string `gorm:"column:student_name;size:128;not null" json:"name"`
	ID    string `gorm:"column:student_id;size:64;not null" json:"id"`
	Email string `gorm:"column:student_email;size:128;not null" json:"email"`
}

// Order is immutable after creation. One row per fee-collection attempt.
type Order struct {
	OrderID     string      `gorm:"primaryKey;size:64;not null"` // collect_id seen by the rest of the system
	SchoolID    string      `gorm:"size:64;index;not null"`
	TrusteeID   string      `gorm:"size:64;not null"`
	StudentInfo StudentInfo `gorm:"embedded"`
	GatewayName string      `gorm:"size:32;not null"`
	CreatedAt   time.Time   `gorm:"index:idx_orders_created_at,sort:desc"`
}

// OrderStatus holds the latest known settlement state for one Order.
// The primary key on collect_id keeps it at most one row per order;
// reconciliation overwrites the row instead of appending history.
type OrderStatus struct {
	CollectID         string  `gorm:"primaryKey;size:64;not null"` // FK → orders.order_id
	OrderAmount       float64 `gorm:"not null"`
	TransactionAmount float64 `gorm:"not null"` // stays 0 while status is pending
	PaymentMode       string  `gorm:"size:32"`
	PaymentDetails    string  `gorm:"size:255"`
	BankReference     string  `gorm:"size:64"`
	PaymentMessage    string  `gorm:"size:255"`
	Status            string  `gorm:"size:32;index;not null"` // pending, success, failed, or gateway-defined
	ErrorMessage      string  `gorm:"size:512"`
	PaymentTime       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WebhookLog is the append-only audit trail: one row per inbound callback,
// written whether or not reconciliation succeeded. Never updated or deleted.
type WebhookLog struct {
	ID         uint           `gorm:"primaryKey"`
	ReceivedAt time.Time      `gorm:"index;not null"`
	StatusCode int            `gorm:"index;not null"` // gateway-reported outer status
	Payload    datatypes.JSON `gorm:"not null"`       // raw callback body, preserved verbatim
	Error      *string        `gorm:"size:512"`       // nil when reconciliation succeeded
	CreatedAt  time.Time
}

type User struct {
	ID        string `gorm:"primaryKey;size:64;not null"`
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Password  string `gorm:"size:128;not null"` // bcrypt hash
	Role      string `gorm:"size:32;not null"`
	CreatedAt time.Time
}
