package dto

import "time"

type StudentInfo struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Email string `json:"email"`
}

type CreatePaymentRequest struct {
	Amount      string      `json:"amount"`
	CallbackURL string      `json:"callback_url"`
	StudentInfo StudentInfo `json:"student_info"`
	TrusteeID   string      `json:"trustee_id"`
}

// Collect_request_url keeps the gateway's exact field casing; the dashboard
// consuming this response matches on it verbatim.
type CreatePaymentResponse struct {
	CollectRequestID  string `json:"collect_request_id"`
	CollectRequestURL string `json:"Collect_request_url"`
	Sign              string `json:"sign"`
	OrderID           string `json:"order_id"`
	Message           string `json:"message"`
}

type WebhookOrderInfo struct {
	OrderID           string  `json:"order_id"` // "<collect_id>/<transaction_id>"
	OrderAmount       float64 `json:"order_amount"`
	TransactionAmount float64 `json:"transaction_amount"`
	Gateway           string  `json:"gateway"`
	BankReference     string  `json:"bank_reference"`
	Status            string  `json:"status"`
	PaymentMode       string  `json:"payment_mode"`
	PaymentDetails    string  `json:"payment_details"`
	PaymentMessage    string  `json:"Payment_message"`
	PaymentTime       string  `json:"payment_time"`
	ErrorMessage      string  `json:"error_message"`
}

type PaymentWebhook struct {
	Status    int              `json:"status"`
	OrderInfo WebhookOrderInfo `json:"order_info"`
}

// WebhookAck is always delivered with HTTP 200 so the gateway never retries;
// Status carries the real outcome for observability.
type WebhookAck struct {
	Status  string `json:"status"` // "success" or "error"
	Message string `json:"message"`
}

type TransactionQuery struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Sort     string `query:"sort"`
	Order    string `query:"order"`
	Status   string `query:"status"`
	SchoolID string `query:"school_id"`
	Gateway  string `query:"gateway"`
}

type TransactionRow struct {
	CollectID         string      `json:"collect_id"`
	SchoolID          string      `json:"school_id"`
	Gateway           string      `json:"gateway"`
	OrderAmount       *float64    `json:"order_amount"`
	TransactionAmount *float64    `json:"transaction_amount"`
	Status            *string     `json:"status"`
	CustomOrderID     string      `json:"custom_order_id"`
	PaymentTime       *time.Time  `json:"payment_time"`
	PaymentMode       *string     `json:"payment_mode"`
	StudentInfo       StudentInfo `json:"student_info"`
	TrusteeID         string      `json:"trustee_id"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// TransactionDetail is the single-record view: the list projection plus the
// fields the dashboard only shows on the status page.
type TransactionDetail struct {
	TransactionRow
	PaymentDetails *string `json:"payment_details"`
	BankReference  *string `json:"bank_reference"`
	PaymentMessage *string `json:"payment_message"`
	ErrorMessage   *string `json:"error_message"`
}

type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type TransactionListResponse struct {
	Data       []*TransactionRow `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        UserInfo `json:"user"`
}
