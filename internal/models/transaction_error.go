package models

// PaymentTransactionError is an append-only audit record of a failed PayPal
// interaction. TransactionID is nullable because some errors occur before a
// transaction exists (e.g. a failed SetExpressCheckout call).
type PaymentTransactionError struct {
	BaseModel

	UserID string `json:"user_id" gorm:"size:100;index"`

	// Raw error or response payload from PayPal
	Response string `json:"response" gorm:"type:text"`

	// API endpoint the failing call went to
	APIURL string `json:"api_url" gorm:"size:500"`

	// Exact form-encoded payload that was sent, kept for diagnosis
	Request string `json:"request" gorm:"type:text"`

	TransactionID *uint               `json:"transaction_id" gorm:"index"`
	Transaction   *PaymentTransaction `json:"-" gorm:"foreignKey:TransactionID"`
}

// TableName specifies the table name
func (PaymentTransactionError) TableName() string {
	return "payment_transaction_errors"
}
