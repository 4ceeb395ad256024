package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTransaction is one purchase attempt against PayPal.
//
// TransactionID holds the checkout session token issued by
// SetExpressCheckout; once DoExpressCheckoutPayment succeeds it is
// overwritten with the final PayPal transaction id. Rows are never deleted
// by this service.
type PaymentTransaction struct {
	BaseModel

	// UserID is empty for anonymous checkouts
	UserID string `json:"user_id" gorm:"size:100;index"`

	Date time.Time `json:"date"`

	TransactionID string `json:"transaction_id" gorm:"not null;size:100;uniqueIndex"`

	// Authoritative total, computed as the sum of line subtotals when the
	// checkout was initiated
	Value decimal.Decimal `json:"value" gorm:"type:numeric(18,2)"`

	Status string `json:"status" gorm:"not null;size:32;index"`

	// Tagged reference to an arbitrary domain entity (subscription, order,
	// ...). Resolved by the application layer, never dereferenced here.
	ContentType string `json:"content_type" gorm:"size:100"`
	ContentID   string `json:"content_id" gorm:"size:100"`

	PurchasedItems []PurchasedItem `json:"purchased_items,omitempty" gorm:"foreignKey:TransactionID"`
}

// TableName specifies the table name
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
