package models

import (
	"github.com/shopspring/decimal"
)

// PurchasedItem is one cart line captured at checkout time. The item
// reference is nullable: catalog entries may be deleted later, and ad hoc
// purchases never have one in the first place.
type PurchasedItem struct {
	BaseModel

	UserID string `json:"user_id" gorm:"size:100;index"`

	TransactionID uint                `json:"transaction_id" gorm:"not null;index"`
	Transaction   *PaymentTransaction `json:"-" gorm:"foreignKey:TransactionID"`

	ItemID *uint `json:"item_id" gorm:"index"`
	Item   *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`

	// Unit price captured when the purchase was made
	Price decimal.Decimal `json:"price" gorm:"type:numeric(18,2)"`

	Quantity int `json:"quantity" gorm:"not null"`

	Identifier string `json:"identifier" gorm:"size:255"`

	ContentType string `json:"content_type" gorm:"size:100"`
	ContentID   string `json:"content_id" gorm:"size:100"`
}

// TableName specifies the table name
func (PurchasedItem) TableName() string {
	return "purchased_items"
}

// EffectivePrice returns the captured unit price, falling back to the live
// item price when no price was stored at purchase time.
func (p *PurchasedItem) EffectivePrice() decimal.Decimal {
	if p.Price.IsZero() && p.Item != nil {
		return p.Item.Price
	}
	return p.Price
}

// Subtotal returns effective price times quantity.
func (p *PurchasedItem) Subtotal() decimal.Decimal {
	return p.EffectivePrice().Mul(decimal.NewFromInt(int64(p.Quantity)))
}
