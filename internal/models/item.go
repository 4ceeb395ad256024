package models

import (
	"github.com/shopspring/decimal"
)

// Item is a sellable unit. The price is copied onto the PurchasedItem at
// checkout time, so editing an item later never changes past transactions.
type Item struct {
	BaseModel

	Name        string `json:"name" gorm:"not null;size:255"`
	Description string `json:"description" gorm:"type:text"`

	// Optional stable identifier for external catalogs
	Identifier string `json:"identifier" gorm:"size:255;index"`

	Price decimal.Decimal `json:"price" gorm:"type:numeric(18,2)"`

	// ISO 4217 code; empty means the configured default currency applies
	Currency string `json:"currency" gorm:"size:3"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}
