package database

import (
	"checkout-api/internal/models"
)

// CreateTransaction creates a payment transaction
func CreateTransaction(transaction *models.PaymentTransaction) error {
	return DB.Create(transaction).Error
}

// SaveTransaction persists changes to an existing payment transaction
func SaveTransaction(transaction *models.PaymentTransaction) error {
	return DB.Save(transaction).Error
}

// GetTransactionByUserAndToken gets a transaction by owning user and checkout token
func GetTransactionByUserAndToken(userID, token string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := DB.Where("user_id = ? AND transaction_id = ?", userID, token).First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// GetTransactionByTransactionID gets a transaction by its PayPal transaction id
func GetTransactionByTransactionID(transactionID string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := DB.Where("transaction_id = ?", transactionID).First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// GetUserTransactions gets all transactions of a user, newest first, with line items
func GetUserTransactions(userID string) ([]models.PaymentTransaction, error) {
	var transactions []models.PaymentTransaction
	err := DB.Where("user_id = ?", userID).
		Preload("PurchasedItems").
		Preload("PurchasedItems.Item").
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

// CreatePurchasedItem creates a purchased line item
func CreatePurchasedItem(item *models.PurchasedItem) error {
	return DB.Create(item).Error
}

// GetPurchasedItems gets the line items of a transaction with their catalog items
func GetPurchasedItems(transactionID uint) ([]models.PurchasedItem, error) {
	var items []models.PurchasedItem
	err := DB.Where("transaction_id = ?", transactionID).
		Preload("Item").
		Find(&items).Error
	return items, err
}

// CreateTransactionError appends a payment error audit record
func CreateTransactionError(transactionError *models.PaymentTransactionError) error {
	return DB.Create(transactionError).Error
}

// GetItemByID gets a sellable item by primary key
func GetItemByID(id uint) (*models.Item, error) {
	var item models.Item
	err := DB.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItems gets all sellable items
func GetItems() ([]models.Item, error) {
	var items []models.Item
	err := DB.Order("id").Find(&items).Error
	return items, err
}
