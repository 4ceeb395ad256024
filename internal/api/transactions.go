package api

import (
	"net/http"
	"time"

	"checkout-api/internal/database"
	"checkout-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// TransactionHistoryLine represents one purchased line item
type TransactionHistoryLine struct {
	ItemID     *uint  `json:"item_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	Subtotal   string `json:"subtotal"`
}

// TransactionHistoryItem represents a transaction history item
type TransactionHistoryItem struct {
	ID            uint                     `json:"id"`
	TransactionID string                   `json:"transaction_id"`
	Status        string                   `json:"status"`
	Value         string                   `json:"value"`
	Date          time.Time                `json:"date"`
	ContentType   string                   `json:"content_type,omitempty"`
	ContentID     string                   `json:"content_id,omitempty"`
	Items         []TransactionHistoryLine `json:"items"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// TransactionHistoryResponse represents transaction history response
type TransactionHistoryResponse struct {
	Success      bool                     `json:"success"`
	Message      string                   `json:"message,omitempty"`
	Transactions []TransactionHistoryItem `json:"transactions,omitempty"`
}

// GetTransactionHistory gets the calling user's payment transactions
// GET /api/transactions
func GetTransactionHistory(c *gin.Context) {
	userID := c.GetString("user_id")

	transactions, err := database.GetUserTransactions(userID)
	if err != nil {
		logging.Errorf("Failed to get transaction history - user: %s, error: %v", userID, err)
		c.JSON(http.StatusInternalServerError, TransactionHistoryResponse{
			Success: false,
			Message: "Failed to get transaction history",
		})
		return
	}

	historyItems := make([]TransactionHistoryItem, len(transactions))
	for i, transaction := range transactions {
		lines := make([]TransactionHistoryLine, len(transaction.PurchasedItems))
		for j := range transaction.PurchasedItems {
			purchased := &transaction.PurchasedItems[j]
			line := TransactionHistoryLine{
				ItemID:     purchased.ItemID,
				Identifier: purchased.Identifier,
				Price:      purchased.EffectivePrice().StringFixed(2),
				Quantity:   purchased.Quantity,
				Subtotal:   purchased.Subtotal().StringFixed(2),
			}
			if purchased.Item != nil {
				line.Name = purchased.Item.Name
			}
			lines[j] = line
		}

		historyItems[i] = TransactionHistoryItem{
			ID:            transaction.ID,
			TransactionID: transaction.TransactionID,
			Status:        transaction.Status,
			Value:         transaction.Value.StringFixed(2),
			Date:          transaction.Date,
			ContentType:   transaction.ContentType,
			ContentID:     transaction.ContentID,
			Items:         lines,
			CreatedAt:     transaction.CreatedAt,
			UpdatedAt:     transaction.UpdatedAt,
		}
	}

	c.JSON(http.StatusOK, TransactionHistoryResponse{
		Success:      true,
		Transactions: historyItems,
	})
}
