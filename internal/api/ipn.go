package api

import (
	"errors"
	"net/http"
	"strings"

	"checkout-api/internal/database"
	"checkout-api/internal/models"
	"checkout-api/internal/signals"
	"checkout-api/pkg/logging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PayPalIPNListener handles an Instant Payment Notification from PayPal.
// POST /api/paypal/ipn
//
// The route carries no session authentication: PayPal's servers call it, not
// a logged-in browser. The transaction is normally resolved by txn_id, but a
// refund notification references the original transaction via parent_txn_id
// instead. The inbound status string is stored verbatim. PayPal redelivers
// notifications at least once; re-applying the same status is a no-op in
// effect, and no deduplication is attempted.
func PayPalIPNListener(c *gin.Context) {
	transactionID := c.PostForm("txn_id")
	paymentStatus := c.PostForm("payment_status")

	if paymentStatus == "" {
		logging.Warnf("IPN without payment_status - txn_id: %s", transactionID)
		c.Status(http.StatusNotFound)
		return
	}

	if strings.EqualFold(paymentStatus, models.PayPalStatusRefunded) {
		transactionID = c.PostForm("parent_txn_id")
	}

	transaction, err := database.GetTransactionByTransactionID(transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logging.Warnf("IPN for unknown transaction - txn_id: %s, status: %s",
				transactionID, paymentStatus)
			c.Status(http.StatusNotFound)
			return
		}
		logging.Errorf("IPN lookup failed - txn_id: %s, error: %v", transactionID, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	transaction.Status = paymentStatus
	if err := database.SaveTransaction(transaction); err != nil {
		logging.Errorf("IPN status update failed - txn_id: %s, error: %v", transactionID, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	logging.Infof("IPN processed - transaction: %s, status: %s",
		transaction.TransactionID, paymentStatus)

	// Publish only after the status is committed
	if strings.EqualFold(paymentStatus, models.StatusCompleted) {
		signals.PaymentCompleted.Send(transaction)
	}
	signals.PaymentStatusUpdated.Send(transaction)

	c.Status(http.StatusOK)
}
