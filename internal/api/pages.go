package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The logical checkout pages. Rendering belongs to the surrounding
// application; these endpoints exist so the redirect targets of the checkout
// flow resolve to something meaningful for API clients.

// ConfirmCheckoutPage is where PayPal sends the user back after approval.
// The client reads token and PayerID from the query string and POSTs them to
// the confirm endpoint once the user reviewed the payment.
// GET /api/checkout/confirm
func ConfirmCheckoutPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":     "confirm",
		"token":    c.Query("token"),
		"payer_id": c.Query("PayerID"),
	})
}

// SuccessPage is shown after a successful payment
// GET /api/checkout/success
func SuccessPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "success"})
}

// ErrorPage is shown when a payment failed
// GET /api/checkout/error
func ErrorPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "error"})
}

// CanceledPage is shown when the user canceled on the PayPal page
// GET /api/checkout/canceled
func CanceledPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "canceled"})
}
