package api

import (
	"errors"
	"net/http"

	"checkout-api/internal/database"
	"checkout-api/internal/services"
	"checkout-api/pkg/logging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CheckoutLineRequest represents one cart line of a checkout request
type CheckoutLineRequest struct {
	ItemID      uint   `json:"item_id" binding:"required"`
	Quantity    int    `json:"quantity"`
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
}

// SetCheckoutRequest represents a checkout initiation request
type SetCheckoutRequest struct {
	Items       []CheckoutLineRequest `json:"items" binding:"required"`
	ContentType string                `json:"content_type"`
	ContentID   string                `json:"content_id"`

	// NoRedirect makes the handler answer with JSON instead of a 302, for
	// AJAX callers that follow the redirect themselves
	NoRedirect bool `json:"no_redirect"`
}

// SetCheckoutResponse is returned when the caller opted out of the redirect
type SetCheckoutResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// SetExpressCheckout initiates a PayPal checkout session
// POST /api/checkout
func SetExpressCheckout(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SetCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, SetCheckoutResponse{
			Success: false,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	// Check rate limit using Redis. A limiter outage must not block
	// payments, so errors are logged and ignored.
	redisService := services.NewRedisService()
	limited, err := redisService.CheckCheckoutRateLimit(userID)
	if err != nil {
		logging.Errorf("Checkout rate limit check failed - user: %s, error: %v", userID, err)
	}
	if limited {
		c.JSON(http.StatusTooManyRequests, SetCheckoutResponse{
			Success: false,
			Message: "Please wait before starting another checkout",
		})
		return
	}

	lines := make([]services.CartLine, 0, len(req.Items))
	for _, line := range req.Items {
		item, err := database.GetItemByID(line.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, SetCheckoutResponse{
					Success: false,
					Message: "Item not found",
				})
				return
			}
			logging.Errorf("Item lookup failed - item: %d, error: %v", line.ItemID, err)
			c.JSON(http.StatusInternalServerError, SetCheckoutResponse{
				Success: false,
				Message: "Checkout failed",
			})
			return
		}
		lines = append(lines, services.CartLine{
			Item:        item,
			Quantity:    line.Quantity,
			ContentType: line.ContentType,
			ContentID:   line.ContentID,
		})
	}

	cart := &services.ItemCart{
		Lines:  lines,
		Kind:   req.ContentType,
		KindID: req.ContentID,
	}

	checkoutService := services.NewCheckoutService()
	redirectURL, err := checkoutService.SetExpressCheckout(userID, cart)
	if err != nil {
		logging.Errorf("SetExpressCheckout failed - user: %s, error: %v", userID, err)
		c.JSON(http.StatusInternalServerError, SetCheckoutResponse{
			Success: false,
			Message: "Checkout failed",
		})
		return
	}

	if err := redisService.SetCheckoutRateLimit(userID); err != nil {
		logging.Errorf("Failed to set checkout rate limit - user: %s, error: %v", userID, err)
	}

	if req.NoRedirect {
		c.JSON(http.StatusOK, SetCheckoutResponse{
			Success:     true,
			RedirectURL: redirectURL,
		})
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
}

// DoCheckoutRequest represents a checkout finalization request. Token and
// payer id are what PayPal appended when it sent the user back.
type DoCheckoutRequest struct {
	Token      string `json:"token" form:"token" binding:"required"`
	PayerID    string `json:"payer_id" form:"payer_id" binding:"required"`
	NoRedirect bool   `json:"no_redirect" form:"no_redirect"`
}

// DoExpressCheckout finalizes a PayPal checkout session
// POST /api/checkout/confirm
func DoExpressCheckout(c *gin.Context) {
	userID := c.GetString("user_id")

	var req DoCheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, SetCheckoutResponse{
			Success: false,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	checkoutService := services.NewCheckoutService()
	redirectURL, err := checkoutService.DoExpressCheckout(userID, req.Token, req.PayerID)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, SetCheckoutResponse{
				Success: false,
				Message: "Transaction not found",
			})
			return
		}
		logging.Errorf("DoExpressCheckout failed - user: %s, token: %s, error: %v",
			userID, req.Token, err)
		c.JSON(http.StatusInternalServerError, SetCheckoutResponse{
			Success: false,
			Message: "Checkout failed",
		})
		return
	}

	if req.NoRedirect {
		c.JSON(http.StatusOK, SetCheckoutResponse{
			Success:     true,
			RedirectURL: redirectURL,
		})
		return
	}
	c.Redirect(http.StatusFound, redirectURL)
}
