package api

import (
	"checkout-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all routes
func SetupRoutes(r *gin.Engine) {
	// API route group
	api := r.Group("/api")
	{
		// Catalog (public)
		api.GET("/items", GetItems)

		// Checkout routes (require a resolved user)
		checkout := api.Group("/checkout")
		checkout.Use(middleware.UserAuthMiddleware())
		{
			checkout.POST("", SetExpressCheckout)
			checkout.POST("/confirm", DoExpressCheckout)
		}

		// Logical checkout pages (PayPal redirects the browser here)
		pages := api.Group("/checkout")
		{
			pages.GET("/confirm", ConfirmCheckoutPage)
			pages.GET("/success", SuccessPage)
			pages.GET("/error", ErrorPage)
			pages.GET("/canceled", CanceledPage)
		}

		// Transaction history (requires a resolved user)
		transactions := api.Group("/transactions")
		transactions.Use(middleware.UserAuthMiddleware())
		{
			transactions.GET("", GetTransactionHistory)
		}

		// IPN route (no authentication, PayPal's servers call this)
		paypal := api.Group("/paypal")
		{
			paypal.POST("/ipn", PayPalIPNListener)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "checkout-api",
		})
	})
}
