package api

import (
	"net/http"

	"checkout-api/internal/database"
	"checkout-api/internal/response"
	"checkout-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// GetItems lists the sellable catalog
// GET /api/items
func GetItems(c *gin.Context) {
	items, err := database.GetItems()
	if err != nil {
		logging.Errorf("Failed to get items: %v", err)
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to get items")
		return
	}

	response.SuccessJSON(c, items)
}
