package api

import (
	"fmt"
	"testing"

	"checkout-api/internal/config"
	"checkout-api/internal/database"
	"checkout-api/internal/models"
	"checkout-api/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Item{},
		&models.PaymentTransaction{},
		&models.PurchasedItem{},
		&models.PaymentTransactionError{},
	))
	database.DB = db
	database.RedisClient = nil
}

func setupTestConfig(apiURL string) {
	config.AppConfig = &config.Config{
		Hostname:         "https://shop.example.com",
		PayPalUser:       "seller_api1.example.com",
		PayPalPwd:        "secret",
		PayPalSignature:  "signature",
		PayPalAPIURL:     apiURL,
		PayPalLoginURL:   "https://www.sandbox.paypal.com/cgi-bin/webscr?cmd=_express-checkout&token=",
		DefaultCurrency:  "USD",
		RateLimitMinutes: 1,
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logging.InitLogging()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r)
	return r
}
