package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"checkout-api/internal/config"
	"checkout-api/internal/database"
	"checkout-api/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakePayPalServer(t *testing.T, response string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)
	return server
}

func createTestItem(t *testing.T, name, price string) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
	}
	require.NoError(t, database.DB.Create(item).Error)
	return item
}

func TestSetExpressCheckoutHandler(t *testing.T) {
	setupTestDB(t)
	server := newFakePayPalServer(t, "ACK=Success&TOKEN=abc123")
	setupTestConfig(server.URL)
	router := newTestRouter(t)

	item := createTestItem(t, "widget", "10.00")

	body := fmt.Sprintf(`{"items":[{"item_id":%d,"quantity":1}],"no_redirect":true}`, item.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SetCheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, config.AppConfig.PayPalLoginURL+"abc123", resp.RedirectURL)

	var transaction models.PaymentTransaction
	require.NoError(t, database.DB.First(&transaction).Error)
	assert.Equal(t, "user-1", transaction.UserID)
	assert.Equal(t, models.StatusCheckout, transaction.Status)
}

func TestSetExpressCheckoutHandlerRedirects(t *testing.T) {
	setupTestDB(t)
	server := newFakePayPalServer(t, "ACK=Success&TOKEN=abc123")
	setupTestConfig(server.URL)
	router := newTestRouter(t)

	item := createTestItem(t, "widget", "10.00")

	body := fmt.Sprintf(`{"items":[{"item_id":%d,"quantity":1}]}`, item.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, config.AppConfig.PayPalLoginURL+"abc123", w.Header().Get("Location"))
}

func TestSetExpressCheckoutHandlerRequiresUser(t *testing.T) {
	setupTestDB(t)
	server := newFakePayPalServer(t, "ACK=Success&TOKEN=abc123")
	setupTestConfig(server.URL)
	config.AppConfig.AllowAnonymousCheckout = false
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetExpressCheckoutHandlerAnonymous(t *testing.T) {
	setupTestDB(t)
	server := newFakePayPalServer(t, "ACK=Success&TOKEN=abc123")
	setupTestConfig(server.URL)
	config.AppConfig.AllowAnonymousCheckout = true
	router := newTestRouter(t)

	item := createTestItem(t, "widget", "10.00")

	body := fmt.Sprintf(`{"items":[{"item_id":%d,"quantity":1}],"no_redirect":true}`, item.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var transaction models.PaymentTransaction
	require.NoError(t, database.DB.First(&transaction).Error)
	assert.True(t, strings.HasPrefix(transaction.UserID, "guest-"),
		"anonymous checkout gets a generated guest id, got %q", transaction.UserID)
}

func TestSetExpressCheckoutHandlerUnknownItem(t *testing.T) {
	setupTestDB(t)
	server := newFakePayPalServer(t, "ACK=Success&TOKEN=abc123")
	setupTestConfig(server.URL)
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout",
		strings.NewReader(`{"items":[{"item_id":999,"quantity":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetExpressCheckoutHandlerItemLookupError(t *testing.T) {
	setupTestDB(t)
	server := newFakePayPalServer(t, "ACK=Success&TOKEN=abc123")
	setupTestConfig(server.URL)
	router := newTestRouter(t)

	// a broken database connection is a server error, not a bad request
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout",
		strings.NewReader(`{"items":[{"item_id":1,"quantity":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDoExpressCheckoutHandlerNotFound(t *testing.T) {
	setupTestDB(t)
	server := newFakePayPalServer(t, "ACK=Success&PAYMENTINFO_0_TRANSACTIONID=xyz789")
	setupTestConfig(server.URL)
	router := newTestRouter(t)

	form := url.Values{"token": {"missing"}, "payer_id": {"payer-1"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/confirm",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDoExpressCheckoutHandlerSuccess(t *testing.T) {
	setupTestDB(t)
	server := newFakePayPalServer(t, "ACK=Success&PAYMENTINFO_0_TRANSACTIONID=xyz789")
	setupTestConfig(server.URL)
	router := newTestRouter(t)

	require.NoError(t, database.CreateTransaction(&models.PaymentTransaction{
		UserID:        "user-1",
		TransactionID: "abc123",
		Value:         decimal.RequireFromString("10.00"),
		Status:        models.StatusCheckout,
	}))

	form := url.Values{"token": {"abc123"}, "payer_id": {"payer-1"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/confirm",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/checkout/success", w.Header().Get("Location"))

	var transaction models.PaymentTransaction
	require.NoError(t, database.DB.First(&transaction).Error)
	assert.Equal(t, "xyz789", transaction.TransactionID)
	assert.Equal(t, models.StatusPending, transaction.Status)
}

func TestGetTransactionHistory(t *testing.T) {
	setupTestDB(t)
	setupTestConfig("http://paypal.invalid")
	router := newTestRouter(t)

	item := createTestItem(t, "widget", "10.00")
	transaction := &models.PaymentTransaction{
		UserID:        "user-1",
		TransactionID: "abc123",
		Value:         decimal.RequireFromString("20.00"),
		Status:        models.StatusPending,
	}
	require.NoError(t, database.CreateTransaction(transaction))
	itemID := item.ID
	require.NoError(t, database.CreatePurchasedItem(&models.PurchasedItem{
		UserID:        "user-1",
		TransactionID: transaction.ID,
		ItemID:        &itemID,
		Price:         item.Price,
		Quantity:      2,
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("X-User-ID", "user-1")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp TransactionHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "abc123", resp.Transactions[0].TransactionID)
	assert.Equal(t, "20.00", resp.Transactions[0].Value)
	require.Len(t, resp.Transactions[0].Items, 1)
	assert.Equal(t, "widget", resp.Transactions[0].Items[0].Name)
	assert.Equal(t, "20.00", resp.Transactions[0].Items[0].Subtotal)

	// other users see nothing
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("X-User-ID", "someone-else")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	resp = TransactionHistoryResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Transactions)
}

func TestGetItems(t *testing.T) {
	setupTestDB(t)
	setupTestConfig("http://paypal.invalid")
	router := newTestRouter(t)

	createTestItem(t, "widget", "10.00")
	createTestItem(t, "gadget", "5.00")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "widget")
	assert.Contains(t, w.Body.String(), "gadget")
}
