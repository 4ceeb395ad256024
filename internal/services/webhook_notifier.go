package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"checkout-api/internal/config"
	"checkout-api/internal/models"
	"checkout-api/pkg/logging"
)

// WebhookNotifier forwards payment status changes to the merchant backend
type WebhookNotifier struct {
	httpClient  *http.Client
	callbackURL string
	secret      string
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier() *WebhookNotifier {
	return &WebhookNotifier{
		httpClient: &http.Client{
			Timeout: 10 * time.Second, // 10 second timeout
		},
		callbackURL: config.AppConfig.WebhookCallbackURL,
		secret:      config.AppConfig.WebhookSecret,
	}
}

// WebhookPayload represents the payload sent to the merchant backend
type WebhookPayload struct {
	Event         string `json:"event"`          // e.g., "payment.status_updated"
	TransactionID string `json:"transaction_id"` // PayPal transaction id (or checkout token)
	UserID        string `json:"user_id"`        // owning user, empty for anonymous checkouts
	Status        string `json:"status"`         // ledger status as stored
	Value         string `json:"value"`          // decimal total
	ContentType   string `json:"content_type"`   // tagged content reference
	ContentID     string `json:"content_id"`
	Timestamp     string `json:"timestamp"` // ISO 8601 format
}

// OnPaymentStatusUpdated is registered on the payment status updated signal.
// The delivery runs in its own goroutine so a slow merchant backend never
// blocks the IPN response; the status is already committed.
func (wn *WebhookNotifier) OnPaymentStatusUpdated(transaction *models.PaymentTransaction) {
	if wn.callbackURL == "" {
		// No webhook configured, skip
		return
	}

	payload := WebhookPayload{
		Event:         "payment.status_updated",
		TransactionID: transaction.TransactionID,
		UserID:        transaction.UserID,
		Status:        transaction.Status,
		Value:         transaction.Value.StringFixed(2),
		ContentType:   transaction.ContentType,
		ContentID:     transaction.ContentID,
		Timestamp:     time.Now().Format(time.RFC3339),
	}

	go wn.sendWithRetry(payload)
}

// sendWithRetry sends webhook with retry mechanism
// Retry schedule: 1s, 5s, 30s (3 attempts total)
func (wn *WebhookNotifier) sendWithRetry(payload WebhookPayload) {
	retryDelays := []time.Duration{1 * time.Second, 5 * time.Second, 30 * time.Second}
	maxRetries := len(retryDelays)

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := wn.sendWebhook(payload)
		if err == nil {
			logging.Infof("Webhook notification sent - url: %s, transaction: %s, attempt: %d",
				wn.callbackURL, payload.TransactionID, attempt+1)
			return
		}

		logging.Errorf("Webhook notification failed - url: %s, transaction: %s, attempt: %d, error: %v",
			wn.callbackURL, payload.TransactionID, attempt+1, err)

		// If not the last attempt, wait before retry
		if attempt < maxRetries-1 {
			time.Sleep(retryDelays[attempt])
		}
	}

	logging.Errorf("Webhook notification failed after %d attempts - url: %s, transaction: %s",
		maxRetries, wn.callbackURL, payload.TransactionID)
}

// sendWebhook sends a single webhook request
func (wn *WebhookNotifier) sendWebhook(payload WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", wn.callbackURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "checkout-api-webhook/1.0")

	// Add signature if secret is provided
	if wn.secret != "" {
		signature := wn.generateSignature(jsonData)
		req.Header.Set("X-Checkout-Signature", signature)
	}

	resp, err := wn.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// generateSignature generates HMAC-SHA256 signature for webhook payload
func (wn *WebhookNotifier) generateSignature(payload []byte) string {
	h := hmac.New(sha256.New, []byte(wn.secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
