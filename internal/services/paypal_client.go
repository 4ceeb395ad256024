package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkout-api/internal/config"
	"checkout-api/internal/database"
	"checkout-api/internal/models"
	"checkout-api/pkg/logging"
)

const payPalAPIVersion = "91.0"

// ACK values PayPal reports on NVP responses. Anything that is not exactly
// AckSuccess is treated as a failure by callers.
const (
	AckSuccess = "Success"
	AckFailure = "Failure"
)

// PayPalClient performs single request/response cycles against the PayPal
// NVP API. It never retries and never returns an error: a failed call is
// recorded as a PaymentTransactionError and reported as a nil response.
type PayPalClient struct {
	httpClient *http.Client
	apiURL     string
}

// NewPayPalClient creates a new PayPal NVP client
func NewPayPalClient() *PayPalClient {
	return &PayPalClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiURL: config.AppConfig.PayPalAPIURL,
	}
}

// PayPalDefaults returns the static credential fields every NVP call carries.
func PayPalDefaults() url.Values {
	fields := url.Values{}
	fields.Set("USER", config.AppConfig.PayPalUser)
	fields.Set("PWD", config.AppConfig.PayPalPwd)
	fields.Set("SIGNATURE", config.AppConfig.PayPalSignature)
	fields.Set("VERSION", payPalAPIVersion)
	fields.Set("PAYMENTREQUEST_0_PAYMENTACTION", "Sale")
	if config.AppConfig.SaleDescription != "" {
		fields.Set("PAYMENTREQUEST_0_DESC", config.AppConfig.SaleDescription)
	}
	return fields
}

// Call posts the form-encoded fields to the PayPal API and parses the
// response body, which is itself form-encoded, into a multi-value map.
// Field order and unknown fields are irrelevant to the caller. On network
// failure, HTTP error status or an unparseable body the error is logged
// against the optional transaction and nil is returned.
func (c *PayPalClient) Call(userID string, fields url.Values, transaction *models.PaymentTransaction) url.Values {
	encoded := fields.Encode()

	resp, err := c.httpClient.Post(c.apiURL, "application/x-www-form-urlencoded",
		strings.NewReader(encoded))
	if err != nil {
		c.LogError(userID, err.Error(), encoded, transaction)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.LogError(userID, fmt.Sprintf("failed to read response body: %v", err), encoded, transaction)
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.LogError(userID, fmt.Sprintf("unexpected status code %d: %s", resp.StatusCode, body),
			encoded, transaction)
		return nil
	}

	parsed, err := url.ParseQuery(string(body))
	if err != nil {
		c.LogError(userID, fmt.Sprintf("failed to parse response: %v: %s", err, body),
			encoded, transaction)
		return nil
	}

	return parsed
}

// Ack returns the ACK field of a parsed PayPal response, or the empty string
// when the field is absent (including the nil response of a failed call).
func Ack(response url.Values) string {
	values := response["ACK"]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// LogError saves error information as a PaymentTransactionError record.
// The transaction is optional; SetExpressCheckout errors happen before one
// exists.
func (c *PayPalClient) LogError(userID, response, request string, transaction *models.PaymentTransaction) *models.PaymentTransactionError {
	paymentError := &models.PaymentTransactionError{
		UserID:   userID,
		Response: response,
		APIURL:   c.apiURL,
		Request:  request,
	}
	if transaction != nil && transaction.ID != 0 {
		transactionID := transaction.ID
		paymentError.TransactionID = &transactionID
	}

	if err := database.CreateTransactionError(paymentError); err != nil {
		logging.Errorf("Failed to record payment error - user: %s, error: %v", userID, err)
	}
	return paymentError
}
