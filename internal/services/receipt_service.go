package services

import (
	"context"
	"fmt"

	"checkout-api/internal/config"
	"checkout-api/internal/models"
	"checkout-api/pkg/logging"

	brevo "github.com/getbrevo/brevo-go/lib"
)

// ReceiptService emails the merchant a sale notification whenever a payment
// completes. It is registered as a receiver on the payment completed signal.
type ReceiptService struct {
	client      *brevo.APIClient
	fromEmail   string
	fromName    string
	notifyEmail string
}

// NewReceiptService creates a new receipt service instance
func NewReceiptService() *ReceiptService {
	cfg := brevo.NewConfiguration()
	cfg.AddDefaultHeader("api-key", config.AppConfig.BrevoAPIKey)

	return &ReceiptService{
		client:      brevo.NewAPIClient(cfg),
		fromEmail:   config.AppConfig.BrevoFromEmail,
		fromName:    config.AppConfig.BrevoFromName,
		notifyEmail: config.AppConfig.MerchantNotifyEmail,
	}
}

// Configured reports whether sale notifications can be sent
func (s *ReceiptService) Configured() bool {
	return config.AppConfig.BrevoAPIKey != "" && s.notifyEmail != ""
}

// OnPaymentCompleted sends the merchant sale notification for a completed
// transaction. Failures are logged only; the payment status is already
// committed at this point.
func (s *ReceiptService) OnPaymentCompleted(transaction *models.PaymentTransaction) {
	if !s.Configured() {
		return
	}

	subject := fmt.Sprintf("Payment completed - %s", transaction.TransactionID)
	textContent := fmt.Sprintf(
		"Payment %s completed.\n\nUser: %s\nValue: %s\nDate: %s\n",
		transaction.TransactionID,
		transaction.UserID,
		transaction.Value.StringFixed(2),
		transaction.Date.Format("2006-01-02 15:04:05"),
	)
	htmlContent := fmt.Sprintf(`
		<h2>Payment completed</h2>
		<p>Transaction <strong>%s</strong> was completed.</p>
		<ul>
			<li>User: %s</li>
			<li>Value: %s</li>
			<li>Date: %s</li>
		</ul>
	`,
		transaction.TransactionID,
		transaction.UserID,
		transaction.Value.StringFixed(2),
		transaction.Date.Format("2006-01-02 15:04:05"),
	)

	email := brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Name:  s.fromName,
			Email: s.fromEmail,
		},
		To: []brevo.SendSmtpEmailTo{
			{Email: s.notifyEmail},
		},
		Subject:     subject,
		HtmlContent: htmlContent,
		TextContent: textContent,
	}

	_, _, err := s.client.TransactionalEmailsApi.SendTransacEmail(context.Background(), email)
	if err != nil {
		logging.Errorf("Failed to send sale notification - transaction: %s, error: %v",
			transaction.TransactionID, err)
		return
	}

	logging.Infof("Sale notification sent - transaction: %s, to: %s",
		transaction.TransactionID, s.notifyEmail)
}
