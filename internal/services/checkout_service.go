package services

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"checkout-api/internal/config"
	"checkout-api/internal/database"
	"checkout-api/internal/models"
	"checkout-api/pkg/logging"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrTransactionNotFound is returned when DoExpressCheckout cannot resolve
// the checkout token to a transaction owned by the given user.
var ErrTransactionNotFound = errors.New("payment transaction not found")

// Logical page paths the checkout flow redirects to.
const (
	ConfirmPath  = "/api/checkout/confirm"
	SuccessPath  = "/api/checkout/success"
	ErrorPath    = "/api/checkout/error"
	CanceledPath = "/api/checkout/canceled"
	IPNPath      = "/api/paypal/ipn"
)

// CartLine is one (item, quantity) pairing within a cart. The item may be a
// transient value without a catalog row ("virtual" item); in that case no
// item reference is stored on the resulting PurchasedItem.
type CartLine struct {
	Item        *models.Item
	Quantity    int
	ContentType string
	ContentID   string
}

// CheckoutCart supplies the cart for a SetExpressCheckout call. Deployments
// provide their own implementation to customize what is being sold, which
// domain entity the transaction is attached to, the query parameters on the
// return URLs, and any side records created after the transaction is saved.
type CheckoutCart interface {
	ItemsAndQuantities() ([]CartLine, error)
	ContentObject() (contentType, contentID string)
	URLParams() url.Values
	PostTransactionSave(transaction *models.PaymentTransaction) error
}

// ItemCart is the default CheckoutCart over catalog items.
type ItemCart struct {
	Lines  []CartLine
	Kind   string
	KindID string
	Params url.Values
}

func (c *ItemCart) ItemsAndQuantities() ([]CartLine, error) {
	return c.Lines, nil
}

func (c *ItemCart) ContentObject() (string, string) {
	return c.Kind, c.KindID
}

func (c *ItemCart) URLParams() url.Values {
	return c.Params
}

func (c *ItemCart) PostTransactionSave(transaction *models.PaymentTransaction) error {
	return nil
}

// CheckoutService drives the two-phase PayPal Express Checkout handshake
// and keeps the transaction ledger in step with it.
type CheckoutService struct {
	paypal *PayPalClient
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		paypal: NewPayPalClient(),
	}
}

// SetExpressCheckout initiates a PayPal-hosted checkout session for the
// given cart. On success it creates the PaymentTransaction (status
// 'checkout', the PayPal token as transaction id) plus one PurchasedItem per
// surviving line and returns the PayPal login URL with the token appended.
// On failure the error is logged with the exact outbound payload, no
// transaction is created, and the error page path is returned.
func (s *CheckoutService) SetExpressCheckout(userID string, cart CheckoutCart) (string, error) {
	lines, err := cart.ItemsAndQuantities()
	if err != nil {
		return "", err
	}

	fields := PayPalDefaults()
	total := decimal.Zero
	currency := ""
	var surviving []CartLine

	for _, line := range lines {
		if line.Quantity <= 0 {
			// quantity 0 means the line is excluded entirely
			continue
		}
		index := len(surviving)
		if index == 0 && line.Item.Currency != "" {
			currency = line.Item.Currency
		}
		surviving = append(surviving, line)
		total = total.Add(line.Item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		fields.Set(fmt.Sprintf("L_PAYMENTREQUEST_0_NAME%d", index), line.Item.Name)
		fields.Set(fmt.Sprintf("L_PAYMENTREQUEST_0_DESC%d", index), line.Item.Description)
		fields.Set(fmt.Sprintf("L_PAYMENTREQUEST_0_AMT%d", index), line.Item.Price.StringFixed(2))
		fields.Set(fmt.Sprintf("L_PAYMENTREQUEST_0_QTY%d", index), strconv.Itoa(line.Quantity))
	}
	if currency == "" {
		currency = config.AppConfig.DefaultCurrency
	}

	fields.Set("METHOD", "SetExpressCheckout")
	fields.Set("PAYMENTREQUEST_0_AMT", total.StringFixed(2))
	fields.Set("PAYMENTREQUEST_0_ITEMAMT", total.StringFixed(2))
	fields.Set("PAYMENTREQUEST_0_CURRENCYCODE", currency)
	fields.Set("RETURNURL", pageURL(ConfirmPath, cart.URLParams()))
	fields.Set("CANCELURL", pageURL(CanceledPath, cart.URLParams()))

	response := s.paypal.Call(userID, fields, nil)
	if Ack(response) == AckSuccess && len(response["TOKEN"]) > 0 {
		token := response["TOKEN"][0]
		contentType, contentID := cart.ContentObject()

		transaction := &models.PaymentTransaction{
			UserID:        userID,
			Date:          time.Now(),
			TransactionID: token,
			Value:         total,
			Status:        models.StatusCheckout,
			ContentType:   contentType,
			ContentID:     contentID,
		}
		if err := database.CreateTransaction(transaction); err != nil {
			return "", fmt.Errorf("failed to create transaction: %w", err)
		}
		if err := cart.PostTransactionSave(transaction); err != nil {
			return "", fmt.Errorf("post transaction save hook failed: %w", err)
		}

		for _, line := range surviving {
			purchased := &models.PurchasedItem{
				UserID:        userID,
				TransactionID: transaction.ID,
				Price:         line.Item.Price,
				Quantity:      line.Quantity,
				Identifier:    line.Item.Identifier,
				ContentType:   line.ContentType,
				ContentID:     line.ContentID,
			}
			// Virtual items have no catalog row to reference
			if line.Item.ID != 0 {
				itemID := line.Item.ID
				purchased.ItemID = &itemID
			}
			if err := database.CreatePurchasedItem(purchased); err != nil {
				return "", fmt.Errorf("failed to create purchased item: %w", err)
			}
		}

		logging.Infof("Checkout session created - user: %s, token: %s, value: %s",
			userID, token, total.StringFixed(2))
		return config.AppConfig.PayPalLoginURL + token, nil
	}

	if response != nil {
		// Provider-reported failure; transport failures were already
		// logged by the client itself.
		s.paypal.LogError(userID, response.Encode(), fields.Encode(), nil)
	}
	return ErrorPath, nil
}

// DoExpressCheckout finalizes the payment for a checkout session the user
// approved on the PayPal page. The transaction must already exist for
// (user, token); this is checked before any network call. On success the
// transaction id is replaced with the final PayPal transaction id and the
// status moves to 'pending'. On failure the transaction is marked
// 'canceled' and the error logged with the outbound payload.
func (s *CheckoutService) DoExpressCheckout(userID, token, payerID string) (string, error) {
	transaction, err := database.GetTransactionByUserAndToken(userID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTransactionNotFound
		}
		return "", err
	}

	items, err := database.GetPurchasedItems(transaction.ID)
	if err != nil {
		return "", err
	}
	currency := config.AppConfig.DefaultCurrency
	if len(items) > 0 && items[0].Item != nil && items[0].Item.Currency != "" {
		currency = items[0].Item.Currency
	}

	fields := PayPalDefaults()
	fields.Set("METHOD", "DoExpressCheckoutPayment")
	fields.Set("TOKEN", transaction.TransactionID)
	fields.Set("PAYERID", payerID)
	fields.Set("PAYMENTREQUEST_0_AMT", transaction.Value.StringFixed(2))
	fields.Set("PAYMENTREQUEST_0_CURRENCYCODE", currency)
	fields.Set("PAYMENTREQUEST_0_NOTIFYURL", config.AppConfig.Hostname+IPNPath)

	response := s.paypal.Call(userID, fields, transaction)
	if Ack(response) == AckSuccess && len(response["PAYMENTINFO_0_TRANSACTIONID"]) > 0 {
		transaction.TransactionID = response["PAYMENTINFO_0_TRANSACTIONID"][0]
		transaction.Status = models.StatusPending
		if err := database.SaveTransaction(transaction); err != nil {
			return "", fmt.Errorf("failed to save transaction: %w", err)
		}
		logging.Infof("Checkout finalized - user: %s, transaction: %s",
			userID, transaction.TransactionID)
		return SuccessPath, nil
	}

	transaction.Status = models.StatusCanceled
	if err := database.SaveTransaction(transaction); err != nil {
		return "", fmt.Errorf("failed to save transaction: %w", err)
	}
	if response != nil {
		s.paypal.LogError(userID, response.Encode(), fields.Encode(), transaction)
	}
	return ErrorPath, nil
}

// pageURL builds an absolute URL for one of the logical checkout pages.
func pageURL(path string, params url.Values) string {
	pageURL := config.AppConfig.Hostname + path
	if len(params) > 0 {
		pageURL += "?" + params.Encode()
	}
	return pageURL
}
