package models

// Application-level payment status values. A transaction is created in
// StatusCheckout by SetExpressCheckout, moved to StatusPending by
// DoExpressCheckoutPayment and then tracks whatever PayPal reports via IPN.
const (
	StatusCheckout  = "checkout"
	StatusPending   = "pending"
	StatusCanceled  = "canceled"
	StatusCompleted = "completed"
)

// PayPal payment_status values as they arrive on IPN callbacks. The ledger
// stores the inbound string verbatim, so both vocabularies are valid values
// for PaymentTransaction.Status.
const (
	PayPalStatusCompleted        = "Completed"
	PayPalStatusCanceledReversal = "Canceled_Reversal"
	PayPalStatusCreated          = "Created"
	PayPalStatusDenied           = "Denied"
	PayPalStatusExpired          = "Expired"
	PayPalStatusFailed           = "Failed"
	PayPalStatusPending          = "Pending"
	PayPalStatusRefunded         = "Refunded"
	PayPalStatusReversed         = "Reversed"
	PayPalStatusProcessed        = "Processed"
	PayPalStatusVoided           = "Voided"
)
