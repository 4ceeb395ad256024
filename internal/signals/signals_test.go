package signals

import (
	"testing"

	"checkout-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSignalDeliversInRegistrationOrder(t *testing.T) {
	signal := &Signal{}
	var order []string

	signal.Connect(func(transaction *models.PaymentTransaction) {
		order = append(order, "first:"+transaction.TransactionID)
	})
	signal.Connect(func(transaction *models.PaymentTransaction) {
		order = append(order, "second:"+transaction.TransactionID)
	})

	signal.Send(&models.PaymentTransaction{TransactionID: "abc123"})

	assert.Equal(t, []string{"first:abc123", "second:abc123"}, order)
}

func TestSignalWithoutReceivers(t *testing.T) {
	signal := &Signal{}
	assert.NotPanics(t, func() {
		signal.Send(&models.PaymentTransaction{TransactionID: "abc123"})
	})
}

func TestSignalRecoversPanickingReceiver(t *testing.T) {
	signal := &Signal{}
	delivered := false

	signal.Connect(func(transaction *models.PaymentTransaction) {
		panic("broken subscriber")
	})
	signal.Connect(func(transaction *models.PaymentTransaction) {
		delivered = true
	})

	assert.NotPanics(t, func() {
		signal.Send(&models.PaymentTransaction{TransactionID: "abc123"})
	})
	assert.True(t, delivered, "receivers after a panicking one must still run")
}
