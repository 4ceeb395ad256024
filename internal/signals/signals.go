package signals

import (
	"sync"

	"checkout-api/internal/models"
	"checkout-api/pkg/logging"
)

// Receiver is a callback interested in payment transaction events.
type Receiver func(transaction *models.PaymentTransaction)

// Signal is a synchronous in-process event channel. Receivers are registered
// by the surrounding application at startup; Send runs them in registration
// order on the calling goroutine.
type Signal struct {
	mu        sync.RWMutex
	receivers []Receiver
}

// Connect registers a receiver.
func (s *Signal) Connect(receiver Receiver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receivers = append(s.receivers, receiver)
}

// Send delivers the transaction to every registered receiver. A panicking
// receiver is logged and skipped so it cannot undo an already committed
// status update.
func (s *Signal) Send(transaction *models.PaymentTransaction) {
	s.mu.RLock()
	receivers := make([]Receiver, len(s.receivers))
	copy(receivers, s.receivers)
	s.mu.RUnlock()

	for _, receiver := range receivers {
		deliver(receiver, transaction)
	}
}

func deliver(receiver Receiver, transaction *models.PaymentTransaction) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("Signal receiver panicked - transaction: %s, panic: %v",
				transaction.TransactionID, r)
		}
	}()
	receiver(transaction)
}

var (
	// PaymentCompleted fires when an IPN arrives with status 'Completed'
	PaymentCompleted = &Signal{}

	// PaymentStatusUpdated fires on every IPN that updated a transaction
	PaymentStatusUpdated = &Signal{}
)
