package storage

import (
	"errors"
	"sync"

	"github.com/AgentTarik/receipt-feed/internal/transaction"
)

var ErrIncompleteReceipt = errors.New("receipt has no id")

// ReceiptStore keeps accepted receipts in acceptance order.
type ReceiptStore struct {
	mu       sync.RWMutex
	receipts []transaction.Record
}

func NewReceiptStore() *ReceiptStore {
	return &ReceiptStore{}
}

func (s *ReceiptStore) Save(r transaction.Record) error {
	if r.ID == nil {
		return ErrIncompleteReceipt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, r)
	return nil
}

func (s *ReceiptStore) List() []transaction.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]transaction.Record, len(s.receipts))
	copy(out, s.receipts)
	return out
}

func (s *ReceiptStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receipts)
}
