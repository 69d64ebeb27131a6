package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event kinds published by the API and consumed by the worker.
const (
	KindTransactionCreated = "transaction.created"
	KindTransactionUpdated = "transaction.updated"
	KindTransactionDeleted = "transaction.deleted"
	KindTransactionPaid    = "transaction.paid"
	KindGroupCreated       = "installment_group.created"
	KindGroupDeleted       = "installment_group.deleted"
)

// LedgerEventMessage is the wire format of one ledger lifecycle event. It is
// deliberately small: the worker records it as-is into the audit trail and
// fetches full rows from the database only when exporting.
type LedgerEventMessage struct {
	EventID            string    `json:"event_id"`
	UserID             string    `json:"user_id"`
	Kind               string    `json:"kind"`
	TransactionID      *int64    `json:"transaction_id,omitempty"`
	InstallmentGroupID string    `json:"installment_group_id,omitempty"`
	AmountCents        *int64    `json:"amount_cents,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var m LedgerEventMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal ledger event: %w", err)
	}
	if m.EventID == "" || m.Kind == "" || m.UserID == "" {
		return nil, fmt.Errorf("ledger event missing required fields")
	}
	return &m, nil
}
