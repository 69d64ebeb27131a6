package amqp

import (
	"testing"
	"time"
)

func TestLedgerEventMessageRoundTrip(t *testing.T) {
	txID := int64(42)
	cents := int64(11220)
	msg := LedgerEventMessage{
		EventID:       "evt-1",
		UserID:        "user-1",
		Kind:          KindTransactionCreated,
		TransactionID: &txID,
		AmountCents:   &cents,
		OccurredAt:    time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := LedgerEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.EventID != "evt-1" || got.Kind != KindTransactionCreated {
		t.Errorf("got = %+v", got)
	}
	if got.TransactionID == nil || *got.TransactionID != 42 {
		t.Errorf("transactionID = %v, want 42", got.TransactionID)
	}
	if !got.OccurredAt.Equal(msg.OccurredAt) {
		t.Errorf("occurredAt = %v, want %v", got.OccurredAt, msg.OccurredAt)
	}
}

func TestLedgerEventMessageFromJSONRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"missing event id", `{"user_id":"u","kind":"transaction.created"}`},
		{"missing kind", `{"event_id":"e","user_id":"u"}`},
		{"missing user", `{"event_id":"e","kind":"transaction.created"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LedgerEventMessageFromJSON([]byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
