// Package worker turns consumed broker messages into audit-trail rows and,
// when configured, spreadsheet exports.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"grana/internal/amqp"
	"grana/internal/storage"
)

// EventExporter mirrors recorded events to an external sink. Nil disables
// exporting.
type EventExporter interface {
	AppendEvent(ctx context.Context, ev storage.LedgerEvent) error
}

// EventWorker persists ledger lifecycle events. Recording is idempotent by
// event id, so broker redeliveries never duplicate audit rows.
type EventWorker struct {
	events   storage.EventRepository
	exporter EventExporter
}

func NewEventWorker(events storage.EventRepository, exporter EventExporter) *EventWorker {
	return &EventWorker{events: events, exporter: exporter}
}

// HandleEvent processes one consumed message. A storage failure propagates so
// the delivery is requeued; an export failure only logs, since the audit row
// is already durable.
func (w *EventWorker) HandleEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	ev := storage.LedgerEvent{
		ID:                 msg.EventID,
		UserID:             msg.UserID,
		Kind:               msg.Kind,
		TransactionID:      msg.TransactionID,
		InstallmentGroupID: msg.InstallmentGroupID,
		AmountCents:        msg.AmountCents,
		OccurredAt:         msg.OccurredAt,
	}

	if err := w.events.RecordEvent(ctx, ev); err != nil {
		return fmt.Errorf("record event %s: %w", msg.EventID, err)
	}

	slog.InfoContext(ctx, "Ledger event recorded",
		"event_id", msg.EventID,
		"kind", msg.Kind,
		"user_id", msg.UserID)

	if w.exporter != nil {
		if err := w.exporter.AppendEvent(ctx, ev); err != nil {
			slog.WarnContext(ctx, "Failed to export event",
				"error", err, "event_id", msg.EventID)
		}
	}

	return nil
}
