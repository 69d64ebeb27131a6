// Package export mirrors the ledger audit trail into a Google Sheet, giving
// users a spreadsheet view of their activity without touching the API.
package export

import (
	"context"
	"fmt"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"grana/internal/storage"
)

// SheetsExporter appends one row per ledger event to a configured sheet.
type SheetsExporter struct {
	service       *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter builds a client authenticated with a service account.
// Exactly one of credentialsFile or credentialsJSON must be set.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName, credentialsFile, credentialsJSON string) (*SheetsExporter, error) {
	raw := []byte(credentialsJSON)
	if credentialsFile != "" {
		var err error
		raw, err = os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no service account credentials configured")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(raw),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsExporter{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendEvent writes one audit row: timestamp, user, kind, references and
// amount. Amounts are written in units, not cents, so the sheet is readable
// as-is.
func (e *SheetsExporter) AppendEvent(ctx context.Context, ev storage.LedgerEvent) error {
	var txID any
	if ev.TransactionID != nil {
		txID = *ev.TransactionID
	}
	var amount any
	if ev.AmountCents != nil {
		amount = float64(*ev.AmountCents) / 100
	}

	vr := &gsheet.ValueRange{Values: [][]any{{
		ev.OccurredAt.Format("2006-01-02 15:04:05"),
		ev.UserID,
		ev.Kind,
		txID,
		ev.InstallmentGroupID,
		amount,
	}}}

	_, err := e.service.Spreadsheets.Values.
		Append(e.spreadsheetID, e.sheetName+"!A:F", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append event row: %w", err)
	}
	return nil
}
