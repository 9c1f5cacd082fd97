// Package sheets adapts a Google Sheets spreadsheet as the remote tabular
// backend. The sheet layout is a header row followed by one 29-column data
// row per response.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheet ranges for the response collection. The data range deliberately
// skips the header row.
const (
	appendRange = "Responses!A:AC"
	readRange   = "Responses!A2:AC"
)

// Config holds the remote backend coordinates. Credential acquisition is the
// caller's concern; CredentialsJSON is a ready-to-use service account key.
type Config struct {
	SpreadsheetID   string
	CredentialsJSON []byte
}

// Store talks to one spreadsheet. All calls are blocking with no internal
// retries; the caller bounds them with ctx.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New builds a sheets-backed remote store, failing fast when no usable
// client can be constructed from the config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if len(cfg.CredentialsJSON) == 0 {
		return nil, fmt.Errorf("service account credentials are required")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(cfg.CredentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Store{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// AppendRow inserts one encoded row at the end of the data range.
func (s *Store) AppendRow(ctx context.Context, row []string) error {
	if s == nil || s.svc == nil {
		return fmt.Errorf("sheets store is not configured")
	}

	body := &sheets.ValueRange{Values: [][]any{rowValues(row)}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, appendRange, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// ReadAllRows fetches every data row beyond the header. An empty sheet
// yields an empty slice, not an error.
func (s *Store) ReadAllRows(ctx context.Context) ([][]string, error) {
	if s == nil || s.svc == nil {
		return nil, fmt.Errorf("sheets store is not configured")
	}

	result, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	rows := make([][]string, 0, len(result.Values))
	for _, values := range result.Values {
		rows = append(rows, cellStrings(values))
	}
	return rows, nil
}

// rowValues widens the encoded row for the Sheets values API.
func rowValues(row []string) []any {
	values := make([]any, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	return values
}

// cellStrings narrows an API row back to strings. The values API may return
// non-string cells for sheets edited by hand; those degrade via Sprint
// rather than fail.
func cellStrings(values []any) []string {
	cells := make([]string, len(values))
	for i, value := range values {
		switch v := value.(type) {
		case string:
			cells[i] = v
		case nil:
			cells[i] = ""
		default:
			cells[i] = fmt.Sprint(v)
		}
	}
	return cells
}
