package google

import (
	"context"
	"fmt"

	"github.com/friskytrails/api/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheet names the mirror appends to inside the configured spreadsheet.
const (
	SheetUsers    = "Users"
	SheetContacts = "Contacts"
)

// RowAppender mirrors records to an external tracking sheet.
// Implementations are best-effort collaborators: callers log failures and
// move on, the auth state machine never depends on the mirror.
type RowAppender interface {
	AppendRow(ctx context.Context, sheetName string, row []interface{}) error
}

// SheetClient appends rows to a Google Sheets spreadsheet.
type SheetClient struct {
	svc     *sheets.Service
	sheetID string
}

// NewSheetClient builds a Sheets client from service-account JSON held in
// configuration. Both the credentials and the spreadsheet id are required.
func NewSheetClient(ctx context.Context, cfg *config.Config) (*SheetClient, error) {
	if cfg.GoogleCredentialsJSON == "" || cfg.SheetID == "" {
		return nil, fmt.Errorf("google sheets credentials or sheet id not configured")
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.GoogleCredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	return &SheetClient{svc: svc, sheetID: cfg.SheetID}, nil
}

func (c *SheetClient) AppendRow(ctx context.Context, sheetName string, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.sheetID, sheetName+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", sheetName, err)
	}
	return nil
}
