// Package sheets appends attendance rows to a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ErrNotConfigured is returned when no spreadsheet id is set.
var ErrNotConfigured = errors.New("google sheets not configured")

// Client appends rows to one range of one spreadsheet.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	rangeA1       string
}

// New creates a client authenticated with the service account key in
// cfg.CredentialsFile. Extra options are appended after the credentials.
func New(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, ErrNotConfigured
	}

	var clientOpts []option.ClientOption
	if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			return nil, fmt.Errorf("reading credentials: %w", err)
		}
		clientOpts = append(clientOpts,
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(sheets.SpreadsheetsScope),
		)
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		rangeA1:       cfg.Range,
	}, nil
}

// Name identifies the sink in logs and stats.
func (c *Client) Name() string {
	return "google-sheets"
}

// Append adds the entry as a new row.
func (c *Client) Append(ctx context.Context, entry attendance.Entry) error {
	row := entry.Row()
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, c.rangeA1, &sheets.ValueRange{Values: [][]any{values}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row: %w", err)
	}
	return nil
}
