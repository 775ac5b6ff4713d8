package sheetdb

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client is the narrow remote-table contract the store is built on. Only
// three operations are needed: read a range, overwrite a range, append a row.
type Client interface {
	ReadRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error)
	UpdateRange(ctx context.Context, spreadsheetID, a1Range string, rows [][]string) error
	AppendRow(ctx context.Context, spreadsheetID string, row []string) (rowNumber int, err error)
}

// GoogleClient talks to the Google Sheets API with service-account
// credentials.
type GoogleClient struct {
	svc *sheets.Service
}

// NewGoogleClient builds a Sheets API client from a service-account JSON key
// file.
func NewGoogleClient(ctx context.Context, credentialsFile string) (*GoogleClient, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}

	return &GoogleClient{svc: svc}, nil
}

func (g *GoogleClient) ReadRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", a1Range, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (g *GoogleClient) UpdateRange(ctx context.Context, spreadsheetID, a1Range string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	_, err := g.svc.Spreadsheets.Values.
		Update(spreadsheetID, a1Range, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update range %s: %w", a1Range, err)
	}
	return nil
}

var rowNumberRe = regexp.MustCompile(`(\d+)$`)

func (g *GoogleClient) AppendRow(ctx context.Context, spreadsheetID string, row []string) (int, error) {
	cells := make([]interface{}, 0, len(row))
	for _, cell := range row {
		cells = append(cells, cell)
	}

	resp, err := g.svc.Spreadsheets.Values.
		Append(spreadsheetID, "A:A", &sheets.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append row: %w", err)
	}

	if resp.Updates == nil {
		return 0, fmt.Errorf("append row: response carried no updated range")
	}
	m := rowNumberRe.FindString(resp.Updates.UpdatedRange)
	if m == "" {
		return 0, fmt.Errorf("append row: cannot parse row number from range %q", resp.Updates.UpdatedRange)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("append row: %w", err)
	}
	return n, nil
}
