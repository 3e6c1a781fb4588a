package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

// Client writes row values into Google Sheets
type Client struct {
	values *sheets.SpreadsheetsValuesService
}

// Config holds service-account credentials; one of the two fields is required
type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
}

// NewClient authenticates against the Sheets API
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}

	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{values: service.Spreadsheets.Values}, nil
}

// AppendValues inserts rows after the last populated row of rng
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	if c.values == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	_, err := c.values.Append(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputRaw).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", rng, err)
	}
	return nil
}

// UpdateValues overwrites rows starting at rng
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	if c.values == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	_, err := c.values.Update(spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s: %w", rng, err)
	}
	return nil
}

// ClearValues empties rng, leaving formatting intact
func (c *Client) ClearValues(ctx context.Context, spreadsheetID, rng string) error {
	if c.values == nil {
		return fmt.Errorf("sheets: service is nil")
	}

	if _, err := c.values.Clear(spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: clear %s: %w", rng, err)
	}
	return nil
}
