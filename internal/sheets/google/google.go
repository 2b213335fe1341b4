package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"mercado/internal/cache"
	"mercado/internal/core"
	ports "mercado/internal/sheets"
)

const rowCacheTTL = 10 * time.Minute

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	summarySheet  string
	now           func() time.Time

	// rows remembers where each list was written so re-exports skip the lookup.
	rows *cache.LRUCache[int]
}

var _ ports.SummaryExporter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Optional: GOOGLE_SHEET_NAME (default "Resumen")
// Credentials: a user OAuth client plus token (GOOGLE_OAUTH_CLIENT_JSON or
// _FILE, GOOGLE_OAUTH_TOKEN_JSON or _FILE), otherwise a service account via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheet := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return New(svc, spreadsheetID, sheet), nil
}

// New wraps an existing service.
func New(svc *gsheet.Service, spreadsheetID, sheet string) *Client {
	if sheet == "" {
		sheet = "Resumen"
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		summarySheet:  sheet,
		now:           time.Now,
		rows:          cache.NewLRUCache[int](256, rowCacheTTL),
	}
}

// newSheetsService initializes a Sheets Service, preferring user OAuth
// credentials over a service account.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	httpClient, err := oauthHTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		service, err := gsheet.NewService(ctx, goption.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("create sheets service: %w", err)
		}
		slog.InfoContext(ctx, "Google Sheets service created", "auth", "oauth")
		return service, nil
	}

	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created", "credentials_size", len(credentialsJSON))
	return service, nil
}

// ExportList writes the summary row of a list, updating it in place when the
// list was exported before and appending it otherwise.
func (c *Client) ExportList(ctx context.Context, s core.ListSummary) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if s.List.ID == "" {
		return "", errors.New("summary without list id")
	}

	row, err := c.rowOf(ctx, s.List.ID)
	if err != nil {
		return "", err
	}
	if row == 0 {
		row, err = c.nextRow(ctx)
		if err != nil {
			return "", err
		}
	}

	rng := c.rowRange(row)
	vr := &gsheet.ValueRange{Values: [][]any{summaryRow(s, c.now())}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		c.rows.Delete(s.List.ID)
		return "", fmt.Errorf("update %s: %w", rng, err)
	}
	c.rows.Set(s.List.ID, row)
	return rng, nil
}

func (c *Client) RemoveList(ctx context.Context, listID string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	row, err := c.rowOf(ctx, listID)
	if err != nil || row == 0 {
		return err
	}
	rng := c.rowRange(row)
	vr := &gsheet.ValueRange{Values: [][]any{blankRow(len(Header))}}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	c.rows.Delete(listID)
	return nil
}

func (c *Client) rowRange(row int) string {
	return fmt.Sprintf("%s!A%d:%s%d", c.summarySheet, row, lastColumn(len(Header)), row)
}

func (c *Client) readIDs(ctx context.Context) ([][]any, error) {
	rng := fmt.Sprintf("%s!A:A", c.summarySheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// rowOf returns the row of listID, 0 when it was never exported.
func (c *Client) rowOf(ctx context.Context, listID string) (int, error) {
	if row, ok := c.rows.Get(listID); ok {
		return row, nil
	}
	values, err := c.readIDs(ctx)
	if err != nil {
		return 0, err
	}
	return findRow(values, listID), nil
}

// nextRow returns the first free row, writing the header on an empty sheet.
func (c *Client) nextRow(ctx context.Context) (int, error) {
	values, err := c.readIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		vr := &gsheet.ValueRange{Values: [][]any{Header}}
		if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.rowRange(1), vr).
			ValueInputOption("RAW").Context(ctx).Do(); err != nil {
			return 0, fmt.Errorf("write header: %w", err)
		}
		return 2, nil
	}
	return len(values) + 1, nil
}
