package google

import (
	"context"
	"strings"
	"testing"
	"time"

	"mercado/internal/core"
)

func TestNewFromEnv_MissingSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")

	_, err := NewFromEnv(context.Background())
	if err == nil {
		t.Fatal("expected error for missing GOOGLE_SPREADSHEET_ID")
	}
	if err.Error() != "missing GOOGLE_SPREADSHEET_ID" {
		t.Errorf("unexpected error: %v", err)
	}
}

func clearOAuthEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GOOGLE_OAUTH_CLIENT_JSON", "GOOGLE_OAUTH_CLIENT_FILE", "GOOGLE_OAUTH_TOKEN_JSON", "GOOGLE_OAUTH_TOKEN_FILE"} {
		t.Setenv(k, "")
	}
}

func TestNewSheetsService_MissingCredentials(t *testing.T) {
	clearOAuthEnv(t)
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := newSheetsService(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("expected missing credentials error, got %v", err)
	}
}

func TestNewSheetsService_UnreadableFile(t *testing.T) {
	clearOAuthEnv(t)
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "/does/not/exist.json")

	_, err := newSheetsService(context.Background())
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected file error, got %v", err)
	}
}

func TestClient_UninitializedService(t *testing.T) {
	c := New(nil, "sheet-id", "")
	if c.summarySheet != "Resumen" {
		t.Errorf("default sheet = %q", c.summarySheet)
	}
	if _, err := c.ExportList(context.Background(), core.ListSummary{List: core.ShoppingList{ID: "l1"}}); err == nil {
		t.Error("expected error without service")
	}
	if err := c.RemoveList(context.Background(), "l1"); err == nil {
		t.Error("expected error without service")
	}
}

func TestSummaryRow(t *testing.T) {
	s := core.ListSummary{
		List:         core.ShoppingList{ID: "l1", Name: "Mercado inicial", Budget: 200000},
		Total:        28200,
		Progress:     14,
		Remaining:    171800,
		ItemCount:    2,
		CheckedCount: 1,
		ByCategory: []core.GroupTotal{
			{Key: "c1", Name: "Abarrotes", Total: 9000, Resolved: true},
			{Key: "gone", Total: 19200},
		},
		ByStore: []core.GroupTotal{{Key: "", Total: 28200}},
	}
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.FixedZone("COT", -5*3600))

	row := summaryRow(s, at)
	if len(row) != len(Header) {
		t.Fatalf("row has %d cells, header %d", len(row), len(Header))
	}
	if row[0] != "l1" || row[3] != 28200.0 || row[4] != 14 {
		t.Errorf("unexpected leading cells %v", row[:5])
	}
	if row[8] != "Abarrotes: 9000; gone: 19200" {
		t.Errorf("categories cell = %q", row[8])
	}
	if row[9] != "-: 28200" {
		t.Errorf("stores cell = %q", row[9])
	}
	if row[10] != "2025-06-01T14:30:00Z" {
		t.Errorf("timestamp cell = %q", row[10])
	}
}

func TestFindRow(t *testing.T) {
	values := [][]any{{"List ID"}, {"l1"}, {}, {" l2 "}}
	tests := []struct {
		id   string
		want int
	}{
		{"l1", 2},
		{"l2", 4},
		{"l3", 0},
	}
	for _, tt := range tests {
		if got := findRow(values, tt.id); got != tt.want {
			t.Errorf("findRow(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestRowRange(t *testing.T) {
	c := New(nil, "id", "Resumen")
	if got := c.rowRange(7); got != "Resumen!A7:K7" {
		t.Errorf("rowRange = %q", got)
	}
}
