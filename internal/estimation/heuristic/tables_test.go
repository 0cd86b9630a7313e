package heuristic

import (
	"os"
	"path/filepath"
	"testing"

	"estimation_backend/internal/estimation/domain"
)

func writeTables(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write tables file: %v", err)
	}
	return path
}

func TestLoadTablesEmptyPathReturnsDefaults(t *testing.T) {
	tables, err := LoadTables("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tables.BaseRates["austin"] != 220 {
		t.Fatalf("austin rate = %v, want default 220", tables.BaseRates["austin"])
	}
	if tables.ScoreWeights.Budget != WeightBudget {
		t.Fatalf("budget weight = %v, want %v", tables.ScoreWeights.Budget, WeightBudget)
	}
}

func TestLoadTablesOverrides(t *testing.T) {
	path := writeTables(t, `
base_rates:
  austin: 250
  smallville: 90
default_rate: 150
`)
	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tables.BaseRates["austin"] != 250 || tables.BaseRates["smallville"] != 90 {
		t.Fatalf("base rates not overridden: %v", tables.BaseRates)
	}
	if tables.DefaultRate != 150 {
		t.Fatalf("default rate = %v, want 150", tables.DefaultRate)
	}

	e := New(tables)
	e.SetClock(fixedClock(2026))
	res := e.Valuation(domain.ValuationRequest{Location: "Smallville", Area: 1000, PropertyType: domain.PropertyApartment})
	// 90 * 1000 * 0.9 default age multiplier
	if res.EstimatedValue != 81_000 {
		t.Fatalf("EstimatedValue = %v, want 81000", res.EstimatedValue)
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadTablesRejectsBadYAML(t *testing.T) {
	path := writeTables(t, "base_rates: [not a map")
	if _, err := LoadTables(path); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestLoadTablesRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative rate", "base_rates:\n  austin: -10\n"},
		{"weight above one", "score_weights:\n  budget: 1.5\n"},
		{"negative match weight", "match_weights:\n  price: -0.2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTables(t, tc.content)
			if _, err := LoadTables(path); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
