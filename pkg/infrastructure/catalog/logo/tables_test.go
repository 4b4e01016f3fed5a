package logo

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

func TestFirmTable(t *testing.T) {
	tests := []struct {
		firm    entities.FirmNo
		want    string
		wantErr bool
	}{
		{"1", "LG_001_ITEMS", false},
		{"001", "LG_001_ITEMS", false},
		{" 125 ", "LG_125_ITEMS", false},
		{"1000", "", true},
		{"1; DROP TABLE X", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := firmTable(tt.firm, "ITEMS")
		if (err != nil) != tt.wantErr {
			t.Errorf("firmTable(%q) error = %v, wantErr %v", tt.firm, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("firmTable(%q) = %q, want %q", tt.firm, got, tt.want)
		}
	}
}

func TestPeriodTable(t *testing.T) {
	got, err := periodTable("1", "3", "STINVTOT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "LG_001_03_STINVTOT" {
		t.Errorf("expected LG_001_03_STINVTOT, got %s", got)
	}

	if _, err := periodTable("1", "100", "STINVTOT"); err == nil {
		t.Error("expected error for period 100")
	}
}

func TestNextFicheNumber(t *testing.T) {
	tests := []struct {
		name string
		last sql.NullInt64
		want string
	}{
		{"empty period", sql.NullInt64{}, "00000001"},
		{"padded", sql.NullInt64{Int64: 41, Valid: true}, "00000042"},
		{"carry", sql.NullInt64{Int64: 99, Valid: true}, "00000100"},
		{"wider than eight digits", sql.NullInt64{Int64: 123456789, Valid: true}, "123456790"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextFicheNumber(tt.last); got != tt.want {
				t.Errorf("nextFicheNumber(%v) = %q, want %q", tt.last, got, tt.want)
			}
		})
	}
}

func TestLastFicheQuery_RanksNumericFichesOnly(t *testing.T) {
	q := lastFicheQuery("LG_001_01_DEMANDFICHE")

	for _, want := range []string{
		"THEN CAST(FICHENO AS BIGINT)",
		"END) FROM LG_001_01_DEMANDFICHE",
		"FICHENO NOT LIKE '%[^0-9]%'",
		"LEN(FICHENO) BETWEEN 1 AND 18",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query is missing %q:\n%s", want, q)
		}
	}
	if strings.Contains(q, "MAX(FICHENO)") {
		t.Errorf("query ranks FICHENO as text:\n%s", q)
	}
}
