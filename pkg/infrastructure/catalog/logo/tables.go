// Package logo reads item master, stock and BOM data straight from a Logo
// ERP database and writes the reorder policy back to it.
package logo

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// Logo table names are built from numbers, never from caller text
func firmNumber(firm entities.FirmNo) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(firm)))
	if err != nil || n < 0 || n > 999 {
		return 0, fmt.Errorf("invalid firm number %q", firm)
	}
	return n, nil
}

func periodNumber(period entities.PeriodNo) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(period)))
	if err != nil || n < 0 || n > 99 {
		return 0, fmt.Errorf("invalid period number %q", period)
	}
	return n, nil
}

// firmTable returns LG_{firm}_{name}, e.g. LG_001_ITEMS
func firmTable(firm entities.FirmNo, name string) (string, error) {
	n, err := firmNumber(firm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LG_%03d_%s", n, name), nil
}

// periodTable returns LG_{firm}_{period}_{name}, e.g. LG_001_01_STINVTOT
func periodTable(firm entities.FirmNo, period entities.PeriodNo, name string) (string, error) {
	f, err := firmNumber(firm)
	if err != nil {
		return "", err
	}
	p, err := periodNumber(period)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LG_%03d_%02d_%s", f, p, name), nil
}

// lastFicheQuery selects the highest purely numeric fiche number. FICHENO is
// a string column, so MAX over it would rank "9" above "00000010", and
// fiches keyed in by hand ("MRP-0042") must not feed the sequence. The CASE
// keeps the cast away from rows the filter rejects.
func lastFicheQuery(table string) string {
	return fmt.Sprintf(`
		SELECT MAX(CASE
			WHEN FICHENO NOT LIKE '%%[^0-9]%%' AND LEN(FICHENO) BETWEEN 1 AND 18
			THEN CAST(FICHENO AS BIGINT)
		END) FROM %s
	`, table)
}

// nextFicheNumber pads the successor of the last numeric fiche to eight digits
func nextFicheNumber(last sql.NullInt64) string {
	if !last.Valid || last.Int64 < 0 {
		return fmt.Sprintf("%08d", 1)
	}
	return fmt.Sprintf("%08d", last.Int64+1)
}
