package logo

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
	"gorm.io/gorm"
)

// Logo enumerations used by the queries below
const (
	trCodePurchaseOrder = 2
	invenNoAll          = -1
	bomTypeProduction   = 1
)

// Catalog implements repositories.Catalog on a Logo (SQL Server) database
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Verify interface compliance
var _ repositories.Catalog = (*Catalog)(nil)

// FirmExists checks the firm registry L_CAPIFIRM
func (c *Catalog) FirmExists(ctx context.Context, firm entities.FirmNo) (bool, error) {
	n, err := firmNumber(firm)
	if err != nil {
		return false, nil
	}
	var count int64
	err = c.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM L_CAPIFIRM WHERE NR = ?
	`, n).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up firm %s: %w", firm, err)
	}
	return count > 0, nil
}

// NextFicheNumber returns the number following the highest demand fiche of the period
func (c *Catalog) NextFicheNumber(ctx context.Context, firm entities.FirmNo, period entities.PeriodNo) (string, error) {
	table, err := periodTable(firm, period, "DEMANDFICHE")
	if err != nil {
		return "", err
	}
	var last sql.NullInt64
	if err := c.db.WithContext(ctx).Raw(lastFicheQuery(table)).Scan(&last).Error; err != nil {
		return "", fmt.Errorf("failed to read last fiche number: %w", err)
	}
	return nextFicheNumber(last), nil
}

// ResolveItem returns the item reference and main unit code
func (c *Catalog) ResolveItem(ctx context.Context, firm entities.FirmNo, item entities.ItemCode) (entities.ItemRef, string, error) {
	items, err := firmTable(firm, "ITEMS")
	if err != nil {
		return 0, "", err
	}
	units, _ := firmTable(firm, "UNITSETL")

	var rows []struct {
		LogicalRef int64
		UnitCode   sql.NullString
	}
	err = c.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT I.LOGICALREF AS logical_ref, U.CODE AS unit_code
		FROM %s I
		LEFT JOIN %s U ON U.UNITSETREF = I.UNITSETREF AND U.MAINUNIT = 1
		WHERE I.CODE = ?
	`, items, units), string(item)).Scan(&rows).Error
	if err != nil {
		return 0, "", fmt.Errorf("failed to resolve item %s: %w", item, err)
	}
	if len(rows) == 0 {
		return 0, "", nil
	}
	return entities.ItemRef(rows[0].LogicalRef), rows[0].UnitCode.String, nil
}

// CardType returns the CARDTYPE column as its numeric code text
func (c *Catalog) CardType(ctx context.Context, firm entities.FirmNo, item entities.ItemCode) (string, error) {
	items, err := firmTable(firm, "ITEMS")
	if err != nil {
		return "", err
	}
	var cardTypes []int
	err = c.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT CARDTYPE FROM %s WHERE CODE = ?
	`, items), string(item)).Scan(&cardTypes).Error
	if err != nil {
		return "", fmt.Errorf("failed to read card type of %s: %w", item, err)
	}
	if len(cardTypes) == 0 {
		return "", nil
	}
	return strconv.Itoa(cardTypes[0]), nil
}

// OnHandQuantity sums the all-warehouse stock totals of the period
func (c *Catalog) OnHandQuantity(ctx context.Context, firm entities.FirmNo, period entities.PeriodNo, ref entities.ItemRef) (decimal.Decimal, error) {
	table, err := periodTable(firm, period, "STINVTOT")
	if err != nil {
		return decimal.Zero, err
	}
	var result struct{ Total decimal.Decimal }
	err = c.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT COALESCE(SUM(ONHAND), 0) AS total
		FROM %s
		WHERE STOCKREF = ? AND INVENNO = ?
	`, table), int64(ref), invenNoAll).Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read stock of item %d: %w", ref, err)
	}
	return result.Total, nil
}

// OpenPurchaseQuantity sums the unshipped amounts of open purchase order lines
func (c *Catalog) OpenPurchaseQuantity(ctx context.Context, firm entities.FirmNo, period entities.PeriodNo, ref entities.ItemRef) (decimal.Decimal, error) {
	table, err := periodTable(firm, period, "ORFLINE")
	if err != nil {
		return decimal.Zero, err
	}
	var result struct{ Total decimal.Decimal }
	err = c.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT COALESCE(SUM(AMOUNT - SHIPPEDAMOUNT), 0) AS total
		FROM %s
		WHERE STOCKREF = ? AND TRCODE = ? AND CLOSED = 0
	`, table), int64(ref), trCodePurchaseOrder).Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read open orders of item %d: %w", ref, err)
	}
	return result.Total, nil
}

// ClientRef returns the highest-priority supplier assigned to the item
func (c *Catalog) ClientRef(ctx context.Context, firm entities.FirmNo, ref entities.ItemRef) (entities.ClientRef, error) {
	table, err := firmTable(firm, "SUPPASGN")
	if err != nil {
		return 0, err
	}
	var refs []int64
	err = c.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT TOP 1 CLIENTREF FROM %s WHERE ITEMREF = ? ORDER BY PRIORITY
	`, table), int64(ref)).Scan(&refs).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read supplier of item %d: %w", ref, err)
	}
	if len(refs) == 0 {
		return 0, nil
	}
	return entities.ClientRef(refs[0]), nil
}

// BOMRefs returns the latest production BOM of the item and its valid revision
func (c *Catalog) BOMRefs(ctx context.Context, firm entities.FirmNo, ref entities.ItemRef) (entities.BOMRef, entities.BOMRef, error) {
	table, err := firmTable(firm, "BOMASTER")
	if err != nil {
		return 0, 0, err
	}
	var rows []struct {
		LogicalRef  int64
		ValidRevRef int64
	}
	err = c.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT TOP 1 LOGICALREF AS logical_ref, VALIDREVREF AS valid_rev_ref
		FROM %s
		WHERE MAINPRODREF = ? AND BOMTYPE = ?
		ORDER BY LOGICALREF DESC
	`, table), int64(ref), bomTypeProduction).Scan(&rows).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read BOM of item %d: %w", ref, err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return entities.BOMRef(rows[0].LogicalRef), entities.BOMRef(rows[0].ValidRevRef), nil
}

// UpdateSpecialCode writes SPECODE2 of the item
func (c *Catalog) UpdateSpecialCode(ctx context.Context, firm entities.FirmNo, ref entities.ItemRef, code string) error {
	items, err := firmTable(firm, "ITEMS")
	if err != nil {
		return err
	}
	err = c.db.WithContext(ctx).Exec(fmt.Sprintf(`
		UPDATE %s SET SPECODE2 = ? WHERE LOGICALREF = ?
	`, items), code, int64(ref)).Error
	if err != nil {
		return fmt.Errorf("failed to update special code of item %d: %w", ref, err)
	}
	return nil
}

// UpdateInventoryDefaults updates the INVDEF row of (item, warehouse),
// inserting it when the item has none for that warehouse yet
func (c *Catalog) UpdateInventoryDefaults(ctx context.Context, firm entities.FirmNo, defaults entities.InventoryDefaults) error {
	table, err := firmTable(firm, "INVDEF")
	if err != nil {
		return err
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(fmt.Sprintf(`
			UPDATE %s
			SET MINLEVEL = ?, MAXLEVEL = ?, SAFELEVEL = ?, ABCCODE = ?
			WHERE ITEMREF = ? AND INVENNO = ?
		`, table),
			defaults.ReorderPoint, defaults.Max, defaults.SafetyStock, int(defaults.AbcCode),
			int64(defaults.ItemRef), defaults.WarehouseIndex)
		if result.Error != nil {
			return fmt.Errorf("failed to update inventory defaults of item %d: %w", defaults.ItemRef, result.Error)
		}
		if result.RowsAffected > 0 {
			return nil
		}

		err := tx.Exec(fmt.Sprintf(`
			INSERT INTO %s (ITEMREF, INVENNO, MINLEVEL, MAXLEVEL, SAFELEVEL, ABCCODE)
			VALUES (?, ?, ?, ?, ?, ?)
		`, table),
			int64(defaults.ItemRef), defaults.WarehouseIndex,
			defaults.ReorderPoint, defaults.Max, defaults.SafetyStock, int(defaults.AbcCode)).Error
		if err != nil {
			return fmt.Errorf("failed to insert inventory defaults of item %d: %w", defaults.ItemRef, err)
		}
		return nil
	})
}
