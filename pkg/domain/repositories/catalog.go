package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// Catalog provides item master, stock and BOM data of the ERP, scoped by firm
type Catalog interface {
	FirmExists(ctx context.Context, firm entities.FirmNo) (bool, error)
	NextFicheNumber(ctx context.Context, firm entities.FirmNo, period entities.PeriodNo) (string, error)

	// ResolveItem returns a zero ItemRef when the item is unknown.
	ResolveItem(ctx context.Context, firm entities.FirmNo, item entities.ItemCode) (entities.ItemRef, string, error)
	CardType(ctx context.Context, firm entities.FirmNo, item entities.ItemCode) (string, error)

	OnHandQuantity(ctx context.Context, firm entities.FirmNo, period entities.PeriodNo, ref entities.ItemRef) (decimal.Decimal, error)
	OpenPurchaseQuantity(ctx context.Context, firm entities.FirmNo, period entities.PeriodNo, ref entities.ItemRef) (decimal.Decimal, error)

	ClientRef(ctx context.Context, firm entities.FirmNo, ref entities.ItemRef) (entities.ClientRef, error)
	BOMRefs(ctx context.Context, firm entities.FirmNo, ref entities.ItemRef) (master entities.BOMRef, revision entities.BOMRef, err error)

	UpdateSpecialCode(ctx context.Context, firm entities.FirmNo, ref entities.ItemRef, code string) error
	UpdateInventoryDefaults(ctx context.Context, firm entities.FirmNo, defaults entities.InventoryDefaults) error
}
