package services

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// StockPosition holds the netting figures of one item
type StockPosition struct {
	OnHand     decimal.Decimal
	OpenPO     decimal.Decimal
	NetStock   decimal.Decimal
	ReorderGap decimal.Decimal
	Need       decimal.Decimal
}

// NetStockPosition computes net stock, the gap to the reorder point and the
// resulting need. Need may be negative.
func NetStockPosition(onHand, openPO, reorderPoint, orderQuantity decimal.Decimal) StockPosition {
	net := onHand.Add(openPO)
	gap := reorderPoint.Sub(net)
	return StockPosition{
		OnHand:     onHand,
		OpenPO:     openPO,
		NetStock:   net,
		ReorderGap: gap,
		Need:       orderQuantity.Sub(gap),
	}
}

// QualifiesForMTS reports whether the item gets a replenishment line:
// net stock below the reorder point and an MTS plan type.
func QualifiesForMTS(position StockPosition, eff entities.EffectiveParameter) bool {
	return position.NetStock.LessThan(eff.ReorderPoint) && eff.Plan() == entities.PlanTypeMTS
}
