package services

import "github.com/vsinha/ropfeed/pkg/domain/entities"

// WarehouseIndices maps card types to their source warehouse
type WarehouseIndices struct {
	Finished     int
	SemiFinished int
	RawMaterial  int
}

// DefaultWarehouseIndices returns the indices used when none are configured
func DefaultWarehouseIndices() WarehouseIndices {
	return WarehouseIndices{Finished: 3, SemiFinished: 2, RawMaterial: 1}
}

// SourcingRoute describes where a replenishment line is sourced from
type SourcingRoute struct {
	CardType       entities.CardType
	WarehouseIndex int
	MeetType       entities.MeetType
	NeedsBOM       bool
	NeedsClientRef bool
}

// Route returns the sourcing route of a card type. Unknown card types get a
// zero route with no lookups.
func Route(cardType entities.CardType, warehouses WarehouseIndices) SourcingRoute {
	switch cardType {
	case entities.CardTypeRawMaterial:
		return SourcingRoute{
			CardType:       cardType,
			WarehouseIndex: warehouses.RawMaterial,
			MeetType:       entities.MeetTypePurchase,
			NeedsClientRef: true,
		}
	case entities.CardTypeSemiFinished:
		return SourcingRoute{
			CardType:       cardType,
			WarehouseIndex: warehouses.SemiFinished,
			MeetType:       entities.MeetTypeProduction,
			NeedsBOM:       true,
		}
	case entities.CardTypeFinished:
		return SourcingRoute{
			CardType:       cardType,
			WarehouseIndex: warehouses.Finished,
			MeetType:       entities.MeetTypeProduction,
			NeedsBOM:       true,
		}
	case entities.CardTypeUnknown:
		return SourcingRoute{CardType: cardType}
	default:
		return SourcingRoute{CardType: entities.CardTypeUnknown}
	}
}
