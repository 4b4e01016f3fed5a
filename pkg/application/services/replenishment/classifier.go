package replenishment

import (
	"context"
	"fmt"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/services"
	"go.uber.org/zap"
)

// classify applies the MTS gate and, when it passes, routes the item by card
// type, pushes the catalog updates and drafts the transaction line.
func (s *Service) classify(
	ctx context.Context,
	firm entities.FirmNo,
	code entities.ItemCode,
	ref entities.ItemRef,
	unitCode string,
	eff entities.EffectiveParameter,
	position services.StockPosition,
	log *zap.Logger,
) (entities.ItemOutcome, error) {
	if !services.QualifiesForMTS(position, eff) {
		return entities.NoLineOutcome(code), nil
	}

	cardCode, err := s.catalog.CardType(ctx, firm, code)
	if err != nil {
		return entities.ItemOutcome{}, fmt.Errorf("failed to read card type: %w", err)
	}
	route := services.Route(entities.ParseCardType(cardCode), s.config.Warehouses)

	line := entities.LineDraft{
		ItemRef:     ref,
		Amount:      position.Need,
		UnitCode:    unitCode,
		SourceIndex: route.WarehouseIndex,
		MeetType:    route.MeetType,
	}

	switch {
	case route.NeedsClientRef:
		line.ClientRef, err = s.catalog.ClientRef(ctx, firm, ref)
		if err != nil {
			return entities.ItemOutcome{}, fmt.Errorf("failed to read client reference: %w", err)
		}
	case route.NeedsBOM:
		line.BOMMasterRef, line.BOMRevRef, err = s.catalog.BOMRefs(ctx, firm, ref)
		if err != nil {
			return entities.ItemOutcome{}, fmt.Errorf("failed to read BOM references: %w", err)
		}
	case route.CardType == entities.CardTypeUnknown:
		log.Debug("unknown card type",
			zap.String("card_type", cardCode),
			zap.String("item_code", string(code)))
	}

	if err := s.catalog.UpdateSpecialCode(ctx, firm, ref, SpecialCodeMTS); err != nil {
		return entities.ItemOutcome{}, fmt.Errorf("failed to update special code: %w", err)
	}

	defaults := entities.InventoryDefaults{
		ItemRef:        ref,
		ReorderPoint:   eff.ReorderPoint,
		Max:            eff.Max,
		SafetyStock:    eff.SafetyStock,
		AbcCode:        eff.Abc(),
		WarehouseIndex: route.WarehouseIndex,
	}
	if err := s.catalog.UpdateInventoryDefaults(ctx, firm, defaults); err != nil {
		return entities.ItemOutcome{}, fmt.Errorf("failed to update inventory defaults: %w", err)
	}

	return entities.LineOutcome(code, line), nil
}
