package services

import (
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// NeedsFallback reports whether raw lacks a required parameter.
// A zero reorder point counts as missing.
func NeedsFallback(raw entities.RawItem) bool {
	return entities.IsBlank(raw.PlanTypeValue()) || raw.ReorderPointValue().IsZero()
}

// MergeParameters builds the effective parameters of raw.
//
// Caller values win. When NeedsFallback is true, blank or zero fields are
// backfilled from stored; a nil stored record or one without a plan type
// drops the item with SkipMissingPlanType.
func MergeParameters(raw entities.RawItem, stored *entities.ItemParameter) (entities.EffectiveParameter, entities.SkipReason) {
	eff := entities.EffectiveParameter{
		Classification: raw.ClassificationValue(),
		PlanType:       raw.PlanTypeValue(),
		SafetyStock:    raw.SafetyStockValue(),
		ReorderPoint:   raw.ReorderPointValue(),
		Max:            raw.MaxValue(),
	}

	if !NeedsFallback(raw) {
		return eff, entities.SkipNone
	}

	if stored == nil || entities.IsBlank(stored.PlanTypeValue()) {
		return entities.EffectiveParameter{}, entities.SkipMissingPlanType
	}

	if entities.IsBlank(eff.Classification) {
		eff.Classification = stored.ClassificationValue()
	}
	if entities.IsBlank(eff.PlanType) {
		eff.PlanType = stored.PlanTypeValue()
	}
	if eff.SafetyStock.IsZero() {
		eff.SafetyStock = stored.SafetyStock
	}
	if eff.ReorderPoint.IsZero() {
		eff.ReorderPoint = stored.ReorderPoint
	}
	if eff.Max.IsZero() {
		eff.Max = stored.Max
	}

	return eff, entities.SkipNone
}
