package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SkipReason explains why an item was dropped from a batch
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipMissingPlanType
	SkipUnknownItem
)

// String method for SkipReason enum
func (r SkipReason) String() string {
	switch r {
	case SkipMissingPlanType:
		return "missing plan type"
	case SkipUnknownItem:
		return "item not found in catalog"
	default:
		return "none"
	}
}

// MarshalText renders the reason for JSON responses
func (r SkipReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a reason rendered by MarshalText
func (r *SkipReason) UnmarshalText(text []byte) error {
	for _, candidate := range []SkipReason{SkipNone, SkipMissingPlanType, SkipUnknownItem} {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown skip reason %q", text)
}

// SkippedItem records an item dropped from a batch
type SkippedItem struct {
	ItemCode ItemCode   `json:"item_code"`
	Reason   SkipReason `json:"reason"`
}

// OutcomeKind discriminates ItemOutcome
type OutcomeKind int

const (
	OutcomeNoLine OutcomeKind = iota
	OutcomeLine
	OutcomeSkipped
)

// LineDraft is a transaction line that has not been numbered yet
type LineDraft struct {
	ItemRef      ItemRef
	Amount       decimal.Decimal
	UnitCode     string
	SourceIndex  int
	MeetType     MeetType
	BOMMasterRef BOMRef
	BOMRevRef    BOMRef
	ClientRef    ClientRef
}

// ItemOutcome is the result of evaluating one batch item
type ItemOutcome struct {
	ItemCode ItemCode
	Kind     OutcomeKind
	Line     LineDraft
	Skip     SkipReason
}

// LineOutcome creates an outcome carrying a transaction line
func LineOutcome(code ItemCode, line LineDraft) ItemOutcome {
	return ItemOutcome{ItemCode: code, Kind: OutcomeLine, Line: line}
}

// SkippedOutcome creates an outcome for a dropped item
func SkippedOutcome(code ItemCode, reason SkipReason) ItemOutcome {
	return ItemOutcome{ItemCode: code, Kind: OutcomeSkipped, Skip: reason}
}

// NoLineOutcome creates an outcome for an item that needs no replenishment
func NoLineOutcome(code ItemCode) ItemOutcome {
	return ItemOutcome{ItemCode: code, Kind: OutcomeNoLine}
}
