package entities

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PlanType is the planning strategy assigned to an item
type PlanType int

const (
	PlanTypeBlank PlanType = iota
	PlanTypeMTS
	PlanTypeMTO
	PlanTypeOther
)

// String method for PlanType enum
func (p PlanType) String() string {
	switch p {
	case PlanTypeBlank:
		return ""
	case PlanTypeMTS:
		return "MTS"
	case PlanTypeMTO:
		return "MTO"
	default:
		return "Other"
	}
}

// ParsePlanType maps a plan type code onto PlanType. Codes are matched
// exactly; "mts" is PlanTypeOther and never opens the replenishment gate.
func ParsePlanType(code string) PlanType {
	switch {
	case IsBlank(code):
		return PlanTypeBlank
	case code == "MTS":
		return PlanTypeMTS
	case code == "MTO":
		return PlanTypeMTO
	default:
		return PlanTypeOther
	}
}

// CardType is the catalog's categorisation of an item
type CardType int

const (
	CardTypeUnknown CardType = iota
	CardTypeRawMaterial
	CardTypeSemiFinished
	CardTypeFinished
)

// Catalog card type codes
const (
	CardTypeCodeRawMaterial  = "10"
	CardTypeCodeSemiFinished = "11"
	CardTypeCodeFinished     = "12"
)

// String method for CardType enum
func (c CardType) String() string {
	switch c {
	case CardTypeRawMaterial:
		return "RawMaterial"
	case CardTypeSemiFinished:
		return "SemiFinished"
	case CardTypeFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// ParseCardType maps a catalog card type code onto CardType
func ParseCardType(code string) CardType {
	switch strings.TrimSpace(code) {
	case CardTypeCodeRawMaterial:
		return CardTypeRawMaterial
	case CardTypeCodeSemiFinished:
		return CardTypeSemiFinished
	case CardTypeCodeFinished:
		return CardTypeFinished
	default:
		return CardTypeUnknown
	}
}

// AbcGrade is the numeric ABC code stored in the catalog's inventory defaults
type AbcGrade int

const (
	AbcGradeNone AbcGrade = iota
	AbcGradeA
	AbcGradeB
	AbcGradeC
)

// String method for AbcGrade enum
func (g AbcGrade) String() string {
	switch g {
	case AbcGradeA:
		return "A"
	case AbcGradeB:
		return "B"
	case AbcGradeC:
		return "C"
	default:
		return ""
	}
}

// ParseAbcGrade maps a classification letter onto its ABC code.
// Matching is case-insensitive under Turkish casing rules and blank-safe.
func ParseAbcGrade(classification string) AbcGrade {
	switch cases.Upper(language.Turkish).String(classification) {
	case "A":
		return AbcGradeA
	case "B":
		return AbcGradeB
	case "C":
		return AbcGradeC
	default:
		return AbcGradeNone
	}
}

// MeetType distinguishes purchase-sourced from production-sourced replenishment
type MeetType int

const (
	MeetTypePurchase MeetType = iota
	MeetTypeProduction
)

// String method for MeetType enum
func (m MeetType) String() string {
	switch m {
	case MeetTypePurchase:
		return "Purchase"
	case MeetTypeProduction:
		return "Production"
	default:
		return "Unknown"
	}
}

// IsBlank reports whether s is empty or whitespace only
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
