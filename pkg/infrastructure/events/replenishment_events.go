package events

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

const (
	BatchStartedEvent        = "batch.started"
	ParameterUpsertedEvent   = "parameter.upserted"
	ItemSkippedEvent         = "item.skipped"
	LineDraftedEvent         = "line.drafted"
	DocumentTransmittedEvent = "document.transmitted"
	DocumentEmptyEvent       = "document.empty"
	DocumentFailedEvent      = "document.failed"
)

// ReplenishmentEventTypes lists every event a batch can publish
var ReplenishmentEventTypes = []string{
	BatchStartedEvent,
	ParameterUpsertedEvent,
	ItemSkippedEvent,
	LineDraftedEvent,
	DocumentTransmittedEvent,
	DocumentEmptyEvent,
	DocumentFailedEvent,
}

type BatchStarted struct {
	FirmNo   entities.FirmNo   `json:"firm_no"`
	PeriodNo entities.PeriodNo `json:"period_no"`
	FicheNo  string            `json:"fiche_no"`
	Items    int               `json:"items"`
}

type ParameterUpserted struct {
	FirmNo   entities.FirmNo   `json:"firm_no"`
	ItemCode entities.ItemCode `json:"item_code"`
}

type ItemSkipped struct {
	Item entities.SkippedItem `json:"item"`
}

type LineDrafted struct {
	ItemCode    entities.ItemCode `json:"item_code"`
	Amount      decimal.Decimal   `json:"amount"`
	SourceIndex int               `json:"source_index"`
	MeetType    entities.MeetType `json:"meet_type"`
}

type DocumentTransmitted struct {
	FicheNo   string `json:"fiche_no"`
	LineCount int    `json:"line_count"`
}

type DocumentFailed struct {
	FicheNo string `json:"fiche_no"`
	Error   string `json:"error"`
}
