package dto

import (
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// ProcessRequest is one inbound planning batch
type ProcessRequest struct {
	FirmNo   entities.FirmNo
	PeriodNo entities.PeriodNo
	Items    []entities.RawItem
}

// ProcessResult summarises a processed batch
type ProcessResult struct {
	Success      bool                   `json:"success"`
	BatchID      string                 `json:"batch_id"`
	FicheNo      string                 `json:"fiche_no"`
	LineCount    int                    `json:"line_count"`
	UpdatedCount int                    `json:"updated_count"`
	Transmitted  bool                   `json:"transmitted"`
	Skipped      []entities.SkippedItem `json:"skipped"`

	Document *entities.DemandDocument `json:"-"`
}
