package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// DemandGateway transmits a finished demand fiche to the ERP
type DemandGateway interface {
	Send(ctx context.Context, firm entities.FirmNo, doc *entities.DemandDocument) error
}

// JournalEntry is an audit record of a transmitted demand fiche
type JournalEntry struct {
	FirmNo   entities.FirmNo
	PeriodNo entities.PeriodNo
	FicheNo  string
	BatchID  string
	Lines    int
	Document *entities.DemandDocument
	SentAt   time.Time
}

// FicheJournal records demand fiches that reached the ERP
type FicheJournal interface {
	Record(ctx context.Context, entry JournalEntry) error
}

// JournalRecord is a stored journal entry. Payload is the fiche as it was sent.
type JournalRecord struct {
	ID       int64
	FirmNo   entities.FirmNo
	PeriodNo entities.PeriodNo
	FicheNo  string
	BatchID  string
	Lines    int
	Payload  json.RawMessage
	SentAt   time.Time
}

// FicheJournalReader looks up journaled fiches. A fiche number can appear
// once per period, so several records may match.
type FicheJournalReader interface {
	ListByFiche(ctx context.Context, firm entities.FirmNo, ficheNo string) ([]JournalRecord, error)
}
