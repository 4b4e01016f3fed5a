package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
)

// Gateway records demand fiches instead of transmitting them
type Gateway struct {
	mu   sync.Mutex
	sent []*entities.DemandDocument
	// Err, when set, is returned by Send and nothing is recorded
	Err error
}

// NewGateway creates a recording gateway
func NewGateway() *Gateway {
	return &Gateway{}
}

// Verify interface compliance
var _ repositories.DemandGateway = (*Gateway)(nil)

// Send records doc
func (g *Gateway) Send(_ context.Context, _ entities.FirmNo, doc *entities.DemandDocument) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return g.Err
	}
	g.sent = append(g.sent, doc)
	return nil
}

// Sent returns every recorded document
func (g *Gateway) Sent() []*entities.DemandDocument {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*entities.DemandDocument(nil), g.sent...)
}

// Journal keeps journal entries in memory
type Journal struct {
	mu      sync.Mutex
	entries []repositories.JournalEntry
}

// NewJournal creates an in-memory fiche journal
func NewJournal() *Journal {
	return &Journal{}
}

// Verify interface compliance
var (
	_ repositories.FicheJournal       = (*Journal)(nil)
	_ repositories.FicheJournalReader = (*Journal)(nil)
)

// Record appends entry
func (j *Journal) Record(_ context.Context, entry repositories.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	return nil
}

// Entries returns the recorded entries
func (j *Journal) Entries() []repositories.JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]repositories.JournalEntry(nil), j.entries...)
}

// ListByFiche returns the entries of a firm's fiche, newest first. IDs are
// 1-based positions in the journal.
func (j *Journal) ListByFiche(_ context.Context, firm entities.FirmNo, ficheNo string) ([]repositories.JournalRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	records := []repositories.JournalRecord{}
	for i, entry := range j.entries {
		if entry.FirmNo != firm || entry.FicheNo != ficheNo {
			continue
		}
		payload, err := json.Marshal(dto.NewLogoDemandFiche(entry.Document))
		if err != nil {
			return nil, fmt.Errorf("failed to encode fiche %s: %w", ficheNo, err)
		}
		records = append(records, repositories.JournalRecord{
			ID:       int64(i + 1),
			FirmNo:   entry.FirmNo,
			PeriodNo: entry.PeriodNo,
			FicheNo:  entry.FicheNo,
			BatchID:  entry.BatchID,
			Lines:    entry.Lines,
			Payload:  payload,
			SentAt:   entry.SentAt,
		})
	}
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].SentAt.After(records[b].SentAt)
	})
	return records, nil
}
