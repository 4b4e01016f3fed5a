package gormstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JournalRepository stores transmitted demand fiches in mrp_fiche_journal
type JournalRepository struct {
	db   *gorm.DB
	node *snowflake.Node
}

// NewJournalRepository creates a journal whose ids come from the given
// snowflake node (0-1023)
func NewJournalRepository(db *gorm.DB, nodeID int64) (*JournalRepository, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &JournalRepository{db: db, node: node}, nil
}

// Verify interface compliance
var (
	_ repositories.FicheJournal       = (*JournalRepository)(nil)
	_ repositories.FicheJournalReader = (*JournalRepository)(nil)
)

// Record stores entry with the fiche's wire payload
func (r *JournalRepository) Record(ctx context.Context, entry repositories.JournalEntry) error {
	model, err := r.newModel(entry)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to journal fiche %s: %w", entry.FicheNo, err)
	}
	return nil
}

func (r *JournalRepository) newModel(entry repositories.JournalEntry) (FicheJournalModel, error) {
	payload, err := json.Marshal(dto.NewLogoDemandFiche(entry.Document))
	if err != nil {
		return FicheJournalModel{}, fmt.Errorf("failed to encode fiche %s: %w", entry.FicheNo, err)
	}
	return FicheJournalModel{
		ID:       r.node.Generate(),
		FirmNo:   string(entry.FirmNo),
		PeriodNo: string(entry.PeriodNo),
		FicheNo:  entry.FicheNo,
		BatchID:  entry.BatchID,
		Lines:    entry.Lines,
		Payload:  datatypes.JSON(payload),
		SentAt:   entry.SentAt,
	}, nil
}

// ListByFiche returns the journal rows of a firm's fiche, newest first
func (r *JournalRepository) ListByFiche(ctx context.Context, firm entities.FirmNo, ficheNo string) ([]repositories.JournalRecord, error) {
	var rows []FicheJournalModel
	err := r.db.WithContext(ctx).
		Where("firm_no = ? AND fiche_no = ?", string(firm), ficheNo).
		Order("sent_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read journal of fiche %s: %w", ficheNo, err)
	}

	records := make([]repositories.JournalRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}
