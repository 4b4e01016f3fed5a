package gormstore

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
	"gorm.io/datatypes"
)

// ItemParameterModel is a row of mrp_item_parameters
type ItemParameterModel struct {
	ID             uint            `gorm:"primaryKey"`
	FirmNo         string          `gorm:"size:25;not null;uniqueIndex:ix_mrp_item_parameters_firm_item,priority:1"`
	ItemID         string          `gorm:"size:25;not null;uniqueIndex:ix_mrp_item_parameters_firm_item,priority:2"`
	Classification *string         `gorm:"column:abcd_classification;size:10"`
	PlanningType   *string         `gorm:"size:10"`
	SafetyStock    decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	ROP            decimal.Decimal `gorm:"column:rop;type:decimal(18,6);not null;default:0"`
	Max            decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	OrderQuantity  decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

func (ItemParameterModel) TableName() string { return "mrp_item_parameters" }

func newItemParameterModel(p *entities.ItemParameter) ItemParameterModel {
	return ItemParameterModel{
		FirmNo:         string(p.FirmNo),
		ItemID:         string(p.ItemCode),
		Classification: p.Classification,
		PlanningType:   p.PlanType,
		SafetyStock:    p.SafetyStock,
		ROP:            p.ReorderPoint,
		Max:            p.Max,
		OrderQuantity:  p.OrderQuantity,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (m ItemParameterModel) toEntity() *entities.ItemParameter {
	return &entities.ItemParameter{
		FirmNo:         entities.FirmNo(m.FirmNo),
		ItemCode:       entities.ItemCode(m.ItemID),
		Classification: m.Classification,
		PlanType:       m.PlanningType,
		SafetyStock:    m.SafetyStock,
		ReorderPoint:   m.ROP,
		Max:            m.Max,
		OrderQuantity:  m.OrderQuantity,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

// FicheJournalModel is a row of mrp_fiche_journal
type FicheJournalModel struct {
	ID       snowflake.ID   `gorm:"primaryKey;autoIncrement:false"`
	FirmNo   string         `gorm:"size:25;not null;index:ix_mrp_fiche_journal_fiche,priority:1"`
	PeriodNo string         `gorm:"size:10;not null"`
	FicheNo  string         `gorm:"size:25;not null;index:ix_mrp_fiche_journal_fiche,priority:2"`
	BatchID  string         `gorm:"size:36;not null;index"`
	Lines    int            `gorm:"not null"`
	Payload  datatypes.JSON `gorm:"not null"`
	SentAt   time.Time      `gorm:"not null"`
}

func (FicheJournalModel) TableName() string { return "mrp_fiche_journal" }

func (m FicheJournalModel) toRecord() repositories.JournalRecord {
	return repositories.JournalRecord{
		ID:       m.ID.Int64(),
		FirmNo:   entities.FirmNo(m.FirmNo),
		PeriodNo: entities.PeriodNo(m.PeriodNo),
		FicheNo:  m.FicheNo,
		BatchID:  m.BatchID,
		Lines:    m.Lines,
		Payload:  json.RawMessage(m.Payload),
		SentAt:   m.SentAt.UTC(),
	}
}
