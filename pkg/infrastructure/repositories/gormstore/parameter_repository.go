package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParameterRepository stores item parameters in mrp_item_parameters
type ParameterRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewParameterRepository(db *gorm.DB) *ParameterRepository {
	return &ParameterRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Verify interface compliance
var _ repositories.ParameterStore = (*ParameterRepository)(nil)

// Upsert inserts the record or, on a (firm_no, item_id) conflict, overwrites
// every parameter column and updated_at
func (r *ParameterRepository) Upsert(ctx context.Context, param *entities.ItemParameter) error {
	now := r.now()
	model := newItemParameterModel(param)
	model.CreatedAt = now
	model.UpdatedAt = now

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "firm_no"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"abcd_classification",
			"planning_type",
			"safety_stock",
			"rop",
			"max",
			"order_quantity",
			"updated_at",
		}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert parameters for %s/%s: %w", param.FirmNo, param.ItemCode, err)
	}
	return nil
}

// Get returns the stored parameters of (firm, item)
func (r *ParameterRepository) Get(ctx context.Context, firm entities.FirmNo, item entities.ItemCode) (*entities.ItemParameter, error) {
	var model ItemParameterModel
	err := r.db.WithContext(ctx).
		Where("firm_no = ? AND item_id = ?", string(firm), string(item)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrParameterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters for %s/%s: %w", firm, item, err)
	}
	return model.toEntity(), nil
}
