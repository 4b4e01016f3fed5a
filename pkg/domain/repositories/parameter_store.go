package repositories

import (
	"context"
	"errors"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// ErrParameterNotFound is returned when no parameter record exists for a (firm, item) pair
var ErrParameterNotFound = errors.New("item parameter not found")

// ParameterStore persists per-(firm, item) tuning parameters
type ParameterStore interface {
	// Upsert creates the record on first contact and otherwise overwrites
	// every field and bumps UpdatedAt.
	Upsert(ctx context.Context, param *entities.ItemParameter) error
	// Get returns ErrParameterNotFound when the pair has no record.
	Get(ctx context.Context, firm entities.FirmNo, item entities.ItemCode) (*entities.ItemParameter, error)
}
