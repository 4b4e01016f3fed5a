package replenishment

import (
	"context"
	"errors"
	"fmt"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
	"github.com/vsinha/ropfeed/pkg/domain/services"
)

// reconcileParameters records the caller's parameters and returns the
// effective set for this batch.
//
// The stored record is read before the upsert so the fallback sees the
// previously tuned values rather than the submission being recorded.
func (s *Service) reconcileParameters(
	ctx context.Context,
	firm entities.FirmNo,
	item entities.RawItem,
) (entities.EffectiveParameter, entities.SkipReason, error) {
	var stored *entities.ItemParameter
	if services.NeedsFallback(item) {
		param, err := s.parameters.Get(ctx, firm, item.ItemCode)
		switch {
		case errors.Is(err, repositories.ErrParameterNotFound):
		case err != nil:
			return entities.EffectiveParameter{}, entities.SkipNone, fmt.Errorf("failed to read stored parameters: %w", err)
		default:
			stored = param
		}
	}

	if err := s.parameters.Upsert(ctx, entities.NewItemParameter(firm, item)); err != nil {
		return entities.EffectiveParameter{}, entities.SkipNone, fmt.Errorf("failed to upsert parameters: %w", err)
	}

	eff, skip := services.MergeParameters(item, stored)
	return eff, skip, nil
}
