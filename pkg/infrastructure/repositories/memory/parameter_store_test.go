package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
)

func TestParameterStore_UpsertCreatesThenOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewParameterStore()
	clock := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	if _, err := store.Get(ctx, "001", "HM-001"); !errors.Is(err, repositories.ErrParameterNotFound) {
		t.Fatalf("Expected ErrParameterNotFound, got %v", err)
	}

	plan := "MTS"
	store.Upsert(ctx, &entities.ItemParameter{FirmNo: "001", ItemCode: "HM-001", PlanType: &plan, ReorderPoint: decimal.NewFromInt(10)})

	clock = clock.Add(time.Hour)
	store.Upsert(ctx, &entities.ItemParameter{FirmNo: "001", ItemCode: "HM-001", ReorderPoint: decimal.Zero})

	got, err := store.Get(ctx, "001", "HM-001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.PlanType != nil {
		t.Errorf("Expected plan type overwritten with nil, got %q", *got.PlanType)
	}
	if !got.ReorderPoint.IsZero() {
		t.Errorf("Expected reorder point overwritten with 0, got %s", got.ReorderPoint)
	}
	if !got.CreatedAt.Equal(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected CreatedAt preserved, got %v", got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(clock) {
		t.Errorf("Expected UpdatedAt bumped to %v, got %v", clock, got.UpdatedAt)
	}
	if store.Len() != 1 {
		t.Errorf("Expected a single record per (firm, item), got %d", store.Len())
	}
	if len(store.Upserts()) != 2 {
		t.Errorf("Expected 2 upserts recorded, got %d", len(store.Upserts()))
	}
}

func TestParameterStore_KeyedByFirm(t *testing.T) {
	ctx := context.Background()
	store := NewParameterStore()

	store.Upsert(ctx, &entities.ItemParameter{FirmNo: "001", ItemCode: "HM-001"})
	store.Upsert(ctx, &entities.ItemParameter{FirmNo: "002", ItemCode: "HM-001"})

	if store.Len() != 2 {
		t.Errorf("Expected separate records per firm, got %d", store.Len())
	}
	if _, err := store.Get(ctx, "003", "HM-001"); !errors.Is(err, repositories.ErrParameterNotFound) {
		t.Errorf("Expected not found for unknown firm, got %v", err)
	}
}
