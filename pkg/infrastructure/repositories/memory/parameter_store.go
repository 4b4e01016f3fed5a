package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
)

type parameterKey struct {
	firm entities.FirmNo
	item entities.ItemCode
}

// ParameterStore provides in-memory parameter storage
type ParameterStore struct {
	mu      sync.RWMutex
	records map[parameterKey]entities.ItemParameter
	// upserts records every Upsert call in order
	upserts []entities.ItemParameter
	now     func() time.Time
}

// NewParameterStore creates a new in-memory parameter store
func NewParameterStore() *ParameterStore {
	return &ParameterStore{
		records: make(map[parameterKey]entities.ItemParameter),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Verify interface compliance
var _ repositories.ParameterStore = (*ParameterStore)(nil)

// Upsert creates or overwrites the record of param's (firm, item) pair
func (s *ParameterStore) Upsert(_ context.Context, param *entities.ItemParameter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := parameterKey{firm: param.FirmNo, item: param.ItemCode}
	now := s.now()
	record := *param
	record.UpdatedAt = now
	if existing, ok := s.records[key]; ok {
		record.CreatedAt = existing.CreatedAt
	} else {
		record.CreatedAt = now
	}

	s.records[key] = record
	s.upserts = append(s.upserts, record)
	return nil
}

// Get returns the stored record for (firm, item)
func (s *ParameterStore) Get(_ context.Context, firm entities.FirmNo, item entities.ItemCode) (*entities.ItemParameter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[parameterKey{firm: firm, item: item}]
	if !ok {
		return nil, repositories.ErrParameterNotFound
	}
	return &record, nil
}

// Seed stores a record without counting it as an upsert
func (s *ParameterStore) Seed(param entities.ItemParameter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[parameterKey{firm: param.FirmNo, item: param.ItemCode}] = param
}

// Upserts returns every upsert received, in order
func (s *ParameterStore) Upserts() []entities.ItemParameter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.ItemParameter(nil), s.upserts...)
}

// Len returns the number of distinct records
func (s *ParameterStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
