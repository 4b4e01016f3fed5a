// Package replenishment turns a planning batch into a single MTS demand fiche.
//
// Items are evaluated one at a time, in input order. Every item's catalog and
// parameter store side effects complete before the next item starts; the
// resulting outcomes are then folded into the document by AssembleDocument.
package replenishment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
	"github.com/vsinha/ropfeed/pkg/domain/services"
	"github.com/vsinha/ropfeed/pkg/infrastructure/events"
	"go.uber.org/zap"
)

// ErrFirmNotFound is returned when the batch's firm is unknown to the catalog
var ErrFirmNotFound = errors.New("firm not found")

// TransmissionError reports a demand fiche the gateway did not accept.
// Parameter and catalog updates of the batch have already been applied.
type TransmissionError struct {
	FicheNo string
	BatchID string
	Err     error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("failed to send demand fiche %s (batch %s): %v", e.FicheNo, e.BatchID, e.Err)
}

func (e *TransmissionError) Unwrap() error { return e.Err }

// SpecialCodeMTS is written to the catalog for every replenished item
const SpecialCodeMTS = "MTS"

// Config holds the resolved settings the pipeline needs
type Config struct {
	Warehouses services.WarehouseIndices
	UserNo     int
}

// DefaultConfig returns warehouses 3/2/1 and acting user 1
func DefaultConfig() Config {
	return Config{
		Warehouses: services.DefaultWarehouseIndices(),
		UserNo:     1,
	}
}

// Dependencies are the collaborators of the pipeline. Journal, Events,
// Logger, Clock and BatchIDs are optional.
type Dependencies struct {
	Catalog    repositories.Catalog
	Parameters repositories.ParameterStore
	Gateway    repositories.DemandGateway
	Journal    repositories.FicheJournal
	Events     events.EventStore
	Logger     *zap.Logger
	Clock      func() time.Time
	// BatchIDs names each batch's event stream; defaults to random UUIDs
	BatchIDs func() string
}

// Service runs planning batches
type Service struct {
	config     Config
	catalog    repositories.Catalog
	parameters repositories.ParameterStore
	gateway    repositories.DemandGateway
	journal    repositories.FicheJournal
	events     events.EventStore
	logger     *zap.Logger
	now        func() time.Time
	newBatchID func() string
}

// NewService creates a replenishment service
func NewService(config Config, deps Dependencies) *Service {
	s := &Service{
		config:     config,
		catalog:    deps.Catalog,
		parameters: deps.Parameters,
		gateway:    deps.Gateway,
		journal:    deps.Journal,
		events:     deps.Events,
		logger:     deps.Logger,
		now:        deps.Clock,
		newBatchID: deps.BatchIDs,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newBatchID == nil {
		s.newBatchID = uuid.NewString
	}
	return s
}

// Process runs one batch: validates the firm, evaluates every item, builds
// the demand fiche and sends it when it has at least one line.
//
// An unknown firm fails before anything is written. A failed transmission is
// returned after all parameter and catalog updates have already been applied;
// those are not rolled back.
func (s *Service) Process(ctx context.Context, req dto.ProcessRequest) (*dto.ProcessResult, error) {
	exists, err := s.catalog.FirmExists(ctx, req.FirmNo)
	if err != nil {
		return nil, fmt.Errorf("failed to validate firm %s: %w", req.FirmNo, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrFirmNotFound, req.FirmNo)
	}

	ficheNo, err := s.catalog.NextFicheNumber(ctx, req.FirmNo, req.PeriodNo)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate demand fiche number for firm %s: %w", req.FirmNo, err)
	}
	header := entities.NewDemandHeader(ficheNo, s.now(), s.config.UserNo)
	batchID := s.newBatchID()

	log := s.logger.With(
		zap.String("batch_id", batchID),
		zap.String("firm_no", string(req.FirmNo)),
		zap.String("period_no", string(req.PeriodNo)),
		zap.String("fiche_no", ficheNo),
	)
	s.publish(batchID, events.BatchStartedEvent, events.BatchStarted{
		FirmNo:   req.FirmNo,
		PeriodNo: req.PeriodNo,
		FicheNo:  ficheNo,
		Items:    len(req.Items),
	})

	outcomes := make([]entities.ItemOutcome, 0, len(req.Items))
	for _, item := range req.Items {
		outcome, err := s.evaluateItem(ctx, req.FirmNo, req.PeriodNo, batchID, item, log)
		if err != nil {
			return nil, fmt.Errorf("failed to process item %s: %w", item.ItemCode, err)
		}
		outcomes = append(outcomes, outcome)
	}

	assembly := AssembleDocument(header, outcomes)
	result := &dto.ProcessResult{
		Success:      true,
		BatchID:      batchID,
		FicheNo:      ficheNo,
		LineCount:    assembly.Document.LineCount,
		UpdatedCount: assembly.UpdatedCount,
		Skipped:      assembly.Skipped,
		Document:     assembly.Document,
	}

	if assembly.Document.LineCount == 0 {
		log.Info("no MTS replenishment needed, demand fiche not sent",
			zap.Int("items", len(req.Items)),
			zap.Int("skipped", len(assembly.Skipped)),
		)
		s.publish(batchID, events.DocumentEmptyEvent, nil)
		return result, nil
	}

	if err := s.gateway.Send(ctx, req.FirmNo, assembly.Document); err != nil {
		log.Error("demand fiche transmission failed", zap.Error(err))
		s.publish(batchID, events.DocumentFailedEvent, events.DocumentFailed{FicheNo: ficheNo, Error: err.Error()})
		return nil, &TransmissionError{FicheNo: ficheNo, BatchID: batchID, Err: err}
	}
	result.Transmitted = true

	log.Info("demand fiche sent",
		zap.Int("lines", assembly.Document.LineCount),
		zap.Int("skipped", len(assembly.Skipped)),
	)
	s.publish(batchID, events.DocumentTransmittedEvent, events.DocumentTransmitted{
		FicheNo:   ficheNo,
		LineCount: assembly.Document.LineCount,
	})
	s.recordJournal(ctx, req, batchID, assembly.Document, log)

	return result, nil
}

// evaluateItem runs the per-item stages and returns the item's outcome
func (s *Service) evaluateItem(
	ctx context.Context,
	firm entities.FirmNo,
	period entities.PeriodNo,
	batchID string,
	item entities.RawItem,
	log *zap.Logger,
) (entities.ItemOutcome, error) {
	eff, skip, err := s.reconcileParameters(ctx, firm, item)
	if err != nil {
		return entities.ItemOutcome{}, err
	}
	s.publish(batchID, events.ParameterUpsertedEvent, events.ParameterUpserted{FirmNo: firm, ItemCode: item.ItemCode})
	if skip != entities.SkipNone {
		log.Warn("item parameters incomplete and no stored fallback, skipping",
			zap.String("item_code", string(item.ItemCode)))
		return s.skipped(batchID, item.ItemCode, skip), nil
	}

	ref, unitCode, err := s.catalog.ResolveItem(ctx, firm, item.ItemCode)
	if err != nil {
		return entities.ItemOutcome{}, fmt.Errorf("failed to resolve item: %w", err)
	}
	if ref == 0 {
		log.Warn("item not found in catalog, skipping", zap.String("item_code", string(item.ItemCode)))
		return s.skipped(batchID, item.ItemCode, entities.SkipUnknownItem), nil
	}

	position, err := s.netStock(ctx, firm, period, ref, eff, item)
	if err != nil {
		return entities.ItemOutcome{}, err
	}

	outcome, err := s.classify(ctx, firm, item.ItemCode, ref, unitCode, eff, position, log)
	if err != nil {
		return entities.ItemOutcome{}, err
	}
	if outcome.Kind == entities.OutcomeLine {
		s.publish(batchID, events.LineDraftedEvent, events.LineDrafted{
			ItemCode:    item.ItemCode,
			Amount:      outcome.Line.Amount,
			SourceIndex: outcome.Line.SourceIndex,
			MeetType:    outcome.Line.MeetType,
		})
	}
	return outcome, nil
}

// netStock reads on-hand and open purchase quantities and nets them
func (s *Service) netStock(
	ctx context.Context,
	firm entities.FirmNo,
	period entities.PeriodNo,
	ref entities.ItemRef,
	eff entities.EffectiveParameter,
	item entities.RawItem,
) (services.StockPosition, error) {
	onHand, err := s.catalog.OnHandQuantity(ctx, firm, period, ref)
	if err != nil {
		return services.StockPosition{}, fmt.Errorf("failed to read stock quantity: %w", err)
	}
	openPO, err := s.catalog.OpenPurchaseQuantity(ctx, firm, period, ref)
	if err != nil {
		return services.StockPosition{}, fmt.Errorf("failed to read open purchase quantity: %w", err)
	}
	return services.NetStockPosition(onHand, openPO, eff.ReorderPoint, item.OrderQuantityValue()), nil
}

func (s *Service) skipped(batchID string, code entities.ItemCode, reason entities.SkipReason) entities.ItemOutcome {
	s.publish(batchID, events.ItemSkippedEvent, events.ItemSkipped{
		Item: entities.SkippedItem{ItemCode: code, Reason: reason},
	})
	return entities.SkippedOutcome(code, reason)
}

func (s *Service) recordJournal(ctx context.Context, req dto.ProcessRequest, batchID string, doc *entities.DemandDocument, log *zap.Logger) {
	if s.journal == nil {
		return
	}
	entry := repositories.JournalEntry{
		FirmNo:   req.FirmNo,
		PeriodNo: req.PeriodNo,
		FicheNo:  doc.FicheNo,
		BatchID:  batchID,
		Lines:    doc.LineCount,
		Document: doc,
		SentAt:   s.now().UTC(),
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		log.Warn("failed to journal demand fiche", zap.Error(err))
	}
}

func (s *Service) publish(batchID, eventType string, data interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendEvent(batchID, events.NewEvent(eventType, batchID, data, s.now())); err != nil {
		s.logger.Debug("failed to publish event", zap.String("event", eventType), zap.Error(err))
	}
}
