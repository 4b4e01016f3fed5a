package handler

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/application/services/replenishment"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"go.uber.org/zap"
)

// Processor runs one planning batch
type Processor interface {
	Process(ctx context.Context, req dto.ProcessRequest) (*dto.ProcessResult, error)
}

// ProcessMrpRequest is the JSON body of POST /api/v1/mrp/process
type ProcessMrpRequest struct {
	FirmNo   string           `json:"firmNo"`
	PeriodNr string           `json:"periodNr"`
	Items    []MrpItemRequest `json:"items"`
}

// MrpItemRequest is one batch entry. Omitted or null fields stay absent.
type MrpItemRequest struct {
	ItemID             string           `json:"itemID"`
	AbcdClassification *string          `json:"abcdClassification"`
	PlanningType       *string          `json:"planningType"`
	SafetyStock        *decimal.Decimal `json:"safetyStock"`
	ROP                *decimal.Decimal `json:"rop"`
	Max                *decimal.Decimal `json:"max"`
	OrderQuantity      *decimal.Decimal `json:"orderQuantity"`
}

// Validate checks the request shape and column limits
func (r *ProcessMrpRequest) Validate() error {
	if r.FirmNo == "" {
		return fmt.Errorf("firmNo is required")
	}
	if utf8.RuneCountInString(r.FirmNo) > entities.MaxFirmNoLength {
		return fmt.Errorf("firmNo exceeds %d characters", entities.MaxFirmNoLength)
	}
	if r.PeriodNr == "" {
		return fmt.Errorf("periodNr is required")
	}
	for i, item := range r.Items {
		if err := item.toRawItem().Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

// ToProcessRequest maps the body onto the pipeline input
func (r *ProcessMrpRequest) ToProcessRequest() dto.ProcessRequest {
	items := make([]entities.RawItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.toRawItem())
	}
	return dto.ProcessRequest{
		FirmNo:   entities.FirmNo(r.FirmNo),
		PeriodNo: entities.PeriodNo(r.PeriodNr),
		Items:    items,
	}
}

func (i MrpItemRequest) toRawItem() entities.RawItem {
	return entities.RawItem{
		ItemCode:       entities.ItemCode(i.ItemID),
		Classification: i.AbcdClassification,
		PlanType:       i.PlanningType,
		SafetyStock:    i.SafetyStock,
		ReorderPoint:   i.ROP,
		Max:            i.Max,
		OrderQuantity:  i.OrderQuantity,
	}
}

type MRPHandler struct {
	processor Processor
	logger    *zap.Logger
}

func NewMRPHandler(processor Processor, logger *zap.Logger) *MRPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MRPHandler{processor: processor, logger: logger}
}

// Process handles POST /api/v1/mrp/process
func (h *MRPHandler) Process(c *gin.Context) {
	var req ProcessMrpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.processor.Process(c.Request.Context(), req.ToProcessRequest())
	if err != nil {
		h.logger.Error("mrp batch failed",
			zap.String("firm_no", req.FirmNo),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)

		var transmissionErr *replenishment.TransmissionError
		switch {
		case errors.Is(err, replenishment.ErrFirmNotFound):
			Error(c, 40001, err.Error())
		case errors.As(err, &transmissionErr):
			BadGateway(c, err.Error())
		default:
			InternalError(c, err.Error())
		}
		return
	}

	Success(c, result)
}
