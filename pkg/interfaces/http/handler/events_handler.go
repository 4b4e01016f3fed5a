package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vsinha/ropfeed/pkg/infrastructure/events"
)

// EventReader reads the events of one batch
type EventReader interface {
	ReadEvents(streamID string, fromVersion int) ([]events.Event, error)
}

// EventView is the JSON form of a pipeline event
type EventView struct {
	Type      string      `json:"type"`
	Version   int         `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

type EventsHandler struct {
	reader EventReader
}

func NewEventsHandler(reader EventReader) *EventsHandler {
	return &EventsHandler{reader: reader}
}

// List handles GET /api/v1/mrp/batches/:batchId/events
func (h *EventsHandler) List(c *gin.Context) {
	batchID := c.Param("batchId")
	stored, err := h.reader.ReadEvents(batchID, 1)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	if len(stored) == 0 {
		Error(c, 40400, "no events retained for batch "+batchID)
		return
	}

	views := make([]EventView, 0, len(stored))
	for _, e := range stored {
		views = append(views, EventView{
			Type:      e.Type(),
			Version:   e.Version(),
			Timestamp: e.Timestamp(),
			Data:      e.Data(),
		})
	}
	Success(c, views)
}
