package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
)

// JournalView is the JSON form of a journaled demand fiche
type JournalView struct {
	// ID is a string so snowflake ids survive JavaScript clients
	ID       string          `json:"id"`
	BatchID  string          `json:"batch_id"`
	FirmNo   string          `json:"firm_no"`
	PeriodNo string          `json:"period_no"`
	FicheNo  string          `json:"fiche_no"`
	Lines    int             `json:"lines"`
	SentAt   time.Time       `json:"sent_at"`
	Fiche    json.RawMessage `json:"fiche"`
}

type JournalHandler struct {
	reader repositories.FicheJournalReader
}

func NewJournalHandler(reader repositories.FicheJournalReader) *JournalHandler {
	return &JournalHandler{reader: reader}
}

// List handles GET /api/v1/mrp/firms/:firmNo/fiches/:ficheNo/journal.
// The batch_id of each record names its event stream while it is retained.
func (h *JournalHandler) List(c *gin.Context) {
	firm := entities.FirmNo(c.Param("firmNo"))
	ficheNo := c.Param("ficheNo")

	records, err := h.reader.ListByFiche(c.Request.Context(), firm, ficheNo)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	if len(records) == 0 {
		Error(c, 40400, "demand fiche "+ficheNo+" of firm "+string(firm)+" was never sent")
		return
	}

	views := make([]JournalView, 0, len(records))
	for _, r := range records {
		views = append(views, JournalView{
			ID:       strconv.FormatInt(r.ID, 10),
			BatchID:  r.BatchID,
			FirmNo:   string(r.FirmNo),
			PeriodNo: string(r.PeriodNo),
			FicheNo:  r.FicheNo,
			Lines:    r.Lines,
			SentAt:   r.SentAt,
			Fiche:    r.Payload,
		})
	}
	Success(c, views)
}
