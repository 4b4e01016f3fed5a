package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/application/services/replenishment"
	"github.com/vsinha/ropfeed/pkg/infrastructure/events"
	"github.com/vsinha/ropfeed/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/ropfeed/pkg/infrastructure/testing"
	"go.uber.org/zap"
)

// setupTraceTest wires two firms that share fiche numbering from 1
func setupTraceTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := memory.NewCatalog(1, "001", "002")
	catalog.AddItem(memory.CatalogItem{
		Code: "HM-001", Ref: 101, UnitCode: "ADET", CardType: "10",
		OnHand: decimal.NewFromInt(3), OpenPO: decimal.NewFromInt(2), ClientRef: 9,
	})
	store := events.NewBoundedEventStore(200)
	journal := memory.NewJournal()

	svc := replenishment.NewService(replenishment.DefaultConfig(), replenishment.Dependencies{
		Catalog:    catalog,
		Parameters: memory.NewParameterStore(),
		Gateway:    memory.NewGateway(),
		Journal:    journal,
		Events:     store,
		Clock:      func() time.Time { return testhelpers.FixtureClock },
	})

	return NewRouter(RouterConfig{
		MRP:     NewMRPHandler(svc, zap.NewNop()),
		Events:  NewEventsHandler(store),
		Journal: NewJournalHandler(journal),
		Health:  NewHealthHandler("test", nil),
		Logger:  zap.NewNop(),
	})
}

func getJSON(t *testing.T, router *gin.Engine, path string, data interface{}) int {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code == http.StatusOK {
		body := struct {
			Data interface{} `json:"data"`
		}{Data: data}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body %q: %v", w.Body.String(), err)
		}
	}
	return w.Code
}

func TestTrace_SameFicheNumberAcrossFirms(t *testing.T) {
	router := setupTraceTest(t)

	results := map[string]dto.ProcessResult{}
	for _, firm := range []string{"001", "002"} {
		body := `{"firmNo":"` + firm + `","periodNr":"01","items":[{"itemID":"HM-001","planningType":"MTS","rop":10,"orderQuantity":20}]}`
		w, resp := postProcess(t, router, body)
		if w.Code != http.StatusOK {
			t.Fatalf("firm %s: expected 200, got %d", firm, w.Code)
		}
		results[firm] = resp.Data
	}

	first, second := results["001"], results["002"]
	if first.FicheNo != "00000001" || second.FicheNo != "00000001" {
		t.Fatalf("Expected both firms to get fiche 00000001, got %s and %s", first.FicheNo, second.FicheNo)
	}
	if first.BatchID == "" || first.BatchID == second.BatchID {
		t.Fatalf("Expected distinct batch ids, got %q and %q", first.BatchID, second.BatchID)
	}

	for firm, result := range results {
		var trace []EventView
		if code := getJSON(t, router, "/api/v1/mrp/batches/"+result.BatchID+"/events", &trace); code != http.StatusOK {
			t.Fatalf("firm %s: expected 200 for its trace, got %d", firm, code)
		}
		started := 0
		for _, e := range trace {
			if e.Type == events.BatchStartedEvent {
				started++
			}
		}
		if started != 1 {
			t.Errorf("firm %s: expected one batch.started in its trace, got %d", firm, started)
		}
	}

	var journal []JournalView
	if code := getJSON(t, router, "/api/v1/mrp/firms/002/fiches/00000001/journal", &journal); code != http.StatusOK {
		t.Fatalf("Expected 200 for journal, got %d", code)
	}
	if len(journal) != 1 || journal[0].BatchID != second.BatchID || journal[0].FirmNo != "002" {
		t.Errorf("Expected firm 002's fiche only, got %+v", journal)
	}

	var fiche dto.LogoDemandFiche
	if err := json.Unmarshal(journal[0].Fiche, &fiche); err != nil || fiche.LineCount != 1 {
		t.Errorf("Expected the sent fiche in the journal, got %+v (%v)", fiche, err)
	}

	if code := getJSON(t, router, "/api/v1/mrp/firms/003/fiches/00000001/journal", nil); code != http.StatusNotFound {
		t.Errorf("Expected 404 for a fiche never sent, got %d", code)
	}
}
