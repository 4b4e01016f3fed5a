package logorest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/application/dto"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

func testDocument() *entities.DemandDocument {
	now := time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC)
	return &entities.DemandDocument{
		DemandHeader: entities.NewDemandHeader("00000042", now, 1),
		LineCount:    1,
		Lines: []entities.TransactionLine{{
			ItemCode: "HM-001",
			ItemRef:  101,
			LineNo:   1,
			Amount:   decimal.NewFromInt(6),
			UnitCode: "ADET",
		}},
	}
}

// fakeLogo serves the token and demand slip endpoints
type fakeLogo struct {
	tokenCalls  atomic.Int32
	slipCalls   atomic.Int32
	slipStatus  int
	rejectFirst bool
	lastFiche   dto.LogoDemandFiche
	lastFirm    string
}

func (f *fakeLogo) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "password" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok", ExpiresIn: 3600})
	})
	mux.HandleFunc(demandSlipsPath, func(w http.ResponseWriter, r *http.Request) {
		call := f.slipCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok" || (f.rejectFirst && call == 1) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.lastFirm = r.Header.Get("firmno")
		if err := json.NewDecoder(r.Body).Decode(&f.lastFiche); err != nil {
			t.Errorf("invalid fiche body: %v", err)
		}
		if f.slipStatus != 0 {
			w.WriteHeader(f.slipStatus)
			w.Write([]byte(`{"error":"bad item"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func newTestClient(url string) *Client {
	return NewClient(Options{
		BaseURL:      url + "/",
		Username:     "LOGO",
		Password:     "pw",
		ClientID:     "client",
		ClientSecret: "secret",
	}, nil, nil)
}

func TestSendPostsFicheWithToken(t *testing.T) {
	fake := &fakeLogo{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.Send(context.Background(), "001", testDocument()); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := client.Send(context.Background(), "001", testDocument()); err != nil {
		t.Fatalf("second send failed: %v", err)
	}

	if got := fake.tokenCalls.Load(); got != 1 {
		t.Errorf("expected token fetched once, got %d", got)
	}
	if fake.lastFirm != "001" {
		t.Errorf("expected firm header 001, got %q", fake.lastFirm)
	}
	if fake.lastFiche.FicheNo != "00000042" || fake.lastFiche.LineCount != 1 {
		t.Errorf("unexpected fiche: %+v", fake.lastFiche)
	}
	if fake.lastFiche.Date != "2026-10-17T09:30:15" || fake.lastFiche.Time != 93015 {
		t.Errorf("unexpected date/time: %s %d", fake.lastFiche.Date, fake.lastFiche.Time)
	}
}

func TestSendRejectedStatus(t *testing.T) {
	fake := &fakeLogo{slipStatus: http.StatusBadRequest}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	err := newTestClient(server.URL).Send(context.Background(), "001", testDocument())
	if !errors.Is(err, ErrGatewayRejected) {
		t.Fatalf("expected ErrGatewayRejected, got %v", err)
	}
	if got := fake.slipCalls.Load(); got != 1 {
		t.Errorf("expected a rejected fiche to be posted once, got %d", got)
	}
}

func TestSendRefreshesTokenOnUnauthorized(t *testing.T) {
	fake := &fakeLogo{rejectFirst: true}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	if err := newTestClient(server.URL).Send(context.Background(), "001", testDocument()); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got := fake.tokenCalls.Load(); got != 2 {
		t.Errorf("expected token fetched twice, got %d", got)
	}
	if got := fake.slipCalls.Load(); got != 2 {
		t.Errorf("expected two posts, got %d", got)
	}
}

func TestTokenFailure(t *testing.T) {
	fake := &fakeLogo{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, ClientID: "wrong"}, nil, nil)
	err := client.Send(context.Background(), "001", testDocument())
	if !errors.Is(err, ErrGatewayRejected) {
		t.Fatalf("expected ErrGatewayRejected, got %v", err)
	}
	if fake.slipCalls.Load() != 0 {
		t.Error("expected no post without a token")
	}
}

func TestMemoryTokenCacheExpiry(t *testing.T) {
	cache := NewMemoryTokenCache()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "k", "v", time.Minute)
	if got, _ := cache.Get(ctx, "k"); got != "v" {
		t.Fatalf("expected cached token, got %q", got)
	}

	now = now.Add(2 * time.Minute)
	if got, _ := cache.Get(ctx, "k"); got != "" {
		t.Errorf("expected expired token to be dropped, got %q", got)
	}
}
