package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/username/fxmonitor/src/models"
)

func TestGetTrades_EmptyStoreReturnsEmptyArray(t *testing.T) {
	mux := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" && body != "[]" {
		t.Fatalf("empty store should answer a JSON array, got %q", body)
	}
}

func TestFetchTrades_StoresMockTrades(t *testing.T) {
	mux := newTestAPI(t)

	rr := postJSON(t, mux, "/api/trades/fetch", `{"productType":"FX_SPOT","legalEntity":"GSLB","sourceSystem":"SLANG"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count == 0 {
		t.Fatal("fetch should report how many trades were stored")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trades?legalEntity=GSLB", nil)
	getRR := httptest.NewRecorder()
	mux.ServeHTTP(getRR, req)
	var trades []models.Trade
	if err := json.Unmarshal(getRR.Body.Bytes(), &trades); err != nil {
		t.Fatalf("failed to decode trades: %v", err)
	}
	if len(trades) != resp.Count {
		t.Errorf("expected %d stored trades, got %d", resp.Count, len(trades))
	}
	for _, tr := range trades[:3] {
		if tr.ProductType != "FX_SPOT" || tr.LegalEntity != "GSLB" || tr.SourceSystem != "SLANG" {
			t.Errorf("fetched trade should carry the requested scope: %+v", tr)
		}
	}
}

func TestFetchTrades_RequiresScopeFields(t *testing.T) {
	mux := newTestAPI(t)
	rr := postJSON(t, mux, "/api/trades/fetch", `{"productType":"FX_SPOT"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when scope fields are missing, got %d", rr.Code)
	}
}

func TestGetExceptions_EmptyStoreReturnsEmptyArray(t *testing.T) {
	mux := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/exceptions", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var exceptions []models.Exception
	if err := json.Unmarshal(rr.Body.Bytes(), &exceptions); err != nil {
		t.Fatalf("failed to decode exceptions: %v", err)
	}
	if len(exceptions) != 0 {
		t.Fatalf("expected no exceptions, got %d", len(exceptions))
	}
}
