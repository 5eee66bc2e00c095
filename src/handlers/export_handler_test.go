package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExport_InvalidType(t *testing.T) {
	mux := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export/bogus", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown export type, got %d", rr.Code)
	}
}

func TestExport_ThresholdsAsCSVAttachment(t *testing.T) {
	mux := newTestAPI(t)

	if rr := uploadThresholdCSV(t, mux, "header\nGSLB,USD,Group 1,0.50"); rr.Code != http.StatusOK {
		t.Fatalf("threshold upload failed: %d (%s)", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/export/thresholds", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "thresholds_export.csv") {
		t.Errorf("expected an attachment disposition, got %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "GSLB") || !strings.Contains(lines[1], "USD") {
		t.Errorf("exported row should carry the threshold values: %q", lines[1])
	}
}

func TestExport_AlertsEmptyStore(t *testing.T) {
	mux := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export/alerts", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 even with no trades, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
}
