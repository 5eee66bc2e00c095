package parsers

import (
	"strings"
	"testing"
)

func TestParse_HeaderOnly(t *testing.T) {
	p := NewThresholdParser()
	thresholds, err := p.Parse(strings.NewReader("LegalEntity,CCY,Original_Group,Original_Threshold,Proposed_Group,Proposed_Threshold"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thresholds) != 0 {
		t.Fatalf("header-only file should yield no rows, got %d", len(thresholds))
	}
}

func TestParse_FullRow(t *testing.T) {
	csv := "LegalEntity,CCY,Original_Group,Original_Threshold,Proposed_Group,Proposed_Threshold\n" +
		"GSLB,EUR,Group 1,0.60,Group 2,0.80"
	p := NewThresholdParser()
	thresholds, err := p.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thresholds) != 1 {
		t.Fatalf("expected 1 row, got %d", len(thresholds))
	}
	got := thresholds[0]
	if got.LegalEntity != "GSLB" || got.Currency != "EUR" {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.OriginalGroup != "Group 1" || got.OriginalThreshold != "0.60" {
		t.Errorf("unexpected original fields: %+v", got)
	}
	if got.ProposedGroup != "Group 2" || got.ProposedThreshold != "0.80" {
		t.Errorf("unexpected proposed fields: %+v", got)
	}
	if got.AdjustedGroup != "Group 2" || got.AdjustedThreshold != "0.80" {
		t.Errorf("adjusted fields should start equal to proposed: %+v", got)
	}
}

func TestParse_ProposedFallsBackToOriginal(t *testing.T) {
	csv := "LegalEntity,CCY,Original_Group,Original_Threshold\nGSI,GBP,Group 2,0.45"
	p := NewThresholdParser()
	thresholds, err := p.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thresholds) != 1 {
		t.Fatalf("expected 1 row, got %d", len(thresholds))
	}
	got := thresholds[0]
	if got.ProposedGroup != "Group 2" || got.ProposedThreshold != "0.45" {
		t.Errorf("missing proposed columns should inherit original values: %+v", got)
	}
	if got.AdjustedGroup != "Group 2" || got.AdjustedThreshold != "0.45" {
		t.Errorf("adjusted fields should follow the resolved proposed values: %+v", got)
	}
}

func TestParse_EmptyFieldsGetDefaults(t *testing.T) {
	csv := "header\n,,,"
	p := NewThresholdParser()
	thresholds, err := p.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thresholds) != 1 {
		t.Fatalf("expected 1 row, got %d", len(thresholds))
	}
	got := thresholds[0]
	if got.LegalEntity != "Unknown" || got.Currency != "USD" {
		t.Errorf("unexpected defaults: %+v", got)
	}
	if got.OriginalGroup != "Group 1" || got.OriginalThreshold != "0.5" {
		t.Errorf("unexpected defaults: %+v", got)
	}
}

func TestParse_SkipsBlankLinesAndTrimsWhitespace(t *testing.T) {
	csv := "header\n\n  GSLB , USD , Group 1 , 0.50 \n\n"
	p := NewThresholdParser()
	thresholds, err := p.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thresholds) != 1 {
		t.Fatalf("expected 1 row, got %d", len(thresholds))
	}
	got := thresholds[0]
	if got.LegalEntity != "GSLB" || got.OriginalThreshold != "0.50" {
		t.Errorf("fields should be trimmed: %+v", got)
	}
}

func TestParse_MultipleRowsKeepFileOrder(t *testing.T) {
	csv := "header\nGSLB,USD,Group 1,0.50\nGSI,EUR,Group 2,0.45\nALL,JPY,Group 3,0.75"
	p := NewThresholdParser()
	thresholds, err := p.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thresholds) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(thresholds))
	}
	wantEntities := []string{"GSLB", "GSI", "ALL"}
	for i, want := range wantEntities {
		if thresholds[i].LegalEntity != want {
			t.Errorf("row %d: expected %q, got %q", i, want, thresholds[i].LegalEntity)
		}
	}
}
