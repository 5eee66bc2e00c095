package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/username/fxmonitor/src/database"
	"github.com/username/fxmonitor/src/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestReplaceThresholds_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	count, err := store.ReplaceThresholds([]models.Threshold{
		{LegalEntity: "GSLB", Currency: "USD", OriginalGroup: "Group 1", OriginalThreshold: "0.50", ProposedGroup: "Group 1", ProposedThreshold: "0.75", AdjustedGroup: "Group 1", AdjustedThreshold: "0.75"},
		{LegalEntity: "GSI", Currency: "EUR", OriginalGroup: "Group 2", OriginalThreshold: "0.45", ProposedGroup: "Group 2", ProposedThreshold: "0.60", AdjustedGroup: "Group 2", AdjustedThreshold: "0.60"},
	})
	if err != nil {
		t.Fatalf("ReplaceThresholds failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 inserted, got %d", count)
	}

	thresholds, err := store.ListThresholds()
	if err != nil {
		t.Fatalf("ListThresholds failed: %v", err)
	}
	if len(thresholds) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(thresholds))
	}
	if thresholds[0].Currency != "USD" || thresholds[1].Currency != "EUR" {
		t.Errorf("rows should come back in insert order: %+v", thresholds)
	}
	if thresholds[0].ID == 0 || thresholds[0].UpdatedAt == "" {
		t.Errorf("stored rows should carry id and timestamp: %+v", thresholds[0])
	}
}

func TestReplaceThresholds_ReplacesNotMerges(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.ReplaceThresholds([]models.Threshold{
		{LegalEntity: "GSLB", Currency: "USD", OriginalGroup: "Group 1", OriginalThreshold: "0.50", ProposedGroup: "Group 1", ProposedThreshold: "0.50", AdjustedGroup: "Group 1", AdjustedThreshold: "0.50"},
	}); err != nil {
		t.Fatalf("first ReplaceThresholds failed: %v", err)
	}
	if _, err := store.ReplaceThresholds([]models.Threshold{
		{LegalEntity: "ALL", Currency: "JPY", OriginalGroup: "Group 3", OriginalThreshold: "0.75", ProposedGroup: "Group 3", ProposedThreshold: "0.75", AdjustedGroup: "Group 3", AdjustedThreshold: "0.75"},
	}); err != nil {
		t.Fatalf("second ReplaceThresholds failed: %v", err)
	}

	thresholds, err := store.ListThresholds()
	if err != nil {
		t.Fatalf("ListThresholds failed: %v", err)
	}
	if len(thresholds) != 1 || thresholds[0].Currency != "JPY" {
		t.Fatalf("second upload should fully replace the first: %+v", thresholds)
	}
}

func TestUpdateThreshold_PartialUpdate(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.ReplaceThresholds([]models.Threshold{
		{LegalEntity: "GSLB", Currency: "USD", OriginalGroup: "Group 1", OriginalThreshold: "0.50", ProposedGroup: "Group 1", ProposedThreshold: "0.75", AdjustedGroup: "Group 1", AdjustedThreshold: "0.75"},
	}); err != nil {
		t.Fatalf("ReplaceThresholds failed: %v", err)
	}
	thresholds, err := store.ListThresholds()
	if err != nil {
		t.Fatalf("ListThresholds failed: %v", err)
	}

	newAdjusted := "0.90"
	updated, err := store.UpdateThreshold(thresholds[0].ID, ThresholdUpdate{AdjustedThreshold: &newAdjusted})
	if err != nil {
		t.Fatalf("UpdateThreshold failed: %v", err)
	}
	if updated.AdjustedThreshold != "0.90" {
		t.Errorf("adjusted threshold not updated: %+v", updated)
	}
	if updated.ProposedThreshold != "0.75" || updated.Currency != "USD" {
		t.Errorf("untouched fields should survive a partial update: %+v", updated)
	}
}

func TestUpdateThreshold_UnknownID(t *testing.T) {
	store := newTestStore(t)
	_, err := store.UpdateThreshold(9999, ThresholdUpdate{})
	if !errors.Is(err, ErrThresholdNotFound) {
		t.Fatalf("expected ErrThresholdNotFound, got %v", err)
	}
}

func TestBulkInsertAndListTrades_Filters(t *testing.T) {
	store := newTestStore(t)

	count, err := store.BulkInsertTrades([]models.Trade{
		{TradeID: "T1", ProductType: "FX_SPOT", LegalEntity: "GSLB", SourceSystem: "SLANG", CcyPair: "EURUSD", TradeDate: "2024-01-01", DeviationPercent: "0.80", AlertDescription: "Price deviation exceeds threshold"},
		{TradeID: "T2", ProductType: "FX_SPOT", LegalEntity: "GSI", SourceSystem: "SIGMA", CcyPair: "GBPUSD", TradeDate: "2024-01-02"},
		{TradeID: "T3", ProductType: "FX_FWD", LegalEntity: "GSLB", SourceSystem: "SLANG", CcyPair: "USDJPY", TradeDate: "2024-01-03"},
	})
	if err != nil {
		t.Fatalf("BulkInsertTrades failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 inserted, got %d", count)
	}

	all, err := store.ListTrades(models.TradeFilters{})
	if err != nil {
		t.Fatalf("ListTrades failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(all))
	}

	spot, err := store.ListTrades(models.TradeFilters{ProductType: "FX_SPOT"})
	if err != nil {
		t.Fatalf("filtered ListTrades failed: %v", err)
	}
	if len(spot) != 2 {
		t.Errorf("expected 2 FX_SPOT trades, got %d", len(spot))
	}

	ranged, err := store.ListTrades(models.TradeFilters{StartDate: "2024-01-02", EndDate: "2024-01-02"})
	if err != nil {
		t.Fatalf("date-filtered ListTrades failed: %v", err)
	}
	if len(ranged) != 1 || ranged[0].TradeID != "T2" {
		t.Errorf("expected only T2 in the date window, got %+v", ranged)
	}
}

func TestFileUploads_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.InsertFileUploads([]models.FileUpload{
		{Filename: "FX_GSLB_SLANG_20240101.csv", ProductType: "FX", LegalEntity: "GSLB", SourceSystem: "SLANG", Environment: "UAT", UploadDate: "2024-01-01", FileSize: 1024, RecordCount: 100, Status: "uploaded"},
		{Filename: "FX_GSLB_SLANG_20240102.csv", ProductType: "FX", LegalEntity: "GSLB", SourceSystem: "SLANG", Environment: "PROD", UploadDate: "2024-01-02", FileSize: 2048, RecordCount: 95, Status: "uploaded"},
	})
	if err != nil {
		t.Fatalf("InsertFileUploads failed: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved records, got %d", len(saved))
	}
	for _, f := range saved {
		if f.ID == 0 || f.UploadedAt == "" {
			t.Errorf("saved record should carry id and timestamp: %+v", f)
		}
	}

	files, err := store.ListFileUploads()
	if err != nil {
		t.Fatalf("ListFileUploads failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(files))
	}
	if files[0].RecordCount != 100 || files[1].Environment != "PROD" {
		t.Errorf("unexpected upload rows: %+v", files)
	}
}

func TestConsolidatedDatasets_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.InsertConsolidatedDataset(models.ConsolidatedDataset{
		DatasetName:     "FX_GSLB_SLANG_2024-01-01_2024-01-05",
		ProductType:     "FX",
		LegalEntity:     "GSLB",
		SourceSystem:    "SLANG",
		StartDate:       "2024-01-01",
		EndDate:         "2024-01-05",
		UatFileIDs:      []int64{1, 2},
		ProdFileIDs:     []int64{3},
		TotalUatTrades:  150,
		TotalProdTrades: 140,
		Status:          "completed",
	})
	if err != nil {
		t.Fatalf("InsertConsolidatedDataset failed: %v", err)
	}
	if saved.ID == 0 || saved.CreatedAt == "" {
		t.Errorf("saved dataset should carry id and timestamp: %+v", saved)
	}

	datasets, err := store.ListConsolidatedDatasets()
	if err != nil {
		t.Fatalf("ListConsolidatedDatasets failed: %v", err)
	}
	if len(datasets) != 1 {
		t.Fatalf("expected 1 dataset, got %d", len(datasets))
	}
	d := datasets[0]
	if !reflect.DeepEqual(d.UatFileIDs, []int64{1, 2}) || !reflect.DeepEqual(d.ProdFileIDs, []int64{3}) {
		t.Errorf("file id arrays should survive the round trip: uat=%v prod=%v", d.UatFileIDs, d.ProdFileIDs)
	}
	if d.TotalUatTrades != 150 || d.TotalProdTrades != 140 || d.Status != "completed" {
		t.Errorf("unexpected dataset row: %+v", d)
	}
}

func TestDashboardConfig_Upsert(t *testing.T) {
	store := newTestStore(t)

	cfg, err := store.GetDashboardConfig(1)
	if err != nil {
		t.Fatalf("GetDashboardConfig failed: %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected no config before first save, got %+v", cfg)
	}

	pt := "FX_SPOT"
	created, err := store.UpsertDashboardConfig(1, DashboardConfigUpdate{ProductType: &pt})
	if err != nil {
		t.Fatalf("first UpsertDashboardConfig failed: %v", err)
	}
	if created.ProductType != "FX_SPOT" || created.ThresholdMode != "group" {
		t.Errorf("first save should apply defaults: %+v", created)
	}

	mode := "currency"
	updated, err := store.UpsertDashboardConfig(1, DashboardConfigUpdate{ThresholdMode: &mode})
	if err != nil {
		t.Fatalf("second UpsertDashboardConfig failed: %v", err)
	}
	if updated.ThresholdMode != "currency" {
		t.Errorf("threshold mode not updated: %+v", updated)
	}
	if updated.ProductType != "FX_SPOT" {
		t.Errorf("earlier fields should survive a partial upsert: %+v", updated)
	}
	if updated.ID != created.ID {
		t.Errorf("upsert should update in place, not insert: %d vs %d", updated.ID, created.ID)
	}
}

func TestExceptions_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.InsertException(models.Exception{
		TradeID:       "T1",
		ExceptionType: "PRICE_DEVIATION",
		Description:   "Deviation above threshold",
		Status:        "open",
	})
	if err != nil {
		t.Fatalf("InsertException failed: %v", err)
	}
	if saved.ID == 0 {
		t.Errorf("saved exception should carry an id: %+v", saved)
	}

	exceptions, err := store.ListExceptions("", "")
	if err != nil {
		t.Fatalf("ListExceptions failed: %v", err)
	}
	if len(exceptions) != 1 || exceptions[0].ExceptionType != "PRICE_DEVIATION" {
		t.Fatalf("unexpected exceptions: %+v", exceptions)
	}
}
