package badger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "badger-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func TestRequestStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewAnalysisStorage(db, logger)

	ctx := context.Background()

	req := &models.AnalysisRequest{
		ID:            "req-1",
		PropertyID:    "prop-1",
		AnalysisTypes: []models.AnalysisType{models.AnalysisMarket, models.AnalysisRisk},
		Status:        models.RequestStatusPending,
		TotalCount:    2,
		CreatedAt:     time.Now(),
	}
	if err := storage.SaveRequest(ctx, req); err != nil {
		t.Fatalf("Failed to save request: %v", err)
	}

	if err := storage.UpdateRequestStatus(ctx, req.ID, models.RequestStatusProcessing, ""); err != nil {
		t.Fatalf("Failed to update status: %v", err)
	}

	got, err := storage.GetRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("Failed to get request: %v", err)
	}
	if got.Status != models.RequestStatusProcessing {
		t.Errorf("Expected status processing, got %s", got.Status)
	}
	if got.CompletedAt != nil {
		t.Error("CompletedAt should not be set for processing status")
	}
	if got.TotalCount != 2 {
		t.Errorf("Expected total count 2, got %d", got.TotalCount)
	}

	if err := storage.UpdateRequestStatus(ctx, req.ID, models.RequestStatusCompleted, ""); err != nil {
		t.Fatalf("Failed to complete request: %v", err)
	}

	got, err = storage.GetRequest(ctx, req.ID)
	if err != nil {
		t.Fatalf("Failed to get request: %v", err)
	}
	if got.Status != models.RequestStatusCompleted {
		t.Errorf("Expected status completed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt should be set for completed status")
	}
}

func TestUpdateRequestStatusFailedKeepsError(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewAnalysisStorage(db, logger)

	ctx := context.Background()

	req := &models.AnalysisRequest{
		ID:         "req-fail",
		PropertyID: "prop-1",
		Status:     models.RequestStatusProcessing,
		TotalCount: 1,
		CreatedAt:  time.Now(),
	}
	if err := storage.SaveRequest(ctx, req); err != nil {
		t.Fatal(err)
	}

	if err := storage.UpdateRequestStatus(ctx, req.ID, models.RequestStatusFailed, "generation pipeline panicked"); err != nil {
		t.Fatalf("Failed to mark request failed: %v", err)
	}

	got, err := storage.GetRequest(ctx, req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.RequestStatusFailed {
		t.Errorf("Expected status failed, got %s", got.Status)
	}
	if got.ErrorMessage != "generation pipeline panicked" {
		t.Errorf("Expected error message preserved, got %q", got.ErrorMessage)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt should be set for failed status")
	}
}

func TestUpdateRequestStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewAnalysisStorage(db, logger)

	if err := storage.UpdateRequestStatus(context.Background(), "missing", models.RequestStatusCompleted, ""); err == nil {
		t.Error("Expected error for missing request")
	}
}

func TestReportsByRequestAndCount(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewAnalysisStorage(db, logger)

	ctx := context.Background()
	base := time.Now()

	reports := []*models.AnalysisReport{
		{ID: "rpt-1", RequestID: "req-1", PropertyID: "prop-1", AnalysisType: models.AnalysisMarket, Score: 82, Grade: "B", CreatedAt: base},
		{ID: "rpt-2", RequestID: "req-1", PropertyID: "prop-1", AnalysisType: models.AnalysisRisk, Score: 74, Grade: "C", CreatedAt: base.Add(time.Second)},
		{ID: "rpt-3", RequestID: "req-2", PropertyID: "prop-1", AnalysisType: models.AnalysisMarket, Score: 90, Grade: "A", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, r := range reports {
		if err := storage.SaveReport(ctx, r); err != nil {
			t.Fatalf("Failed to save report %s: %v", r.ID, err)
		}
	}

	got, err := storage.GetReportsByRequest(ctx, "req-1")
	if err != nil {
		t.Fatalf("Failed to get reports: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 reports for req-1, got %d", len(got))
	}
	if got[0].ID != "rpt-1" || got[1].ID != "rpt-2" {
		t.Errorf("Expected ascending created_at order, got %s then %s", got[0].ID, got[1].ID)
	}

	count, err := storage.CountReports(ctx, "req-1")
	if err != nil {
		t.Fatalf("Failed to count reports: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
}

func TestGetLatestReportsByTypeDedup(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewAnalysisStorage(db, logger)

	ctx := context.Background()
	base := time.Now()

	// Two market reports for the same request; the newer one should win.
	reports := []*models.AnalysisReport{
		{ID: "rpt-old", RequestID: "req-1", AnalysisType: models.AnalysisMarket, Score: 70, CreatedAt: base},
		{ID: "rpt-new", RequestID: "req-1", AnalysisType: models.AnalysisMarket, Score: 85, CreatedAt: base.Add(time.Minute)},
		{ID: "rpt-loc", RequestID: "req-1", AnalysisType: models.AnalysisLocation, Score: 60, CreatedAt: base.Add(30 * time.Second)},
	}
	for _, r := range reports {
		if err := storage.SaveReport(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := storage.GetLatestReportsByType(ctx, "req-1")
	if err != nil {
		t.Fatalf("Failed to get latest reports: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 deduped reports, got %d", len(got))
	}

	byType := make(map[models.AnalysisType]*models.AnalysisReport)
	for _, r := range got {
		byType[r.AnalysisType] = r
	}
	if byType[models.AnalysisMarket].ID != "rpt-new" {
		t.Errorf("Expected newest market report rpt-new, got %s", byType[models.AnalysisMarket].ID)
	}
	if byType[models.AnalysisLocation].ID != "rpt-loc" {
		t.Errorf("Expected rpt-loc, got %s", byType[models.AnalysisLocation].ID)
	}
}

func TestListRequestsFilters(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewAnalysisStorage(db, logger)

	ctx := context.Background()
	base := time.Now()

	requests := []*models.AnalysisRequest{
		{ID: "req-a", PropertyID: "prop-1", Status: models.RequestStatusCompleted, CreatedAt: base},
		{ID: "req-b", PropertyID: "prop-1", Status: models.RequestStatusProcessing, CreatedAt: base.Add(time.Second)},
		{ID: "req-c", PropertyID: "prop-2", Status: models.RequestStatusCompleted, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, r := range requests {
		if err := storage.SaveRequest(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := storage.ListRequests(ctx, &interfaces.RequestListOptions{PropertyID: "prop-1"})
	if err != nil {
		t.Fatalf("Failed to list requests: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 requests for prop-1, got %d", len(got))
	}
	if got[0].ID != "req-b" {
		t.Errorf("Expected newest first, got %s", got[0].ID)
	}

	got, err = storage.ListRequests(ctx, &interfaces.RequestListOptions{Status: string(models.RequestStatusProcessing)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "req-b" {
		t.Errorf("Expected only req-b for processing filter, got %d results", len(got))
	}
}

func TestPropertyStorageComparables(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewPropertyStorage(db, logger)

	ctx := context.Background()
	base := time.Now()

	properties := []*models.Property{
		{ID: "prop-1", Name: "Riverside Tower", Address: "12 River Rd", AskingPrice: 85000, AreaSqm: 84.9, CreatedAt: base},
		{ID: "prop-2", Name: "Riverside Tower", Address: "12 River Rd", AskingPrice: 87000, AreaSqm: 84.9, CreatedAt: base.Add(time.Second)},
		{ID: "prop-3", Name: "Hillside Villa", Address: "3 Hill St", AskingPrice: 42000, AreaSqm: 59.8, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, p := range properties {
		if err := storage.SaveProperty(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	got, err := storage.GetComparableListings(ctx, "Riverside Tower", "prop-1", 50)
	if err != nil {
		t.Fatalf("Failed to get comparables: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 comparable, got %d", len(got))
	}
	if got[0].ID != "prop-2" {
		t.Errorf("Expected prop-2, got %s", got[0].ID)
	}
}
