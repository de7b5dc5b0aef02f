package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"triagebot/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "triage.db"))
	if err != nil {
		t.Fatalf("initializing database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndGetRecentTriages(t *testing.T) {
	db := newTestDB(t)

	issue := domain.Issue{Number: 42, Title: "Crash on save", Author: "alice"}
	triage := domain.TriageResult{
		IssueNumber: 42,
		Categories:  []domain.Category{domain.CategoryBug, domain.CategoryBackend},
		Primary:     domain.CategoryBug,
		Severity:    domain.SeverityCritical,
		Complexity:  domain.ComplexitySimple,
		Timeline:    "Fix immediately - 1-2 days",
	}
	if err := InsertTriageRecord(db, NewTriageRecord(issue, triage)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	records, err := GetRecentTriages(db, time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.IssueNumber != 42 || r.Title != "Crash on save" || r.Author != "alice" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.Categories != "bug,backend" {
		t.Fatalf("unexpected categories: %q", r.Categories)
	}
	if r.Primary != "bug" || r.Severity != "critical" || r.Complexity != "simple" {
		t.Fatalf("unexpected triage fields: %+v", r)
	}
}

func TestGetRecentTriagesHonorsLimit(t *testing.T) {
	db := newTestDB(t)

	for i := int64(1); i <= 5; i++ {
		rec := TriageRecord{
			IssueNumber: i, Title: "issue", Primary: "bug",
			Severity: "low", Complexity: "simple",
		}
		if err := InsertTriageRecord(db, rec); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	records, err := GetRecentTriages(db, time.Now().Add(-time.Hour), 3)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// Newest first: highest insert id leads.
	if records[0].IssueNumber != 5 {
		t.Fatalf("expected newest record first, got %+v", records[0])
	}
}

func TestGetTriageStats(t *testing.T) {
	db := newTestDB(t)

	for _, sev := range []string{"critical", "critical", "high", "medium", "low", "low"} {
		rec := TriageRecord{
			IssueNumber: 1, Title: "issue", Primary: "bug",
			Severity: sev, Complexity: "simple",
		}
		if err := InsertTriageRecord(db, rec); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	stats, err := GetTriageStats(db, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 6 {
		t.Fatalf("expected 6 total, got %d", stats.Total)
	}
	if stats.CriticalCount != 2 || stats.HighCount != 1 || stats.MediumCount != 1 || stats.LowCount != 2 {
		t.Fatalf("unexpected severity counts: %+v", stats)
	}
}

func TestGetTriageStatsEmpty(t *testing.T) {
	db := newTestDB(t)

	stats, err := GetTriageStats(db, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("stats on empty db failed: %v", err)
	}
	if stats.Total != 0 || stats.CriticalCount != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestArchiveTriage(t *testing.T) {
	db := newTestDB(t)

	archive := NewArchive(db)
	issue := domain.Issue{Number: 9, Title: "Feature request", Author: "bob"}
	triage := domain.TriageResult{
		Categories: []domain.Category{domain.CategoryFeature},
		Primary:    domain.CategoryFeature,
		Severity:   domain.SeverityMedium,
		Complexity: domain.ComplexityMedium,
		Timeline:   "Next sprint - 2-3 weeks",
	}
	if err := archive.ArchiveTriage(issue, triage); err != nil {
		t.Fatalf("archive failed: %v", err)
	}

	records, err := GetRecentTriages(db, time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 1 || records[0].IssueNumber != 9 {
		t.Fatalf("expected archived issue 9, got %+v", records)
	}
}
