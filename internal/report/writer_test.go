package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"triagebot/internal/classify"
	"triagebot/internal/domain"
)

func TestWriteReportFiles(t *testing.T) {
	classifier := classify.New(classify.DefaultKeywords())
	issues := []domain.Issue{
		openIssue(1, "Bug in export", 1),
	}
	r := Aggregate(issues, classifier, "weekly", windowStart, windowEnd)

	dir := filepath.Join(t.TempDir(), "reports")
	mdPath, jsonPath, err := WriteReportFiles(r, dir, "Platform Team")
	if err != nil {
		t.Fatalf("writing reports: %v", err)
	}

	if filepath.Base(mdPath) != "Platform_Team_issues_report_weekly.md" {
		t.Fatalf("unexpected markdown filename: %s", mdPath)
	}
	if filepath.Base(jsonPath) != "Platform_Team_issues_report_weekly.json" {
		t.Fatalf("unexpected json filename: %s", jsonPath)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("reading markdown report: %v", err)
	}
	if !strings.Contains(string(md), "# Platform Team Issues Report - Weekly") {
		t.Fatalf("markdown report missing header:\n%s", md)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("reading json report: %v", err)
	}
	var decoded domain.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json report does not parse: %v", err)
	}
	if decoded.TotalIssues != 1 || decoded.Period != "weekly" {
		t.Fatalf("unexpected decoded report: total=%d period=%q", decoded.TotalIssues, decoded.Period)
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := sanitizeFilename(`a/b\c:d*e?f"g<h>i|j k`)
	if strings.ContainsAny(got, `/\:*?"<>| `) {
		t.Fatalf("unsanitized characters remain: %q", got)
	}
}

func TestWriteReportFilesCreatesDir(t *testing.T) {
	classifier := classify.New(classify.DefaultKeywords())
	r := Aggregate(nil, classifier, "daily", windowStart, windowEnd)

	dir := filepath.Join(t.TempDir(), "nested", "deep", "reports")
	if _, _, err := WriteReportFiles(r, dir, "Team"); err != nil {
		t.Fatalf("writing into missing dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Team_issues_report_daily.md")); err != nil {
		t.Fatalf("expected report file: %v", err)
	}
}

func TestReportJSONRoundtripsWindow(t *testing.T) {
	classifier := classify.New(classify.DefaultKeywords())
	r := Aggregate(nil, classifier, "daily", windowStart, windowEnd)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded domain.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !decoded.StartDate.Equal(windowStart) || !decoded.EndDate.Equal(windowEnd) {
		t.Fatalf("window did not roundtrip: %s - %s", decoded.StartDate, decoded.EndDate)
	}
}
