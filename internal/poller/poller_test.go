package poller

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"triagebot/internal/classify"
	"triagebot/internal/domain"
	"triagebot/internal/ledger"
)

type fakeTracker struct {
	issues       []domain.Issue
	listErr      error
	failComments map[int64]bool

	listCalls    int
	comments     map[int64]string
	labels       map[int64][]string
	commentCalls int
}

func newFakeTracker(issues ...domain.Issue) *fakeTracker {
	return &fakeTracker{
		issues:       issues,
		failComments: make(map[int64]bool),
		comments:     make(map[int64]string),
		labels:       make(map[int64][]string),
	}
}

func (f *fakeTracker) ListIssues(state string, since time.Time) ([]domain.Issue, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.issues, nil
}

func (f *fakeTracker) PostComment(number int64, text string) error {
	f.commentCalls++
	if f.failComments[number] {
		return fmt.Errorf("comment rejected for #%d", number)
	}
	f.comments[number] = text
	return nil
}

func (f *fakeTracker) AddLabels(number int64, labels []string) error {
	f.labels[number] = labels
	return nil
}

type recordingArchive struct {
	numbers []int64
}

func (a *recordingArchive) ArchiveTriage(issue domain.Issue, triage domain.TriageResult) error {
	a.numbers = append(a.numbers, issue.Number)
	return nil
}

func newTestPoller(t *testing.T, tracker Tracker) *Poller {
	t.Helper()
	ldg := ledger.Load(filepath.Join(t.TempDir(), "ledger.json"))
	return New(tracker, ldg, classify.New(classify.DefaultKeywords()), 24*time.Hour)
}

func TestRunCycleRespondsToNewIssues(t *testing.T) {
	tracker := newFakeTracker(
		domain.Issue{Number: 1, Title: "Crash on startup", Body: "stack trace attached", Author: "alice"},
		domain.Issue{Number: 2, Title: "Add dark mode feature", Body: "please", Author: "bob"},
	)
	archive := &recordingArchive{}
	p := newTestPoller(t, tracker).WithArchiver(archive)

	result, err := p.RunCycle()
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}
	if result.Fetched != 2 || result.Responded != 2 || result.Skipped != 0 || result.Failed != 0 {
		t.Fatalf("unexpected counters: %+v", result)
	}
	if len(tracker.comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(tracker.comments))
	}
	if !strings.HasPrefix(tracker.comments[1], "# Bug Analysis: Crash on startup") {
		t.Fatalf("posted comment must lead with the response title:\n%s", tracker.comments[1])
	}
	if len(archive.numbers) != 2 {
		t.Fatalf("expected 2 archived triages, got %v", archive.numbers)
	}
	if got := tracker.labels[1]; len(got) == 0 {
		t.Fatal("expected labels applied to issue 1")
	}
}

func TestRunCycleSkipsProcessedIssues(t *testing.T) {
	tracker := newFakeTracker(
		domain.Issue{Number: 10, Title: "Bug in parser", Author: "alice"},
	)
	p := newTestPoller(t, tracker)

	if _, err := p.RunCycle(); err != nil {
		t.Fatalf("first cycle failed: %v", err)
	}

	result, err := p.RunCycle()
	if err != nil {
		t.Fatalf("second cycle failed: %v", err)
	}
	if result.Skipped != 1 || result.Responded != 0 {
		t.Fatalf("expected 1 skipped and 0 responded, got %+v", result)
	}
	if tracker.commentCalls != 1 {
		t.Fatalf("expected no second comment, got %d calls", tracker.commentCalls)
	}
}

func TestRunCycleLeavesFailedIssuesForRetry(t *testing.T) {
	tracker := newFakeTracker(
		domain.Issue{Number: 1, Title: "Bug one", Author: "alice"},
		domain.Issue{Number: 2, Title: "Bug two", Author: "bob"},
		domain.Issue{Number: 3, Title: "Bug three", Author: "carol"},
	)
	tracker.failComments[2] = true
	p := newTestPoller(t, tracker)

	result, err := p.RunCycle()
	if err != nil {
		t.Fatalf("cycle failed: %v", err)
	}
	if result.Responded != 2 || result.Failed != 1 {
		t.Fatalf("expected 2 responded and 1 failed, got %+v", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "#2") {
		t.Fatalf("expected error for #2, got %v", result.Errors)
	}
	if p.ledger.Has(2) {
		t.Fatal("failed issue must stay unmarked for retry")
	}
	if !p.ledger.Has(1) || !p.ledger.Has(3) {
		t.Fatal("successful issues must be marked")
	}

	// The tracker recovers; the next cycle retries only issue 2.
	tracker.failComments[2] = false
	result, err = p.RunCycle()
	if err != nil {
		t.Fatalf("retry cycle failed: %v", err)
	}
	if result.Responded != 1 || result.Skipped != 2 {
		t.Fatalf("expected 1 responded and 2 skipped on retry, got %+v", result)
	}
	if _, ok := tracker.comments[2]; !ok {
		t.Fatal("expected issue 2 commented on retry")
	}
}

func TestRunCycleAbortsOnFetchError(t *testing.T) {
	tracker := newFakeTracker()
	tracker.listErr = fmt.Errorf("boom")
	p := newTestPoller(t, tracker)

	if _, err := p.RunCycle(); err == nil {
		t.Fatal("expected fetch error to surface")
	}
}

func TestIntervalSchedule(t *testing.T) {
	sched, desc, err := BuildSchedule("", 5*time.Minute)
	if err != nil {
		t.Fatalf("building interval schedule: %v", err)
	}
	if desc != "every 5m0s" {
		t.Fatalf("unexpected description: %q", desc)
	}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if next := sched.Next(now); !next.Equal(now.Add(5 * time.Minute)) {
		t.Fatalf("unexpected next time: %s", next)
	}
}

func TestBuildScheduleCron(t *testing.T) {
	sched, desc, err := BuildSchedule("0 9 * * 1", time.Minute)
	if err != nil {
		t.Fatalf("parsing cron schedule: %v", err)
	}
	if desc != "cron: 0 9 * * 1" {
		t.Fatalf("unexpected description: %q", desc)
	}
	// Sunday 2026-03-01 -> next Monday 09:00.
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	next := sched.Next(now)
	want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestBuildScheduleRejectsBadCron(t *testing.T) {
	if _, _, err := BuildSchedule("not a cron", time.Minute); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFormatCycleSummary(t *testing.T) {
	got := FormatCycleSummary(CycleResult{Fetched: 5, Responded: 2, Skipped: 2, Failed: 1,
		Errors: []string{"#4: comment rejected"}})
	for _, want := range []string{"5 issues fetched", "2 responded", "2 already handled", "1 failed (will retry)", "#4"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q: %q", want, got)
		}
	}
}
