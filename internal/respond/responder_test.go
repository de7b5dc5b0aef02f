package respond

import (
	"strings"
	"testing"

	"triagebot/internal/domain"
)

func TestEstimateTimelineCoversAllPairs(t *testing.T) {
	for _, cx := range domain.Complexities {
		for _, sev := range domain.Severities {
			estimate := EstimateTimeline(cx, sev)
			if estimate == TimelineUnknown {
				t.Fatalf("no estimate for (%s, %s)", cx, sev)
			}
		}
	}
}

func TestEstimateTimelineUnknownPair(t *testing.T) {
	if got := EstimateTimeline(domain.Complexity("weird"), domain.SeverityLow); got != TimelineUnknown {
		t.Fatalf("expected %q for unknown pair, got %q", TimelineUnknown, got)
	}
}

func TestEstimateTimelineKnownValues(t *testing.T) {
	if got := EstimateTimeline(domain.ComplexitySimple, domain.SeverityCritical); got != "Fix immediately - 1-2 days" {
		t.Fatalf("unexpected estimate: %q", got)
	}
	if got := EstimateTimeline(domain.ComplexityComplex, domain.SeverityLow); got != "Future release - 1-2 months" {
		t.Fatalf("unexpected estimate: %q", got)
	}
}

func TestRenderBugTemplate(t *testing.T) {
	issue := domain.Issue{
		Number: 42,
		Title:  "Crash when saving",
		Body:   "Steps: open editor, hit save",
		Author: "alice",
	}
	triage := domain.TriageResult{
		IssueNumber: 42,
		Categories:  []domain.Category{domain.CategoryBug},
		Primary:     domain.CategoryBug,
		Severity:    domain.SeverityCritical,
		Complexity:  domain.ComplexitySimple,
		Timeline:    "Fix immediately - 1-2 days",
		ActionItems: []string{"Reproduce the bug in development environment"},
	}

	resp := Render(issue, triage)
	for _, want := range []string{
		"## Bug Analysis Report",
		"**Issue:** Crash when saving",
		"**Severity:** CRITICAL",
		"**Complexity:** SIMPLE",
		"**Reported by:** alice",
		"Steps: open editor, hit save",
		"- [ ] Reproduce the bug in development environment",
		"Fix immediately - 1-2 days",
		"**Automated triage** - Categories: bug | Severity: critical | Complexity: simple | Timeline: Fix immediately - 1-2 days",
	} {
		if !strings.Contains(resp.Body, want) {
			t.Fatalf("response body missing %q:\n%s", want, resp.Body)
		}
	}
	if resp.Title != "Bug Analysis: Crash when saving" {
		t.Fatalf("unexpected response title: %q", resp.Title)
	}
}

func TestCommentTextStartsWithTitleLine(t *testing.T) {
	issue := domain.Issue{Number: 3, Title: "Crash when saving", Body: "details", Author: "alice"}
	triage := domain.TriageResult{
		Categories: []domain.Category{domain.CategoryBug},
		Primary:    domain.CategoryBug,
		Severity:   domain.SeverityHigh,
		Complexity: domain.ComplexitySimple,
		Timeline:   "Next release - 3-5 days",
	}

	text := Render(issue, triage).CommentText()
	if !strings.HasPrefix(text, "# Bug Analysis: Crash when saving\n\n") {
		t.Fatalf("comment must lead with the title line:\n%s", text)
	}
	if !strings.Contains(text, "## Bug Analysis Report") {
		t.Fatalf("comment must keep the rendered body:\n%s", text)
	}
}

func TestRenderSubstitutesMissingBody(t *testing.T) {
	issue := domain.Issue{Number: 7, Title: "Empty body", Body: "   ", Author: "bob"}
	triage := domain.TriageResult{
		Categories: []domain.Category{domain.CategoryQuestion},
		Primary:    domain.CategoryQuestion,
		Severity:   domain.SeverityLow,
		Complexity: domain.ComplexitySimple,
		Timeline:   "Next milestone - 2-3 weeks",
	}

	resp := Render(issue, triage)
	if !strings.Contains(resp.Body, NoDescription) {
		t.Fatalf("expected %q in body:\n%s", NoDescription, resp.Body)
	}
}

func TestRenderFallsBackToQuestionTemplate(t *testing.T) {
	issue := domain.Issue{Number: 9, Title: "Slow dashboard", Body: "loads in 20s", Author: "carol"}
	triage := domain.TriageResult{
		Categories: []domain.Category{domain.CategoryPerformance},
		Primary:    domain.CategoryPerformance,
		Severity:   domain.SeverityMedium,
		Complexity: domain.ComplexityMedium,
		Timeline:   "Next sprint - 2-3 weeks",
	}

	resp := Render(issue, triage)
	if !strings.Contains(resp.Body, "## Question Analysis") {
		t.Fatalf("expected question template fallback:\n%s", resp.Body)
	}
	if resp.Title != "Question: Slow dashboard" {
		t.Fatalf("unexpected response title: %q", resp.Title)
	}
}

func TestResponseLabels(t *testing.T) {
	triage := domain.TriageResult{
		Categories: []domain.Category{domain.CategoryBug, domain.CategoryMobile},
		Primary:    domain.CategoryBug,
		Severity:   domain.SeverityHigh,
		Complexity: domain.ComplexityMedium,
	}

	got := responseLabels(triage)
	want := []string{"bug", "mobile", "high", "medium"}
	if len(got) != len(want) {
		t.Fatalf("expected %d labels, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("label %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestActionItemsAreaExtras(t *testing.T) {
	actions := ActionItems(domain.CategoryBug, []domain.Category{
		domain.CategoryBug, domain.CategoryMobile, domain.CategoryBackend,
	})

	joined := strings.Join(actions, "\n")
	for _, want := range []string{
		"Reproduce the bug in development environment",
		"Test on both iOS and Android platforms",
		"Verify API compatibility and test endpoints",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("action items missing %q: %v", want, actions)
		}
	}
	if strings.Contains(joined, "design team") {
		t.Fatalf("unexpected ui extra without ui category: %v", actions)
	}
}
