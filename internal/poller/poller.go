// Package poller drives the fetch-classify-respond-persist cycle against
// the issue tracker, in one-shot or continuous mode. The poller is the sole
// owner of the ledger: no other component reads or writes it.
package poller

import (
	"fmt"
	"log"
	"strings"
	"time"

	"triagebot/internal/classify"
	"triagebot/internal/domain"
	"triagebot/internal/ledger"
	"triagebot/internal/respond"
)

// Tracker is the external issue-tracker capability the poller consumes.
type Tracker interface {
	ListIssues(state string, since time.Time) ([]domain.Issue, error)
	PostComment(number int64, text string) error
	AddLabels(number int64, labels []string) error
}

// Archiver records completed triage decisions. Optional.
type Archiver interface {
	ArchiveTriage(issue domain.Issue, triage domain.TriageResult) error
}

// Notifier receives one-line cycle summaries. Optional.
type Notifier interface {
	PostSummary(text string)
}

type Poller struct {
	tracker    Tracker
	ledger     *ledger.Ledger
	classifier *classify.Classifier
	archive    Archiver
	notifier   Notifier
	lookback   time.Duration
	now        func() time.Time
}

func New(tracker Tracker, ldg *ledger.Ledger, classifier *classify.Classifier, lookback time.Duration) *Poller {
	return &Poller{
		tracker:    tracker,
		ledger:     ldg,
		classifier: classifier,
		lookback:   lookback,
		now:        time.Now,
	}
}

func (p *Poller) WithArchiver(a Archiver) *Poller {
	p.archive = a
	return p
}

func (p *Poller) WithNotifier(n Notifier) *Poller {
	p.notifier = n
	return p
}

// CycleResult tracks separate counters for each outcome within one cycle.
type CycleResult struct {
	Fetched   int
	Skipped   int // already in the ledger
	Responded int
	Failed    int // respond call failed; left unmarked for retry
	Errors    []string
}

// RunCycle executes one fetch-classify-respond-persist pass. A fetch error
// aborts the cycle; per-issue respond errors are logged, counted, and leave
// the issue unmarked so the next cycle retries it.
func (p *Poller) RunCycle() (CycleResult, error) {
	since := p.now().Add(-p.lookback)
	log.Printf("poll cycle start since=%s", since.Format(time.RFC3339))

	issues, err := p.tracker.ListIssues("open", since)
	if err != nil {
		return CycleResult{}, fmt.Errorf("fetching issues: %w", err)
	}

	var result CycleResult
	result.Fetched = len(issues)

	for _, issue := range issues {
		if p.ledger.Has(issue.Number) {
			result.Skipped++
			continue
		}

		triage := respond.BuildTriage(issue, p.classifier)
		response := respond.Render(issue, triage)

		if err := p.tracker.PostComment(issue.Number, response.CommentText()); err != nil {
			log.Printf("respond error issue=#%d: %v", issue.Number, err)
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("#%d: %v", issue.Number, err))
			continue
		}
		// Labels are best-effort: the comment already went out, and
		// retrying the whole issue next cycle would post it twice.
		if err := p.tracker.AddLabels(issue.Number, response.Labels); err != nil {
			log.Printf("label error issue=#%d: %v", issue.Number, err)
			result.Errors = append(result.Errors, fmt.Sprintf("#%d labels: %v", issue.Number, err))
		}

		// Mark only after the response succeeded; a failed response must
		// stay eligible for retry.
		if err := p.ledger.MarkProcessed(issue.Number, p.now()); err != nil {
			log.Printf("ledger persist error issue=#%d: %v", issue.Number, err)
		}
		if p.archive != nil {
			if err := p.archive.ArchiveTriage(issue, triage); err != nil {
				log.Printf("archive error issue=#%d: %v", issue.Number, err)
			}
		}

		result.Responded++
		log.Printf("triaged issue=#%d primary=%s severity=%s complexity=%s timeline=%q",
			issue.Number, triage.Primary, triage.Severity, triage.Complexity, triage.Timeline)
	}

	log.Printf("poll cycle done fetched=%d responded=%d skipped=%d failed=%d",
		result.Fetched, result.Responded, result.Skipped, result.Failed)
	return result, nil
}

// FormatCycleSummary returns a human-readable summary of a CycleResult.
func FormatCycleSummary(result CycleResult) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d responded", result.Responded))
	if result.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d already handled", result.Skipped))
	}
	if result.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed (will retry)", result.Failed))
	}
	msg := fmt.Sprintf("Triage cycle: %d issues fetched, %s.", result.Fetched, strings.Join(parts, ", "))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\nWarnings:\n%s", strings.Join(result.Errors, "\n"))
	}
	return msg
}
