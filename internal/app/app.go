// Package app wires configuration, storage, the tracker client, and the
// poller together for each CLI command.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"triagebot/internal/classify"
	"triagebot/internal/config"
	"triagebot/internal/domain"
	"triagebot/internal/httpx"
	"triagebot/internal/integrations/github"
	slacknotify "triagebot/internal/integrations/slack"
	"triagebot/internal/ledger"
	"triagebot/internal/poller"
	"triagebot/internal/report"
	"triagebot/internal/respond"
	"triagebot/internal/storage/sqlite"
)

// RunMonitor starts the triage engine: continuous polling, or a single
// cycle when once is set. In one-shot mode a failed cycle surfaces as an
// error (non-zero exit); in continuous mode cycle failures only log.
func RunMonitor(cfg config.Config, once bool) error {
	appliedTimeout := httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)
	log.Printf("Config loaded. Repo=%s Lookback=%s Interval=%s ExternalHTTPTimeout=%s",
		cfg.GitHubRepo, cfg.Lookback(), cfg.PollInterval(), appliedTimeout)

	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()
	log.Printf("Database initialized at %s", cfg.DBPath)

	ldg := ledger.Load(cfg.LedgerPath)
	log.Printf("Ledger loaded from %s (%d processed issues)", cfg.LedgerPath, ldg.Len())

	client := github.NewClient(cfg.GitHubToken, cfg.GitHubRepo)
	classifier := classify.New(classify.DefaultKeywords())

	p := poller.New(client, ldg, classifier, cfg.Lookback()).
		WithArchiver(sqlite.NewArchive(db))
	if notifier := slacknotify.NewNotifier(cfg); notifier != nil {
		p = p.WithNotifier(notifier)
		log.Printf("Slack summaries enabled for channel %s", cfg.SlackChannelID)
	}

	if once {
		result, err := p.RunOnce()
		if err != nil {
			return err
		}
		fmt.Println(poller.FormatCycleSummary(result))
		return nil
	}

	sched, desc, err := poller.BuildSchedule(cfg.PollSchedule, cfg.PollInterval())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting issue triage monitor for %s (%s)", cfg.GitHubRepo, desc)
	return p.RunContinuous(ctx, sched)
}

// RunReport fetches the issues in the period window, aggregates them, and
// writes the markdown + JSON report files. The report batch is not gated by
// the ledger: already-responded issues still count.
func RunReport(cfg config.Config, period string) error {
	httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)

	start, end := domain.PeriodWindow(period, time.Now().In(cfg.Location))
	log.Printf("Generating %s report for %s (%s to %s)",
		period, cfg.GitHubRepo, start.Format("2006-01-02"), end.Format("2006-01-02"))

	client := github.NewClient(cfg.GitHubToken, cfg.GitHubRepo)
	issues, err := client.ListIssues("all", start)
	if err != nil {
		return fmt.Errorf("fetching issues for report: %w", err)
	}
	issues = filterWindow(issues, start, end)
	if len(issues) == 0 {
		log.Println("No issues found in this period")
	}

	classifier := classify.New(classify.DefaultKeywords())
	rep := report.Aggregate(issues, classifier, period, start, end)

	mdPath, jsonPath, err := report.WriteReportFiles(rep, cfg.ReportOutputDir, cfg.TeamName)
	if err != nil {
		return err
	}
	log.Printf("Report written: %s, %s", mdPath, jsonPath)

	if notifier := slacknotify.NewNotifier(cfg); notifier != nil {
		notifier.PostSummary(fmt.Sprintf(
			"%s %s report ready: %d issues, %.1f%% resolved, %d critical.",
			cfg.TeamName, period, rep.TotalIssues, rep.ResolutionRate,
			rep.SeverityCounts[domain.SeverityCritical]))
	}
	return nil
}

// RunHistory prints recent archived triage decisions and severity totals.
func RunHistory(cfg config.Config, days int) error {
	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	since := time.Now().AddDate(0, 0, -days)
	stats, err := sqlite.GetTriageStats(db, since)
	if err != nil {
		return fmt.Errorf("loading triage stats: %w", err)
	}
	records, err := sqlite.GetRecentTriages(db, since, 50)
	if err != nil {
		return fmt.Errorf("loading triage history: %w", err)
	}

	fmt.Printf("Triage history (last %d days): %d issues\n", days, stats.Total)
	fmt.Printf("  critical=%d high=%d medium=%d low=%d\n\n",
		stats.CriticalCount, stats.HighCount, stats.MediumCount, stats.LowCount)
	for _, r := range records {
		fmt.Printf("#%-6d %-10s %-8s %-8s %s\n",
			r.IssueNumber, r.Primary, r.Severity, r.Complexity, r.Title)
	}
	return nil
}

// TriagePreview classifies a single issue without posting anything. Used by
// the preview command for dry runs against one issue number.
func TriagePreview(cfg config.Config, number int64) error {
	httpx.ConfigureExternalHTTPClient(cfg.ExternalHTTPTimeoutSeconds)

	client := github.NewClient(cfg.GitHubToken, cfg.GitHubRepo)
	issue, err := client.GetIssue(number)
	if err != nil {
		return err
	}

	classifier := classify.New(classify.DefaultKeywords())
	triage := respond.BuildTriage(issue, classifier)
	response := respond.Render(issue, triage)

	fmt.Printf("Issue #%d: %s\n", issue.Number, issue.Title)
	fmt.Printf("Categories: %v\nPrimary: %s\nSeverity: %s\nComplexity: %s\nTimeline: %s\n\n",
		triage.Categories, triage.Primary, triage.Severity, triage.Complexity, triage.Timeline)
	fmt.Println(response.CommentText())
	return nil
}

func filterWindow(issues []domain.Issue, start, end time.Time) []domain.Issue {
	var out []domain.Issue
	for _, issue := range issues {
		if issue.CreatedAt.Before(start) || !issue.CreatedAt.Before(end) {
			continue
		}
		out = append(out, issue)
	}
	return out
}
