package poller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// intervalSchedule adapts a fixed wall-clock interval to the cron.Schedule
// interface so the continuous loop handles both the same way.
type intervalSchedule struct {
	every time.Duration
}

func (s intervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.every)
}

// BuildSchedule resolves the continuous-mode schedule: a 5-field cron
// expression when set (minute hour day-of-month month day-of-week),
// otherwise the fixed interval.
func BuildSchedule(cronExpr string, interval time.Duration) (cron.Schedule, string, error) {
	if cronExpr != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		sched, err := parser.Parse(cronExpr)
		if err != nil {
			return nil, "", fmt.Errorf("parsing poll_schedule '%s': %w", cronExpr, err)
		}
		return sched, fmt.Sprintf("cron: %s", cronExpr), nil
	}
	return intervalSchedule{every: interval}, fmt.Sprintf("every %s", interval), nil
}

// RunContinuous runs a cycle immediately, then repeats on the schedule
// until ctx is cancelled. Cycle errors are logged and never fatal here; the
// loop always continues at the next scheduled time. The sleep between
// cycles is cancellable, so shutdown finishes the in-flight cycle and then
// stops instead of aborting mid-cycle.
func (p *Poller) RunContinuous(ctx context.Context, sched cron.Schedule) error {
	for {
		result, err := p.RunCycle()
		if err != nil {
			log.Printf("poll cycle error: %v", err)
		} else {
			summary := FormatCycleSummary(result)
			if p.notifier != nil && (result.Responded > 0 || result.Failed > 0) {
				p.notifier.PostSummary(summary)
			}
		}

		now := p.now()
		next := sched.Next(now)
		wait := next.Sub(now)
		log.Printf("next poll at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Second))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("poller stopped")
			return nil
		case <-timer.C:
		}
	}
}

// RunOnce executes a single cycle and surfaces the fetch error to the
// caller, so one-shot mode can exit non-zero when the retry budget is
// exhausted.
func (p *Poller) RunOnce() (CycleResult, error) {
	result, err := p.RunCycle()
	if err != nil {
		return result, err
	}
	if p.notifier != nil && (result.Responded > 0 || result.Failed > 0) {
		p.notifier.PostSummary(FormatCycleSummary(result))
	}
	return result, nil
}
