// Package report folds a batch of issues into a periodic analytical report
// and renders it to markdown and JSON files.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"gonum.org/v1/gonum/stat"

	"triagebot/internal/classify"
	"triagebot/internal/domain"
)

const (
	topKeywordCount  = 20
	topReporterCount = 10
	topIssueCount    = 10
	minKeywordLength = 4
)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true,
	"have": true, "this": true, "that": true, "from": true,
	"when": true, "will": true, "should": true, "would": true,
}

// Aggregate builds a Report over the issues in [start, end). The batch is
// not gated by the ledger: already-responded issues still count here.
func Aggregate(issues []domain.Issue, classifier *classify.Classifier, period string, start, end time.Time) domain.Report {
	r := domain.Report{
		Period:         period,
		StartDate:      start,
		EndDate:        end,
		TotalIssues:    len(issues),
		CategoryCounts: make(map[domain.Category]int),
		SeverityCounts: make(map[domain.Severity]int),
		GeneratedAt:    time.Now(),
	}

	for _, issue := range issues {
		if issue.IsClosed() {
			r.ClosedIssues++
		} else {
			r.OpenIssues++
		}

		// An issue matching several categories contributes to each bucket:
		// multi-counting is intentional, and percentages downstream are
		// computed against TotalIssues, not the bucket sum.
		categories, severity, _ := classifier.Classify(issue)
		for _, cat := range categories {
			r.CategoryCounts[cat]++
		}
		r.SeverityCounts[severity]++
	}

	if r.TotalIssues > 0 {
		r.ResolutionRate = float64(r.ClosedIssues) / float64(r.TotalIssues) * 100
	}

	r.Timeline = timelineStats(issues)
	r.Engagement = engagementStats(issues)
	r.Patterns = patternStats(issues)
	r.Team = teamPerformance(issues)
	r.Recommendations = recommendations(issues, r)

	return r
}

// timelineStats computes day-granularity resolution statistics over closed
// issues. No closed issues yields zeros, not an error.
func timelineStats(issues []domain.Issue) domain.TimelineStats {
	var days []int
	for _, issue := range issues {
		if d, ok := issue.ResolutionDays(); ok {
			days = append(days, d)
		}
	}
	ts := domain.TimelineStats{ResolutionDays: days}
	if len(days) == 0 {
		return ts
	}

	sorted := make([]float64, len(days))
	for i, d := range days {
		sorted[i] = float64(d)
	}
	sort.Float64s(sorted)
	ts.AverageDays = stat.Mean(sorted, nil)
	ts.MedianDays = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return ts
}

func engagementStats(issues []domain.Issue) domain.EngagementStats {
	es := domain.EngagementStats{}
	reacted := make([]domain.IssueRef, 0, len(issues))
	commented := make([]domain.IssueRef, 0, len(issues))
	contributors := make(map[string]int)

	for _, issue := range issues {
		es.TotalReactions += issue.ReactionCount
		es.TotalComments += issue.CommentCount
		for _, name := range issue.Assignees {
			contributors[name]++
		}
		reacted = append(reacted, domain.IssueRef{Number: issue.Number, Title: issue.Title, Count: issue.ReactionCount})
		commented = append(commented, domain.IssueRef{Number: issue.Number, Title: issue.Title, Count: issue.CommentCount})
	}
	if len(issues) > 0 {
		es.AvgCommentsPerIssue = float64(es.TotalComments) / float64(len(issues))
	}
	es.TopContributors = topNameCounts(contributors, topReporterCount)

	// Stable sort keeps the original fetch order for equal counters.
	sort.SliceStable(reacted, func(i, j int) bool { return reacted[i].Count > reacted[j].Count })
	sort.SliceStable(commented, func(i, j int) bool { return commented[i].Count > commented[j].Count })
	es.MostReacted = truncateRefs(reacted, topIssueCount)
	es.MostCommented = truncateRefs(commented, topIssueCount)
	return es
}

func patternStats(issues []domain.Issue) domain.PatternStats {
	keywordCounts := make(map[string]int)
	reporterCounts := make(map[string]int)
	titleCounts := make(map[string]int)

	for _, issue := range issues {
		for _, word := range tokenize(issue.Title + " " + issue.Body) {
			if len(word) < minKeywordLength || stopWords[word] {
				continue
			}
			keywordCounts[word]++
		}
		if issue.Author != "" {
			reporterCounts[issue.Author]++
		}
		titleCounts[strings.ToLower(strings.TrimSpace(issue.Title))]++
	}

	var recurring []domain.NameCount
	for title, count := range titleCounts {
		if count > 1 {
			recurring = append(recurring, domain.NameCount{Name: title, Count: count})
		}
	}
	sortNameCounts(recurring)

	return domain.PatternStats{
		CommonKeywords:    topNameCounts(keywordCounts, topKeywordCount),
		FrequentReporters: topNameCounts(reporterCounts, topReporterCount),
		RecurringTitles:   recurring,
	}
}

// teamPerformance breaks down assigned issues per assignee: totals, closed
// counts and rate, average resolution time, and each assignee's share of the
// overall assigned workload. An issue with several assignees counts for each.
func teamPerformance(issues []domain.Issue) []domain.AssigneePerformance {
	type tally struct {
		assigned int
		closed   int
		days     int
	}
	byName := make(map[string]*tally)
	totalAssigned := 0

	for _, issue := range issues {
		for _, name := range issue.Assignees {
			t := byName[name]
			if t == nil {
				t = &tally{}
				byName[name] = t
			}
			t.assigned++
			totalAssigned++
			if d, ok := issue.ResolutionDays(); ok {
				t.closed++
				t.days += d
			}
		}
	}

	out := make([]domain.AssigneePerformance, 0, len(byName))
	for name, t := range byName {
		perf := domain.AssigneePerformance{
			Name:          name,
			Assigned:      t.assigned,
			Closed:        t.closed,
			ClosedRate:    float64(t.closed) / float64(t.assigned) * 100,
			WorkloadShare: float64(t.assigned) / float64(totalAssigned) * 100,
		}
		if t.closed > 0 {
			perf.AvgResolutionDays = float64(t.days) / float64(t.closed)
		}
		out = append(out, perf)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Assigned != out[j].Assigned {
			return out[i].Assigned > out[j].Assigned
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// recommendations evaluates the fixed advisory rule set against the
// aggregate numbers. Rules are independent: every applicable rule fires.
func recommendations(issues []domain.Issue, r domain.Report) []string {
	var recs []string

	if r.OpenIssues > r.ClosedIssues {
		recs = append(recs, "Consider prioritizing backlog reduction - more issues are being created than resolved")
	}
	if r.TotalIssues > 0 && r.ResolutionRate < 70 {
		recs = append(recs, "Resolution rate is below 70% - review development process and resource allocation")
	}
	if critical := r.SeverityCounts[domain.SeverityCritical]; critical > 0 {
		recs = append(recs, fmt.Sprintf("%d critical issues need immediate attention", critical))
	}
	if r.TotalIssues > 0 && r.Engagement.TotalReactions > 0 {
		if avg := float64(r.Engagement.TotalReactions) / float64(r.TotalIssues); avg < 2 {
			recs = append(recs, "Consider improving issue communication to increase user engagement")
		}
	}
	if !anyAssigned(issues) {
		recs = append(recs, "Consider assigning issues to team members for better accountability")
	}

	return recs
}

func anyAssigned(issues []domain.Issue) bool {
	for _, issue := range issues {
		if len(issue.Assignees) > 0 {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// topNameCounts returns the n highest counts, ties broken alphabetically so
// report output is deterministic.
func topNameCounts(counts map[string]int, n int) []domain.NameCount {
	out := make([]domain.NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, domain.NameCount{Name: name, Count: count})
	}
	sortNameCounts(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortNameCounts(list []domain.NameCount) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Name < list[j].Name
	})
}

func truncateRefs(refs []domain.IssueRef, n int) []domain.IssueRef {
	if len(refs) > n {
		return refs[:n]
	}
	return refs
}
