package domain

import "time"

// Report is the aggregate analytical snapshot over a batch of issues within
// [StartDate, EndDate). Built once, never mutated afterwards.
type Report struct {
	Period         string
	StartDate      time.Time
	EndDate        time.Time
	TotalIssues    int
	OpenIssues     int
	ClosedIssues   int
	ResolutionRate float64 // percent of issues closed, 0 when the batch is empty

	CategoryCounts map[Category]int
	SeverityCounts map[Severity]int

	Timeline        TimelineStats
	Engagement      EngagementStats
	Patterns        PatternStats
	Team            []AssigneePerformance
	Recommendations []string

	GeneratedAt time.Time
}

type TimelineStats struct {
	ResolutionDays []int
	AverageDays    float64
	MedianDays     float64
}

// IssueRef names an issue inside a ranked list together with the counter it
// was ranked by.
type IssueRef struct {
	Number int64
	Title  string
	Count  int
}

type EngagementStats struct {
	TotalReactions      int
	TotalComments       int
	AvgCommentsPerIssue float64
	// TopContributors ranks assignees by the number of issues they carry.
	// The tracker API exposes no per-comment authors, so assignment is the
	// contribution signal; issue authors are ranked separately as
	// PatternStats.FrequentReporters.
	TopContributors []NameCount
	MostReacted     []IssueRef
	MostCommented   []IssueRef
}

type NameCount struct {
	Name  string
	Count int
}

type PatternStats struct {
	CommonKeywords    []NameCount
	FrequentReporters []NameCount
	RecurringTitles   []NameCount
}

// AssigneePerformance summarizes one assignee's share of the batch: how many
// issues they carry, how many of those closed, and how fast.
type AssigneePerformance struct {
	Name              string
	Assigned          int
	Closed            int
	ClosedRate        float64 // percent of their assigned issues closed
	WorkloadShare     float64 // percent of all assigned issues
	AvgResolutionDays float64 // over their closed issues; 0 when none closed
}

// PeriodWindow resolves a report period name to the window ending at now.
// Unknown period names fall back to monthly.
func PeriodWindow(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case "daily":
		return now.AddDate(0, 0, -1), now
	case "weekly":
		return now.AddDate(0, 0, -7), now
	default:
		return now.AddDate(0, 0, -30), now
	}
}
