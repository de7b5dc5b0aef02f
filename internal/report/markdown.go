package report

import (
	"fmt"
	"strings"

	"triagebot/internal/domain"
)

// RenderMarkdown renders the report in the standard section order. Category
// percentages are computed against the total issue count; because an issue
// can land in several category buckets, those percentages may sum past 100%.
func RenderMarkdown(r domain.Report, teamName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Issues Report - %s\n\n", teamName, titleCase(r.Period))
	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "- **Total Issues:** %d\n", r.TotalIssues)
	fmt.Fprintf(&b, "- **Open Issues:** %d\n", r.OpenIssues)
	fmt.Fprintf(&b, "- **Closed Issues:** %d\n", r.ClosedIssues)
	fmt.Fprintf(&b, "- **Resolution Rate:** %.1f%%\n", r.ResolutionRate)
	fmt.Fprintf(&b, "- **Period:** %s to %s\n\n",
		r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))

	b.WriteString("## Issue Categories\n\n")
	b.WriteString("| Category | Count | % of Issues |\n|----------|-------|-------------|\n")
	for _, cat := range categoryOrder() {
		count := r.CategoryCounts[cat]
		if count == 0 {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", cat, count, percentOf(count, r.TotalIssues))
	}
	b.WriteString("\n")

	b.WriteString("## Severity Distribution\n\n")
	b.WriteString("| Severity | Count | % of Issues |\n|----------|-------|-------------|\n")
	for _, sev := range domain.Severities {
		count := r.SeverityCounts[sev]
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", sev, count, percentOf(count, r.TotalIssues))
	}
	b.WriteString("\n")

	b.WriteString("## Resolution Timeline\n\n")
	fmt.Fprintf(&b, "- **Average Resolution Time:** %.1f days\n", r.Timeline.AverageDays)
	fmt.Fprintf(&b, "- **Median Resolution Time:** %.1f days\n", r.Timeline.MedianDays)
	fmt.Fprintf(&b, "- **Total Resolutions:** %d\n\n", len(r.Timeline.ResolutionDays))

	b.WriteString("## Community Engagement\n\n")
	fmt.Fprintf(&b, "- **Total Reactions:** %d\n", r.Engagement.TotalReactions)
	fmt.Fprintf(&b, "- **Total Comments:** %d\n", r.Engagement.TotalComments)
	fmt.Fprintf(&b, "- **Average Comments per Issue:** %.1f\n\n", r.Engagement.AvgCommentsPerIssue)

	if len(r.Engagement.MostReacted) > 0 {
		b.WriteString("### Most Reacted Issues\n\n")
		for _, ref := range r.Engagement.MostReacted {
			fmt.Fprintf(&b, "- #%d %s (%d reactions)\n", ref.Number, truncateTitle(ref.Title), ref.Count)
		}
		b.WriteString("\n")
	}
	if len(r.Engagement.MostCommented) > 0 {
		b.WriteString("### Most Commented Issues\n\n")
		for _, ref := range r.Engagement.MostCommented {
			fmt.Fprintf(&b, "- #%d %s (%d comments)\n", ref.Number, truncateTitle(ref.Title), ref.Count)
		}
		b.WriteString("\n")
	}
	if len(r.Engagement.TopContributors) > 0 {
		b.WriteString("### Top Contributors\n\n")
		for _, c := range r.Engagement.TopContributors {
			fmt.Fprintf(&b, "- %s (%d issues)\n", c.Name, c.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Team Performance\n\n")
	if len(r.Team) == 0 {
		b.WriteString("No issues were assigned in this period.\n\n")
	} else {
		b.WriteString("| Assignee | Assigned | Closed | Closed Rate | Avg Resolution | Workload |\n")
		b.WriteString("|----------|----------|--------|-------------|----------------|----------|\n")
		for _, p := range r.Team {
			fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% | %.1f days | %.1f%% |\n",
				p.Name, p.Assigned, p.Closed, p.ClosedRate, p.AvgResolutionDays, p.WorkloadShare)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Issue Patterns\n\n")
	if len(r.Patterns.CommonKeywords) > 0 {
		b.WriteString("### Common Keywords\n\n")
		for _, kw := range r.Patterns.CommonKeywords {
			fmt.Fprintf(&b, "- %s (%d)\n", kw.Name, kw.Count)
		}
		b.WriteString("\n")
	}
	if len(r.Patterns.FrequentReporters) > 0 {
		b.WriteString("### Frequent Reporters\n\n")
		for _, rep := range r.Patterns.FrequentReporters {
			fmt.Fprintf(&b, "- %s (%d issues)\n", rep.Name, rep.Count)
		}
		b.WriteString("\n")
	}
	if len(r.Patterns.RecurringTitles) > 0 {
		b.WriteString("### Recurring Issues\n\n")
		for _, rec := range r.Patterns.RecurringTitles {
			fmt.Fprintf(&b, "- **%s** (%d occurrences)\n", rec.Name, rec.Count)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No recurring issues detected.\n\n")
	}

	b.WriteString("## Recommendations\n\n")
	if len(r.Recommendations) == 0 {
		b.WriteString("No specific recommendations at this time.\n")
	} else {
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "*Report generated on %s*\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	return b.String()
}

func categoryOrder() []domain.Category {
	return []domain.Category{
		domain.CategoryBug,
		domain.CategoryFeature,
		domain.CategoryEnhancement,
		domain.CategoryDocumentation,
		domain.CategoryQuestion,
		domain.CategoryUI,
		domain.CategoryBackend,
		domain.CategoryMobile,
		domain.CategoryPerformance,
		domain.CategoryAuthentication,
		domain.CategoryOther,
	}
}

func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncateTitle shortens long titles on rune boundaries so multi-byte
// characters are never split mid-sequence.
func truncateTitle(title string) string {
	const max = 60
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}
