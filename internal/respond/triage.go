package respond

import (
	"triagebot/internal/classify"
	"triagebot/internal/domain"
)

// BuildTriage runs classification and fills in the response-side fields
// (timeline estimate, action checklist) to produce the complete triage
// result for one issue.
func BuildTriage(issue domain.Issue, c *classify.Classifier) domain.TriageResult {
	categories, severity, complexity := c.Classify(issue)
	primary := c.PrimaryCategory(categories)

	return domain.TriageResult{
		IssueNumber: issue.Number,
		Categories:  categories,
		Primary:     primary,
		Severity:    severity,
		Complexity:  complexity,
		Timeline:    EstimateTimeline(complexity, severity),
		ActionItems: ActionItems(primary, categories),
	}
}
