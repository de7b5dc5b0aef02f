// Package classify derives category, severity, and complexity for an issue
// from static keyword tables and engagement counters. No external state, no
// randomness: the same snapshot always classifies the same way.
package classify

import (
	"strings"

	"triagebot/internal/domain"
)

type Classifier struct {
	kw Keywords
}

func New(kw Keywords) *Classifier {
	return &Classifier{kw: kw}
}

// Classify returns all matched categories (never empty; question is the
// fallback), the severity, and the complexity for the issue.
func (c *Classifier) Classify(issue domain.Issue) ([]domain.Category, domain.Severity, domain.Complexity) {
	content := contentOf(issue)
	return c.categories(content), c.severity(issue, content), c.complexity(content)
}

// PrimaryCategory picks the response category: the first entry of the
// priority list present in the matched set.
func (c *Classifier) PrimaryCategory(categories []domain.Category) domain.Category {
	matched := make(map[domain.Category]bool, len(categories))
	for _, cat := range categories {
		matched[cat] = true
	}
	for _, cat := range c.kw.Priority {
		if matched[cat] {
			return cat
		}
	}
	return domain.CategoryQuestion
}

func (c *Classifier) categories(content string) []domain.Category {
	var matched []domain.Category
	for _, cat := range c.kw.Priority {
		if containsAny(content, c.kw.Categories[cat]) {
			matched = append(matched, cat)
		}
	}
	if len(matched) == 0 {
		matched = []domain.Category{domain.CategoryQuestion}
	}
	return matched
}

// severity assigns exactly one tier; the first matching tier wins and later
// tiers are not also checked.
func (c *Classifier) severity(issue domain.Issue, content string) domain.Severity {
	if containsAny(content, c.kw.Critical) || hasLabelFold(issue, "critical") {
		return domain.SeverityCritical
	}
	if containsAny(content, c.kw.High) || issue.ReactionCount > 5 {
		return domain.SeverityHigh
	}
	if containsAny(content, c.kw.Medium) || issue.ReactionCount > 2 {
		return domain.SeverityMedium
	}
	return domain.SeverityLow
}

func (c *Classifier) complexity(content string) domain.Complexity {
	if containsAny(content, c.kw.Complex) {
		return domain.ComplexityComplex
	}
	if containsAny(content, c.kw.MediumComplex) {
		return domain.ComplexityMedium
	}
	return domain.ComplexitySimple
}

func contentOf(issue domain.Issue) string {
	return strings.ToLower(issue.Title + " " + issue.Body)
}

func containsAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func hasLabelFold(issue domain.Issue, name string) bool {
	for _, l := range issue.Labels {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}
