package classify

import "triagebot/internal/domain"

// Keywords is the full keyword configuration for classification. It is built
// once at startup and passed to the classifier; the tables are never mutated
// afterwards, so classification stays a pure function of the issue snapshot.
//
// The tiered, order-sensitive matching is deliberately simple: a human can
// always explain an assigned label by re-reading these tables. Reordering
// tiers or the priority list changes outcomes.
type Keywords struct {
	// Categories maps each category to its match keywords. A category
	// matches when any keyword occurs as a case-insensitive substring of
	// "title body".
	Categories map[domain.Category][]string

	// Priority is the fixed order used to pick the primary category from a
	// multi-matched set.
	Priority []domain.Category

	// Severity tiers, checked in order: critical, high, medium.
	Critical []string
	High     []string
	Medium   []string

	// Complexity tiers, checked in order: complex, medium.
	Complex       []string
	MediumComplex []string
}

// DefaultKeywords returns the stock keyword tables.
func DefaultKeywords() Keywords {
	return Keywords{
		Categories: map[domain.Category][]string{
			domain.CategoryBug:            {"bug", "error", "crash", "broken"},
			domain.CategoryFeature:        {"feature", "implement", "new"},
			domain.CategoryEnhancement:    {"enhancement", "improve", "optimize", "better"},
			domain.CategoryDocumentation:  {"documentation", "docs", "readme", "guide"},
			domain.CategoryQuestion:       {"question", "help", "how to", "support"},
			domain.CategoryUI:             {"ui", "ux", "interface", "design", "screen"},
			domain.CategoryBackend:        {"backend", "api", "server", "database"},
			domain.CategoryMobile:         {"mobile", "ios", "android"},
			domain.CategoryPerformance:    {"performance", "slow", "optimization", "speed"},
			domain.CategoryAuthentication: {"authentication", "login", "signup", "password", "oauth"},
			// "other" has no keywords: it only appears in reports when set
			// explicitly, never from content matching.
			domain.CategoryOther: nil,
		},
		Priority: []domain.Category{
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
		},
		Critical:      []string{"critical", "urgent", "blocker", "crash", "security"},
		High:          []string{"bug", "error", "broken", "not working", "regression"},
		Medium:        []string{"improve", "enhancement", "optimize", "better"},
		Complex:       []string{"architecture", "database", "api", "integration", "refactor"},
		MediumComplex: []string{"feature", "implement", "add", "create"},
	}
}
