package domain

// Category is one of the fixed classification tags. An issue may match
// several; exactly one is chosen as primary for response generation.
type Category string

const (
	CategoryBug            Category = "bug"
	CategoryFeature        Category = "feature"
	CategoryEnhancement    Category = "enhancement"
	CategoryDocumentation  Category = "documentation"
	CategoryQuestion       Category = "question"
	CategoryUI             Category = "ui"
	CategoryBackend        Category = "backend"
	CategoryMobile         Category = "mobile"
	CategoryPerformance    Category = "performance"
	CategoryAuthentication Category = "authentication"
	CategoryOther          Category = "other"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// Severities and Complexities list every value in display order.
var (
	Severities   = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
	Complexities = []Complexity{ComplexitySimple, ComplexityMedium, ComplexityComplex}
)

// TriageResult is the derived classification for a single issue. It is
// ephemeral: only the (number, processedAt) pair survives in the ledger.
type TriageResult struct {
	IssueNumber int64
	Categories  []Category
	Primary     Category
	Severity    Severity
	Complexity  Complexity
	Timeline    string
	ActionItems []string
}

func (t TriageResult) HasCategory(c Category) bool {
	for _, got := range t.Categories {
		if got == c {
			return true
		}
	}
	return false
}
