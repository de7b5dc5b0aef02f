// Package respond renders the automated triage response for an issue. It is
// a pure function of the issue snapshot and its triage result: no network,
// no persistence.
package respond

import (
	"fmt"
	"strings"
	"text/template"

	"triagebot/internal/domain"
)

// NoDescription is substituted for an empty issue body in rendered responses.
const NoDescription = "No description provided"

// Response is the rendered output for one issue: the comment to post and
// the labels to apply.
type Response struct {
	Title  string
	Body   string
	Labels []string
}

type templateData struct {
	Title       string
	Body        string
	Author      string
	Severity    string
	Complexity  string
	Timeline    string
	ActionItems []string
	Categories  []domain.Category
}

var categoryTemplates = map[domain.Category]*template.Template{
	domain.CategoryBug: mustParse("bug", `## Bug Analysis Report

**Issue:** {{.Title}}
**Severity:** {{.Severity}}
**Complexity:** {{.Complexity}}
**Reported by:** {{.Author}}

### Problem Description
{{.Body}}

### Action Plan
{{range .ActionItems}}- [ ] {{.}}
{{end}}
### Timeline
{{.Timeline}}
`),
	domain.CategoryFeature: mustParse("feature", `## Feature Request Analysis

**Request:** {{.Title}}
**Priority:** {{.Severity}}
**Complexity:** {{.Complexity}}
**Requested by:** {{.Author}}

### Requirements
{{.Body}}

### Development Plan
{{range .ActionItems}}- [ ] {{.}}
{{end}}
### Development Timeline
{{.Timeline}}
`),
	domain.CategoryEnhancement: mustParse("enhancement", `## Enhancement Request Analysis

**Enhancement:** {{.Title}}
**Priority:** {{.Severity}}
**Complexity:** {{.Complexity}}
**Requested by:** {{.Author}}

### Enhancement Details
{{.Body}}

### Action Plan
{{range .ActionItems}}- [ ] {{.}}
{{end}}
### Implementation Timeline
{{.Timeline}}
`),
	domain.CategoryDocumentation: mustParse("documentation", `## Documentation Request Analysis

**Documentation:** {{.Title}}
**Priority:** {{.Severity}}
**Complexity:** {{.Complexity}}
**Requested by:** {{.Author}}

### Documentation Details
{{.Body}}

### Action Plan
{{range .ActionItems}}- [ ] {{.}}
{{end}}
### Implementation Timeline
{{.Timeline}}
`),
	domain.CategoryQuestion: mustParse("question", `## Question Analysis

**Question:** {{.Title}}
**Priority:** {{.Severity}}
**Complexity:** {{.Complexity}}
**Asked by:** {{.Author}}

### Question Details
{{.Body}}

### Response Plan
{{range .ActionItems}}- [ ] {{.}}
{{end}}
### Response Timeline
{{.Timeline}}
`),
}

var responseTitles = map[domain.Category]string{
	domain.CategoryBug:           "Bug Analysis",
	domain.CategoryFeature:       "Feature Request",
	domain.CategoryEnhancement:   "Enhancement",
	domain.CategoryDocumentation: "Documentation",
	domain.CategoryQuestion:      "Question",
}

// Render produces the response for an issue and its triage result. The
// template is chosen by primary category; categories without a template of
// their own (ui, backend, mobile, performance, authentication, other) fall
// back to the question template.
func Render(issue domain.Issue, triage domain.TriageResult) Response {
	tmpl, ok := categoryTemplates[triage.Primary]
	titleCat := triage.Primary
	if !ok {
		tmpl = categoryTemplates[domain.CategoryQuestion]
		titleCat = domain.CategoryQuestion
	}

	body := issue.Body
	if strings.TrimSpace(body) == "" {
		body = NoDescription
	}

	data := templateData{
		Title:       issue.Title,
		Body:        body,
		Author:      issue.Author,
		Severity:    strings.ToUpper(string(triage.Severity)),
		Complexity:  strings.ToUpper(string(triage.Complexity)),
		Timeline:    triage.Timeline,
		ActionItems: triage.ActionItems,
		Categories:  triage.Categories,
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		// Templates are static and parsed at init; execution over plain
		// string fields cannot fail at runtime.
		b.Reset()
		b.WriteString(fmt.Sprintf("## %s: %s\n", responseTitles[titleCat], issue.Title))
	}
	b.WriteString("\n---\n")
	b.WriteString(fmt.Sprintf("**Automated triage** - Categories: %s | Severity: %s | Complexity: %s | Timeline: %s\n",
		joinCategories(triage.Categories), triage.Severity, triage.Complexity, triage.Timeline))

	return Response{
		Title:  fmt.Sprintf("%s: %s", responseTitles[titleCat], issue.Title),
		Body:   b.String(),
		Labels: responseLabels(triage),
	}
}

// CommentText is the full comment as posted to the tracker: the response
// title line followed by the rendered body.
func (r Response) CommentText() string {
	return fmt.Sprintf("# %s\n\n%s", r.Title, r.Body)
}

// responseLabels lists the labels to apply: every matched category plus the
// severity and complexity values.
func responseLabels(triage domain.TriageResult) []string {
	labels := make([]string, 0, len(triage.Categories)+2)
	for _, cat := range triage.Categories {
		labels = append(labels, string(cat))
	}
	labels = append(labels, string(triage.Severity), string(triage.Complexity))
	return labels
}

func joinCategories(categories []domain.Category) string {
	parts := make([]string, len(categories))
	for i, cat := range categories {
		parts[i] = string(cat)
	}
	return strings.Join(parts, ", ")
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}
