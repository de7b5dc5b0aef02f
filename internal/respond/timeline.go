package respond

import "triagebot/internal/domain"

// TimelineUnknown is returned for any (complexity, severity) pair outside
// the table. It is an explicit contract: callers and templates surface it
// verbatim rather than inventing an estimate.
const TimelineUnknown = "TBD"

type timelineKey struct {
	Complexity domain.Complexity
	Severity   domain.Severity
}

// timelineTable enumerates all 12 supported combinations explicitly so the
// fallback stays visible and testable.
var timelineTable = map[timelineKey]string{
	{domain.ComplexitySimple, domain.SeverityCritical}: "Fix immediately - 1-2 days",
	{domain.ComplexitySimple, domain.SeverityHigh}:     "Next release - 3-5 days",
	{domain.ComplexitySimple, domain.SeverityMedium}:   "Next sprint - 1-2 weeks",
	{domain.ComplexitySimple, domain.SeverityLow}:      "Next milestone - 2-3 weeks",

	{domain.ComplexityMedium, domain.SeverityCritical}: "Hotfix required - 3-5 days",
	{domain.ComplexityMedium, domain.SeverityHigh}:     "Next release - 1-2 weeks",
	{domain.ComplexityMedium, domain.SeverityMedium}:   "Next sprint - 2-3 weeks",
	{domain.ComplexityMedium, domain.SeverityLow}:      "Next milestone - 3-4 weeks",

	{domain.ComplexityComplex, domain.SeverityCritical}: "Emergency patch - 1 week",
	{domain.ComplexityComplex, domain.SeverityHigh}:     "Next major release - 2-3 weeks",
	{domain.ComplexityComplex, domain.SeverityMedium}:   "Next development cycle - 3-4 weeks",
	{domain.ComplexityComplex, domain.SeverityLow}:      "Future release - 1-2 months",
}

// EstimateTimeline looks up the resolution estimate for the pair.
func EstimateTimeline(complexity domain.Complexity, severity domain.Severity) string {
	if estimate, ok := timelineTable[timelineKey{complexity, severity}]; ok {
		return estimate
	}
	return TimelineUnknown
}
