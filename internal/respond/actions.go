package respond

import "triagebot/internal/domain"

// ActionItems builds the ordered checklist for a triaged issue: a fixed
// base list for the primary category, plus area-specific extras when the
// matched set includes ui, mobile, or backend.
func ActionItems(primary domain.Category, categories []domain.Category) []string {
	var actions []string

	switch primary {
	case domain.CategoryBug:
		actions = append(actions,
			"Reproduce the bug in development environment",
			"Identify root cause and affected components",
			"Create automated test case",
			"Implement fix and verify solution",
			"Add regression tests to prevent recurrence",
		)
	case domain.CategoryFeature:
		actions = append(actions,
			"Analyze requirements and create specification",
			"Design implementation approach",
			"Break down into development tasks",
			"Implement feature with proper testing",
			"Update documentation and user guides",
		)
	case domain.CategoryDocumentation:
		actions = append(actions,
			"Identify documentation gaps",
			"Update relevant files",
			"Create examples and tutorials",
			"Review and validate accuracy",
		)
	default:
		actions = append(actions,
			"Analyze the question thoroughly",
			"Provide comprehensive answer",
			"Update documentation if needed",
			"Consider follow-up actions",
		)
	}

	for _, cat := range categories {
		switch cat {
		case domain.CategoryUI:
			actions = append(actions, "Review with the design team")
		case domain.CategoryMobile:
			actions = append(actions, "Test on both iOS and Android platforms")
		case domain.CategoryBackend:
			actions = append(actions, "Verify API compatibility and test endpoints")
		}
	}

	return actions
}
