package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"triagebot/internal/domain"
)

// WriteReportFiles writes the markdown and JSON renditions of the report
// into outputDir, creating it if needed. Returns the two file paths.
func WriteReportFiles(r domain.Report, outputDir, teamName string) (string, string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", "", fmt.Errorf("creating report dir: %w", err)
	}

	base := fmt.Sprintf("%s_issues_report_%s", sanitizeFilename(teamName), r.Period)

	mdPath := filepath.Join(outputDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(RenderMarkdown(r, teamName)), 0644); err != nil {
		return "", "", fmt.Errorf("writing markdown report: %w", err)
	}

	jsonPath := filepath.Join(outputDir, base+".json")
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("writing json report: %w", err)
	}

	return mdPath, jsonPath, nil
}

var filenameReplacer = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_", " ", "_",
)

func sanitizeFilename(s string) string {
	return filenameReplacer.Replace(s)
}
