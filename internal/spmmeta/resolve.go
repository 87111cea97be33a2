package spmmeta

import (
	"strings"

	"buildreport/internal/report"
)

// parseResolveUpdate handles both `swift package resolve` and
// `swift package update` output: plain progress/error lines with no
// structured shape.
func parseResolveUpdate(input string) report.Result {
	res := report.New(report.FormatSPM)

	for _, line := range splitLines(input) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		switch {
		case strings.Contains(lower, "error:") || strings.Contains(lower, "failed"):
			res.AddDiagnostic(report.Diagnostic{Severity: report.SevError, Category: report.CategoryDependency, Message: trimmed})
		case strings.Contains(lower, "warning:"):
			res.AddDiagnostic(report.Diagnostic{Severity: report.SevWarning, Category: report.CategoryDependency, Message: trimmed})
		case strings.Contains(lower, "resolving"), strings.Contains(lower, "cloning"),
			strings.Contains(lower, "fetching"), strings.Contains(lower, "completed"):
			res.AddDiagnostic(report.Diagnostic{Severity: report.SevInfo, Category: report.CategoryDependency, Message: trimmed})
		}
	}

	if res.Metrics.ErrorCount > 0 {
		res.Status = report.StatusFailed
	} else {
		res.Status = report.StatusSuccess
	}
	return res
}

// parseDescribe handles `swift package describe` output.
func parseDescribe(input string) report.Result {
	res := report.New(report.FormatSPM)

	for _, line := range splitLines(input) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		switch {
		case strings.Contains(lower, "error:"):
			res.AddDiagnostic(report.Diagnostic{Severity: report.SevError, Category: report.CategoryBuild, Message: trimmed})
		case strings.Contains(lower, "warning:"):
			res.AddDiagnostic(report.Diagnostic{Severity: report.SevWarning, Category: report.CategoryBuild, Message: trimmed})
		}
	}

	if res.Metrics.ErrorCount > 0 {
		res.Status = report.StatusFailed
	} else {
		res.Status = report.StatusSuccess
	}
	return res
}
