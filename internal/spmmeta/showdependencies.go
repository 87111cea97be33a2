package spmmeta

import (
	"regexp"
	"strings"

	"buildreport/internal/report"
)

// parseShowDependencies handles `swift package show-dependencies` tree
// output. It runs a small Preamble → InSection state machine: the section is
// entered either by the explicit "Dependencies:" header or by the first
// tree-glyph line, and that very first tree-glyph line may itself be a
// root-package node rather than a dependency (see isRootCandidate).
func parseShowDependencies(input string) report.Result {
	res := report.New(report.FormatSPM)

	var lines []string
	headerSeen := false
	for _, raw := range splitLines(input) {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if strings.EqualFold(trimmed, "dependencies:") {
			headerSeen = true
			continue
		}
		lines = append(lines, raw)
	}

	firstGlyphIdx := -1
	for i, l := range lines {
		if containsTreeGlyph(l) {
			firstGlyphIdx = i
			break
		}
	}
	suppressRoot := headerSeen && firstGlyphIdx >= 0 && isRootCandidate(lines, firstGlyphIdx)

	inSection := headerSeen
	depCount := 0

	for i, l := range lines {
		trimmed := strings.TrimSpace(l)
		lower := strings.ToLower(trimmed)

		if strings.HasPrefix(lower, "error:") || strings.HasPrefix(lower, "warning:") {
			sev := report.SevWarning
			if strings.HasPrefix(lower, "error:") {
				sev = report.SevError
			}
			msg := strings.TrimSpace(trimmed[strings.Index(trimmed, ":")+1:])
			res.AddDiagnostic(report.Diagnostic{Severity: sev, Category: report.CategoryDependency, Message: msg})
			continue
		}

		if !inSection {
			if i == firstGlyphIdx {
				inSection = true
			} else {
				continue
			}
		}

		if i == firstGlyphIdx && suppressRoot {
			continue
		}

		cleaned := cleanTreeLine(l)
		if cleaned == "" {
			continue
		}
		if _, ok := parseDependencyLine(cleaned); ok {
			depCount++
		}
	}

	res.Metrics.TargetCount = depCount
	switch {
	case res.Metrics.ErrorCount > 0:
		res.Status = report.StatusFailed
	case inSection:
		res.Status = report.StatusSuccess
	default:
		res.Status = report.StatusUnknown
	}
	return res
}

// isRootCandidate looks ahead at the next two lines after the first
// tree-glyph line: if either is more indented and itself bears a tree glyph,
// the first line is the root package, not a dependency, and gets suppressed.
func isRootCandidate(lines []string, firstGlyphIdx int) bool {
	indent := indentOf(lines[firstGlyphIdx])
	for k := 1; k <= 2; k++ {
		j := firstGlyphIdx + k
		if j >= len(lines) {
			break
		}
		if indentOf(lines[j]) > indent && containsTreeGlyph(lines[j]) {
			return true
		}
	}
	return false
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func containsTreeGlyph(s string) bool {
	return strings.ContainsAny(s, "├└│─")
}

var treeLineReplacer = strings.NewReplacer("├─", "", "└─", "", "│", "", "─", "")

func cleanTreeLine(line string) string {
	stripped := strings.TrimLeft(line, "├└│─ \t")
	stripped = treeLineReplacer.Replace(stripped)
	return strings.TrimSpace(stripped)
}

var (
	reParenVersion  = regexp.MustCompile(`^(.+?)\s*\(([^)]*)\)$`)
	reBracketURL    = regexp.MustCompile(`^(.+?)\s*\[([^\]]*)\]$`)
	reAngleURLAtVer = regexp.MustCompile(`^(.+?)<(.*)>$`)
)

// parseDependencyLine matches a cleaned tree-dependency line against the
// seven shapes of spec.md §4.5, in priority order.
func parseDependencyLine(cleaned string) (report.Dependency, bool) {
	if m := reParenVersion.FindStringSubmatch(cleaned); m != nil {
		name := strings.TrimSpace(m[1])
		version := strings.TrimSpace(m[2])
		if name != "" {
			return report.Dependency{Name: name, Version: version, Type: typeFromVersionString(version)}, true
		}
	}

	if idx := strings.Index(cleaned, "@"); idx > 0 && !strings.ContainsAny(cleaned, "[]<>()") {
		name := strings.TrimSpace(cleaned[:idx])
		version := strings.TrimSpace(cleaned[idx+1:])
		if name != "" {
			return report.Dependency{Name: name, Version: version, Type: typeFromVersionString(version)}, true
		}
	}

	if m := reBracketURL.FindStringSubmatch(cleaned); m != nil {
		name := strings.TrimSpace(m[1])
		url := strings.TrimSpace(m[2])
		if name != "" {
			return report.Dependency{Name: name, Version: "source-control", Type: report.DependencySourceControl, URL: url}, true
		}
	}

	if m := reAngleURLAtVer.FindStringSubmatch(cleaned); m != nil {
		name := strings.TrimSpace(m[1])
		url, version := splitURLVersion(m[2])
		if name != "" {
			return report.Dependency{Name: name, Version: version, Type: report.DependencySourceControl, URL: url}, true
		}
	}

	fields := strings.SplitN(cleaned, " ", 2)
	if len(fields) == 2 {
		rest := strings.TrimSpace(fields[1])
		lowerRest := strings.ToLower(rest)
		if strings.HasPrefix(lowerRest, "revision:") || strings.HasPrefix(lowerRest, "branch:") || strings.HasPrefix(lowerRest, "exact:") {
			return report.Dependency{Name: fields[0], Version: rest, Type: report.DependencySourceControl}, true
		}
		if rest != "" && (startsWithDigit(rest) || strings.Contains(rest, ".")) {
			return report.Dependency{Name: fields[0], Version: rest, Type: typeFromVersionString(rest)}, true
		}
	}

	if cleaned != "" && !strings.ContainsAny(cleaned, " \t") {
		return report.Dependency{Name: cleaned, Version: "unspecified", Type: report.DependencySourceControl}, true
	}

	return report.Dependency{}, false
}

func splitURLVersion(inner string) (url, version string) {
	idx := strings.LastIndex(inner, "@")
	if idx < 0 {
		return inner, ""
	}
	return inner[:idx], inner[idx+1:]
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

func typeFromVersionString(version string) report.DependencyType {
	lower := strings.ToLower(version)
	switch {
	case strings.Contains(lower, "branch:"), strings.Contains(lower, "revision:"):
		return report.DependencySourceControl
	case strings.Contains(lower, ".binary"), strings.Contains(lower, "xcframework"):
		return report.DependencyBinary
	case strings.Contains(version, "..<"), strings.Contains(version, " - "), strings.Contains(lower, "exact:"):
		return report.DependencyRegistry
	default:
		return report.DependencySourceControl
	}
}
