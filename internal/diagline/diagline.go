// Package diagline implements the single shared subroutine every dialect
// parser uses to turn one log line of the form "<location>: <severity>:
// <message>" into a structured report.Diagnostic. It knows nothing about
// which dialect called it; dialects differ only in which lines they feed in
// and which default Category they pass.
package diagline

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"buildreport/internal/report"
)

type marker struct {
	text string
	sev  report.Severity
}

// Order matters only for tie-breaking identical earliest indices; the scan
// itself always prefers the earliest match regardless of list position.
var markers = []marker{
	{": error:", report.SevError},
	{": warning:", report.SevWarning},
	{": note:", report.SevInfo},
	{" error: ", report.SevError},
	{" warning: ", report.SevWarning},
	{" note: ", report.SevInfo},
}

var prefixMarkers = []marker{
	{"error:", report.SevError},
	{"warning:", report.SevWarning},
	{"note:", report.SevInfo},
}

// Parse splits line into a Diagnostic using the earliest severity marker it
// finds. defaultCategory is used whenever the message doesn't carry a more
// specific category signal (linking/dependency); dialects pass
// report.CategoryCompilation or report.CategoryBuild per spec.
//
// ok is false when line carries no recognizable severity marker at all.
func Parse(line string, defaultCategory report.Category) (report.Diagnostic, bool) {
	lower := strings.ToLower(line)

	bestIdx := -1
	var bestMarker marker
	for _, m := range markers {
		if idx := strings.Index(lower, m.text); idx >= 0 {
			if bestIdx == -1 || idx < bestIdx {
				bestIdx = idx
				bestMarker = m
			}
		}
	}

	var location, message string
	var sev report.Severity
	if bestIdx >= 0 {
		location = line[:bestIdx]
		message = strings.TrimSpace(line[bestIdx+len(bestMarker.text):])
		sev = bestMarker.sev
	} else {
		trimmed := strings.TrimSpace(line)
		lowerTrimmed := strings.ToLower(trimmed)
		matched := false
		for _, m := range prefixMarkers {
			if strings.HasPrefix(lowerTrimmed, m.text) {
				message = strings.TrimSpace(trimmed[len(m.text):])
				sev = m.sev
				matched = true
				break
			}
		}
		if !matched {
			return report.Diagnostic{}, false
		}
	}

	d := report.Diagnostic{
		Severity: sev,
		Message:  message,
	}
	if location != "" {
		d.Location = location
		d.FilePath, d.Line, d.Column = parseLocation(location)
	}
	d.Category = classify(message, defaultCategory)
	return d, true
}

// parseLocation implements spec.md §4.2 step 3: drive-letter paths scan
// colons from the right, everything else splits left-to-right. For a
// drive-letter path, two trailing integers are line and column; a single
// trailing integer is the line number and leaves the column unset.
func parseLocation(location string) (filePath string, lineNumber, column int) {
	if len(location) >= 2 && location[1] == ':' {
		parts := strings.Split(location, ":")
		end := len(parts)
		var nums []int
		for len(nums) < 2 && end >= 1 {
			v, err := strconv.Atoi(parts[end-1])
			if err != nil {
				break
			}
			nums = append(nums, v)
			end--
		}
		switch len(nums) {
		case 2:
			column, lineNumber = nums[0], nums[1]
		case 1:
			lineNumber = nums[0]
		}
		filePath = norm.NFC.String(strings.Join(parts[:end], ":"))
		return filePath, lineNumber, column
	}

	parts := strings.SplitN(location, ":", 3)
	filePath = norm.NFC.String(parts[0])
	if len(parts) > 1 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			lineNumber = v
		}
	}
	if len(parts) > 2 {
		if v, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			column = v
		}
	}
	return filePath, lineNumber, column
}

func classify(message string, defaultCategory report.Category) report.Category {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "linker"), strings.Contains(lower, "undefined symbol"), strings.Contains(lower, "ld:"):
		return report.CategoryLinking
	case isDependencyMessage(lower):
		return report.CategoryDependency
	default:
		return defaultCategory
	}
}

func isDependencyMessage(lower string) bool {
	if strings.Contains(lower, "package") {
		return true
	}
	if strings.Contains(lower, " dependency") || strings.Contains(lower, "dependency ") {
		return true
	}
	if strings.Contains(lower, "resolve") && !strings.Contains(lower, "unresolved") {
		return true
	}
	return false
}
