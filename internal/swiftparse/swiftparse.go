// Package swiftparse reduces a `swift build`/`swift test`/SPM-build log into
// a report.Result.
package swiftparse

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"buildreport/internal/diagline"
	"buildreport/internal/report"
)

var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(([0-9.]+)s\)`),
	regexp.MustCompile(`\[([0-9.]+)s\]`),
	regexp.MustCompile(`(?s)completed.*?([0-9.]+)s`),
	regexp.MustCompile(`([0-9]+\.[0-9]+)s(\s|$)`),
	regexp.MustCompile(`([0-9]+)s(\s|$)`),
}

// Parse reduces a Swift/SPM-build log into a unified report.Result.
func Parse(input string) report.Result {
	res := report.New(report.FormatSwift)

	lines := splitLines(input)
	targets := make(map[string]bool)

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		idx := i + 1 // 1-based in-stream line index

		if res.Status == report.StatusUnknown {
			res.Status = statusOf(line)
		}

		if d, ok := diagline.Parse(line, report.CategoryCompilation); ok {
			if d.Line == 0 {
				d.Line = idx
			}
			res.AddDiagnostic(d)
		}

		if strings.HasPrefix(line, "Compiling") && strings.Contains(line, ".swift") {
			if basename, ok := swiftBasename(line); ok {
				res.Metrics.AddCompiledFile(basename)
			}
		}

		if d, ok := maxDuration(line); ok && d > res.Timing.TotalDuration {
			res.Timing.TotalDuration = d
		}

		if strings.HasPrefix(line, "Linking ") {
			target := strings.TrimSpace(strings.TrimPrefix(line, "Linking "))
			if target != "" {
				targets[target] = true
			}
		}
	}

	res.Metrics.TargetCount = len(targets)

	if res.Metrics.ErrorCount > 0 {
		res.Status = report.StatusFailed
	} else if res.Status == report.StatusUnknown {
		res.Status = report.StatusSuccess
	}

	res.Finalize()
	return res
}

func statusOf(line string) report.Status {
	switch {
	case strings.Contains(line, "Build complete!"),
		strings.Contains(line, "build complete"),
		strings.Contains(line, "BUILD SUCCEEDED"):
		return report.StatusSuccess
	case strings.Contains(line, "build failed"),
		strings.Contains(line, "BUILD FAILED"),
		strings.Contains(line, "error: build failed"):
		return report.StatusFailed
	}
	return report.StatusUnknown
}

func swiftBasename(line string) (string, bool) {
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		if strings.HasSuffix(fields[i], ".swift") {
			return filepath.Base(fields[i]), true
		}
	}
	return "", false
}

func maxDuration(line string) (float64, bool) {
	for _, pat := range durationPatterns {
		m := pat.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

func splitLines(input string) []string {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}
