// Package xcodeparse reduces an xcodebuild log to a report.Result.
package xcodeparse

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"buildreport/internal/diagline"
	"buildreport/internal/report"
)

var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)completed in ([0-9.]+)s(\s|$)`),
	regexp.MustCompile(`(?i)completed in ([0-9.]+) second`),
	regexp.MustCompile(`\(([0-9.]+) seconds?\)`),
	regexp.MustCompile(`\(([0-9.]+)s\)`),
}

var targetSuffix = regexp.MustCompile(` \(in target [^)]*\)`)

// Parse reduces an Xcode build log into a unified report.Result.
func Parse(input string) report.Result {
	res := report.New(report.FormatXcode)

	lines := splitLines(input)
	var sawStartSentinel bool

	for _, line := range lines {
		if line == "" {
			continue
		}

		if !sawStartSentinel && isStartSentinel(line) {
			res.Timing.StartTime = time.Now()
			sawStartSentinel = true
		}

		// Duration extraction precedes status detection so an explicit
		// duration is never overwritten by the end-of-build fallback.
		if res.Timing.TotalDuration == 0 {
			if d, ok := extractDuration(line); ok {
				res.Timing.TotalDuration = d
			}
		}

		switch statusOf(line) {
		case report.StatusSuccess:
			res.Status = report.StatusSuccess
			stampEnd(&res, sawStartSentinel)
		case report.StatusFailed:
			res.Status = report.StatusFailed
			stampEnd(&res, sawStartSentinel)
		}

		if d, ok := diagline.Parse(line, report.CategoryBuild); ok {
			res.AddDiagnostic(d)
		}

		if basename, ok := compiledFileOf(line); ok {
			res.Metrics.AddCompiledFile(basename)
		}

		if strings.Contains(line, "=== BUILD TARGET") || strings.Contains(line, "Build target") {
			res.Metrics.TargetCount++
		}
	}

	res.Finalize()
	return res
}

func stampEnd(res *report.Result, sawStart bool) {
	res.Timing.EndTime = time.Now()
	if res.Timing.TotalDuration == 0 && sawStart {
		res.Timing.TotalDuration = res.Timing.EndTime.Sub(res.Timing.StartTime).Seconds()
	}
}

func isStartSentinel(line string) bool {
	if strings.Contains(line, "BUILD START") {
		return true
	}
	if strings.HasPrefix(line, "Build settings") || strings.HasPrefix(line, "Build target") {
		return true
	}
	return strings.Contains(line, "xcodebuild")
}

func extractDuration(line string) (float64, bool) {
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

func statusOf(line string) report.Status {
	lower := strings.ToLower(line)
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.Contains(lower, "build succeeded") || trimmed == "** BUILD SUCCEEDED **":
		return report.StatusSuccess
	case strings.Contains(lower, "build failed") || trimmed == "** BUILD FAILED **":
		return report.StatusFailed
	}
	return report.StatusUnknown
}

func compiledFileOf(line string) (string, bool) {
	if !qualifiesCompiledLine(line) {
		return "", false
	}
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		if strings.HasSuffix(fields[i], ".swift") {
			return filepath.Base(fields[i]), true
		}
	}
	return "", false
}

func qualifiesCompiledLine(line string) bool {
	if strings.Contains(line, "Compiling") && strings.Contains(line, ".swift") {
		return true
	}
	stripped := targetSuffix.ReplaceAllString(line, "")
	if (strings.Contains(stripped, "CompileSwift") || strings.Contains(stripped, "SwiftCompile")) && strings.Contains(stripped, ".swift") {
		return true
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasSuffix(trimmed, ".swift") && strings.Contains(line, "/") {
		return true
	}
	return false
}

func splitLines(input string) []string {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}
