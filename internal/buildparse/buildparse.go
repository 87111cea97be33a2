// Package buildparse is the top-level entry point: it wires the format
// detector to the three dialect parsers and assembles the unified report,
// mirroring the orchestration role the teacher's driver package plays for
// the compiler pipeline.
package buildparse

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"buildreport/internal/detect"
	"buildreport/internal/report"
	"buildreport/internal/spmmeta"
	"buildreport/internal/swiftparse"
	"buildreport/internal/xcodeparse"
)

// Parse auto-detects the dialect and reduces input to a unified report.Result.
func Parse(input string) report.Result {
	return ParseWithFormat(input, report.FormatUnknown)
}

// ParseWithFormat parses input using the given forced dialect, or
// auto-detects when forced is report.FormatUnknown.
func ParseWithFormat(input string, forced report.Format) report.Result {
	if strings.TrimSpace(input) == "" {
		res := report.New(report.FormatUnknown)
		res.Status = report.StatusUnknown
		return res
	}

	format := forced
	if format == report.FormatUnknown {
		format = detect.Dispatch(input)
	}

	switch format {
	case report.FormatSPM:
		return spmmeta.Parse(input)
	case report.FormatSwift:
		return swiftparse.Parse(input)
	case report.FormatXcode:
		return xcodeparse.Parse(input)
	default:
		return bestEffort(input)
	}
}

// bestEffort runs when no predicate matched: it walks the same SPM → Swift →
// Xcode priority order, asking each dialect's own (more permissive) signals
// for a match before ultimately defaulting to the Xcode parser, which is the
// permissive fallback for plain command-line tool output.
func bestEffort(input string) report.Result {
	if spmmeta.Recognized(input) {
		return spmmeta.Parse(input)
	}
	lower := strings.ToLower(input)
	if strings.Contains(lower, ": error:") || strings.Contains(lower, ": warning:") || strings.Contains(lower, ": note:") {
		return swiftparse.Parse(input)
	}
	return xcodeparse.Parse(input)
}

// Indexed pairs an input's original position with its parsed result.
// ParseAll does not use it: each goroutine writes its result straight into
// the slot of the same index, which keeps input order.
type Indexed struct {
	Index  int
	Result report.Result
}

// ParseAll parses every input concurrently — §5 of the spec guarantees
// independent parses share no mutable state — bounded by jobs (GOMAXPROCS
// when jobs <= 0), and returns results in the same order as inputs
// regardless of completion order.
func ParseAll(ctx context.Context, inputs []string, jobs int) ([]report.Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]report.Result, len(inputs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			results[i] = Parse(input)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
