package reportfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"buildreport/internal/report"
)

// Options controls presentation concerns that are not part of the report
// model itself: whether to colorize and whether to include the location
// detail line under each diagnostic.
type Options struct {
	Color   bool
	Verbose bool
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgWhite, color.Bold, color.Underline)
	successColor = color.New(color.FgGreen, color.Bold)
	failedColor  = color.New(color.FgRed, color.Bold)
)

func severityLabel(opts Options, sev report.Severity) string {
	text := fmt.Sprintf("[%s]", sev)
	if !opts.Color {
		return text
	}
	switch sev {
	case report.SevError, report.SevCritical:
		return errorColor.Sprint(text)
	case report.SevWarning:
		return warningColor.Sprint(text)
	default:
		return infoColor.Sprint(text)
	}
}

func statusLabel(opts Options, status report.Status) string {
	text := string(status.String())
	if !opts.Color {
		return text
	}
	if status == report.StatusSuccess {
		return successColor.Sprint(text)
	}
	if status == report.StatusFailed {
		return failedColor.Sprint(text)
	}
	return text
}

// Text renders a human-oriented report with section headers, per spec.md §6.
func Text(w io.Writer, res report.Result, opts Options) error {
	header := func(s string) string {
		if opts.Color {
			return headerColor.Sprint(s)
		}
		return s
	}

	if _, err := fmt.Fprintf(w, "%s\n", header("== Build Report ==")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "format:   %s\n", res.Format); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "status:   %s\n", statusLabel(opts, res.Status)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "errors:   %d\n", res.Metrics.ErrorCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "warnings: %d\n", res.Metrics.WarningCount); err != nil {
		return err
	}
	if res.Metrics.TotalDuration > 0 {
		if _, err := fmt.Fprintf(w, "duration: %.2fs\n", res.Metrics.TotalDuration); err != nil {
			return err
		}
	}
	if res.Metrics.TargetCount > 0 {
		if _, err := fmt.Fprintf(w, "targets:  %d\n", res.Metrics.TargetCount); err != nil {
			return err
		}
	}

	if len(res.Metrics.CompiledFiles) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", header("== Compiled Files ==")); err != nil {
			return err
		}
		for _, f := range res.Metrics.CompiledFiles {
			if _, err := fmt.Fprintf(w, "  %s\n", f); err != nil {
				return err
			}
		}
	}

	if len(res.Diagnostics) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", header("== Diagnostics ==")); err != nil {
			return err
		}
		for _, d := range res.Diagnostics {
			if err := writeDiagnostic(w, opts, d); err != nil {
				return err
			}
		}
	}

	if res.SPMInfo != nil {
		if err := writeSPMInfo(w, header, res.SPMInfo); err != nil {
			return err
		}
	}

	return nil
}

func writeDiagnostic(w io.Writer, opts Options, d report.Diagnostic) error {
	if d.HasLocation() {
		if _, err := fmt.Fprintf(w, "%s %s: %s\n", severityLabel(opts, d.Severity), d.Location, d.Message); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s %s\n", severityLabel(opts, d.Severity), d.Message); err != nil {
			return err
		}
	}
	if opts.Verbose && (d.FilePath != "" || d.Line > 0) {
		if _, err := fmt.Fprintf(w, "    at %s:%d:%d (%s)\n", d.FilePath, d.Line, d.Column, d.Category); err != nil {
			return err
		}
	}
	return nil
}

func writeSPMInfo(w io.Writer, header func(string) string, info *report.SPMInfo) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", header("== Package ==")); err != nil {
		return err
	}
	if info.PackageName != "" {
		if _, err := fmt.Fprintf(w, "name: %s\n", info.PackageName); err != nil {
			return err
		}
	}
	for _, t := range info.Targets {
		if _, err := fmt.Fprintf(w, "  product: %s (%s)\n", t.Name, t.Type); err != nil {
			return err
		}
	}
	for _, dep := range info.Dependencies {
		if _, err := fmt.Fprintf(w, "  dependency: %s@%s [%s]\n", dep.Name, dep.Version, dep.Type); err != nil {
			return err
		}
	}
	return nil
}
