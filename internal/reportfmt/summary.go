package reportfmt

import (
	"fmt"
	"io"

	"buildreport/internal/report"
)

const summaryDiagnosticLimit = 10

// Summary writes a short multi-line key/value dump, capping the diagnostic
// listing at the first summaryDiagnosticLimit entries per spec.md §6.
func Summary(w io.Writer, res report.Result, opts Options) error {
	if _, err := fmt.Fprintf(w, "format: %s\n", res.Format); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "status: %s\n", statusLabel(opts, res.Status)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "errors: %d  warnings: %d  files: %d\n",
		res.Metrics.ErrorCount, res.Metrics.WarningCount, len(res.Metrics.CompiledFiles)); err != nil {
		return err
	}
	if res.Metrics.TotalDuration > 0 {
		if _, err := fmt.Fprintf(w, "duration: %.2fs\n", res.Metrics.TotalDuration); err != nil {
			return err
		}
	}

	shown := res.Diagnostics
	truncated := 0
	if len(shown) > summaryDiagnosticLimit {
		truncated = len(shown) - summaryDiagnosticLimit
		shown = shown[:summaryDiagnosticLimit]
	}
	for _, d := range shown {
		if err := writeDiagnostic(w, opts, d); err != nil {
			return err
		}
	}
	if truncated > 0 {
		if _, err := fmt.Fprintf(w, "... and %d more\n", truncated); err != nil {
			return err
		}
	}
	return nil
}
