package reportfmt

import (
	"fmt"
	"io"
	"strings"

	"buildreport/internal/report"
)

// Minimal writes the single-line STATUS | ERRORS: n | WARNINGS: n | FILES: n
// [| DURATION: x.xxs] summary from spec.md §6.
func Minimal(w io.Writer, res report.Result) error {
	line := fmt.Sprintf("%s | ERRORS: %d | WARNINGS: %d | FILES: %d",
		strings.ToUpper(res.Status.String()), res.Metrics.ErrorCount, res.Metrics.WarningCount, len(res.Metrics.CompiledFiles))
	if res.Metrics.TotalDuration > 0 {
		line += fmt.Sprintf(" | DURATION: %.2fs", res.Metrics.TotalDuration)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
