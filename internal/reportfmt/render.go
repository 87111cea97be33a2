package reportfmt

import (
	"fmt"
	"io"

	"buildreport/internal/report"
)

// Render writes res to w using the named format: text, json, compact,
// summary, or minimal, per spec.md §6.
func Render(w io.Writer, res report.Result, format string, opts Options) error {
	switch format {
	case "", "text":
		return Text(w, res, opts)
	case "json":
		return JSON(w, res)
	case "compact":
		return Compact(w, res)
	case "summary":
		return Summary(w, res, opts)
	case "minimal":
		return Minimal(w, res)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
