package reportfmt

import "buildreport/internal/report"

// FilterSeverity returns a copy of res with Diagnostics restricted to the
// requested severity floor: errorsOnly keeps Error/Critical, warningsOnly
// keeps Warning and above. Metrics and Timing are untouched since they
// reflect the full parse, not the filtered view.
func FilterSeverity(res report.Result, errorsOnly, warningsOnly bool) report.Result {
	if !errorsOnly && !warningsOnly {
		return res
	}
	filtered := make([]report.Diagnostic, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		switch {
		case errorsOnly:
			if d.Severity.IsErrorLike() {
				filtered = append(filtered, d)
			}
		case warningsOnly:
			if d.Severity >= report.SevWarning {
				filtered = append(filtered, d)
			}
		}
	}
	res.Diagnostics = filtered
	return res
}
