package reportfmt

import (
	"encoding/json"
	"io"

	"buildreport/internal/report"
)

// DiagnosticJSON is the wire shape of a report.Diagnostic.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
	FilePath string `json:"file_path,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// TargetJSON is the wire shape of a report.Target.
type TargetJSON struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Dependencies []string `json:"dependencies"`
}

// DependencyJSON is the wire shape of a report.Dependency.
type DependencyJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Type    string `json:"type"`
	URL     string `json:"url,omitempty"`
}

// SPMInfoJSON is the wire shape of a report.SPMInfo.
type SPMInfoJSON struct {
	Command      string           `json:"command"`
	Success      bool             `json:"success"`
	PackageName  string           `json:"package_name,omitempty"`
	Version      string           `json:"version,omitempty"`
	Targets      []TargetJSON     `json:"targets,omitempty"`
	Dependencies []DependencyJSON `json:"dependencies,omitempty"`
}

// ResultJSON is the wire shape of a report.Result, per spec.md §6: "json
// serializes the report's fields plus spmInfo".
type ResultJSON struct {
	Format      string           `json:"format"`
	Status      string           `json:"status"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Metrics     struct {
		ErrorCount    int      `json:"error_count"`
		WarningCount  int      `json:"warning_count"`
		InfoCount     int      `json:"info_count"`
		CompiledFiles []string `json:"compiled_files"`
		TargetCount   int      `json:"target_count"`
		TotalDuration float64  `json:"total_duration"`
	} `json:"metrics"`
	Timing struct {
		TotalDuration float64 `json:"total_duration"`
	} `json:"timing"`
	SPMInfo *SPMInfoJSON `json:"spm_info,omitempty"`
}

// ToJSON converts a report.Result into its serializable wire shape.
func ToJSON(res report.Result) ResultJSON {
	out := ResultJSON{
		Format: res.Format.String(),
		Status: res.Status.String(),
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Category: d.Category.String(),
			Message:  d.Message,
			Location: d.Location,
			FilePath: d.FilePath,
			Line:     d.Line,
			Column:   d.Column,
		})
	}
	out.Metrics.ErrorCount = res.Metrics.ErrorCount
	out.Metrics.WarningCount = res.Metrics.WarningCount
	out.Metrics.InfoCount = res.Metrics.InfoCount
	out.Metrics.CompiledFiles = res.Metrics.CompiledFiles
	out.Metrics.TargetCount = res.Metrics.TargetCount
	out.Metrics.TotalDuration = res.Metrics.TotalDuration
	out.Timing.TotalDuration = res.Timing.TotalDuration

	if res.SPMInfo != nil {
		info := &SPMInfoJSON{
			Command:     res.SPMInfo.Command,
			Success:     res.SPMInfo.Success,
			PackageName: res.SPMInfo.PackageName,
			Version:     res.SPMInfo.Version,
		}
		for _, t := range res.SPMInfo.Targets {
			info.Targets = append(info.Targets, TargetJSON{Name: t.Name, Type: t.Type, Dependencies: t.Dependencies})
		}
		for _, d := range res.SPMInfo.Dependencies {
			info.Dependencies = append(info.Dependencies, DependencyJSON{Name: d.Name, Version: d.Version, Type: d.Type.String(), URL: d.URL})
		}
		out.SPMInfo = info
	}
	return out
}

// JSON writes res as pretty-printed JSON.
func JSON(w io.Writer, res report.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToJSON(res))
}

// Compact writes the flat {format, status, errors, warnings, files,
// duration} shape spec.md §6 describes for the `compact` format.
func Compact(w io.Writer, res report.Result) error {
	out := struct {
		Format   string  `json:"format"`
		Status   string  `json:"status"`
		Errors   int     `json:"errors"`
		Warnings int     `json:"warnings"`
		Files    int     `json:"files"`
		Duration float64 `json:"duration"`
	}{
		Format:   res.Format.String(),
		Status:   res.Status.String(),
		Errors:   res.Metrics.ErrorCount,
		Warnings: res.Metrics.WarningCount,
		Files:    len(res.Metrics.CompiledFiles),
		Duration: res.Metrics.TotalDuration,
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}
