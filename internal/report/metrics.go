package report

// Metrics accumulates counts and derived facts about a parsed build.
type Metrics struct {
	ErrorCount   int
	WarningCount int
	InfoCount    int

	// CompiledFiles preserves first-occurrence order and never contains a
	// duplicate basename.
	CompiledFiles []string
	compiledSeen  map[string]bool

	TargetCount int

	// TotalDuration mirrors Timing.TotalDuration once finalized; kept here too
	// because spec.md models it as a metrics field in its own right.
	TotalDuration float64
}

// AddCompiledFile appends basename to CompiledFiles if it is not already
// present. Returns true if the file was newly added.
func (m *Metrics) AddCompiledFile(basename string) bool {
	if basename == "" {
		return false
	}
	if m.compiledSeen == nil {
		m.compiledSeen = make(map[string]bool)
	}
	if m.compiledSeen[basename] {
		return false
	}
	m.compiledSeen[basename] = true
	m.CompiledFiles = append(m.CompiledFiles, basename)
	return true
}

// AddDiagnostic folds a diagnostic's severity into the running counts. It
// does not append the diagnostic itself; callers own the diagnostics slice.
func (m *Metrics) AddDiagnostic(sev Severity) {
	switch {
	case sev.IsErrorLike():
		m.ErrorCount++
	case sev == SevWarning:
		m.WarningCount++
	case sev == SevInfo:
		m.InfoCount++
	}
}
