package report

// Result is the unified, immutable build report produced by a single parse
// call. It is the common shape every dialect parser reduces its input to.
type Result struct {
	Format      Format
	Status      Status
	Diagnostics []Diagnostic
	Metrics     Metrics
	Timing      Timing

	// SPMInfo is populated only by the SPM dump-package sub-case; nil
	// otherwise.
	SPMInfo *SPMInfo

	// sourceHash is set only through WithSourceHash, never by a parser or by
	// internal/rcache. It is deliberately unexported: it is not part of the
	// core's contract and every formatter in internal/reportfmt ignores it.
	sourceHash string
}

// SourceHash returns the cache key attached to this result via
// WithSourceHash, if any. Parsers and internal/rcache never set it.
func (r Result) SourceHash() string {
	return r.sourceHash
}

// WithSourceHash returns a copy of r carrying the given cache key.
func (r Result) WithSourceHash(hash string) Result {
	r.sourceHash = hash
	return r
}

// AddDiagnostic appends d to Diagnostics and folds it into Metrics, keeping
// the two in lockstep the way every dialect parser needs.
func (r *Result) AddDiagnostic(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	r.Metrics.AddDiagnostic(d.Severity)
}

// Finalize derives Status from accumulated diagnostics when a dialect parser
// never saw an explicit status marker, and mirrors Timing.TotalDuration into
// Metrics.TotalDuration. xcodeparse and swiftparse call this as their last
// step; the spmmeta sub-parsers set Status themselves and do not call it.
func (r *Result) Finalize() {
	r.Metrics.TotalDuration = r.Timing.TotalDuration
	if r.Status == StatusUnknown {
		if r.Metrics.ErrorCount == 0 {
			r.Status = StatusSuccess
		} else {
			r.Status = StatusFailed
		}
	}
	if r.Metrics.ErrorCount > 0 {
		r.Status = StatusFailed
	}
}

// New returns a zero Result for the given format, ready for a dialect parser
// to populate.
func New(format Format) Result {
	return Result{Format: format, Status: StatusUnknown}
}
