package spmmeta

// Recognized reports whether input matches one of the five SPM-metadata
// sub-command shapes. internal/buildparse uses this during the
// best-effort fallback pass, since this package's own classifier is more
// permissive than the top-level format detector's SPM predicate (e.g. it
// doesn't require the JSON branch to already look SPM-specific).
func Recognized(input string) bool {
	return classify(input) != cmdUnknown
}
