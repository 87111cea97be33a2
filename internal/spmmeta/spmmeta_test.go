package spmmeta

import (
	"testing"

	"buildreport/internal/report"
)

func TestParse_DumpPackageModernSourceControl(t *testing.T) {
	input := `{
		"name": "App",
		"products": [{"name": "App", "type": {"name": "executable"}}],
		"dependencies": [{
			"sourceControl": [{
				"identity": "swift-log",
				"location": {"remote": [{"urlString": "https://github.com/apple/swift-log.git"}]},
				"requirement": {"range": [{"lowerBound": "1.0.0", "upperBound": "2.0.0"}]}
			}]
		}]
	}`

	res := Parse(input)
	if res.Status != report.StatusSuccess {
		t.Fatalf("Status = %v, want StatusSuccess", res.Status)
	}
	if res.SPMInfo == nil {
		t.Fatal("SPMInfo is nil")
	}
	if res.SPMInfo.PackageName != "App" {
		t.Errorf("PackageName = %q", res.SPMInfo.PackageName)
	}
	if len(res.SPMInfo.Targets) != 1 || res.SPMInfo.Targets[0].Type != "executable" {
		t.Errorf("Targets = %+v", res.SPMInfo.Targets)
	}
	if len(res.SPMInfo.Dependencies) != 1 {
		t.Fatalf("Dependencies len = %d, want 1", len(res.SPMInfo.Dependencies))
	}
	dep := res.SPMInfo.Dependencies[0]
	if dep.Name != "swift-log" || dep.Version != "1.0.0 - 2.0.0" {
		t.Errorf("Dependency = %+v", dep)
	}
}

func TestParse_DumpPackageLegacyFlatDependency(t *testing.T) {
	input := `{
		"name": "App",
		"dependencies": [{
			"url": "https://github.com/apple/swift-algorithms.git",
			"requirement": {"range": ["1.0.0", "2.0.0"]}
		}]
	}`

	res := Parse(input)
	if res.SPMInfo == nil || len(res.SPMInfo.Dependencies) != 1 {
		t.Fatalf("unexpected SPMInfo: %+v", res.SPMInfo)
	}
	dep := res.SPMInfo.Dependencies[0]
	if dep.Name != "swift-algorithms" {
		t.Errorf("Name = %q", dep.Name)
	}
	if dep.Version != "1.0.0, 2.0.0" {
		t.Errorf("Version = %q", dep.Version)
	}
}

func TestParse_DumpPackageInvalidJSONFails(t *testing.T) {
	res := Parse(`{"name": "App"`)
	if res.Status != report.StatusFailed {
		t.Errorf("Status = %v, want StatusFailed", res.Status)
	}
	if res.Metrics.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", res.Metrics.ErrorCount)
	}
}

func TestParse_ShowDependenciesTreeWithRootSuppressed(t *testing.T) {
	// The root line itself carries a tree glyph, with nested dependency
	// lines indented beneath it by literal spaces; isRootCandidate looks
	// ahead for that indentation to decide the first glyph line is the
	// root package rather than a dependency.
	input := "Dependencies:\n" +
		"├── App (root)\n" +
		"    ├── swift-log (1.5.0)\n" +
		"    └── swift-algorithms (1.2.0)\n"

	res := Parse(input)
	if res.Status != report.StatusSuccess {
		t.Errorf("Status = %v, want StatusSuccess", res.Status)
	}
	if res.Metrics.TargetCount != 2 {
		t.Errorf("TargetCount = %d, want 2 (root suppressed)", res.Metrics.TargetCount)
	}
}

func TestParse_ShowDependenciesWithoutHeaderCountsFirstGlyphLine(t *testing.T) {
	input := "App\n" +
		"├── swift-log (1.5.0)\n"
	res := Parse(input)
	if res.Metrics.TargetCount != 1 {
		t.Errorf("TargetCount = %d, want 1", res.Metrics.TargetCount)
	}
}

func TestParse_ShowDependenciesNeverEntersSectionStaysUnknown(t *testing.T) {
	res := parseShowDependencies("just some unrelated text\nwith no glyphs or header\n")
	if res.Status != report.StatusUnknown {
		t.Errorf("Status = %v, want StatusUnknown", res.Status)
	}
}

func TestParse_ResolveProgressAndError(t *testing.T) {
	input := "Fetching https://github.com/apple/swift-log\n" +
		"Resolving https://github.com/apple/swift-log at 1.5.0\n" +
		"error: the package manifest could not be loaded\n"

	res := Parse(input)
	if res.Status != report.StatusFailed {
		t.Errorf("Status = %v, want StatusFailed", res.Status)
	}
	if res.Metrics.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", res.Metrics.ErrorCount)
	}
}

func TestParse_DescribeSuccess(t *testing.T) {
	input := "Package name: App\nPackage version: 1.0.0\n"
	res := Parse(input)
	if res.Status != report.StatusSuccess {
		t.Errorf("Status = %v, want StatusSuccess", res.Status)
	}
}

func TestRecognized_MatchesAllFiveSubCommandShapes(t *testing.T) {
	samples := []string{
		`{"name": "App"}`,
		"Dependencies:\n├── swift-log (1.5.0)\n",
		"Resolving https://github.com/apple/swift-log\n",
		"Package name: App\n",
		"Updating https://github.com/apple/swift-log\n",
		"Updated https://github.com/apple/swift-log\n",
	}
	for _, s := range samples {
		if !Recognized(s) {
			t.Errorf("Recognized(%q) = false, want true", s)
		}
	}
	if Recognized("plain text with nothing special") {
		t.Error("Recognized() should be false for unrelated text")
	}
}
