package swiftparse

import (
	"testing"

	"buildreport/internal/report"
)

func TestParse_SuccessfulBuild(t *testing.T) {
	input := "Compiling Swift Module 'App' (3 sources)\n" +
		"Compiling App/Model.swift\n" +
		"Linking App\n" +
		"Build complete! (1.23s)\n"

	res := Parse(input)
	if res.Status != report.StatusSuccess {
		t.Errorf("Status = %v, want StatusSuccess", res.Status)
	}
	if res.Metrics.TargetCount != 1 {
		t.Errorf("TargetCount = %d, want 1", res.Metrics.TargetCount)
	}
	if len(res.Metrics.CompiledFiles) != 1 || res.Metrics.CompiledFiles[0] != "Model.swift" {
		t.Errorf("CompiledFiles = %v", res.Metrics.CompiledFiles)
	}
	if res.Timing.TotalDuration != 1.23 {
		t.Errorf("TotalDuration = %v, want 1.23", res.Timing.TotalDuration)
	}
}

func TestParse_FailedBuildWithMultipleDiagnostics(t *testing.T) {
	input := "Compiling Swift Module 'App' (2 sources)\n" +
		"App/Model.swift:5:10: error: expected expression\n" +
		"App/View.swift:9:2: warning: unused result\n" +
		"error: build failed\n"

	res := Parse(input)
	if res.Status != report.StatusFailed {
		t.Errorf("Status = %v, want StatusFailed", res.Status)
	}
	// "error: build failed" is itself a prefix-marker diagnostic in addition
	// to the two inline diagnostics, so ErrorCount counts both.
	if res.Metrics.ErrorCount != 2 || res.Metrics.WarningCount != 1 {
		t.Errorf("Metrics = %+v", res.Metrics)
	}
}

func TestParse_DurationIsMaximumAcrossLines(t *testing.T) {
	input := "Compiling Swift Module 'App' (1 sources)\n" +
		"Build complete! (1.0s)\n" +
		"note: linking took (9.5s)\n" +
		"note: codesign took (2.0s)\n"

	res := Parse(input)
	if res.Timing.TotalDuration != 9.5 {
		t.Errorf("TotalDuration = %v, want 9.5 (max across lines)", res.Timing.TotalDuration)
	}
}

func TestParse_DiagnosticWithoutLineNumberGetsStreamIndex(t *testing.T) {
	// "error: build failed" is itself a prefix-marker diagnostic as well as
	// the status sentinel, so both lines surface as Diagnostics.
	input := "error: no such module 'Foo'\n" +
		"error: build failed\n"

	res := Parse(input)
	if len(res.Diagnostics) != 2 {
		t.Fatalf("Diagnostics len = %d, want 2", len(res.Diagnostics))
	}
	if res.Diagnostics[0].Line != 1 {
		t.Errorf("Line = %d, want 1 (1-based stream index fallback)", res.Diagnostics[0].Line)
	}
	if res.Diagnostics[1].Line != 2 {
		t.Errorf("Line = %d, want 2 (1-based stream index fallback)", res.Diagnostics[1].Line)
	}
}

func TestParse_MultipleLinkTargetsCounted(t *testing.T) {
	input := "Linking App\nLinking AppTests\nBuild complete!\n"
	res := Parse(input)
	if res.Metrics.TargetCount != 2 {
		t.Errorf("TargetCount = %d, want 2", res.Metrics.TargetCount)
	}
}

func TestParse_BlankLinesSkipped(t *testing.T) {
	res := Parse("\n\nBuild complete!\n\n")
	if res.Status != report.StatusSuccess {
		t.Errorf("Status = %v, want StatusSuccess", res.Status)
	}
}
