// Package detect classifies a raw build-log blob as xcode, swift, spm, or
// unknown. Each dialect exposes an independent predicate; Dispatch applies
// them in the fixed priority order SPM → Swift/SPM-Build → Xcode, since SPM
// metadata has the most distinctive surface, Swift/SPM-Build carries more
// specific markers than Xcode, and Xcode is the permissive fallback for
// plain xcodebuild invocations.
package detect

import (
	"strings"

	"buildreport/internal/report"
)

var xcodeSubstrings = []string{
	"xcodebuild",
	"build succeeded",
	"build failed",
	"** build",
	"=== build target",
	"build settings from",
	"compileswift",
	"swiftcompile",
	"codesign",
	"processinfoplistfile",
}

// CanParseXcode reports whether input carries an Xcode build-log marker.
func CanParseXcode(input string) bool {
	if isBlank(input) {
		return false
	}
	lower := strings.ToLower(input)
	for _, s := range xcodeSubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	// "Ld " is case-sensitive and space-terminated.
	return strings.Contains(input, "Ld ")
}

var swiftCaseSensitiveSubstrings = []string{
	"Swift Compiler",
	"swift build",
	"swift test",
	"Apple Swift version",
	"Building for",
	"Compiling Swift Module",
	"swift-package",
	"Fetching https://",
	"Cloning https://",
	"Resolving https://",
	"SwiftPM",
	".build/checkouts",
}

// swiftAmbiguousSubstrings are markers that also show up in plain Xcode
// build transcripts (xcodebuild echoes "Compiling "/"Linking " lines of its
// own), so like the bare-diagnostic case below they only count toward Swift
// when the Xcode predicate does not also match.
var swiftAmbiguousSubstrings = []string{
	"Compiling ",
	"Linking ",
}

// CanParseSwift reports whether input carries a Swift-compiler/SPM-build
// marker. Bare Swift-style diagnostics (": error:"/": warning:") and the
// "Compiling "/"Linking " markers only count when the Xcode predicate does
// not also match, since those lines are ambiguous between the two dialects
// and Xcode is checked with lower priority specifically to resolve that
// overlap.
func CanParseSwift(input string) bool {
	if isBlank(input) {
		return false
	}
	for _, s := range swiftCaseSensitiveSubstrings {
		if strings.Contains(input, s) {
			return true
		}
	}
	lower := strings.ToLower(input)
	if strings.Contains(lower, "build complete!") {
		return true
	}
	if !CanParseXcode(input) {
		if strings.Contains(lower, ": error:") || strings.Contains(lower, ": warning:") {
			return true
		}
		for _, s := range swiftAmbiguousSubstrings {
			if strings.Contains(input, s) {
				return true
			}
		}
	}
	return false
}

var spmTreeGlyphs = []string{"├─", "└─", "│", "─"}

var spmKeywords = []string{"resolving", "fetching", "resolved", "updating", "cloning"}

// CanParseSPM reports whether input carries an SPM-metadata marker: a JSON
// package description, a dependency tree, resolver chatter, or a `swift
// package describe` header.
func CanParseSPM(input string) bool {
	if isBlank(input) {
		return false
	}
	lower := strings.ToLower(input)

	if strings.Contains(lower, `"name"`) {
		if strings.Contains(lower, `"targets"`) || strings.Contains(lower, `"products"`) || strings.Contains(lower, `"dependencies"`) {
			return true
		}
	}
	for _, g := range spmTreeGlyphs {
		if strings.Contains(input, g) {
			return true
		}
	}
	if strings.Contains(lower, "dependencies:") {
		return true
	}
	for _, k := range spmKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	if strings.Contains(lower, "package name:") || strings.Contains(lower, "package version:") {
		return true
	}
	return false
}

func isBlank(input string) bool {
	return strings.TrimSpace(input) == ""
}

// Dispatch picks the active dialect for input using the fixed SPM → Swift →
// Xcode priority order. It returns FormatUnknown for blank input or input
// matching none of the three predicates.
func Dispatch(input string) report.Format {
	switch {
	case CanParseSPM(input):
		return report.FormatSPM
	case CanParseSwift(input):
		return report.FormatSwift
	case CanParseXcode(input):
		return report.FormatXcode
	default:
		return report.FormatUnknown
	}
}
