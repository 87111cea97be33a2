package spmmeta

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"buildreport/internal/report"
)

// parseDumpPackage handles `swift package dump-package`: a single JSON
// object describing the manifest. The sole fatal case is a top-level decode
// failure; every other field is treated as absent rather than raising, per
// the dynamic-JSON-decoding design note.
func parseDumpPackage(input string) report.Result {
	res := report.New(report.FormatSPM)

	if !utf8.ValidString(input) {
		res.AddDiagnostic(report.Diagnostic{Severity: report.SevError, Category: report.CategoryBuild, Message: "Invalid UTF-8"})
		res.Status = report.StatusFailed
		return res
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(input), &parsed); err != nil {
		res.AddDiagnostic(report.Diagnostic{
			Severity: report.SevError,
			Category: report.CategoryBuild,
			Message:  fmt.Sprintf("Failed to parse Package.swift JSON: %v", err),
		})
		res.Status = report.StatusFailed
		return res
	}

	info := &report.SPMInfo{Command: "dump-package", Success: true}
	info.PackageName = asString(parsed["name"])

	for _, raw := range asSlice(parsed["products"]) {
		product := asMap(raw)
		if product == nil {
			continue
		}
		target := report.Target{
			Name:         asString(product["name"]),
			Type:         "unknown",
			Dependencies: []string{},
		}
		if typ := asMap(product["type"]); typ != nil {
			if name := asString(typ["name"]); name != "" {
				target.Type = name
			}
		}
		info.Targets = append(info.Targets, target)
	}

	for _, raw := range asSlice(parsed["dependencies"]) {
		if dep, ok := parseDumpDependency(raw); ok {
			info.Dependencies = append(info.Dependencies, dep)
		}
	}

	res.SPMInfo = info
	res.Status = report.StatusSuccess
	return res
}

// parseDumpDependency implements the modern sourceControl[0] layout, falling
// back to the legacy flat url/path layout only when the modern layout
// produced no name.
func parseDumpDependency(raw interface{}) (report.Dependency, bool) {
	dep := asMap(raw)
	if dep == nil {
		return report.Dependency{}, false
	}

	var name, url, version string

	if scList := asSlice(dep["sourceControl"]); len(scList) > 0 {
		if sc := asMap(scList[0]); sc != nil {
			name = asString(sc["identity"])
			if loc := asMap(sc["location"]); loc != nil {
				if remotes := asSlice(loc["remote"]); len(remotes) > 0 {
					if r := asMap(remotes[0]); r != nil {
						url = asString(r["urlString"])
					}
				}
			}
			version = extractVersionModern(asMap(sc["requirement"]))
		}
	}

	if name == "" {
		if u := asString(dep["url"]); u != "" {
			url = u
			name = asString(dep["name"])
			if name == "" {
				name = deriveNameFromURL(u)
			}
			version = extractVersionGeneric(asMap(dep["requirement"]))
		} else if p := asString(dep["path"]); p != "" {
			name = asString(dep["name"])
			if name == "" {
				name = filepath.Base(p)
			}
			return report.Dependency{Name: name, Version: "local", Type: report.DependencySourceControl}, true
		}
	}

	if name == "" {
		return report.Dependency{}, false
	}
	return report.Dependency{Name: name, Version: version, Type: typeFromURL(url), URL: url}, true
}

func typeFromURL(url string) report.DependencyType {
	switch {
	case url == "":
		return report.DependencySourceControl
	case strings.HasSuffix(url, ".binary"):
		return report.DependencyBinary
	case strings.Contains(url, "@swift-package-registry"):
		return report.DependencyRegistry
	default:
		return report.DependencySourceControl
	}
}

func deriveNameFromURL(u string) string {
	u = strings.TrimSuffix(u, "/")
	base := u
	if idx := strings.LastIndex(u, "/"); idx >= 0 {
		base = u[idx+1:]
	}
	return strings.TrimSuffix(base, ".git")
}

// extractVersionModern implements the sourceControl[0].requirement rule:
// a range's bounds win over branch/revision/exact.
func extractVersionModern(req map[string]interface{}) string {
	if req == nil {
		return "unspecified"
	}
	if rangeList := asSlice(req["range"]); len(rangeList) > 0 {
		if r0 := asMap(rangeList[0]); r0 != nil {
			lower := asString(r0["lowerBound"])
			upper := asString(r0["upperBound"])
			if lower != "" || upper != "" {
				return lower + " - " + upper
			}
		}
	}
	if v, ok := branchRevisionExact(req); ok {
		return v
	}
	return "unspecified"
}

// extractVersionGeneric is the "version extraction helper" of spec.md §4.5,
// used by the legacy flat dependency layout: a non-empty sequence of plain
// version strings joins with ", " instead of the lowerBound/upperBound pair.
func extractVersionGeneric(req map[string]interface{}) string {
	if req == nil {
		return "unspecified"
	}
	if rangeList := asSlice(req["range"]); len(rangeList) > 0 {
		strs := make([]string, 0, len(rangeList))
		for _, item := range rangeList {
			s, ok := item.(string)
			if !ok {
				strs = nil
				break
			}
			strs = append(strs, s)
		}
		if len(strs) > 0 {
			return strings.Join(strs, ", ")
		}
	}
	if v, ok := branchRevisionExact(req); ok {
		return v
	}
	return "unspecified"
}

func branchRevisionExact(req map[string]interface{}) (string, bool) {
	if b := asString(req["branch"]); b != "" {
		return "branch: " + b, true
	}
	if r := asString(req["revision"]); r != "" {
		short := r
		if len(short) > 7 {
			short = short[:7]
		}
		return "revision: " + short, true
	}
	if e := asString(req["exact"]); e != "" {
		return e, true
	}
	return "", false
}
