package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"buildreport/internal/version"
)

func TestCollectVersionInfo_DefaultsToDevWhenUnset(t *testing.T) {
	origVersion := version.Version
	defer func() { version.Version = origVersion }()
	version.Version = "  "

	info := collectVersionInfo()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want %q", info.Version, "dev")
	}
}

func TestRenderVersionPretty_OmitsHashAndDateByDefault(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, versionInfo{Version: "1.2.3"}, false, false)
	out := buf.String()
	if !strings.Contains(out, "buildreport 1.2.3") {
		t.Errorf("output missing version line: %q", out)
	}
	if strings.Contains(out, "commit:") || strings.Contains(out, "built:") {
		t.Errorf("expected no commit/built lines, got: %q", out)
	}
}

func TestRenderVersionPretty_IncludesHashAndDateWhenRequested(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, versionInfo{Version: "1.2.3", GitCommit: "abc123", BuildDate: "2026-01-01"}, true, true)
	out := buf.String()
	if !strings.Contains(out, "commit: abc123") || !strings.Contains(out, "built:  2026-01-01") {
		t.Errorf("output missing requested fields: %q", out)
	}
}

func TestRenderVersionJSON_EncodesRequestedFieldsOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionInfo{Version: "1.2.3", GitCommit: "abc123"}, true, false); err != nil {
		t.Fatalf("renderVersionJSON() error = %v", err)
	}
	var decoded versionPayload
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded.Tool != "buildreport" || decoded.Version != "1.2.3" || decoded.GitCommit != "abc123" || decoded.BuildDate != "" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestValueOrUnknown(t *testing.T) {
	if got := valueOrUnknown(""); got != "unknown" {
		t.Errorf("valueOrUnknown(\"\") = %q, want %q", got, "unknown")
	}
	if got := valueOrUnknown("abc"); got != "abc" {
		t.Errorf("valueOrUnknown(\"abc\") = %q, want %q", got, "abc")
	}
}
