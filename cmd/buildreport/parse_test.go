package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"buildreport/internal/rcache"
	"buildreport/internal/report"
)

// newTestCmd builds a bare *cobra.Command carrying the same flag set
// rootCmd registers in main(), so resolveOptions can be exercised without
// running main() itself.
func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringP("format", "f", "text", "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.Flags().Bool("minimal", false, "")
	cmd.Flags().BoolP("errors", "e", false, "")
	cmd.Flags().BoolP("warnings", "w", false, "")
	cmd.Flags().StringP("output", "o", "", "")
	cmd.Flags().String("cache-dir", "", "")
	cmd.Flags().String("config", "", "")
	cmd.Flags().Int("jobs", 0, "")
	cmd.Flags().String("color", "auto", "")
	return cmd
}

func TestResolveOptions_NoConfigNoFlagsUsesBuiltinDefaults(t *testing.T) {
	cmd := newTestCmd()
	// Point --config at a nonexistent path so upward Discover() from the
	// test process's working directory never kicks in.
	if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Fatalf("Set(config) error = %v", err)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		t.Fatalf("resolveOptions() error = %v", err)
	}
	if opts.format != "text" || opts.minimal || opts.verbose || opts.jobs != 0 {
		t.Errorf("opts = %+v, want built-in defaults", opts)
	}
}

func TestResolveOptions_ConfigFillsInUnsetFlags(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".buildreport.toml")
	contents := "[defaults]\nformat = \"json\"\nverbose = true\njobs = 6\ncache_dir = \"/tmp/cache\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cmd := newTestCmd()
	if err := cmd.Flags().Set("config", configPath); err != nil {
		t.Fatalf("Set(config) error = %v", err)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		t.Fatalf("resolveOptions() error = %v", err)
	}
	if opts.format != "json" || !opts.verbose || opts.jobs != 6 || opts.cacheDir != "/tmp/cache" {
		t.Errorf("opts = %+v, want config-sourced defaults", opts)
	}
}

func TestResolveOptions_ExplicitFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".buildreport.toml")
	if err := os.WriteFile(configPath, []byte("[defaults]\nformat = \"json\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cmd := newTestCmd()
	if err := cmd.Flags().Set("config", configPath); err != nil {
		t.Fatalf("Set(config) error = %v", err)
	}
	if err := cmd.Flags().Set("format", "compact"); err != nil {
		t.Fatalf("Set(format) error = %v", err)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		t.Fatalf("resolveOptions() error = %v", err)
	}
	if opts.format != "compact" {
		t.Errorf("format = %q, want %q (explicit flag beats config)", opts.format, "compact")
	}
}

func TestReadInputs_ReadsEachPathWithBasenameLabel(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.log")
	pathB := filepath.Join(dir, "sub", "b.log")
	if err := os.MkdirAll(filepath.Dir(pathB), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(pathA, []byte("log a"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(pathB, []byte("log b"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	labels, inputs, err := readInputs([]string{pathA, pathB})
	if err != nil {
		t.Fatalf("readInputs() error = %v", err)
	}
	if len(labels) != 2 || labels[0] != "a.log" || labels[1] != "b.log" {
		t.Errorf("labels = %v, want basenames", labels)
	}
	if inputs[0] != "log a" || inputs[1] != "log b" {
		t.Errorf("inputs = %v", inputs)
	}
}

func TestReadInputs_MissingPathReturnsWrappedError(t *testing.T) {
	_, _, err := readInputs([]string{filepath.Join(t.TempDir(), "nope.log")})
	if err == nil {
		t.Error("expected an error for a missing path")
	}
}

func TestParseOneCached_PopulatesAndReusesCache(t *testing.T) {
	cache, err := rcache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("rcache.Open() error = %v", err)
	}
	input := "** BUILD SUCCEEDED **\n"

	first := parseOneCached(input, cache)
	if first.Status != report.StatusSuccess {
		t.Fatalf("first parse Status = %v, want StatusSuccess", first.Status)
	}

	key := rcache.HashInput(input)
	cached, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("expected parseOneCached to populate the cache")
	}
	if cached.Status != first.Status {
		t.Errorf("cached.Status = %v, want %v", cached.Status, first.Status)
	}
}

func TestRenderResults_MultiInputAddsHeadersExceptForMachineFormats(t *testing.T) {
	results := []report.Result{report.New(report.FormatXcode), report.New(report.FormatSwift)}
	results[0].Finalize()
	results[1].Finalize()
	labels := []string{"a.log", "b.log"}

	var textBuf bytes.Buffer
	if err := renderResults(&textBuf, labels, results, cliOptions{format: "text", color: "off"}); err != nil {
		t.Fatalf("renderResults(text) error = %v", err)
	}
	if !bytes.Contains(textBuf.Bytes(), []byte("== a.log ==")) || !bytes.Contains(textBuf.Bytes(), []byte("== b.log ==")) {
		t.Errorf("expected per-file headers in text output, got:\n%s", textBuf.String())
	}

	var jsonBuf bytes.Buffer
	if err := renderResults(&jsonBuf, labels, results, cliOptions{format: "json", color: "off"}); err != nil {
		t.Fatalf("renderResults(json) error = %v", err)
	}
	if bytes.Contains(jsonBuf.Bytes(), []byte("== a.log ==")) {
		t.Errorf("expected no per-file headers in json output, got:\n%s", jsonBuf.String())
	}
}

func TestRenderResults_MinimalOverridesFormat(t *testing.T) {
	res := report.New(report.FormatXcode)
	res.Finalize()

	var buf bytes.Buffer
	err := renderResults(&buf, []string{"a.log"}, []report.Result{res}, cliOptions{format: "json", minimal: true, color: "off"})
	if err != nil {
		t.Fatalf("renderResults() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("SUCCESS |")) {
		t.Errorf("expected minimal one-line output, got:\n%s", buf.String())
	}
}
