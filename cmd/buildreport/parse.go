package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"buildreport/internal/buildparse"
	"buildreport/internal/rcache"
	"buildreport/internal/rconfig"
	"buildreport/internal/report"
	"buildreport/internal/reportfmt"
)

var parseCmd = &cobra.Command{
	Use:   "parse [paths...]",
	Short: "Parse one or more build logs into a structured report",
	Long:  `parse reads stdin (no paths given) or each path, detects its dialect, and renders a structured build report.`,
	RunE:  runParse,
}

func init() {
	rootCmd.RunE = runParse
}

func runParse(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	labels, inputs, err := readInputs(args)
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}

	var cache *rcache.Cache
	if opts.cacheDir != "" {
		cache, err = rcache.Open(opts.cacheDir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		cliLog.Printf("cache opened dir=%s", opts.cacheDir)
	}

	cliLog.Printf("parsing inputs=%d jobs=%d format=%s", len(inputs), opts.jobs, opts.format)

	results := make([]report.Result, len(inputs))
	if len(inputs) > 1 {
		results, err = parseAllCached(cmd.Context(), inputs, opts.jobs, cache)
		if err != nil {
			cmd.SilenceUsage = true
			return fmt.Errorf("parsing failed: %w", err)
		}
	} else if len(inputs) == 1 {
		results[0] = parseOneCached(inputs[0], cache)
	}

	out := cmd.OutOrStdout()
	if opts.outputPath != "" {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return fmt.Errorf("failed to open output path: %w", err)
		}
		defer f.Close()
		out = f
		cliLog.Printf("output redirected path=%s", opts.outputPath)
	}

	return renderResults(out, labels, results, opts)
}

type cliOptions struct {
	format     string
	minimal    bool
	errorsOnly bool
	warnOnly   bool
	verbose    bool
	outputPath string
	cacheDir   string
	jobs       int
	color      string
}

// resolveOptions layers flag > config file > built-in default, per
// SPEC_FULL.md's config precedence rule.
func resolveOptions(cmd *cobra.Command) (cliOptions, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		if found, ok, derr := rconfig.Discover("."); derr == nil && ok {
			configPath = found
		}
	}
	defaults, err := rconfig.Load(configPath)
	if err != nil {
		return cliOptions{}, err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !cmd.Flags().Changed("format") && defaults.Format != "" {
		format = defaults.Format
	}

	minimal, err := cmd.Flags().GetBool("minimal")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get minimal flag: %w", err)
	}
	if !cmd.Flags().Changed("minimal") && defaults.Minimal {
		minimal = true
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if !cmd.Flags().Changed("verbose") && defaults.Verbose {
		verbose = true
	}

	errorsOnly, err := cmd.Flags().GetBool("errors")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get errors flag: %w", err)
	}
	warnOnly, err := cmd.Flags().GetBool("warnings")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get warnings flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get output flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if !cmd.Flags().Changed("cache-dir") && defaults.CacheDir != "" {
		cacheDir = defaults.CacheDir
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") && defaults.Jobs > 0 {
		jobs = defaults.Jobs
	}
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		return cliOptions{}, fmt.Errorf("failed to get color flag: %w", err)
	}

	return cliOptions{
		format:     format,
		minimal:    minimal,
		errorsOnly: errorsOnly,
		warnOnly:   warnOnly,
		verbose:    verbose,
		outputPath: outputPath,
		cacheDir:   cacheDir,
		jobs:       jobs,
		color:      color,
	}, nil
}

// readInputs reads stdin when args is empty, or each path in args,
// returning a display label alongside each raw input.
func readInputs(args []string) (labels []string, inputs []string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []string{"stdin"}, []string{string(data)}, nil
	}

	labels = make([]string, 0, len(args))
	inputs = make([]string, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		labels = append(labels, filepath.Base(path))
		inputs = append(inputs, string(data))
	}
	return labels, inputs, nil
}

func parseOneCached(input string, cache *rcache.Cache) report.Result {
	if cache != nil {
		key := rcache.HashInput(input)
		if cached, ok, err := cache.Get(key); err == nil && ok {
			return cached
		}
		res := buildparse.Parse(input)
		_ = cache.Put(key, res)
		return res
	}
	return buildparse.Parse(input)
}

func parseAllCached(ctx context.Context, inputs []string, jobs int, cache *rcache.Cache) ([]report.Result, error) {
	if cache == nil {
		return buildparse.ParseAll(ctx, inputs, jobs)
	}

	results := make([]report.Result, len(inputs))
	misses := make([]string, 0, len(inputs))
	missIdx := make([]int, 0, len(inputs))
	keys := make([]rcache.Digest, len(inputs))

	for i, input := range inputs {
		key := rcache.HashInput(input)
		keys[i] = key
		if cached, ok, err := cache.Get(key); err == nil && ok {
			results[i] = cached
			continue
		}
		misses = append(misses, input)
		missIdx = append(missIdx, i)
	}

	if len(misses) > 0 {
		parsed, err := buildparse.ParseAll(ctx, misses, jobs)
		if err != nil {
			return nil, err
		}
		for k, idx := range missIdx {
			results[idx] = parsed[k]
			_ = cache.Put(keys[idx], parsed[k])
		}
	}
	return results, nil
}

func renderResults(out io.Writer, labels []string, results []report.Result, opts cliOptions) error {
	format := opts.format
	if opts.minimal {
		format = "minimal"
	}
	fopts := reportfmt.Options{
		Color:   opts.color == "on" || (opts.color == "auto" && isTerminal(os.Stdout)),
		Verbose: opts.verbose,
	}

	for i, res := range results {
		res = reportfmt.FilterSeverity(res, opts.errorsOnly, opts.warnOnly)
		if len(results) > 1 && format != "json" && format != "compact" {
			if _, err := fmt.Fprintf(out, "== %s ==\n", labels[i]); err != nil {
				return err
			}
		}
		if err := reportfmt.Render(out, res, format, fopts); err != nil {
			return err
		}
	}
	return nil
}
