package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"buildreport/internal/reportfmt"
	"buildreport/internal/rwatch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Parse logs with a live per-file progress view",
	Long:  `watch launches an interactive progress view while parsing the given logs, falling back to plain sequential output when stdout isn't a terminal.`,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	labels, inputs, err := readInputs(args)
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}

	if !isTerminal(os.Stdout) {
		cliLog.Printf("watch: stdout is not a terminal, falling back to sequential output inputs=%d", len(inputs))
		res, err := parseAllCached(cmd.Context(), inputs, opts.jobs, nil)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		return renderResults(cmd.OutOrStdout(), labels, res, opts)
	}

	cliLog.Printf("watch: launching progress view inputs=%d jobs=%d", len(inputs), opts.jobs)
	events, wait := rwatch.Run(cmd.Context(), labels, inputs, opts.jobs)
	model := rwatch.NewModel("buildreport watch", labels, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("watch view failed: %w", err)
	}

	results, err := wait()
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	fopts := reportfmt.Options{Color: opts.color != "off", Verbose: opts.verbose}
	format := opts.format
	if opts.minimal {
		format = "minimal"
	}
	fmt.Fprintln(cmd.OutOrStdout())
	for i, res := range results {
		res = reportfmt.FilterSeverity(res, opts.errorsOnly, opts.warnOnly)
		fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", labels[i])
		if err := reportfmt.Render(cmd.OutOrStdout(), res, format, fopts); err != nil {
			return err
		}
	}
	return nil
}
