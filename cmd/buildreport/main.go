package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"buildreport/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "buildreport",
	Short: "Structured build reports from Swift and Xcode logs",
	Long:  `buildreport turns raw Swift, Xcode, and SwiftPM build output into a single structured report.`,
}

// cliLog reports CLI-layer operations (cache open, parse start, output
// redirection, watch-view launch or fallback) — never the parse core itself,
// which stays side-effect free.
var cliLog = log.New(os.Stderr, "buildreport: ", log.LstdFlags)

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)

	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text|json|summary|compact)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "include diagnostic location detail")
	rootCmd.PersistentFlags().Bool("minimal", false, "force the one-line minimal layout, overriding --format")
	rootCmd.PersistentFlags().BoolP("errors", "e", false, "show only error/critical diagnostics")
	rootCmd.PersistentFlags().BoolP("warnings", "w", false, "show only warning and above diagnostics")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write the report to PATH instead of stdout")
	rootCmd.PersistentFlags().String("cache-dir", "", "directory for the on-disk result cache (disabled if empty)")
	rootCmd.PersistentFlags().String("config", "", "path to a .buildreport.toml defaults file")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers when given multiple inputs (0=auto)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
