package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cstyle/internal/driver"
	"cstyle/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cstyle",
	Short: "Style compliance checker for embedded C/C++ sources",
	Long:  `cstyle checks C/C++ sources against a fixed catalog of firmware coding-style rules`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum diagnostics per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
