package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"cstyle/internal/diagfmt"
	"cstyle/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:          "check [flags] <file|directory>...",
	Short:        "Check C/C++ sources against the rule catalog",
	Long:         `Check the given files, or every C/C++ file under the given directories, and report style violations in a deterministic order`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runCheck,
	SilenceUsage: true,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("config", "", "path to cstyle.toml (default: nearest above the target)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("cache", false, "enable the persistent result cache")
	checkCmd.Flags().String("cache-dir", "", "override the result cache directory")
	checkCmd.Flags().Bool("quiet", false, "suppress the summary line")
}

// runCheck executes the "check" command: resolve configuration, run the
// pipeline over every target, print diagnostics in the chosen format, and
// exit 1 on violations or 2 on fatal errors.
func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	baseDir, paths, err := collectTargets(args)
	if err != nil {
		return err
	}

	cfg, checker, err := loadConfig(baseDir, configPath)
	if err != nil {
		return err
	}
	if jobs == 0 && checker.Jobs > 0 {
		jobs = checker.Jobs
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && checker.MaxDiagnostics > 0 {
		maxDiagnostics = checker.MaxDiagnostics
	}

	var cache *driver.ResultCache
	if useCache {
		if cacheDir != "" {
			cache, err = driver.OpenResultCacheAt(cacheDir)
		} else {
			cache, err = driver.OpenResultCache("cstyle")
		}
		if err != nil {
			return fmt.Errorf("failed to open result cache: %w", err)
		}
	}

	result, err := driver.Check(cmd.Context(), baseDir, paths, driver.Options{
		Config:         cfg,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
	})
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		}
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, jsonOpts); err != nil {
			return err
		}
	default:
		diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		if !quiet {
			errs, warns, infos := result.Counts()
			fmt.Printf("%d files checked: %d errors, %d warnings, %d infos\n",
				len(result.Files), errs, warns, infos)
		}
	}

	if status := result.Status(); status != driver.StatusClean {
		os.Exit(int(status))
	}
	return nil
}

func resolveColor(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("unknown color mode %q", mode)
}

// collectTargets expands the argument list into a sorted file list plus the
// base directory used for relative path rendering.
func collectTargets(args []string) (string, []string, error) {
	var paths []string
	baseDir := ""
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return "", nil, err
		}
		if info.IsDir() {
			files, err := driver.ListSourceFiles(arg)
			if err != nil {
				return "", nil, err
			}
			paths = append(paths, files...)
			if baseDir == "" {
				baseDir = arg
			}
			continue
		}
		paths = append(paths, arg)
		if baseDir == "" {
			baseDir = filepath.Dir(arg)
		}
	}
	sort.Strings(paths)
	return baseDir, paths, nil
}
