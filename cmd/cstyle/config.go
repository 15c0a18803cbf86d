package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"cstyle/internal/diag"
	"cstyle/internal/rules"
)

// fileConfig mirrors the cstyle.toml layout:
//
//	[checker]
//	max-diagnostics = 500
//	jobs = 4
//
//	[rules.LineLength]
//	enabled = true
//	severity = "warning"
//	[rules.LineLength.params]
//	max = 100
type fileConfig struct {
	Checker checkerConfig         `toml:"checker"`
	Rules   map[string]ruleConfig `toml:"rules"`
}

type checkerConfig struct {
	MaxDiagnostics int `toml:"max-diagnostics"`
	Jobs           int `toml:"jobs"`
}

type ruleConfig struct {
	Enabled  *bool          `toml:"enabled"`
	Severity string         `toml:"severity"`
	Params   map[string]any `toml:"params"`
}

// findCstyleToml walks upward from startDir looking for a cstyle.toml.
func findCstyleToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "cstyle.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig resolves the effective configuration: an explicit path wins,
// otherwise the nearest cstyle.toml above startDir, otherwise all defaults.
// Any malformed value aborts the run before a single file is checked.
func loadConfig(startDir, explicit string) (*rules.Config, checkerConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findCstyleToml(startDir)
		if err != nil {
			return nil, checkerConfig{}, err
		}
		if !ok {
			return rules.NewConfig(), checkerConfig{}, nil
		}
		path = found
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, checkerConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg, err := buildRuleConfig(&fc)
	if err != nil {
		return nil, checkerConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, fc.Checker, nil
}

func buildRuleConfig(fc *fileConfig) (*rules.Config, error) {
	cfg := rules.NewConfig()
	if fc == nil || len(fc.Rules) == 0 {
		return cfg, nil
	}
	// deterministic error order across runs
	names := make([]string, 0, len(fc.Rules))
	for name := range fc.Rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rc := fc.Rules[name]
		ov := rules.Override{Enabled: rc.Enabled}
		if rc.Severity != "" {
			sev, ok := diag.ParseSeverity(rc.Severity)
			if !ok {
				return nil, fmt.Errorf("rule %s: unknown severity %q", name, rc.Severity)
			}
			ov.Severity = &sev
		}
		if len(rc.Params) > 0 {
			ov.Params = make(map[string]any, len(rc.Params))
			for k, v := range rc.Params {
				ov.Params[k] = normalizeParamValue(v)
			}
		}
		if err := cfg.Set(name, ov); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// normalizeParamValue maps TOML decode types onto the catalog's parameter
// types: integers arrive as int64 and string lists as []any.
func normalizeParamValue(v any) any {
	switch x := v.(type) {
	case int64:
		return int(x)
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return v
			}
			out = append(out, s)
		}
		return out
	}
	return v
}
