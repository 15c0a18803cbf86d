package rules

import (
	"fmt"

	"cstyle/internal/diag"
)

// Override adjusts one rule: enablement, severity, and parameter values.
// Nil pointer fields mean "keep the descriptor default".
type Override struct {
	Enabled  *bool
	Severity *diag.Severity
	Params   map[string]any
}

// Config is the resolved rule configuration for a run. It is built once by
// the caller, validated, and read-only afterwards: the engine never mutates
// it and rules receive values through it only.
type Config struct {
	overrides map[diag.Code]Override
}

// NewConfig returns a configuration with every rule at its defaults.
func NewConfig() *Config {
	return &Config{overrides: make(map[diag.Code]Override)}
}

// Set installs an override for the named rule. Unknown rule names or
// malformed parameters are a caller-side programming error and abort the
// whole run before any file is processed.
func (c *Config) Set(ruleName string, ov Override) error {
	desc, ok := DescriptorByName(ruleName)
	if !ok {
		return fmt.Errorf("unknown rule %q", ruleName)
	}
	for name, val := range ov.Params {
		spec, ok := paramSpec(desc, name)
		if !ok {
			return fmt.Errorf("rule %s: unknown parameter %q", ruleName, name)
		}
		if err := checkParamValue(spec, val); err != nil {
			return fmt.Errorf("rule %s: parameter %q: %w", ruleName, name, err)
		}
	}
	c.overrides[desc.Code] = ov
	return nil
}

func paramSpec(desc Descriptor, name string) (ParamSpec, bool) {
	for _, p := range desc.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

func checkParamValue(spec ParamSpec, val any) error {
	switch spec.Kind {
	case ParamInt:
		n, ok := val.(int)
		if !ok {
			return fmt.Errorf("expected integer, got %T", val)
		}
		if n < 0 {
			return fmt.Errorf("value %d out of range", n)
		}
	case ParamBool:
		if _, ok := val.(bool); !ok {
			return fmt.Errorf("expected bool, got %T", val)
		}
	case ParamStrings:
		if _, ok := val.([]string); !ok {
			return fmt.Errorf("expected string list, got %T", val)
		}
	}
	return nil
}

// Enabled reports whether the rule runs under this configuration.
func (c *Config) Enabled(code diag.Code) bool {
	desc, ok := DescriptorFor(code)
	if !ok {
		return false
	}
	if ov, ok := c.overrides[code]; ok && ov.Enabled != nil {
		return *ov.Enabled
	}
	return desc.DefaultEnabled
}

// Severity resolves the effective severity for the rule.
func (c *Config) Severity(code diag.Code) diag.Severity {
	desc, _ := DescriptorFor(code)
	if ov, ok := c.overrides[code]; ok && ov.Severity != nil {
		return *ov.Severity
	}
	return desc.DefaultSeverity
}

func (c *Config) param(code diag.Code, name string) any {
	if ov, ok := c.overrides[code]; ok {
		if v, ok := ov.Params[name]; ok {
			return v
		}
	}
	desc, ok := DescriptorFor(code)
	if !ok {
		return nil
	}
	if spec, ok := paramSpec(desc, name); ok {
		return spec.Default
	}
	return nil
}

// IntParam resolves an integer tunable, falling back to the descriptor default.
func (c *Config) IntParam(code diag.Code, name string) int {
	if v, ok := c.param(code, name).(int); ok {
		return v
	}
	return 0
}

// BoolParam resolves a boolean tunable.
func (c *Config) BoolParam(code diag.Code, name string) bool {
	if v, ok := c.param(code, name).(bool); ok {
		return v
	}
	return false
}

// StringsParam resolves a string-set tunable.
func (c *Config) StringsParam(code diag.Code, name string) []string {
	if v, ok := c.param(code, name).([]string); ok {
		return v
	}
	return nil
}

// Fingerprint folds the full effective configuration into a stable string,
// used to key the result cache.
func (c *Config) Fingerprint() string {
	out := ""
	for _, desc := range Catalog() {
		out += fmt.Sprintf("%s=%v,%v", desc.Code.ID(), c.Enabled(desc.Code), c.Severity(desc.Code))
		for _, p := range desc.Params {
			out += fmt.Sprintf(",%s=%v", p.Name, c.param(desc.Code, p.Name))
		}
		out += ";"
	}
	return out
}
