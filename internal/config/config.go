// Package config loads globalint.toml, the per-project analysis settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"globalint/internal/diag"
	"globalint/internal/rules"
)

// FileName is the project configuration file searched for upward.
const FileName = "globalint.toml"

// Config mirrors globalint.toml.
type Config struct {
	// Path and Root are empty for the built-in defaults.
	Path string `toml:"-"`
	Root string `toml:"-"`

	Rules    map[string]string `toml:"rules" validate:"dive,keys,required,endkeys,oneof=error warning info off"`
	Analysis Analysis          `toml:"analysis"`
	Output   Output            `toml:"output"`
}

type Analysis struct {
	Jobs           int      `toml:"jobs" validate:"gte=0,lte=1024"`
	MaxDiagnostics int      `toml:"max_diagnostics" validate:"gte=0"`
	Exclude        []string `toml:"exclude" validate:"dive,required"`
	Lang           string   `toml:"lang" validate:"omitempty,oneof=en ru"`
}

type Output struct {
	Format string `toml:"format" validate:"omitempty,oneof=pretty short json sarif"`
	Color  string `toml:"color" validate:"omitempty,oneof=auto on off"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		Rules: map[string]string{},
		Analysis: Analysis{
			MaxDiagnostics: 500,
			Exclude:        []string{"obj/**", "bin/**", "**/*.g.cs", "**/*.Designer.cs"},
			Lang:           "en",
		},
		Output: Output{Format: "pretty", Color: "auto"},
	}
}

// Find walks from startDir to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Discover loads the nearest globalint.toml above target, or the defaults.
func Discover(target string) (*Config, error) {
	path, ok, err := Find(target)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load decodes and validates one configuration file. Keys missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and rule names.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	for name := range c.Rules {
		if _, ok := rules.Parse(name); !ok {
			return fmt.Errorf("[rules]: unknown rule %q", name)
		}
	}
	for _, pattern := range c.Analysis.Exclude {
		if _, err := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), ""); err != nil {
			return fmt.Errorf("[analysis].exclude: bad pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// RuleSeverity returns the configured severity of id; enabled is false for "off".
// Unconfigured rules are warnings.
func (c *Config) RuleSeverity(id rules.ID) (sev diag.Severity, enabled bool) {
	for name, value := range c.Rules {
		parsed, ok := rules.Parse(name)
		if !ok || parsed != id {
			continue
		}
		if strings.EqualFold(value, "off") {
			return diag.SevWarning, false
		}
		if s, err := diag.ParseSeverity(value); err == nil {
			return s, true
		}
	}
	return diag.SevWarning, true
}

// Excluded reports whether rel (slash separated, relative to the analysed
// root) matches an exclude pattern.
func (c *Config) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Analysis.Exclude {
		if matchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// matchGlob extends path.Match with "**" spanning directories.
func matchGlob(pattern, name string) bool {
	if !strings.Contains(pattern, "**") {
		ok, _ := filepath.Match(pattern, name)
		if ok {
			return true
		}
		// bare file patterns match in any directory
		if !strings.Contains(pattern, "/") {
			ok, _ = filepath.Match(pattern, filepath.Base(name))
		}
		return ok
	}
	prefix, rest, _ := strings.Cut(pattern, "**")
	prefix = strings.TrimSuffix(prefix, "/")
	rest = strings.TrimPrefix(rest, "/")
	if prefix != "" {
		if name != prefix && !strings.HasPrefix(name, prefix+"/") {
			return false
		}
		name = strings.TrimPrefix(strings.TrimPrefix(name, prefix), "/")
	}
	if rest == "" {
		return true
	}
	segments := strings.Split(name, "/")
	for i := range segments {
		if matchGlob(rest, strings.Join(segments[i:], "/")) {
			return true
		}
	}
	return false
}
