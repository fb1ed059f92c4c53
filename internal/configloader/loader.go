// Package configloader resolves the effective configuration from the
// system, user and project config files, the environment and CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/jsfixer/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the process working directory.
	WorkingDir string

	// ExplicitPath is a config file given with --config. It is loaded after
	// the discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// KnownRuleIDs enables warnings for rule overrides that name no rule.
	KnownRuleIDs []string

	// CLIConfig holds flag values. It takes precedence over every other source.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files that were read, lowest precedence first.
	LoadedFrom []string

	Warnings []string
}

// Load merges every configuration source. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (JSFIXER_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.jsfixer.{yml,yaml,toml}, searched upward)
//  5. User config ($XDG_CONFIG_HOME/jsfixer/config.{yaml,yml,toml})
//  6. System config (/etc/jsfixer/config.{yaml,yml,toml})
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skip    bool
		baseDir string
	}{
		{"system", paths.System, opts.IgnoreSystemConfig, ""},
		{"user", paths.User, opts.IgnoreUserConfig, ""},
		{"project", paths.Project, opts.IgnoreProjectConfig, filepath.Dir(paths.Project)},
		{"explicit", paths.Explicit, false, filepath.Dir(paths.Explicit)},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		if layer.baseDir != "" {
			resolveRelative(fileCfg, layer.baseDir)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if len(opts.KnownRuleIDs) > 0 {
		warnUnknownRules(cfg, opts.KnownRuleIDs, validation)
	}
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads and decodes one config file.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return config.Decode(content, config.FileFormatOf(path))
}

// resolveRelative anchors the rule and transform file paths of a project
// config to the directory that holds it.
func resolveRelative(cfg *config.Config, baseDir string) {
	for _, p := range []*string{&cfg.RulesFile, &cfg.TransformsFile, &cfg.Cache.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}

func warnUnknownRules(cfg *config.Config, known []string, result *ValidationResult) {
	ids := make([]string, 0, len(cfg.Rules))
	for id := range cfg.Rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if slices.Contains(known, id) {
			continue
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "rules." + id,
			Value:   id,
			Message: fmt.Sprintf("unknown rule %q; known rules: %s", id, strings.Join(known, ", ")),
		})
	}
}

// UnknownRuleWarnings reports rule overrides in cfg that name none of known.
// It serves callers that only learn the rule IDs after loading the config.
func UnknownRuleWarnings(cfg *config.Config, known []string) []string {
	result := &ValidationResult{}
	warnUnknownRules(cfg, known, result)

	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, w.Error())
	}
	return warnings
}
