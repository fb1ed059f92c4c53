package configloader

import (
	"maps"

	"github.com/yaklabco/jsfixer/pkg/config"
)

// merge layers override on top of base.
//   - Scalars and strings: a non-zero override wins.
//   - Booleans: only true overrides, so a file cannot clear a flag.
//   - Rules: merged per rule and per field.
//   - Slices: a non-nil override replaces base.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	for _, f := range []struct{ dst, src *string }{
		{&result.RulesFile, &override.RulesFile},
		{&result.TransformsFile, &override.TransformsFile},
		{&result.LogLevel, &override.LogLevel},
		{&result.Backups.Mode, &override.Backups.Mode},
		{&result.Cache.Dir, &override.Cache.Dir},
	} {
		if *f.src != "" {
			*f.dst = *f.src
		}
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.Fix = base.Fix || override.Fix
	result.DryRun = base.DryRun || override.DryRun
	result.Transform = base.Transform || override.Transform
	result.NoBackups = base.NoBackups || override.NoBackups
	result.Backups.Enabled = base.Backups.Enabled || override.Backups.Enabled
	result.Cache.Enabled = base.Cache.Enabled || override.Cache.Enabled

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.FixRules != nil {
		result.FixRules = override.FixRules
	}

	return &result
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for id, rc := range override {
		existing, ok := result[id]
		if !ok {
			result[id] = rc
			continue
		}
		if rc.Enabled != nil {
			existing.Enabled = rc.Enabled
		}
		if rc.Severity != nil {
			existing.Severity = rc.Severity
		}
		result[id] = existing
	}

	return result
}

// MergeAll merges configs in order; later configs take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
