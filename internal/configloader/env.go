package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/jsfixer/pkg/config"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "JSFIXER_"

type envSetter func(cfg *config.Config, value string) error

type envVar struct {
	help string
	set  envSetter
}

func stringVar(help string, field func(*config.Config) *string) envVar {
	return envVar{help: help, set: func(cfg *config.Config, value string) error {
		*field(cfg) = value
		return nil
	}}
}

func boolVar(help string, field func(*config.Config) *bool) envVar {
	return envVar{help: help, set: func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true/false/1/0, got %q", value)
		}
		*field(cfg) = b
		return nil
	}}
}

var envVars = map[string]envVar{
	"RULES_FILE": stringVar("Rule file (YAML)",
		func(c *config.Config) *string { return &c.RulesFile }),
	"TRANSFORMS_FILE": stringVar("Transform file (YAML)",
		func(c *config.Config) *string { return &c.TransformsFile }),
	"LOG_LEVEL": stringVar("Log level: debug, info, warn, error",
		func(c *config.Config) *string { return &c.LogLevel }),
	"BACKUPS_MODE": stringVar("Backup mode: sidecar or none",
		func(c *config.Config) *string { return &c.Backups.Mode }),
	"CACHE_DIR": stringVar("Analysis cache directory",
		func(c *config.Config) *string { return &c.Cache.Dir }),
	"FIX": boolVar("Apply fixes: true or false",
		func(c *config.Config) *bool { return &c.Fix }),
	"DRY_RUN": boolVar("Show fixes as a diff without writing: true or false",
		func(c *config.Config) *bool { return &c.DryRun }),
	"TRANSFORM": boolVar("Apply transforms when fixing: true or false",
		func(c *config.Config) *bool { return &c.Transform }),
	"BACKUPS_ENABLED": boolVar("Create backups when fixing: true or false",
		func(c *config.Config) *bool { return &c.Backups.Enabled }),
	"NO_BACKUPS": boolVar("Disable backups: true or false",
		func(c *config.Config) *bool { return &c.NoBackups }),
	"CACHE_ENABLED": boolVar("Use the analysis cache: true or false",
		func(c *config.Config) *bool { return &c.Cache.Enabled }),
	"FORMAT": {
		help: "Output format: text, table, json, sarif, diff, summary",
		set: func(c *config.Config, value string) error {
			c.Format = config.OutputFormat(value)
			return nil
		},
	},
	"JOBS": {
		help: "Number of parallel workers (0 = auto)",
		set: func(c *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", value)
			}
			c.Jobs = n
			return nil
		},
	},
	"IGNORE": {
		help: "Comma-separated ignore globs",
		set: func(c *config.Config, value string) error {
			c.Ignore = splitList(value)
			return nil
		},
	},
}

// LoadFromEnv applies JSFIXER_* overrides to cfg. Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, suffix := range slices.Sorted(maps.Keys(envVars)) {
		name := EnvPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := envVars[suffix].set(cfg, value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		out[EnvPrefix+suffix] = v.help
	}
	return out
}

func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
