package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jsfixer/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_ProjectYAML(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".jsfixer.yml"), `
rules_file: rules/custom.yaml
ignore:
  - "gen/**"
cache:
  enabled: true
rules:
  no-var:
    enabled: false
  eqeqeq:
    severity: alta
`)
	sub := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{filepath.Join(root, ".jsfixer.yml")}, result.LoadedFrom)
	assert.Equal(t, filepath.Join(root, "rules", "custom.yaml"), cfg.RulesFile)
	assert.Equal(t, []string{"gen/**"}, cfg.Ignore)
	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.RuleEnabled("no-var"))

	sev, ok := cfg.SeverityOverride("eqeqeq")
	require.True(t, ok)
	assert.Equal(t, config.SeverityHigh, sev)
}

func TestLoad_ProjectTOML(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".jsfixer.toml"), `
transforms_file = "/abs/transforms.yaml"
log_level = "debug"

[backups]
enabled = true
mode = "none"

[rules.console-log]
severity = "low"
`)

	result, err := Load(context.Background(), isolated(root))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "/abs/transforms.yaml", cfg.TransformsFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "none", cfg.Backups.Mode)
	sev, ok := cfg.SeverityOverride("console-log")
	require.True(t, ok)
	assert.Equal(t, config.SeverityLow, sev)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".jsfixer.yml"), "log_level: warn\nrules:\n  no-var:\n    severity: low\n")
	explicit := filepath.Join(root, "ci", "strict.yaml")
	writeFile(t, explicit, "rules:\n  no-var:\n    enabled: false\n")

	opts := isolated(root)
	opts.ExplicitPath = explicit
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.Paths.Explicit)
	assert.Equal(t, "warn", result.Config.LogLevel)

	rc := result.Config.Rules["no-var"]
	require.NotNil(t, rc.Enabled)
	require.NotNil(t, rc.Severity)
	assert.False(t, *rc.Enabled)
	assert.Equal(t, "low", *rc.Severity, "fields merge per rule")
}

func TestLoad_CLIOverridesEverything(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".jsfixer.yml"), "ignore: [\"a/**\"]\n")

	cli := &config.Config{
		Fix:      true,
		Format:   config.FormatJSON,
		Jobs:     3,
		Ignore:   []string{"b/**"},
		FixRules: []string{"no-var"},
	}
	opts := isolated(root)
	opts.CLIConfig = cli

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.True(t, cfg.Fix)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, []string{"b/**"}, cfg.Ignore)
	assert.Equal(t, []string{"no-var"}, cfg.FixRules)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "severity", content: "rules:\n  no-var:\n    severity: urgent\n", field: "rules.no-var.severity"},
		{name: "backup mode", content: "backups:\n  mode: cloud\n", field: "backups.mode"},
		{name: "glob", content: "ignore:\n  - \"src/[a-\"\n", field: "ignore[0]"},
		{name: "log level", content: "log_level: loud\n", field: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
			writeFile(t, filepath.Join(root, ".jsfixer.yml"), tt.content)

			_, err := Load(context.Background(), isolated(root))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".jsfixer.toml"), "rules = [unterminated")

	_, err := Load(context.Background(), isolated(root))
	assert.ErrorContains(t, err, "load project config")
}

func TestLoad_UnknownRuleWarning(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".jsfixer.yml"), "rules:\n  no-such-rule:\n    enabled: false\n")

	opts := isolated(root)
	opts.KnownRuleIDs = []string{"no-var", "eqeqeq"}
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown rule "no-such-rule"`)
}

func TestUnknownRuleWarnings(t *testing.T) {
	t.Parallel()

	off := false
	cfg := config.NewConfig()
	cfg.Rules["no-var"] = config.RuleConfig{Enabled: &off}
	cfg.Rules["zz-missing"] = config.RuleConfig{Enabled: &off}
	cfg.Rules["aa-missing"] = config.RuleConfig{Enabled: &off}

	warnings := UnknownRuleWarnings(cfg, []string{"no-var"})
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], `"aa-missing"`)
	assert.Contains(t, warnings[1], `"zz-missing"`)

	assert.Empty(t, UnknownRuleWarnings(config.NewConfig(), []string{"no-var"}))
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "jsfixer", "config.toml"), "log_level = \"error\"\n")

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         root,
		IgnoreSystemConfig: true,
		IgnoreEnv:          true,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(xdg, "jsfixer", "config.toml"), result.Paths.User)
	assert.Equal(t, "error", result.Config.LogLevel)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JSFIXER_FORMAT", "sarif")
	t.Setenv("JSFIXER_JOBS", "2")
	t.Setenv("JSFIXER_BACKUPS_ENABLED", "false")
	t.Setenv("JSFIXER_IGNORE", "a/**, b/**,")

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	opts := isolated(root)
	opts.IgnoreEnv = false
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.FormatSARIF, cfg.Format)
	assert.Equal(t, 2, cfg.Jobs)
	assert.False(t, cfg.Backups.Enabled)
	assert.Equal(t, []string{"a/**", "b/**"}, cfg.Ignore)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("JSFIXER_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	assert.ErrorContains(t, err, "invalid JSFIXER_JOBS")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Contains(t, vars, "JSFIXER_RULES_FILE")
	assert.Contains(t, vars, "JSFIXER_CACHE_ENABLED")
	for name, help := range vars {
		assert.NotEmpty(t, help, name)
	}
}
