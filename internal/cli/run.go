package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/jsfixer/internal/configloader"
	"github.com/yaklabco/jsfixer/internal/logging"
	"github.com/yaklabco/jsfixer/pkg/cache"
	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/reporter"
	"github.com/yaklabco/jsfixer/pkg/rules"
	"github.com/yaklabco/jsfixer/pkg/runner"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// usageError marks invalid flag values.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// configError marks configuration and rule file failures.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// runMode selects what a run does to the files it analyzes.
type runMode int

const (
	modeLint runMode = iota
	modeFix
	modeTransform
)

// runFlags holds the flags shared by lint, fix and transform.
type runFlags struct {
	format          string
	ruleFormat      string
	summaryOrder    string
	ignore          []string
	fixRules        []string
	rulesFile       string
	transformsFile  string
	cacheDir        string
	jobs            int
	cache           bool
	dryRun          bool
	transform       bool
	noBackups       bool
	strict          bool
	noContext       bool
	compact         bool
	followSymlinks  bool
	includeVendored bool
}

func addCommonRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "",
		"output format: "+strings.Join(reporter.Formats(), ", ")+" (default text)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "",
		"rule identifier format in output: name, id, or combined (default combined)")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.rulesFile, "rules", "", "rule file (YAML); empty uses the built-in rules")
	cmd.Flags().StringVar(&flags.transformsFile, "transforms", "",
		"transform file (YAML); empty uses the built-in transforms")
	cmd.Flags().BoolVar(&flags.cache, "cache", false, "reuse cached analysis results")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "cache directory (default $XDG_CACHE_HOME/jsfixer)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero on medium-severity issues too")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false,
		"also process vendored directories such as node_modules")
}

func addWriteFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show the changes as a diff without writing")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not keep a backup of fixed files")
}

// cliConfig maps flag values onto a config that overrides every other source.
func (f *runFlags) cliConfig(mode runMode) (*config.Config, error) {
	cfg := &config.Config{
		RulesFile:      f.rulesFile,
		TransformsFile: f.transformsFile,
		Ignore:         f.ignore,
		FixRules:       f.fixRules,
		Jobs:           f.jobs,
		DryRun:         f.dryRun,
		NoBackups:      f.noBackups,
		Cache:          config.CacheConfig{Enabled: f.cache, Dir: f.cacheDir},
	}

	switch mode {
	case modeFix:
		cfg.Fix = true
		cfg.Transform = f.transform
	case modeTransform:
		cfg.Transform = true
	case modeLint:
	}

	if f.format != "" {
		format, err := reporter.ParseFormat(f.format)
		if err != nil {
			return nil, &usageError{err: err}
		}
		cfg.Format = format
	} else if f.dryRun {
		cfg.Format = config.FormatDiff
	}

	if f.ruleFormat != "" {
		ruleFormat, err := config.ParseRuleFormat(f.ruleFormat)
		if err != nil {
			return nil, &usageError{err: err}
		}
		cfg.RuleFormat = ruleFormat
	}

	return cfg, nil
}

// environment is the resolved configuration and rule repository of a command.
type environment struct {
	workDir string
	cfg     *config.Config
	logger  *log.Logger

	// all is the loaded rule set before configured overrides.
	all  *rules.RuleSet
	repo *rules.Repository
}

// loadConfig resolves the configuration and applies its log level.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*environment, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, &configError{err: fmt.Errorf("load configuration: %w", err)}
	}
	cfg := loaded.Config

	if debug, _ := cmd.Flags().GetBool("debug"); !debug && cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loaded.LoadedFrom)
	}

	return &environment{workDir: workDir, cfg: cfg, logger: logger}, nil
}

// loadEnvironment resolves the configuration and loads the rule set with
// the configured overrides.
func loadEnvironment(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*environment, error) {
	env, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return nil, err
	}
	cfg := env.cfg

	repo := rules.NewRepository(rules.Empty())
	if err := repo.Reload(logging.WithLogger(ctx, env.logger), rules.FileLoader(cfg.RulesFile, cfg.TransformsFile)); err != nil {
		return nil, &configError{err: err}
	}

	env.all = repo.Current()
	ids := make([]string, 0, env.all.Len())
	for _, r := range env.all.Rules {
		ids = append(ids, r.ID)
	}
	for _, warning := range configloader.UnknownRuleWarnings(cfg, ids) {
		env.logger.Warn(warning)
	}
	repo.Swap(env.all.WithOverrides(cfg))
	env.repo = repo

	return env, nil
}

// openCache returns the configured cache, or nil when caching is off or the
// directory cannot be created.
func (e *environment) openCache() *cache.Cache {
	if !e.cfg.Cache.Enabled {
		return nil
	}
	c, err := cache.Open(e.cfg.Cache.Dir)
	if err != nil {
		e.logger.Warn("cache disabled", logging.FieldError, err)
		return nil
	}
	e.logger.Debug("using cache", logging.FieldCache, c.Dir())
	return c
}

func executeRun(cmd *cobra.Command, args []string, mode runMode, flags *runFlags, info BuildInfo) error {
	ctx := commandContext(cmd)

	cliCfg, err := flags.cliConfig(mode)
	if err != nil {
		return err
	}

	env, err := loadEnvironment(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := env.cfg

	env.logger.Debug("configuration resolved",
		logging.FieldFix, cfg.Fix,
		logging.FieldTransform, cfg.Transform,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	pipeline := runner.NewPipeline(env.repo)
	pipeline.Cache = env.openCache()
	pipeline.Logger = env.logger

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      env.workDir,
		ExcludeGlobs:    cfg.Ignore,
		FollowSymlinks:  flags.followSymlinks,
		IncludeVendored: flags.includeVendored,
		Jobs:            cfg.Jobs,
		Pipeline:        runner.PipelineOptionsFromConfig(cfg),
	}

	env.logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	env.logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldCacheHits, result.Stats.FilesCached,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       cfg.Format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		RuleFormat:   cfg.RuleFormat,
		SummaryOrder: reporter.SummaryOrder(flags.summaryOrder),
		WorkingDir:   env.workDir,
		ToolVersion:  info.Version,
	})
	if err != nil {
		return &usageError{err: fmt.Errorf("create reporter: %w", err)}
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}
