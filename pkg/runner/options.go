// Package runner analyzes and fixes many JavaScript files concurrently.
package runner

import (
	"slices"

	"github.com/yaklabco/jsfixer/pkg/config"
	"github.com/yaklabco/jsfixer/pkg/fsutil"
)

// Options controls discovery and the worker pool.
type Options struct {
	// Paths are files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Defaults to the process working directory.
	WorkingDir string

	// Extensions are the lowercase extensions, with leading dot, picked up
	// while walking directories. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// IncludeVendored walks dependency directories such as node_modules.
	IncludeVendored bool

	// Jobs bounds concurrent workers. Zero or less means runtime.NumCPU().
	Jobs int

	// Pipeline configures per-file processing.
	Pipeline PipelineOptions
}

// DefaultExtensions returns the JavaScript file extensions.
func DefaultExtensions() []string {
	return []string{".js", ".mjs", ".cjs"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// PipelineOptions controls what happens to each file.
type PipelineOptions struct {
	// Fix applies every fixable rule's line fixer.
	Fix bool

	// Transform also applies the rule set's AST transforms after fixing.
	Transform bool

	// DryRun computes fixes and a diff without writing.
	DryRun bool

	// FixRules limits fixing to these rule IDs. Empty means all.
	FixRules []string

	// Backup configures backups taken before writing.
	Backup fsutil.BackupConfig

	// StrictRaceDetection confirms unchanged size and mtime with a content hash.
	StrictRaceDetection bool
}

func (o PipelineOptions) modifies() bool {
	return o.Fix || o.Transform
}

func (o PipelineOptions) fixes(ruleID string) bool {
	return len(o.FixRules) == 0 || slices.Contains(o.FixRules, ruleID)
}

// PipelineOptionsFromConfig derives pipeline options from a resolved config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{StrictRaceDetection: true}
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		Transform:           cfg.Transform,
		DryRun:              cfg.DryRun,
		FixRules:            slices.Clone(cfg.FixRules),
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}

// BackupConfigFromConfig maps the backups section and --no-backups flag.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar}
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}
