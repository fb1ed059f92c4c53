package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldFix       = "fix"
	FieldDryRun    = "dry_run"
	FieldTransform = "transform"
	FieldJobs      = "jobs"
	FieldCache     = "cache"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"
	FieldCacheHits        = "cache_hits"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
	FieldOSArch  = "platform"

	// Rule and fix fields.
	FieldRule          = "rule"
	FieldRules         = "rules"
	FieldLine          = "line"
	FieldSeverity      = "severity"
	FieldFixable       = "fixable"
	FieldFixed         = "fixed"
	FieldTransformName = "transform_name"
	FieldSites         = "sites"
)
