package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/rename-tool/internal/utils"
)

// Options holds the command line switches shared by every command
type Options struct {
	// DryRun reports intended renames without touching the filesystem
	DryRun bool

	// Verbose enables detailed output for every scanned entry
	Verbose bool

	// Quiet suppresses everything except warnings and errors
	Quiet bool

	// IncludeFiles makes regular files eligible for batch renames
	IncludeFiles bool

	// IncludeFolders makes directories eligible for batch renames
	IncludeFolders bool
}

// DefaultOptions returns the options used when no flag is given: folders only
func DefaultOptions() Options {
	return Options{IncludeFolders: true}
}

// Includes reports whether entries of the given kind are eligible
func (o Options) Includes(kind EntryKind) bool {
	switch kind {
	case EntryFile:
		return o.IncludeFiles
	case EntryFolder:
		return o.IncludeFolders
	default:
		return false
	}
}

// ScopeName describes the eligible entry kinds
func (o Options) ScopeName() string {
	switch {
	case o.IncludeFiles && o.IncludeFolders:
		return "files and folders"
	case o.IncludeFiles:
		return "files"
	case o.IncludeFolders:
		return "folders"
	default:
		return "nothing"
	}
}

// DiagnosticLevel maps the verbosity switches to an output level.
// Quiet wins over verbose and still lets warnings through.
func (o Options) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case o.Quiet:
		return utils.DiagnosticWarn
	case o.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}

// Config holds the configuration for a rename run
type Config struct {
	Options

	// ExecutableName is the base name of the running executable.
	// Entries with this name are never renamed. Empty disables the check.
	ExecutableName string
}

// NewConfig creates a config protecting executableName, as returned by
// ResolveExecutableName for the running process
func NewConfig(options Options, executableName string) *Config {
	config := &Config{Options: options}
	if executableName != "" {
		config.ExecutableName = filepath.Base(executableName)
	}
	return config
}

// ResolveExecutableName returns the base name of the running executable,
// following symlinks, and falls back to os.Args[0]
func ResolveExecutableName() string {
	path, err := os.Executable()
	if err == nil {
		if resolved, evalErr := filepath.EvalSymlinks(path); evalErr == nil {
			path = resolved
		}
		return filepath.Base(path)
	}

	if len(os.Args) > 0 && os.Args[0] != "" {
		return filepath.Base(os.Args[0])
	}
	return ""
}
