package cli

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"

	"github.com/toyz/rename-tool/internal/errors"
	"github.com/toyz/rename-tool/internal/utils"
)

// RenameRequest is a single old path to new path move
type RenameRequest struct {
	OldPath string
	NewPath string
}

type outcome int

const (
	outcomeRenamed outcome = iota
	outcomePlanned
	outcomeSkipped
	outcomeFailed
)

// Summary collects the result of a batch rename
type Summary struct {
	Scanned   int
	Matched   int
	Unchanged int
	Skipped   int
	Renamed   int
	Failures  *errors.MultipleErrors
	Requests  []RenameRequest
	DryRun    bool
}

func newSummary(dryRun bool) *Summary {
	return &Summary{
		Failures: errors.NewMultipleErrors(),
		DryRun:   dryRun,
	}
}

// Failed returns the number of renames that failed
func (s *Summary) Failed() int {
	return s.Failures.Count()
}

// Err returns the collected rename failures, or nil
func (s *Summary) Err() error {
	return s.Failures.ErrorOrNil()
}

// Log prints the batch statistics in verbose mode
func (s *Summary) Log(diagnostics *utils.DiagnosticSystem) {
	keys := []string{"Entries scanned", "Names matched", "Unchanged names", "Skipped", "Renamed", "Failed"}
	renamedKey := "Renamed"
	if s.DryRun {
		renamedKey = "Would rename"
		keys[4] = renamedKey
	}

	diagnostics.Summary("Batch summary", keys, map[string]interface{}{
		"Entries scanned": s.Scanned,
		"Names matched":   s.Matched,
		"Unchanged names": s.Unchanged,
		"Skipped":         s.Skipped,
		renamedKey:        s.Renamed,
		"Failed":          s.Failed(),
	})
}

// Renamer renames a single path or the matching children of a directory
type Renamer struct {
	fs          afero.Fs
	config      *Config
	diagnostics *utils.DiagnosticSystem
	scanner     *DirectoryScanner
}

// NewRenamer creates a renamer working on fs
func NewRenamer(fs afero.Fs, config *Config, diagnostics *utils.DiagnosticSystem) *Renamer {
	return &Renamer{
		fs:          fs,
		config:      config,
		diagnostics: diagnostics,
		scanner:     NewDirectoryScanner(fs),
	}
}

// RenameSingle renames oldPath to newPath. Failures are reported and
// returned; renaming the running executable is skipped with a warning.
func (r *Renamer) RenameSingle(oldPath, newPath string) error {
	_, err := r.rename(RenameRequest{OldPath: oldPath, NewPath: newPath})
	return err
}

// RenameMultiple applies transform to every direct child of directory whose
// kind is eligible and whose name fully matches pattern. Per entry failures
// are collected in the summary; an invalid pattern or an unreadable
// directory aborts the batch.
func (r *Renamer) RenameMultiple(directory, pattern string, transform Transform) (*Summary, error) {
	re, err := utils.CompileFullMatch(pattern)
	if err != nil {
		return nil, errors.WrapPatternError(pattern, err)
	}

	r.diagnostics.Info("Searching in directory: %s", directory)
	r.diagnostics.Info("Using pattern: %s", pattern)
	r.diagnostics.Verbose("Transform: %s", transform)

	entries, err := r.scanner.ScanDirectory(directory)
	if err != nil {
		return nil, err
	}

	summary := newSummary(r.config.DryRun)
	for _, entry := range entries {
		r.processEntry(entry, directory, re, transform, summary)
	}

	if summary.DryRun {
		r.diagnostics.Info("Would rename %d items.", summary.Renamed)
	} else {
		r.diagnostics.Success("Renamed %d items.", summary.Renamed)
	}
	summary.Log(r.diagnostics)

	return summary, nil
}

// processEntry decides the fate of one scanned entry and records it in summary
func (r *Renamer) processEntry(entry Entry, directory string, re *regexp.Regexp, transform Transform, summary *Summary) {
	summary.Scanned++
	r.diagnostics.Verbose("Checking: %s", entry.Name)
	r.diagnostics.Indent()
	defer r.diagnostics.Unindent()

	if r.isExecutable(entry.Name) {
		r.diagnostics.Verbose("Skipping executable: %s", entry.Name)
		summary.Skipped++
		return
	}

	if !r.config.Includes(entry.Kind) {
		r.diagnostics.Verbose("Skipping (%s, scope is %s): %s", entry.Kind, r.config.ScopeName(), entry.Name)
		summary.Skipped++
		return
	}

	if !re.MatchString(entry.Name) {
		r.diagnostics.Verbose("No match for: %s", entry.Name)
		return
	}
	summary.Matched++

	newName := transform.Apply(entry.Name)
	if newName == entry.Name {
		r.diagnostics.Verbose("No change in name, skipping: %s", entry.Name)
		summary.Unchanged++
		return
	}
	r.diagnostics.Verbose("Match found. Old name: %s, New name: %s", entry.Name, newName)

	req := RenameRequest{OldPath: entry.Path, NewPath: filepath.Join(directory, newName)}
	result, err := r.rename(req)
	switch result {
	case outcomeRenamed, outcomePlanned:
		summary.Renamed++
		summary.Requests = append(summary.Requests, req)
	case outcomeSkipped:
		summary.Skipped++
	case outcomeFailed:
		if failure, ok := err.(errors.RenameError); ok {
			summary.Failures.Add(failure)
		}
	}
}

func (r *Renamer) rename(req RenameRequest) (outcome, error) {
	if r.isExecutable(filepath.Base(req.OldPath)) {
		r.diagnostics.Warn("Attempted to rename the executable '%s'. Skipping.", req.OldPath)
		return outcomeSkipped, nil
	}

	if r.config.DryRun {
		r.diagnostics.Info("Would rename '%s' to '%s'", req.OldPath, req.NewPath)
		return outcomePlanned, nil
	}

	if err := r.move(req); err != nil {
		wrapped := errors.WrapRenameError(req.OldPath, req.NewPath, err)
		r.diagnostics.Error("Error renaming: %v", wrapped)
		return outcomeFailed, wrapped
	}

	r.diagnostics.Verbose("Renamed '%s' to '%s'", req.OldPath, req.NewPath)
	return outcomeRenamed, nil
}

// move renames through the filesystem, refusing to replace an existing
// destination. The only accepted existing destination is the source itself,
// which is what a case-only rename sees on a case-insensitive filesystem.
func (r *Renamer) move(req RenameRequest) error {
	target, err := r.lstat(req.NewPath)
	switch {
	case err == nil:
		source, srcErr := r.lstat(req.OldPath)
		if srcErr != nil {
			return srcErr
		}
		if !os.SameFile(source, target) && filepath.Clean(req.OldPath) != filepath.Clean(req.NewPath) {
			return &os.LinkError{Op: "rename", Old: req.OldPath, New: req.NewPath, Err: os.ErrExist}
		}
	case !os.IsNotExist(err):
		return err
	}

	return r.fs.Rename(req.OldPath, req.NewPath)
}

func (r *Renamer) lstat(path string) (os.FileInfo, error) {
	if lstater, ok := r.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return r.fs.Stat(path)
}

func (r *Renamer) isExecutable(name string) bool {
	return r.config.ExecutableName != "" && name == r.config.ExecutableName
}
