package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/toyz/rename-tool/internal/errors"
)

// EntryKind classifies a directory entry
type EntryKind int

const (
	EntryOther EntryKind = iota
	EntryFile
	EntryFolder
)

// String returns the name used in diagnostics
func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryFolder:
		return "folder"
	default:
		return "other"
	}
}

// Entry is a direct child of a scanned directory
type Entry struct {
	Name string
	Path string
	Kind EntryKind
}

// DirectoryScanner lists the direct children of a directory
type DirectoryScanner struct {
	fs afero.Fs
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner(fs afero.Fs) *DirectoryScanner {
	return &DirectoryScanner{fs: fs}
}

// ScanDirectory returns the direct children of dir sorted by name.
// Symlinks are classified by their target; dangling links are EntryOther.
func (s *DirectoryScanner) ScanDirectory(dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		entries = append(entries, Entry{
			Name: info.Name(),
			Path: path,
			Kind: s.classify(path, info),
		})
	}

	return entries, nil
}

func (s *DirectoryScanner) classify(path string, info os.FileInfo) EntryKind {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := s.fs.Stat(path)
		if err != nil {
			return EntryOther
		}
		info = target
	}

	switch {
	case info.IsDir():
		return EntryFolder
	case info.Mode().IsRegular():
		return EntryFile
	default:
		return EntryOther
	}
}
