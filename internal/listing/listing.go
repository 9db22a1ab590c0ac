package listing

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a directory entry. It is derived once at scan time and
// never recomputed for a live Entry.
type Kind int

const (
	KindFolder Kind = iota
	KindText
	KindExecutable
	KindImage
	KindVideo
	KindOther
)

// Entry is one directory child: its basename and derived kind.
type Entry struct {
	Name string
	Kind Kind
}

// IsDir reports whether the entry is a folder (including the synthetic "..").
func (e Entry) IsDir() bool {
	return e.Kind == KindFolder
}

// Parent is the synthetic parent-reference entry.
var Parent = Entry{Name: "..", Kind: KindFolder}

var textExts = map[string]bool{
	".txt": true, ".md": true, ".log": true, ".conf": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".svg": true, ".webp": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mkv": true, ".webm": true, ".avi": true, ".mov": true,
}

// Classify derives the kind of a non-directory from its file mode and name.
// Priority: executable bit, then extension, then Other.
func Classify(mode fs.FileMode, name string) Kind {
	if mode.IsDir() {
		return KindFolder
	}
	if mode.Perm()&0100 != 0 {
		return KindExecutable
	}
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case textExts[ext]:
		return KindText
	case imageExts[ext]:
		return KindImage
	case videoExts[ext]:
		return KindVideo
	}
	return KindOther
}

// Scan enumerates the immediate children of path and returns them ordered:
// folders before non-folders, lexicographic by name within each group, with
// the synthetic ".." first unless path is the filesystem root. A child whose
// stat fails is kept as KindOther rather than aborting the scan. The only
// failure is the directory itself being unreadable, in which case the caller
// must keep whatever listing it already had.
func Scan(path string, showHidden bool) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(dirEntries)+1)
	if filepath.Dir(path) != path {
		entries = append(entries, Parent)
	}

	for _, de := range dirEntries {
		if !showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}

		// Stat the joined path so symlinks classify by their target, the
		// way the original stat(2)-based listing did. A racily deleted or
		// unreadable child degrades to Other.
		kind := KindOther
		if info, err := os.Stat(filepath.Join(path, de.Name())); err == nil {
			kind = Classify(info.Mode(), de.Name())
		}

		entries = append(entries, Entry{Name: de.Name(), Kind: kind})
	}

	sortEntries(entries)
	return entries, nil
}

// sortEntries applies the listing order: ".." pinned first, folders before
// everything else, lexicographic within each group. Names are unique within
// a directory so the order is total.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name == ".." {
			return true
		}
		if entries[j].Name == ".." {
			return false
		}
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name < entries[j].Name
	})
}
