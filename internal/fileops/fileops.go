package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Rename renames a file or directory in place. The new name must be a plain
// basename; renaming never moves an entry out of its directory.
func Rename(oldPath, newName string) error {
	if newName == "" {
		return errors.New("new name is empty")
	}
	if strings.ContainsRune(newName, os.PathSeparator) {
		return fmt.Errorf("new name %q contains a path separator", newName)
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	return os.Rename(oldPath, newPath)
}

// Delete removes a file or directory recursively.
func Delete(path string) error {
	return os.RemoveAll(path)
}

// AvailableName returns the first collision-free basename in dir for base,
// trying base, base1, base2, ... The suffix goes after the whole name,
// extension included: "x.txt" collides into "x.txt1".
func AvailableName(dir, base string) string {
	name := base
	for i := 1; ; i++ {
		if _, err := os.Lstat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name
		}
		name = base + strconv.Itoa(i)
	}
}

// Paste copies src (file or directory, recursively) into destDir under a
// collision-free name and returns the name used.
func Paste(src, destDir string) (string, error) {
	name := AvailableName(destDir, filepath.Base(src))
	if err := CopyRecursive(src, filepath.Join(destDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// CopyRecursive copies a file or directory tree from src to dst.
func CopyRecursive(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if srcInfo.IsDir() {
		// copyDir creates dst before reading src, so a dst inside src
		// would be picked up and copied into itself without end
		if within(src, dst) {
			return fmt.Errorf("cannot copy %s into itself", filepath.Base(src))
		}
		return copyDir(src, dst)
	}
	return copyFile(src, dst)
}

// within reports whether child is parent or a path under parent.
func within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return strings.Split(rel, string(os.PathSeparator))[0] != ".."
}

func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	srcBytes, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, srcBytes, srcInfo.Mode().Perm())
}

func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// FormatError turns a filesystem error into a short human-readable message
// suitable for the status line.
func FormatError(err error, path, operation string) error {
	if err == nil {
		return nil
	}
	switch {
	case os.IsPermission(err):
		return fmt.Errorf("cannot %s %s: permission denied", operation, filepath.Base(path))
	case os.IsNotExist(err):
		return fmt.Errorf("cannot %s %s: no longer exists", operation, filepath.Base(path))
	case os.IsExist(err):
		return fmt.Errorf("cannot %s %s: already exists", operation, filepath.Base(path))
	default:
		return fmt.Errorf("cannot %s %s: %w", operation, filepath.Base(path), err)
	}
}
