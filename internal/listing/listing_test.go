package listing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanNamesMatchChildren(t *testing.T) {
	tempDir := t.TempDir()

	os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("a"), 0644)
	os.WriteFile(filepath.Join(tempDir, "b.bin"), []byte{0}, 0644)
	os.Mkdir(filepath.Join(tempDir, "sub"), 0755)

	entries, err := Scan(tempDir, true)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := map[string]bool{"..": true, "a.txt": true, "b.bin": true, "sub": true}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for _, e := range entries {
		if !want[e.Name] {
			t.Errorf("unexpected entry %q", e.Name)
		}
	}
}

func TestScanOrder(t *testing.T) {
	tempDir := t.TempDir()

	// Scenario from the design: B is a subdirectory, c.sh is executable
	os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("a"), 0644)
	os.Mkdir(filepath.Join(tempDir, "B"), 0755)
	os.WriteFile(filepath.Join(tempDir, "c.sh"), []byte("#!/bin/sh\n"), 0755)

	entries, err := Scan(tempDir, true)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Name
	}

	want := []string{"..", "B", "a.txt", "c.sh"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestScanNoParentAtRoot(t *testing.T) {
	entries, err := Scan("/", true)
	if err != nil {
		t.Fatalf("Scan(/) failed: %v", err)
	}
	for _, e := range entries {
		if e.Name == ".." {
			t.Error("root listing must not contain ..")
		}
	}
}

func TestScanUnreadableDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), true)
	if err == nil {
		t.Error("expected error scanning a missing directory")
	}
}

func TestScanBrokenSymlinkIsOther(t *testing.T) {
	tempDir := t.TempDir()

	link := filepath.Join(tempDir, "dangling")
	if err := os.Symlink(filepath.Join(tempDir, "gone"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	entries, err := Scan(tempDir, true)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	found := false
	for _, e := range entries {
		if e.Name == "dangling" {
			found = true
			if e.Kind != KindOther {
				t.Errorf("broken symlink classified as %v, want KindOther", e.Kind)
			}
		}
	}
	if !found {
		t.Error("broken symlink missing from listing")
	}
}

func TestScanHonorsShowHidden(t *testing.T) {
	tempDir := t.TempDir()
	os.WriteFile(filepath.Join(tempDir, ".secret"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(tempDir, "plain"), []byte("x"), 0644)

	entries, _ := Scan(tempDir, false)
	for _, e := range entries {
		if e.Name == ".secret" {
			t.Error("hidden entry listed with showHidden=false")
		}
	}

	entries, _ = Scan(tempDir, true)
	found := false
	for _, e := range entries {
		if e.Name == ".secret" {
			found = true
		}
	}
	if !found {
		t.Error("hidden entry missing with showHidden=true")
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name string
		mode os.FileMode
		want Kind
	}{
		{"dir.txt", os.ModeDir | 0755, KindFolder},
		{"script.txt", 0755, KindExecutable}, // executable bit beats extension
		{"notes.md", 0644, KindText},
		{"photo.JPG", 0644, KindImage},
		{"clip.mkv", 0644, KindVideo},
		{"blob", 0644, KindOther},
	}

	for _, tt := range tests {
		if got := Classify(tt.mode, tt.name); got != tt.want {
			t.Errorf("Classify(%v, %q) = %v, want %v", tt.mode, tt.name, got, tt.want)
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	entries := []Entry{
		{Name: "zeta", Kind: KindOther},
		{Name: "alpha", Kind: KindFolder},
		{Name: "..", Kind: KindFolder},
		{Name: "beta.txt", Kind: KindText},
		{Name: "Beta", Kind: KindFolder},
	}

	sortEntries(entries)
	once := make([]Entry, len(entries))
	copy(once, entries)

	sortEntries(entries)
	for i := range entries {
		if entries[i] != once[i] {
			t.Fatalf("sort not idempotent at %d: %v vs %v", i, entries[i], once[i])
		}
	}

	// Folders must precede all non-folders
	seenFile := false
	for _, e := range entries {
		if !e.IsDir() {
			seenFile = true
		} else if seenFile {
			t.Fatalf("folder %q after a non-folder", e.Name)
		}
	}

	if entries[0].Name != ".." {
		t.Errorf("expected .. first, got %q", entries[0].Name)
	}
}
