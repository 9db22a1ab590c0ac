package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tandem/internal/config"
	"tandem/internal/logger"
	"tandem/internal/panel"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

// newTestModel builds a controller over two temp directories, sized so that
// geometry is valid, with no watcher attached.
func newTestModel(t *testing.T) (*model, string, string) {
	t.Helper()

	leftDir := t.TempDir()
	rightDir := t.TempDir()

	left, err := panel.New(leftDir, 10, true)
	if err != nil {
		t.Fatalf("left panel: %v", err)
	}
	right, err := panel.New(rightDir, 10, true)
	if err != nil {
		t.Fatalf("right panel: %v", err)
	}

	commandInput := textinput.New()
	commandInput.Prompt = "> "
	commandInput.CharLimit = commandMaxLen
	commandInput.Focus()

	renameInput := textinput.New()
	renameInput.CharLimit = renameMaxLen

	filterInput := textinput.New()
	filterInput.CharLimit = filterMaxLen

	m := &model{
		cfg:          &config.Config{ShowHidden: true, RightPath: rightDir},
		keys:         defaultKeyMap(),
		left:         left,
		right:        right,
		commandInput: commandInput,
		renameInput:  renameInput,
		filterInput:  filterInput,
		width:        100,
		height:       30,
	}
	return m, leftDir, rightDir
}

func press(m *model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *model, s string) {
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestFocusSwitch(t *testing.T) {
	m, _, _ := newTestModel(t)

	if m.focused() != m.left {
		t.Fatal("initial focus should be the left panel")
	}
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focused() != m.right {
		t.Error("tab should move focus to the right panel")
	}
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focused() != m.left {
		t.Error("tab should toggle focus back")
	}
}

func TestSelectionClampsAtBottom(t *testing.T) {
	m, leftDir, _ := newTestModel(t)
	os.WriteFile(filepath.Join(leftDir, "a"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(leftDir, "b"), []byte("x"), 0644)
	m.refreshPanel(m.left) // listing: .., a, b

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.left.Selected() != 2 {
		t.Fatalf("expected selection 2, got %d", m.left.Selected())
	}
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.left.Selected() != 2 {
		t.Errorf("selection must clamp at the last entry, got %d", m.left.Selected())
	}
}

func TestRenameCancelLeavesFileUntouched(t *testing.T) {
	m, leftDir, _ := newTestModel(t)
	original := filepath.Join(leftDir, "victim.txt")
	os.WriteFile(original, []byte("x"), 0644)
	m.refreshPanel(m.left)
	m.left.SelectName("victim.txt")

	press(m, tea.KeyMsg{Type: tea.KeyF3})
	if m.mode != modeRename {
		t.Fatal("F3 should enter rename mode")
	}

	typeText(m, "new")
	if m.renameInput.Value() != "new" {
		t.Fatalf("rename buffer = %q, want new", m.renameInput.Value())
	}

	// The same key cancels, discarding the buffer
	press(m, tea.KeyMsg{Type: tea.KeyF3})
	if m.mode != modeBrowse {
		t.Error("F3 again should return to browse")
	}
	if m.renameInput.Value() != "" {
		t.Error("cancel must discard the rename buffer")
	}
	if _, err := os.Stat(original); err != nil {
		t.Error("cancelled rename must leave the file name unchanged")
	}
}

func TestRenameCommit(t *testing.T) {
	m, leftDir, _ := newTestModel(t)
	os.WriteFile(filepath.Join(leftDir, "old.txt"), []byte("x"), 0644)
	m.refreshPanel(m.left)
	m.left.SelectName("old.txt")

	press(m, tea.KeyMsg{Type: tea.KeyF3})
	typeText(m, "new.txt")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeBrowse {
		t.Error("commit should return to browse")
	}
	if _, err := os.Stat(filepath.Join(leftDir, "new.txt")); err != nil {
		t.Error("file was not renamed on disk")
	}
	if e, _ := m.left.Selection(); e.Name != "new.txt" {
		t.Errorf("selection should follow the renamed entry, got %q", e.Name)
	}
}

func TestRenameDisallowedForParent(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.left.SelectFirst() // ".."

	press(m, tea.KeyMsg{Type: tea.KeyF3})
	if m.mode != modeBrowse {
		t.Error("renaming .. must be refused")
	}
	if m.statusMsg == "" {
		t.Error("refusal should surface a status message")
	}
}

func TestCommandBufferTypingAndEscape(t *testing.T) {
	m, _, _ := newTestModel(t)

	typeText(m, "ls -la")
	if m.commandInput.Value() != "ls -la" {
		t.Fatalf("command buffer = %q", m.commandInput.Value())
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.commandInput.Value() != "" {
		t.Error("esc should clear the command buffer")
	}
}

func TestQuitKeyIsLiteralWhileTyping(t *testing.T) {
	m, _, _ := newTestModel(t)

	typeText(m, "l")
	cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("q must be a literal character while the command buffer is non-empty")
		}
	}
	if m.commandInput.Value() != "lq" {
		t.Errorf("command buffer = %q, want lq", m.commandInput.Value())
	}
}

func TestQuitOnEmptyBuffer(t *testing.T) {
	m, _, _ := newTestModel(t)

	cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q with an empty buffer should quit")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("expected a quit command")
	}
}

func TestCopyThenPasteWithCollisions(t *testing.T) {
	m, leftDir, rightDir := newTestModel(t)
	os.WriteFile(filepath.Join(leftDir, "x"), []byte("payload"), 0644)
	m.refreshPanel(m.left)
	m.left.SelectName("x")

	press(m, tea.KeyMsg{Type: tea.KeyF1})
	if m.clipboardPath != filepath.Join(leftDir, "x") {
		t.Fatalf("clipboardPath = %q", m.clipboardPath)
	}

	// Collisions already present in the destination
	os.WriteFile(filepath.Join(rightDir, "x"), []byte("old"), 0644)
	os.WriteFile(filepath.Join(rightDir, "x1"), []byte("old"), 0644)

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	press(m, tea.KeyMsg{Type: tea.KeyF2})

	data, err := os.ReadFile(filepath.Join(rightDir, "x2"))
	if err != nil || string(data) != "payload" {
		t.Errorf("expected collision-free paste as x2, got err %v", err)
	}

	// Paste consumes but does not clear the clipboard
	if m.clipboardPath == "" {
		t.Error("clipboardPath must survive a paste")
	}
}

func TestCopyDisallowedForParent(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.left.SelectFirst() // ".."

	press(m, tea.KeyMsg{Type: tea.KeyF1})
	if m.clipboardPath != "" {
		t.Error("copying .. must be refused")
	}
}

func TestDeleteRemovesSelection(t *testing.T) {
	m, leftDir, _ := newTestModel(t)
	victim := filepath.Join(leftDir, "doomed")
	os.MkdirAll(filepath.Join(victim, "nested"), 0755)
	m.refreshPanel(m.left)
	m.left.SelectName("doomed")

	press(m, tea.KeyMsg{Type: tea.KeyF5})

	if _, err := os.Stat(victim); !os.IsNotExist(err) {
		t.Error("delete must remove the tree on disk")
	}
	for _, e := range m.left.Entries() {
		if e.Name == "doomed" {
			t.Error("listing still shows the deleted entry")
		}
	}
}

func TestOpenFolderResetsToTop(t *testing.T) {
	m, leftDir, _ := newTestModel(t)
	os.Mkdir(filepath.Join(leftDir, "sub"), 0755)
	os.WriteFile(filepath.Join(leftDir, "sub", "inner"), []byte("x"), 0644)
	m.refreshPanel(m.left)
	m.left.SelectName("sub")

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.left.Path() != filepath.Join(leftDir, "sub") {
		t.Fatalf("path = %q", m.left.Path())
	}
	if m.left.Selected() != 0 || m.left.Offset() != 0 {
		t.Error("entering a directory must reset cursor and scroll to the top")
	}
}

func TestResizeRecomputesViewports(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	wantRows := 40 - terminalBarHeight - paneChrome
	if m.left.Rows() != wantRows || m.right.Rows() != wantRows {
		t.Errorf("rows = %d/%d, want %d", m.left.Rows(), m.right.Rows(), wantRows)
	}
}

func TestTooSmallBlocksEverythingButQuit(t *testing.T) {
	m, leftDir, _ := newTestModel(t)
	os.WriteFile(filepath.Join(leftDir, "a"), []byte("x"), 0644)
	m.refreshPanel(m.left)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 8})
	if !m.tooSmall() {
		t.Fatal("40x8 should be too small")
	}

	selected := m.left.Selected()
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.left.Selected() != selected {
		t.Error("input other than quit must be ignored while too small")
	}

	cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit must work while too small")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("expected a quit command")
	}
}

func TestResizeRecoveryRescansPanels(t *testing.T) {
	m, leftDir, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 8})

	// Contents change while the UI is blocked
	os.WriteFile(filepath.Join(leftDir, "appeared"), []byte("x"), 0644)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	found := false
	for _, e := range m.left.Entries() {
		if e.Name == "appeared" {
			found = true
		}
	}
	if !found {
		t.Error("recovery from too-small must re-scan both panels")
	}
}

func TestFilterNarrowsFocusedPanel(t *testing.T) {
	m, leftDir, _ := newTestModel(t)
	os.WriteFile(filepath.Join(leftDir, "main.go"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(leftDir, "notes.txt"), []byte("x"), 0644)
	m.refreshPanel(m.left)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.mode != modeFilter {
		t.Fatal("ctrl+f should enter filter mode")
	}

	typeText(m, "main")
	for _, e := range m.left.Entries() {
		if e.Name == "notes.txt" {
			t.Error("filter leaked a non-matching entry")
		}
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse {
		t.Error("esc should leave filter mode")
	}
	if m.left.Filter() != "" {
		t.Error("esc should clear the filter")
	}
}

func TestWatchEventRefreshesMatchingPanel(t *testing.T) {
	m, leftDir, _ := newTestModel(t)

	os.WriteFile(filepath.Join(leftDir, "external"), []byte("x"), 0644)
	m.Update(watchMsg{dir: leftDir})

	found := false
	for _, e := range m.left.Entries() {
		if e.Name == "external" {
			found = true
		}
	}
	if !found {
		t.Error("watch event must refresh the matching panel")
	}
}
