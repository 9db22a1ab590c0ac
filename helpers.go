package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"tandem/internal/fileops"
	"tandem/internal/listing"
	"tandem/internal/logger"
)

// openSelection activates the entry under the cursor: folders are entered,
// text files go to the blocking editor, everything else is handed to the
// desktop opener without waiting for it. Any open resets the cursor to the
// top of the (re-scanned) listing.
func (m *model) openSelection() tea.Cmd {
	p := m.focused()
	e, ok := p.Selection()
	if !ok {
		return nil
	}

	if e.IsDir() {
		if err := p.NavigateInto(e); err != nil {
			logger.Warn("cannot enter %s: %v", e.Name, err)
			m.setStatus("%v", err)
			return nil
		}
		m.syncWatcher()
		return nil
	}

	path := filepath.Join(p.Path(), e.Name)
	if e.Kind == listing.KindText {
		return m.editFile(path)
	}

	// Fire and forget: the opener's lifetime and exit status are its own
	if err := open.Start(path); err != nil {
		logger.Warn("opener failed for %s: %v", path, err)
		m.setStatus("cannot open %s", e.Name)
	}
	m.refreshPanel(p)
	p.SelectFirst()
	return nil
}

// editFile hands the terminal to the text editor and suspends the event loop
// until it exits. The editorDoneMsg callback re-scans afterwards.
func (m *model) editFile(path string) tea.Cmd {
	editor := m.resolveEditor()
	if editor == "" {
		m.setStatus("no editor found (set one in the config)")
		return nil
	}

	cmd := exec.Command(editor, path)
	cmd.Dir = m.focused().Path()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{err: err}
	})
}

// runCommand executes the typed command through the shell with the focused
// panel's directory as working directory, blocking the UI until it returns.
func (m *model) runCommand(input, dir string) tea.Cmd {
	shell := m.cfg.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.Command(shell, "-c", input)
	cmd.Dir = dir
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return commandDoneMsg{err: err}
	})
}

func (m *model) resolveEditor() string {
	candidates := []string{}
	if m.cfg.Editor != "" {
		candidates = append(candidates, m.cfg.Editor)
	}
	if env := os.Getenv("EDITOR"); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, "nano", "vim", "vi")

	for _, editor := range candidates {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}
	return ""
}

// copySelection records the selection's absolute path as the paste source and
// mirrors it to the system clipboard.
func (m *model) copySelection() {
	p := m.focused()
	e, ok := p.Selection()
	if !ok {
		m.setStatus("nothing to copy")
		return
	}
	if e.Name == ".." {
		m.setStatus("cannot copy ..")
		return
	}

	m.clipboardPath, _ = p.SelectionPath()
	if err := clipboard.WriteAll(m.clipboardPath); err != nil {
		logger.Warn("system clipboard unavailable: %v", err)
	}
	m.setStatus("Copied %s", e.Name)
}

func (m *model) pasteClipboard() {
	if m.clipboardPath == "" {
		m.setStatus("clipboard is empty")
		return
	}

	p := m.focused()
	name, err := fileops.Paste(m.clipboardPath, p.Path())
	if err != nil {
		logger.Error("paste of %s into %s failed: %v", m.clipboardPath, p.Path(), err)
		m.setStatus("%v", fileops.FormatError(err, m.clipboardPath, "paste"))
	} else {
		m.setStatus("Pasted %s", name)
	}
	// Re-scan regardless; a partial copy still changed the directory
	m.refreshPanel(p)
}

func (m *model) enterRename() {
	e, ok := m.focused().Selection()
	if !ok {
		m.setStatus("nothing to rename")
		return
	}
	if e.Name == ".." {
		m.setStatus("cannot rename ..")
		return
	}

	m.mode = modeRename
	m.renameInput.SetValue("")
	m.renameInput.Placeholder = e.Name
	m.renameInput.Focus()
	m.commandInput.Blur()
}

func (m *model) exitRename() {
	m.mode = modeBrowse
	m.renameInput.SetValue("")
	m.renameInput.Blur()
	m.commandInput.Focus()
}

func (m *model) exitFilter() {
	m.mode = modeBrowse
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.commandInput.Focus()
}

// commitRename applies the buffered name to the selection, then re-scans to
// reflect whatever actually happened on disk.
func (m *model) commitRename() {
	p := m.focused()
	newName := m.renameInput.Value()
	e, ok := p.Selection()
	if !ok || newName == "" {
		m.exitRename()
		return
	}

	oldPath := filepath.Join(p.Path(), e.Name)
	if err := fileops.Rename(oldPath, newName); err != nil {
		logger.Error("rename of %s to %s failed: %v", oldPath, newName, err)
		m.setStatus("%v", fileops.FormatError(err, oldPath, "rename"))
	} else {
		m.setStatus("Renamed %s to %s", e.Name, newName)
	}

	m.refreshPanel(p)
	p.SelectName(newName)
	m.exitRename()
}

func (m *model) deleteSelection() {
	p := m.focused()
	e, ok := p.Selection()
	if !ok {
		m.setStatus("nothing to delete")
		return
	}
	if e.Name == ".." {
		m.setStatus("cannot delete ..")
		return
	}

	path := filepath.Join(p.Path(), e.Name)
	if err := fileops.Delete(path); err != nil {
		logger.Error("delete of %s failed: %v", path, err)
		m.setStatus("%v", fileops.FormatError(err, path, "delete"))
	} else {
		m.setStatus("Deleted %s", e.Name)
	}
	m.refreshPanel(p)
}
