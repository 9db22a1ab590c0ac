package main

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tandem/internal/logger"
	"tandem/internal/watch"
)

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("tandem")}
	if m.watcher != nil {
		cmds = append(cmds, waitForWatch(m.watcher))
	}
	return tea.Batch(cmds...)
}

// waitForWatch blocks on the next directory-change notification. Watcher
// events enter the same single-consumer queue as key and resize events, so
// panel state is only ever touched from Update.
func waitForWatch(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		dir, ok := <-w.Events()
		if !ok {
			return nil
		}
		return watchMsg{dir: dir}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case watchMsg:
		// Something external changed a listed directory; re-scan in place
		if m.left.Path() == msg.dir {
			m.refreshPanel(m.left)
		}
		if m.right.Path() == msg.dir {
			m.refreshPanel(m.right)
		}
		if m.watcher == nil {
			return m, nil
		}
		return m, waitForWatch(m.watcher)

	case editorDoneMsg:
		// The editor owned the terminal while we waited. Its exit status is
		// irrelevant beyond a note; the file may have changed either way.
		if msg.err != nil {
			logger.Warn("editor exited: %v", msg.err)
			m.setStatus("editor exited with an error")
		}
		m.refreshPanel(m.focused())
		m.focused().SelectFirst()
		return m, nil

	case commandDoneMsg:
		if msg.err != nil {
			logger.Warn("command exited: %v", msg.err)
			m.setStatus("command exited with an error")
		}
		// The command may have touched either directory
		m.refreshPanel(m.left)
		m.refreshPanel(m.right)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.tooSmall() {
			// Blocked display mode: only quit is accepted
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.mode {
		case modeRename:
			return m.updateRename(msg)
		case modeFilter:
			return m.updateFilter(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

// handleResize is the geometry reconciliation path: recompute both viewports
// and, when recovering from the blocked "too small" state, re-scan both
// panels because anything may have happened while the UI was blocked.
func (m *model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.width && msg.Height == m.height {
		return m, nil
	}

	wasSmall := m.tooSmall()
	m.width = msg.Width
	m.height = msg.Height

	if m.tooSmall() {
		return m, nil
	}

	rows := m.paneRows()
	m.left.SetRows(rows)
	m.right.SetRows(rows)

	if wasSmall {
		m.refreshPanel(m.left)
		m.refreshPanel(m.right)
	}
	return m, nil
}

func (m *model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.focused()

	switch {
	case key.Matches(msg, m.keys.Quit) && m.commandInput.Value() == "":
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusSwitch):
		if m.focus == focusLeft {
			m.focus = focusRight
		} else {
			m.focus = focusLeft
		}

	case key.Matches(msg, m.keys.Up):
		p.MoveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		p.MoveSelection(1)

	case key.Matches(msg, m.keys.PageUp):
		p.MoveSelection(-p.Rows())

	case key.Matches(msg, m.keys.PageDown):
		p.MoveSelection(p.Rows())

	case key.Matches(msg, m.keys.Home):
		p.SelectFirst()

	case key.Matches(msg, m.keys.End):
		p.SelectLast()

	case key.Matches(msg, m.keys.Activate):
		if input := m.commandInput.Value(); input != "" {
			m.commandInput.SetValue("")
			return m, m.runCommand(input, p.Path())
		}
		return m, m.openSelection()

	case key.Matches(msg, m.keys.Copy):
		m.copySelection()

	case key.Matches(msg, m.keys.Paste):
		m.pasteClipboard()

	case key.Matches(msg, m.keys.Rename):
		m.enterRename()

	case key.Matches(msg, m.keys.Delete):
		m.deleteSelection()

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.filterInput.SetValue("")
		m.filterInput.Focus()
		m.commandInput.Blur()

	case key.Matches(msg, m.keys.Cancel):
		if m.commandInput.Value() != "" {
			m.commandInput.SetValue("")
		} else if p.Filter() != "" {
			p.ClearFilter()
		}

	default:
		// Everything else is command-line input
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Rename), key.Matches(msg, m.keys.Cancel):
		// The rename key toggles the mode off, discarding the buffer
		m.exitRename()

	case key.Matches(msg, m.keys.Activate):
		m.commitRename()

	default:
		var cmd tea.Cmd
		m.renameInput, cmd = m.renameInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.focused()

	switch {
	case key.Matches(msg, m.keys.Up):
		p.MoveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		p.MoveSelection(1)

	case key.Matches(msg, m.keys.Home):
		p.SelectFirst()

	case key.Matches(msg, m.keys.End):
		p.SelectLast()

	case key.Matches(msg, m.keys.Activate):
		// Keep the narrowed listing, go back to browsing it
		m.exitFilter()

	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Filter):
		p.ClearFilter()
		m.exitFilter()

	default:
		before := m.filterInput.Value()
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		if m.filterInput.Value() != before {
			p.SetFilter(m.filterInput.Value())
		}
		return m, cmd
	}

	return m, nil
}
