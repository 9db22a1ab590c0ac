package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"tandem/internal/config"
	"tandem/internal/logger"
	"tandem/internal/panel"
	"tandem/internal/watch"
)

// Messages from blocking externals and the directory watcher
type editorDoneMsg struct{ err error }
type commandDoneMsg struct{ err error }
type watchMsg struct{ dir string }

// Terminal geometry constants
const (
	minTerminalWidth  = 60 // below either minimum the UI blocks
	minTerminalHeight = 10
	terminalBarHeight = 3 // help + input + status lines
	paneChrome        = 3 // pane border (2) + path line (1)
)

const (
	statusTTL     = 3 * time.Second
	renameMaxLen  = 255 // one filename component
	commandMaxLen = 512
	filterMaxLen  = 64
)

type focusSide int

const (
	focusLeft focusSide = iota
	focusRight
)

type uiMode int

const (
	modeBrowse uiMode = iota
	modeRename
	modeFilter
)

// model is the whole controller state: both panels, focus, clipboard and the
// pending input buffers. One Update call consumes one event and applies it
// atomically; nothing else mutates this state. Filesystem calls made here
// block the UI for their duration, a deliberate trade for that simplicity.
type model struct {
	cfg     *config.Config
	watcher *watch.Watcher // nil when fsnotify is unavailable
	keys    keyMap

	left  *panel.Panel
	right *panel.Panel
	focus focusSide
	mode  uiMode

	clipboardPath string // set by copy, consumed but not cleared by paste

	commandInput textinput.Model // pending shell command, Browse mode
	renameInput  textinput.Model
	filterInput  textinput.Model

	width  int
	height int

	statusMsg    string
	statusExpiry time.Time
}

func initialModel(cfg *config.Config, watcher *watch.Watcher) (*model, error) {
	rows := 0 // real viewport arrives with the first WindowSizeMsg

	leftPath, err := os.Getwd()
	if err != nil {
		leftPath = "/"
	}
	left, err := panel.New(leftPath, rows, cfg.ShowHidden)
	if err != nil {
		logger.Warn("cannot list %s, falling back to /: %v", leftPath, err)
		if left, err = panel.New("/", rows, cfg.ShowHidden); err != nil {
			return nil, fmt.Errorf("cannot list starting directory: %w", err)
		}
	}

	right, err := panel.New(cfg.RightPath, rows, cfg.ShowHidden)
	if err != nil {
		logger.Warn("cannot list %s, falling back to /: %v", cfg.RightPath, err)
		if right, err = panel.New("/", rows, cfg.ShowHidden); err != nil {
			return nil, fmt.Errorf("cannot list starting directory: %w", err)
		}
	}

	commandInput := textinput.New()
	commandInput.Prompt = "> "
	commandInput.CharLimit = commandMaxLen
	commandInput.Focus()

	renameInput := textinput.New()
	renameInput.Prompt = "Rename to: "
	renameInput.CharLimit = renameMaxLen

	filterInput := textinput.New()
	filterInput.Prompt = "Filter: "
	filterInput.CharLimit = filterMaxLen

	m := &model{
		cfg:          cfg,
		watcher:      watcher,
		keys:         defaultKeyMap(),
		left:         left,
		right:        right,
		focus:        focusLeft,
		mode:         modeBrowse,
		commandInput: commandInput,
		renameInput:  renameInput,
		filterInput:  filterInput,
	}
	m.syncWatcher()
	return m, nil
}

func (m *model) focused() *panel.Panel {
	if m.focus == focusRight {
		return m.right
	}
	return m.left
}

func (m *model) tooSmall() bool {
	return m.width > 0 && (m.width < minTerminalWidth || m.height < minTerminalHeight)
}

// paneRows derives the listing viewport height from the terminal height.
func (m *model) paneRows() int {
	rows := m.height - terminalBarHeight - paneChrome
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusExpiry = time.Now().Add(statusTTL)
}

// syncWatcher points the directory watcher at both panels' current paths.
func (m *model) syncWatcher() {
	if m.watcher != nil {
		m.watcher.SetDirs(m.left.Path(), m.right.Path())
	}
}

// refreshPanel re-scans a panel, surfacing failure as a status message. The
// panel keeps its previous listing on failure.
func (m *model) refreshPanel(p *panel.Panel) {
	if err := p.Refresh(); err != nil {
		logger.Error("refresh of %s failed: %v", p.Path(), err)
		m.setStatus("%v", err)
	}
}
