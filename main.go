package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tandem/internal/config"
	"tandem/internal/logger"
	"tandem/internal/watch"
)

func main() {
	if err := logger.Init(); err != nil {
		// Logging is a convenience; the browser works without it
		fmt.Fprintf(os.Stderr, "tandem: logging disabled: %v\n", err)
	}
	defer logger.Close()

	cfg := config.Load()

	watcher, err := watch.New()
	if err != nil {
		logger.Warn("filesystem watcher unavailable, auto-refresh disabled: %v", err)
		watcher = nil
	} else {
		watcher.Start()
		defer watcher.Close()
	}

	m, err := initialModel(cfg, watcher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tandem: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tandem: %v\n", err)
		os.Exit(1)
	}
}
