package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/remind/internal/app"
	"github.com/nhle/remind/internal/logging"
	"github.com/nhle/remind/internal/model"
	"github.com/nhle/remind/internal/notify"
	"github.com/nhle/remind/internal/reminder"
	"github.com/nhle/remind/internal/store"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "remind: %v\n", err)
		os.Exit(1)
	}

	closer, err := logging.Setup(cfg.DataDir)
	if err != nil {
		// The app works fine without a log file.
		fmt.Fprintf(os.Stderr, "remind: logging disabled: %v\n", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	s, err := store.NewSQLiteStore(filepath.Join(cfg.DataDir, "remind.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "remind: opening store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	repo := reminder.New(s, nil)
	delivery := notify.NewDesktopDelivery(cfg.Notify.Enabled)

	p := tea.NewProgram(
		app.New(repo, cfg, delivery, nil),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Error("running program", "err", err)
		fmt.Fprintf(os.Stderr, "remind: %v\n", err)
		os.Exit(1)
	}
}
