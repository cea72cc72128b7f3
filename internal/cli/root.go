// Package cli wires the speedytavern commands: the default TUI plus
// scriptable subcommands for listing, creating, and archiving chats.
package cli

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Void-n-Null/speedytavern-sub003/internal/config"
	"github.com/Void-n-Null/speedytavern-sub003/internal/storage"
	"github.com/Void-n-Null/speedytavern-sub003/internal/tui"
)

func Execute() error {
	return NewRoot().Execute()
}

var runTUI = func(cfg config.Config) error {
	dbPath, err := cfg.DatabaseFile()
	if err != nil {
		return err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		return err
	}
	m := tui.NewModel(cfg, db, dbPath)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "speedytavern",
		Short:        "Terminal client for branching conversations",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "config: %v; using defaults\n", err)
			}
			return runTUI(cfg)
		},
	}
	root.AddCommand(
		NewCmd(),
		ConversationsCmd(),
		ExportCmd(),
		ImportCmd(),
	)
	return root
}

// setupLogging routes slog away from the terminal the TUI draws on.
// SPEEDYTAVERN_DEBUG enables debug logging to a file next to the config.
func setupLogging() {
	level := slog.LevelError
	out := os.Stderr
	if os.Getenv("SPEEDYTAVERN_DEBUG") != "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path := filepath.Join(dir, config.AppDir, "debug.log")
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				out = f
				level = slog.LevelDebug
			}
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
}

// openDatabase is the shared setup for the non-TUI subcommands.
func openDatabase() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	dbPath, err := cfg.DatabaseFile()
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
