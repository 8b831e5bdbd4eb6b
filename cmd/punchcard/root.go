package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"

	"github.com/punchcardhq/punchcard/internal/config"
	"github.com/punchcardhq/punchcard/internal/session"
	"github.com/punchcardhq/punchcard/internal/storage"
	"github.com/punchcardhq/punchcard/internal/tui"
	"github.com/punchcardhq/punchcard/pkg/client"
	"github.com/punchcardhq/punchcard/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:          "punchcard",
	Short:        "Terminal client for the attendance service",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the punchcard version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("punchcard " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// env is everything a command needs: resolved config, file logger, the
// session store backed by the local database, and an API client already
// carrying the stored token.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	db     *badger.DB
	store  *session.Store
	client *client.Client

	logFile *os.File
}

func openEnv() (*env, error) {
	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(logFile, nil))

	db, err := storage.Open(storage.DefaultConfig(cfg.DBPath(), logger))
	if err != nil {
		logFile.Close() //nolint:errcheck
		return nil, fmt.Errorf("open database: %w", err)
	}
	store, err := session.Open(db, logger)
	if err != nil {
		db.Close()      //nolint:errcheck
		logFile.Close() //nolint:errcheck
		return nil, fmt.Errorf("open session store: %w", err)
	}

	c := client.New(cfg.APIBaseURL, store.Current().Token)
	store.Subscribe(func(sess domain.Session) {
		c.SetToken(sess.Token)
	})

	return &env{cfg: cfg, logger: logger, db: db, store: store, client: c, logFile: logFile}, nil
}

func (e *env) close() {
	e.db.Close()      //nolint:errcheck
	e.logFile.Close() //nolint:errcheck
}

func runTUI() (err error) {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	// The TUI owns the terminal; a panic must not take the session store
	// down with half-written state or leave the screen garbled.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic", "recover", r)
			err = fmt.Errorf("unexpected error, see %s", e.cfg.LogPath())
		}
	}()

	e.logger.Info("starting", "api", e.cfg.APIBaseURL, "version", version)

	app := tui.NewApp(e.client, e.store)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
