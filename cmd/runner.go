package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/library"
	"github.com/desertthunder/mymusic/internal/repositories"
	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/desertthunder/mymusic/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	manager     *auth.Manager
	library     *library.Library
	db          *sql.DB
	logger      *log.Logger
	output      io.Writer
	palette     *ui.Palette
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Manager     *auth.Manager
	Library     *library.Library
	DB          *sql.DB
	Logger      *log.Logger
	Output      io.Writer
	Palette     *ui.Palette
	OpenBrowser func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Palette == nil {
		opts.Palette = ui.DefaultPalette
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		manager:     opts.Manager,
		library:     opts.Library,
		db:          opts.DB,
		logger:      opts.Logger,
		output:      opts.Output,
		palette:     opts.Palette,
		openBrowser: opts.OpenBrowser,
	}
}

// NewRunnerFromConfig opens the database described by config and wires the credential manager,
// catalog client and library on top of it.
func NewRunnerFromConfig(config *shared.Config, logger *log.Logger) (*Runner, error) {
	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	catalog := services.NewCatalogService(config.Catalog, &http.Client{Timeout: 30 * time.Second}, logger)
	manager := auth.NewManager(
		repositories.NewUserRepository(db),
		auth.NewBcryptHasher(config.Auth.BcryptCost),
	)
	lib := library.New(catalog, library.Stores{
		Likes:     repositories.NewLikeRepository(db),
		Downloads: repositories.NewDownloadRepository(db),
		Playlists: repositories.NewPlaylistRepository(db),
		History:   repositories.NewHistoryRepository(db),
	}, logger)

	return NewRunner(RunnerOpts{
		Config:  config,
		Manager: manager,
		Library: lib,
		DB:      db,
		Logger:  logger,
	}), nil
}

// Close releases the database connection, if any.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, signupCommand, loginCommand, searchCommand, likeCommand, likesCommand,
		downloadCommand, downloadsCommand, historyCommand, playlistCommand, playCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
