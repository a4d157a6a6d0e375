// matterctl reads and edits a Matter journal straight from the database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ashureev/matter/internal/config"
	"github.com/ashureev/matter/internal/identity"
	"github.com/ashureev/matter/internal/journal"
	"github.com/ashureev/matter/internal/responder"
	"github.com/ashureev/matter/internal/store"
)

type options struct {
	user     string
	dbPath   string
	timezone string
	verbose  bool
}

// app holds what every subcommand needs once flags are parsed.
type app struct {
	opts *options
	svc  *journal.Service
	repo store.Repository
	resp *responder.Responder
	loc  *time.Location
}

func (a *app) user() string { return a.opts.user }

func (a *app) close() {
	if a.resp != nil {
		if err := a.resp.Close(); err != nil {
			slog.Debug("Failed to close responder", "error", err)
		}
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			slog.Debug("Failed to close repository", "error", err)
		}
	}
}

func (a *app) open(ctx context.Context) error {
	level := slog.LevelWarn
	if a.opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.opts.dbPath != "" {
		cfg.DBPath = a.opts.dbPath
	}
	if a.opts.timezone != "" {
		cfg.Timezone = a.opts.timezone
	}
	if a.loc, err = cfg.Location(); err != nil {
		return fmt.Errorf("resolve time zone: %w", err)
	}

	if a.repo, err = store.NewSQLite(cfg.DBPath); err != nil {
		return err
	}
	if err := identity.EnsureUser(ctx, a.repo, a.opts.user); err != nil {
		return fmt.Errorf("initialize user: %w", err)
	}

	if a.resp, err = responder.New(ctx, cfg.ResponderConfig(), logger); err != nil {
		return err
	}
	a.svc = journal.NewService(a.repo, a.resp, nil, journal.Options{Logger: logger})
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{opts: &options{}}

	root := &cobra.Command{
		Use:   "matterctl",
		Short: "Matter - daily intentions from the terminal",
		Long: `matterctl works on the same journal the Matter server serves.

Set three intentions a day, complete them with a short reflection, and keep
the streak alive to unlock new landscapes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.opts.user, "user", "u", "local", "journal owner id")
	root.PersistentFlags().StringVar(&a.opts.dbPath, "db", "", "database path (defaults to DB_PATH)")
	root.PersistentFlags().StringVar(&a.opts.timezone, "tz", "", "IANA time zone (defaults to TIMEZONE)")
	root.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newTodayCmd(a),
		newAddCmd(a),
		newCompleteCmd(a),
		newRolloverCmd(a),
		newStatsCmd(a),
		newCalendarCmd(a),
		newGiftsCmd(a),
		newLandscapesCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newServeResponderCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
