// Package commands implements the itinctl subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-planner/internal/app"
	"github.com/pkordes/travel-planner/internal/catalog"
	"github.com/pkordes/travel-planner/internal/config"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/internal/storage"
	"github.com/pkordes/travel-planner/internal/store"
)

// session is the state shared by the subcommands of one invocation.
type session struct {
	envFile string
	timeout time.Duration
	verbose bool

	log   *slog.Logger
	kv    storage.Storage
	repo  repo.ItineraryRepo
	store *store.Store
	svc   *service.ItineraryService
}

// Execute runs itinctl with args, writing results to out and diagnostics to errOut.
// Pending changes are written before it returns, even when the command failed.
func Execute(args []string, out, errOut io.Writer) error {
	root, s := newRoot(out, errOut)
	root.SetArgs(args)
	err := root.Execute()
	if cerr := s.close(context.Background()); cerr != nil {
		fmt.Fprintln(errOut, "Error:", cerr)
		err = errors.Join(err, cerr)
	}
	return err
}

func newRoot(out, errOut io.Writer) (*cobra.Command, *session) {
	s := &session{}

	root := &cobra.Command{
		Use:          "itinctl",
		Short:        "Inspect and edit stored travel itineraries",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&s.envFile, "env-file", ".env", "dotenv file with configuration")
	root.PersistentFlags().DurationVar(&s.timeout, "timeout", 30*time.Second, "how long to wait for storage")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log storage activity to stderr")

	root.AddCommand(
		listCmd(s),
		showCmd(s),
		createCmd(s),
		deleteCmd(s),
		resetCmd(s),
		exportCmd(s),
		planCmd(),
	)
	return root, s
}

// open loads configuration, opens storage and waits for the store's
// initial load. Subcommands that touch the collection call it first.
func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(s.envFile)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	s.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(cmd.Context(), s.timeout)
	defer cancel()

	s.repo, s.kv, err = app.OpenRepo(ctx, cfg, s.log, nil)
	if err != nil {
		return err
	}
	s.store = store.New(s.repo, store.Options{Logger: s.log})
	s.store.Start()
	if err := s.store.WaitLoaded(ctx); err != nil {
		return err
	}
	if err := s.store.Status().LoadError; err != nil {
		return fmt.Errorf("stored itineraries could not be read, refusing to continue: %w", err)
	}

	destinations, err := catalog.Default()
	if err != nil {
		return err
	}
	s.svc = service.NewItineraryService(s.store, destinations)
	return nil
}

// close writes any pending change and releases storage.
func (s *session) close(ctx context.Context) error {
	var errs []error
	if s.store != nil {
		flushCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.store.Close(flushCtx); err != nil {
			errs = append(errs, err)
		}
		if err := s.store.Status().LastSaveError; err != nil {
			errs = append(errs, fmt.Errorf("save failed: %w", err))
		}
	}
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
