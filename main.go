// Command dinos serves the dinosaur catalog as a small website and can
// print it from the terminal.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phillip-england/dinos/internal/config"
	"github.com/phillip-england/dinos/internal/dinos"
	"github.com/phillip-england/dinos/internal/logging"
	"github.com/phillip-england/dinos/internal/site"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// cli holds what PersistentPreRunE resolves for the subcommands.
type cli struct {
	configPath string
	dataPath   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "dinos",
		Short:         "Browse the dinosaur catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&c.dataPath, "data", "", "path to the dinosaur JSON file (overrides config)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the catalog over HTTP",
			Args:  cobra.NoArgs,
			RunE:  c.runServe,
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print every dinosaur name in file order",
			Args:  cobra.NoArgs,
			RunE:  c.runList,
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print one dinosaur (case-insensitive)",
			Args:  cobra.ExactArgs(1),
			RunE:  c.runShow,
		},
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dataPath != "" {
		cfg.DataPath = c.dataPath
	}
	if c.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

func (c *cli) catalog() *dinos.Catalog {
	return dinos.NewCatalog(dinos.FileSource{Path: c.cfg.DataPath})
}

func (c *cli) runServe(cmd *cobra.Command, args []string) error {
	s, err := site.New(c.catalog(), c.logger, site.Options{
		StrictStatus:         c.cfg.StrictStatus,
		MarkdownDescriptions: c.cfg.MarkdownDescriptions,
		LiveReload:           c.cfg.LiveReload,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.logger.Info("serving dinosaurs",
			zap.String("addr", c.cfg.Addr),
			zap.String("data", c.cfg.DataPath),
			zap.Bool("live_reload", c.cfg.LiveReload),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if c.cfg.LiveReload {
		g.Go(func() error {
			return site.Watch(ctx, c.cfg.DataPath, s.Hub(), c.logger)
		})
	}

	return g.Wait()
}

func (c *cli) runList(cmd *cobra.Command, args []string) error {
	records, err := c.catalog().List(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, rec := range records {
		fmt.Fprintln(out, rec.Name)
	}
	return nil
}

func (c *cli) runShow(cmd *cobra.Command, args []string) error {
	rec, err := c.catalog().Lookup(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", rec.Name, rec.Description)
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
