package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"folio/internal/bootstrap"
	navdto "folio/internal/modules/navigator/dto"
	"folio/internal/platform/config"
	"folio/internal/platform/logging"
	uiapp "folio/internal/ui/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	source     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Paginated portfolio viewer for image sequences and PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultFile+")")
	root.PersistentFlags().StringVar(&opts.source, "source", "", "image directory, base URL or PDF file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error")

	root.AddCommand(newViewCmd(&opts))
	root.AddCommand(newProbeCmd(&opts))
	root.AddCommand(newWalkCmd(&opts))
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplySource(opts.source)
	if strings.TrimSpace(opts.logLevel) != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, cfg.Validate()
}

func loadApp(opts *rootOptions, stderr io.Writer) (*bootstrap.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Output: stderr})
	return bootstrap.New(cfg, logger)
}

func newViewCmd(opts *rootOptions) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the slide viewer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}
			// The program owns the terminal, so logs go to a file.
			logFile, err := logging.OpenFile(cfg.Log.File)
			if err != nil {
				return err
			}
			defer logFile.Close()
			logger := logging.Setup(logging.Config{Level: cfg.Log.Level, Output: logFile})

			relay := uiapp.NewRelay()
			app, err := bootstrap.NewInteractive(cfg, logger, relay)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(cmd.Context(), app, relay)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

func newProbeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Discover the page count and print every page locator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PagesCLI.Probe(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: %d\n", out.Total)
			for i, locator := range out.Locators {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, locator)
			}
			return nil
		},
	}
}

func newWalkCmd(opts *rootOptions) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Navigate forward headlessly and report page states",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 0 {
				return fmt.Errorf("--steps must not be negative")
			}
			app, err := loadApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			w := cmd.OutOrStdout()

			state, err := app.NavigatorCLI.Start(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "start\t%s\n", state.Indicator)
			final, err := app.NavigatorCLI.Walk(cmd.Context(), steps, func(out navdto.MoveOutput) {
				if out.Moved {
					_, _ = fmt.Fprintf(w, "next\t%s\n", out.State.Indicator)
					return
				}
				_, _ = fmt.Fprintf(w, "next\t%s (no-op)\n", out.State.Indicator)
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "final\t%s\n", final.Indicator)

			pages, err := app.PagesCLI.ListPages(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range pages {
				if p.Error != "" {
					_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.Index, p.State, p.Locator, p.Error)
					continue
				}
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", p.Index, p.State, p.Locator)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 5, "number of next moves")
	return cmd
}
