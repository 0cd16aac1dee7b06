package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/qsynth/internal/config"
	"github.com/roach88/qsynth/internal/logging"
	"github.com/roach88/qsynth/internal/oracle"
	"github.com/roach88/qsynth/internal/server"
	"github.com/roach88/qsynth/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	ConfigPath string
	Addr       string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API: the progress stream, the oracle endpoint, the
message board (when a database is configured), Prometheus metrics and the
static frontend.

Example:
  qsynth serve
  qsynth serve --config ./qsynth.yaml --addr :8080 --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return outputServeError(formatter, ErrCodeConfig, "failed to load config", err)
	}
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.Verbose {
		cfg.Log = logging.Verbose(cfg.Log)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return outputServeError(formatter, ErrCodeConfig, "failed to create logger", err)
	}
	defer closer.Close()
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	oracleMetrics := oracle.NewMetrics()
	reg.MustRegister(oracleMetrics.Collectors()...)

	svc, err := oracle.NewService(logger.Named("oracle"),
		oracle.WithCache(cfg.Oracle.CacheSize),
		oracle.WithVerify(cfg.Oracle.Verify),
		oracle.WithMetrics(oracleMetrics),
	)
	if err != nil {
		return outputServeError(formatter, ErrCodeConfig, "failed to create oracle service", err)
	}

	serverOpts := []server.Option{
		server.WithOracle(svc),
		server.WithRegistry(reg),
	}

	if cfg.Database.Path != "" {
		logger.Info("opening database", zap.String("path", cfg.Database.Path))
		st, err := store.Open(cfg.Database.Path)
		if err != nil {
			return outputServeError(formatter, ErrCodeDatabase, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", zap.Error(closeErr))
			}
		}()
		serverOpts = append(serverOpts, server.WithMessageStore(st))
	} else {
		logger.Info("no database configured, message board disabled")
	}

	srv, err := server.New(cfg, logger, serverOpts...)
	if err != nil {
		return outputServeError(formatter, ErrCodeGeneric, "failed to create server", err)
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	formatter.VerboseLog("Serving on %s. Press Ctrl-C to stop.", cfg.Server.Addr)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return outputServeError(formatter, ErrCodeServe, "server error", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}

func outputServeError(formatter *OutputFormatter, code, message string, err error) error {
	if outErr := formatter.Error(code, message+": "+err.Error(), nil); outErr != nil {
		return outErr
	}
	exit := ExitCommandError
	if code == ErrCodeServe {
		exit = ExitFailure
	}
	return WrapExitError(exit, message, err)
}
