package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/slotgen/pkg/cli"
	"mercator-hq/slotgen/pkg/corpus"
	"mercator-hq/slotgen/pkg/generator"
	"mercator-hq/slotgen/pkg/reload"
	"mercator-hq/slotgen/pkg/server"
	"mercator-hq/slotgen/pkg/telemetry/health"
	"mercator-hq/slotgen/pkg/telemetry/metrics"
)

var serveFlags struct {
	file          string
	listenAddress string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generation over HTTP",
	Long: `Start the HTTP server.

Routes:
  GET  /v1/templates?q=QUERY
  GET  /v1/generate/{name}?count=N&split=true
  POST /v1/reload
  GET  /health, /ready, /version, /metrics

With reload.watch the definitions document and corpus directory are watched
and the engine is rebuilt on change. reload.schedule (cron syntax) rebuilds
periodically, which picks up corpora imported into the SQLite store.

Examples:
  slotgen serve
  slotgen serve --listen 0.0.0.0:8080 --file story.txt
  slotgen serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.file, "file", "f", "", "definitions document (default from config)")
	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "load config and definitions, then exit")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}

	logger := slog.Default()

	loader, closer, err := openCorpusLoader(cfg)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer closer.Close()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	path := definitionsPath(cfg, serveFlags.file)
	opts := append(engineOptions(cfg, loader, 0, false), generator.WithObserver(collector))
	holder, err := reload.NewHolder(
		func() (*generator.Engine, error) { return generator.New(path, opts...) },
		reload.WithLogger(logger),
		reload.WithRecorder(collector),
	)
	if err != nil {
		return err
	}

	if serveFlags.dryRun {
		info := holder.Info()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration valid\n✓ %s: %d slot(s), %d template(s)\n",
			info.Source, info.Slots, info.Templates)
		return nil
	}

	checker := health.New(2 * time.Second)
	if store, ok := loader.(*corpus.SQLiteStore); ok {
		checker.Register("corpus", store.Ping)
	}

	serverOpts := []server.Option{
		server.WithHealthChecker(checker),
		server.WithNewlineMarker(cfg.Generator.NewlineMarker),
		server.WithLogger(logger),
		server.WithVersion(Version, GitCommit, BuildDate),
	}
	if cfg.Telemetry.Metrics.Enabled {
		serverOpts = append(serverOpts, server.WithMetrics(collector, cfg.Telemetry.Metrics.Path))
	}
	srv := server.NewServer(&cfg.Server, holder, serverOpts...)

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	if cfg.Reload.Watch {
		watcher, err := reload.NewFileWatcher(&reload.FileWatcherConfig{
			Paths:            watchPaths(cfg, path),
			DebounceInterval: cfg.Reload.Debounce,
		}, logger)
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer watcher.Stop()

		go func() {
			if err := watcher.Watch(ctx, func() error { return holder.Reload(reload.TriggerWatch) }); err != nil {
				logger.Error("file watcher exited", "error", err)
			}
		}()
	}

	scheduler := reload.NewScheduler(cfg.Reload.Schedule, func() error {
		return holder.Reload(reload.TriggerSchedule)
	}, logger)
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewConfigError("reload.schedule", err.Error())
	}
	defer scheduler.Stop()

	return srv.Start(ctx)
}
