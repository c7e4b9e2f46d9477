package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/cxrdf/config"
	"github.com/c360studio/cxrdf/export"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/metric"
	"github.com/c360studio/cxrdf/output"
	"github.com/c360studio/cxrdf/storage"
)

// App wires configuration, metrics and the optional NATS connection
// together for one command invocation.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	registry *prometheus.Registry
	metrics  *metric.Metrics

	// NATS, connected on first use
	natsConn *nats.Conn
	js       jetstream.JetStream
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	m, err := metric.New(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  m,
	}, nil
}

// loadConfig loads an explicit config file, or the layered user and project
// configuration when path is empty.
func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	if path == "" {
		return config.NewLoader(logger).Load()
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// exporter builds the exporter selected by the export config.
func (a *App) exporter() (export.Exporter, error) {
	policy, err := export.ParsePolicy(a.cfg.Export.Policy)
	if err != nil {
		return nil, err
	}
	handles, err := graph.ParseHandles(a.cfg.Export.Handles)
	if err != nil {
		return nil, err
	}
	return export.New(policy,
		export.WithLogger(a.logger),
		export.WithHandles(handles),
		export.WithMetrics(a.metrics),
		export.WithAliasMatching(a.cfg.Export.MatchAliases))
}

// jetStream connects to NATS on first use.
func (a *App) jetStream() (jetstream.JetStream, error) {
	if a.js != nil {
		return a.js, nil
	}
	if a.cfg.Output.NATS.URL == "" {
		return nil, fmt.Errorf("no NATS URL configured (set output.nats.url or NATS_URL)")
	}

	a.logger.Debug("Connecting to NATS", "url", a.cfg.Output.NATS.URL)
	conn, err := nats.Connect(a.cfg.Output.NATS.URL, nats.Name(appName))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	a.natsConn = conn
	a.js = js
	return js, nil
}

// ndexClient returns a client for the configured NDEx server.
func (a *App) ndexClient() *storage.NDExClient {
	return storage.NewNDExClient(a.cfg.NDEx.URL, a.cfg.NDEx.Username, a.cfg.NDEx.Password,
		storage.WithTimeout(a.cfg.NDEx.Timeout))
}

// objectStore opens the configured JetStream object store bucket.
func (a *App) objectStore(ctx context.Context) (*storage.ObjectStore, error) {
	js, err := a.jetStream()
	if err != nil {
		return nil, err
	}
	return storage.NewObjectStore(ctx, js, a.cfg.Output.NATS.ObjectBucket)
}

// sinkOptions selects the optional sinks of a conversion run.
type sinkOptions struct {
	sqlite bool
	nats   bool
}

// extraSinks opens the SQLite and NATS sinks requested by opts.
func (a *App) extraSinks(opts sinkOptions) (output.Multi, error) {
	var sinks output.Multi

	if opts.sqlite {
		path := a.cfg.Output.SQLite.Path
		if path == "" {
			path = output.DefaultSQLitePath
		}
		s, err := output.NewSQLiteSink(path)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("Writing triples to SQLite", "path", s.Path())
		sinks = append(sinks, s)
	}

	if opts.nats {
		js, err := a.jetStream()
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, output.NewNATSSink(js, a.cfg.Output.NATS.Subject))
	}

	return sinks, nil
}

// writeMetrics writes the gathered metrics in the Prometheus text format.
func (a *App) writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// Close releases the NATS connection.
func (a *App) Close() {
	if a.natsConn != nil {
		_ = a.natsConn.Drain()
		a.natsConn.Close()
	}
}
