package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/cxrdf/export"
	"github.com/c360studio/cxrdf/output"
	"github.com/c360studio/cxrdf/watch"
)

type watchFlags struct {
	outDir string
	sqlite bool
	nats   bool
}

func watchCmd(global *globalFlags) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Convert CX networks as they change",
		Long: `Watch a directory tree and convert every CX network that is created or
modified. The RDF file of a deleted network is removed. Output paths mirror
the input tree under --out-dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.outDir, "out-dir", "rdf", "Directory receiving the RDF files")
	cmd.Flags().BoolVar(&flags.sqlite, "sqlite", false, "Also store triples in the SQLite database")
	cmd.Flags().BoolVar(&flags.nats, "nats", false, "Also publish entities to NATS JetStream")

	return cmd
}

func runWatch(cmd *cobra.Command, global *globalFlags, flags *watchFlags, root string) error {
	logger := slog.Default()
	cfg, err := loadConfig(global.configPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return err
	}
	exporter, err := app.exporter()
	if err != nil {
		return err
	}

	extra, err := app.extraSinks(sinkOptions{sqlite: flags.sqlite, nats: flags.nats})
	if err != nil {
		return err
	}
	defer extra.Close()

	w, err := watch.New(root, watch.Options{
		Debounce:   cfg.Watch.Debounce,
		Extensions: cfg.Watch.Extensions,
	}, logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	h := &watchHandler{
		outDir:   flags.outDir,
		format:   format,
		exporter: exporter,
		extra:    extra,
		logger:   logger,
	}
	return h.run(ctx, w.Events())
}

// watchHandler converts the networks reported by a watcher.
type watchHandler struct {
	outDir   string
	format   export.Format
	exporter export.Exporter
	extra    output.Multi
	logger   *slog.Logger
}

func (h *watchHandler) run(ctx context.Context, events <-chan watch.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := h.handle(ctx, event); err != nil {
				h.logger.Error("Failed to process network", "path", event.Path, "op", event.Op, "error", err)
			}
		}
	}
}

func (h *watchHandler) handle(ctx context.Context, event watch.Event) error {
	target := h.target(event.Path)

	if event.Op == watch.OpDelete {
		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		h.logger.Info("Removed RDF for deleted network", "path", event.Path)
		return nil
	}

	sink, err := output.NewFileSink(filepath.Dir(target), h.format)
	if err != nil {
		return err
	}

	doc, err := fileLoader(event.AbsPath)(ctx)
	if err != nil {
		return err
	}
	g, err := h.exporter.Export(doc)
	if err != nil {
		return err
	}

	result := output.Result{
		Name:   networkName(event.Path),
		Policy: string(h.exporter.Policy()),
		Graph:  g,
	}
	if err := append(output.Multi{sink}, h.extra...).Write(ctx, result); err != nil {
		return err
	}

	h.logger.Info("Converted network", "path", event.Path, "op", event.Op, "output", target, "triples", g.Len())
	return nil
}

// target is the RDF file for a network path relative to the watched root.
func (h *watchHandler) target(relPath string) string {
	info, _ := export.GetFormatInfo(h.format)
	stem := strings.TrimSuffix(relPath, filepath.Ext(relPath))
	return filepath.Join(h.outDir, stem+info.Extension)
}
