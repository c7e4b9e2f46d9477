package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/cxrdf/cx"
	"github.com/c360studio/cxrdf/export"
	"github.com/c360studio/cxrdf/output"
)

// stdinName names results read from standard input.
const stdinName = "stdin"

type convertFlags struct {
	policy       string
	format       string
	handles      string
	matchAliases bool
	output       string
	jobs         int
	ndexNetworks []string
	sqlite       bool
	nats         bool
	metricsFile  string
}

func cxToRDFCmd(global *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "cx-to-rdf [file|glob|-]...",
		Short: "Convert CX networks to RDF",
		Long: `Convert one or more CX network documents to RDF.

Inputs are files, doublestar globs (e.g. "data/**/*.cx") or "-" for stdin.
With no inputs the document is read from stdin. NDEx networks can be
fetched by UUID with --ndex-network.

With a single input and no --output the graph is written to stdout. With
several inputs --output names a directory that receives one file per
network.`,
		Example: `  cxrdf cx-to-rdf network.cx
  cxrdf cx-to-rdf -p aspect -f ntriples -o out.nt network.cx
  cxrdf cx-to-rdf -o rdf/ -j 8 "networks/**/*.cx"
  cxrdf cx-to-rdf --ndex-network 7fc70ab6-9fb1-11ea-aaef-0ac135e8bacf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.policy, "policy", "p", "", fmt.Sprintf("Export policy (%s)", strings.Join(export.PolicyNames(), ", ")))
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(export.FormatNames(), ", ")))
	cmd.Flags().StringVar(&flags.handles, "handles", "", "Handle minting scheme (uuid, sequential)")
	cmd.Flags().BoolVar(&flags.matchAliases, "match-aliases", false, "Link nodes sharing an alias")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file, or directory for several inputs")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "Concurrent conversions")
	cmd.Flags().StringSliceVar(&flags.ndexNetworks, "ndex-network", nil, "NDEx network UUID to fetch and convert")
	cmd.Flags().BoolVar(&flags.sqlite, "sqlite", false, "Also store triples in the SQLite database")
	cmd.Flags().BoolVar(&flags.nats, "nats", false, "Also publish entities to NATS JetStream")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-textfile", "", "Write Prometheus metrics to this file")

	return cmd
}

// apply overrides config values with the flags set on the command line.
func (f *convertFlags) apply(cmd *cobra.Command, app *App) {
	cfg := app.cfg
	if cmd.Flags().Changed("policy") {
		cfg.Export.Policy = f.policy
	}
	if cmd.Flags().Changed("format") {
		cfg.Export.Format = f.format
	}
	if cmd.Flags().Changed("handles") {
		cfg.Export.Handles = f.handles
	}
	if cmd.Flags().Changed("match-aliases") {
		cfg.Export.MatchAliases = f.matchAliases
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = f.jobs
	}
}

// input is one network to convert.
type input struct {
	name string
	load func(ctx context.Context) (cx.Document, error)
}

func runConvert(cmd *cobra.Command, global *globalFlags, flags *convertFlags, args []string) error {
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

	flags.apply(cmd, app)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return err
	}
	exporter, err := app.exporter()
	if err != nil {
		return err
	}

	inputs, err := app.resolveInputs(cmd.InOrStdin(), args, flags.ndexNetworks)
	if err != nil {
		return err
	}

	primary, closePrimary, err := primarySink(cmd.OutOrStdout(), flags.output, format, len(inputs))
	if err != nil {
		return err
	}
	defer closePrimary()

	extra, err := app.extraSinks(sinkOptions{sqlite: flags.sqlite, nats: flags.nats})
	if err != nil {
		return err
	}
	sink := append(output.Multi{primary}, extra...)
	defer sink.Close()

	start := time.Now()
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Jobs)

	for _, in := range inputs {
		g.Go(func() error {
			doc, err := in.load(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			graph, err := exporter.Export(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			logger.Debug("Converted network", "name", in.name, "triples", graph.Len())
			return sink.Write(ctx, output.Result{
				Name:   in.name,
				Policy: string(exporter.Policy()),
				Graph:  graph,
			})
		})
	}

	convErr := g.Wait()
	if err := app.writeMetrics(flags.metricsFile); err != nil {
		logger.Warn("Failed to write metrics", "error", err)
	}
	if convErr != nil {
		return convErr
	}

	logger.Info("Conversion complete",
		"networks", len(inputs),
		"policy", exporter.Policy(),
		"format", format,
		"duration", time.Since(start))
	return nil
}

// resolveInputs expands file arguments and globs, and adds the requested
// NDEx networks. With nothing given, stdin is the only input. Glob matches
// are named by their path below the pattern's static base, so nested files
// keep their directories. Two inputs that end up with the same name are an
// error.
func (a *App) resolveInputs(stdin io.Reader, args, ndexNetworks []string) ([]input, error) {
	var inputs []input
	seen := make(map[string]bool)
	names := make(map[string]string)

	addFile := func(path, name string) error {
		if seen[path] {
			return nil
		}
		seen[path] = true
		if other, ok := names[name]; ok {
			return fmt.Errorf("inputs %s and %s both map to output name %q", other, path, name)
		}
		names[name] = path
		inputs = append(inputs, input{name: name, load: fileLoader(path)})
		return nil
	}

	for _, arg := range args {
		switch {
		case arg == "-":
			inputs = append(inputs, input{name: stdinName, load: readerLoader(stdin)})

		case strings.ContainsAny(arg, "*?[{"):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", arg)
			}
			base, _ := doublestar.SplitPattern(filepath.ToSlash(arg))
			for _, m := range matches {
				if err := addFile(m, globName(filepath.FromSlash(base), m)); err != nil {
					return nil, err
				}
			}

		default:
			if err := addFile(arg, networkName(arg)); err != nil {
				return nil, err
			}
		}
	}

	if len(ndexNetworks) > 0 {
		client := a.ndexClient()
		for _, id := range ndexNetworks {
			inputs = append(inputs, input{
				name: id,
				load: func(ctx context.Context) (cx.Document, error) {
					return client.Load(ctx, id)
				},
			})
		}
	}

	if len(inputs) == 0 {
		inputs = append(inputs, input{name: stdinName, load: readerLoader(stdin)})
	}
	return inputs, nil
}

func fileLoader(path string) func(context.Context) (cx.Document, error) {
	return func(context.Context) (cx.Document, error) {
		f, err := os.Open(path)
		if err != nil {
			return cx.Document{}, err
		}
		defer f.Close()
		return cx.Decode(f)
	}
}

func readerLoader(r io.Reader) func(context.Context) (cx.Document, error) {
	return func(context.Context) (cx.Document, error) {
		return cx.Decode(r)
	}
}

// networkName is the file's base name without its extension.
func networkName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// globName is the slash-separated path of match below base, without its
// extension. It falls back to the base name when match is not under base.
func globName(base, match string) string {
	rel, err := filepath.Rel(base, match)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return networkName(match)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

// primarySink picks where serialized RDF goes: stdout, a single file, or a
// directory of files.
func primarySink(stdout io.Writer, out string, format export.Format, inputs int) (output.Sink, func(), error) {
	noop := func() {}

	if out == "" || out == "-" {
		if inputs > 1 {
			return nil, noop, fmt.Errorf("%d inputs need --output to name a directory", inputs)
		}
		return output.NewWriterSink(stdout, format), noop, nil
	}

	info, err := os.Stat(out)
	isDir := err == nil && info.IsDir()
	if isDir || inputs > 1 || strings.HasSuffix(out, string(filepath.Separator)) {
		s, err := output.NewFileSink(out, format)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, noop, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, noop, fmt.Errorf("create output file: %w", err)
	}
	return output.NewWriterSink(f, format), func() { _ = f.Close() }, nil
}
