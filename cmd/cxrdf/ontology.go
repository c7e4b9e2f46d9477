package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/cxrdf/ontology"
	"github.com/c360studio/cxrdf/storage"
)

type owlFlags struct {
	output      string
	indent      bool
	name        string
	ndex        bool
	objectStore bool
	metricsFile string
}

func owlToCXCmd(global *globalFlags) *cobra.Command {
	flags := &owlFlags{}

	cmd := &cobra.Command{
		Use:   "owl-to-cx <file|url>",
		Short: "Convert an OWL ontology's class hierarchy to CX",
		Long: `Load an OWL ontology (RDF/XML, Turtle or N-Triples, optionally gzipped)
from a file or http(s) URL and write its named classes as CX nodes joined
by subClassOf edges.

The CX document goes to stdout or --output, and can also be uploaded to
NDEx (--ndex) or a NATS JetStream object store (--object-store).`,
		Example: `  cxrdf owl-to-cx pizza.owl -o pizza.cx
  cxrdf owl-to-cx http://purl.obolibrary.org/obo/go.owl --ndex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOntology(cmd, global, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&flags.indent, "indent", false, "Indent the CX JSON")
	cmd.Flags().StringVar(&flags.name, "name", "", "Network name used for uploads (default source base name)")
	cmd.Flags().BoolVar(&flags.ndex, "ndex", false, "Upload the network to NDEx")
	cmd.Flags().BoolVar(&flags.objectStore, "object-store", false, "Store the network in the NATS object store")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-textfile", "", "Write Prometheus metrics to this file")

	return cmd
}

func runOntology(cmd *cobra.Command, global *globalFlags, flags *owlFlags, source string) error {
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
	defer func() {
		if err := app.writeMetrics(flags.metricsFile); err != nil {
			logger.Warn("Failed to write metrics", "error", err)
		}
	}()

	ctx := cmd.Context()
	converter := ontology.NewConverter(
		ontology.NewRDFLoader(ontology.WithLoaderLogger(logger)),
		ontology.WithLogger(logger),
		ontology.WithMetrics(app.metrics))

	doc, err := converter.Convert(ctx, source)
	if err != nil {
		return err
	}

	if flags.output != "" || !(flags.ndex || flags.objectStore) {
		if err := writeDocument(cmd.OutOrStdout(), flags.output, doc, flags.indent); err != nil {
			return err
		}
	}

	name := flags.name
	if name == "" {
		name = sourceName(source)
	}

	var stores []storage.NetworkStore
	if flags.ndex {
		stores = append(stores, app.ndexClient())
	}
	if flags.objectStore {
		store, err := app.objectStore(ctx)
		if err != nil {
			return err
		}
		stores = append(stores, store)
	}

	for _, store := range stores {
		ref, err := storage.Upload(ctx, store, name, doc, app.metrics, logger)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ref.ID)
	}
	return nil
}

// writeDocument writes doc as JSON to path, or to stdout when path is empty.
func writeDocument(stdout io.Writer, path string, doc any, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("marshal CX: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// sourceName derives a network name from a file path or URL.
func sourceName(source string) string {
	name := source
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".gz")
	return strings.TrimSuffix(name, filepath.Ext(name))
}
