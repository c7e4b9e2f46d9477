// Package output delivers exported graphs to their destinations: RDF files
// or writers, a NATS JetStream subject, or a SQLite triple table.
package output

import (
	"context"
	"errors"

	"github.com/c360studio/cxrdf/graph"
)

// Result is one finished export.
type Result struct {
	// Name identifies the source network, usually the input file's base
	// name without extension.
	Name string

	// Policy is the export policy that shaped Graph.
	Policy string

	Graph *graph.Graph
}

// Sink consumes export results. Implementations are safe for concurrent use.
type Sink interface {
	Write(ctx context.Context, r Result) error
	Close() error
}

// Multi writes every result to each sink in order, stopping at the first
// failure.
type Multi []Sink

// Write implements Sink.
func (m Multi) Write(ctx context.Context, r Result) error {
	for _, s := range m {
		if err := s.Write(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
