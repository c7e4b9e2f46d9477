// Package storage uploads CX networks to network stores: an NDEx server or
// a NATS JetStream object store bucket.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360studio/cxrdf/cx"
	"github.com/c360studio/cxrdf/metric"
)

// Store names.
const (
	StoreNDEx        = "ndex"
	StoreObjectStore = "objectstore"
)

// NetworkStore saves and retrieves CX documents.
type NetworkStore interface {
	// Name identifies the store in logs, metrics and NetworkRefs.
	Name() string

	// Save stores doc under name and returns the store's identifier for it.
	Save(ctx context.Context, name string, doc cx.Document) (string, error)

	// Load retrieves a previously saved document by identifier.
	Load(ctx context.Context, id string) (cx.Document, error)
}

// NetworkRef identifies a network held by a store.
type NetworkRef struct {
	Store string
	ID    string
}

// String returns the string representation of the reference.
func (r NetworkRef) String() string {
	return fmt.Sprintf("%s:%s", r.Store, r.ID)
}

// ParseNetworkRef parses a "store:id" string.
func ParseNetworkRef(s string) (NetworkRef, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return NetworkRef{}, fmt.Errorf("invalid network reference format: %s", s)
	}
	switch parts[0] {
	case StoreNDEx, StoreObjectStore:
		return NetworkRef{Store: parts[0], ID: parts[1]}, nil
	default:
		return NetworkRef{}, fmt.Errorf("unknown network store: %s", parts[0])
	}
}

// Upload saves doc to store and records the attempt.
func Upload(ctx context.Context, store NetworkStore, name string, doc cx.Document, m *metric.Metrics, logger *slog.Logger) (NetworkRef, error) {
	if logger == nil {
		logger = slog.Default()
	}

	id, err := store.Save(ctx, name, doc)
	m.RecordUpload(store.Name(), err)
	if err != nil {
		return NetworkRef{}, fmt.Errorf("upload to %s: %w", store.Name(), err)
	}

	ref := NetworkRef{Store: store.Name(), ID: id}
	logger.Info("Network uploaded", "store", ref.Store, "id", ref.ID, "name", name)
	return ref, nil
}
