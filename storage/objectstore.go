package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/cxrdf/cx"
)

// DefaultBucket is the object store bucket for CX networks.
const DefaultBucket = "CXRDF_NETWORKS"

// ObjectStore keeps CX networks in a NATS JetStream object store bucket,
// one object per network named "<name>.cx".
type ObjectStore struct {
	store jetstream.ObjectStore
}

// NewObjectStore opens bucket, creating it if it does not exist.
func NewObjectStore(ctx context.Context, js jetstream.JetStream, bucket string) (*ObjectStore, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	store, err := getOrCreateBucket(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("create %s bucket: %w", bucket, err)
	}
	return &ObjectStore{store: store}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.ObjectStore, error) {
	store, err := js.ObjectStore(ctx, name)
	if err == nil {
		return store, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket:      name,
		Description: fmt.Sprintf("cxrdf %s networks", strings.ToLower(name)),
	})
}

// Name implements NetworkStore.
func (s *ObjectStore) Name() string {
	return StoreObjectStore
}

// Save stores doc and returns the object name.
func (s *ObjectStore) Save(ctx context.Context, name string, doc cx.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal network: %w", err)
	}

	key := objectName(name)
	if _, err := s.store.PutBytes(ctx, key, data); err != nil {
		return "", fmt.Errorf("store network: %w", err)
	}
	return key, nil
}

// Load retrieves the network stored under id.
func (s *ObjectStore) Load(ctx context.Context, id string) (cx.Document, error) {
	data, err := s.store.GetBytes(ctx, objectName(id))
	if err != nil {
		if errors.Is(err, jetstream.ErrObjectNotFound) {
			return cx.Document{}, ErrNotFound
		}
		return cx.Document{}, fmt.Errorf("get network: %w", err)
	}
	return cx.Parse(data)
}

func objectName(name string) string {
	if strings.HasSuffix(name, ".cx") {
		return name
	}
	return name + ".cx"
}
