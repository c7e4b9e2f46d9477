package graph

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/knakk/rdf"
)

// Minter creates fresh, unique handles. Kind names what the handle stands
// for (node, edge, aspect, ...) and may be reflected in the handle.
type Minter interface {
	Mint(kind string) rdf.IRI
}

// Handles selects a minting scheme.
type Handles string

const (
	// HandlesUUID mints urn:uuid: IRIs.
	HandlesUUID Handles = "uuid"

	// HandlesSequential mints urn:cx:<kind>:<n> IRIs, numbered per kind
	// from zero. Output is reproducible for a given input.
	HandlesSequential Handles = "sequential"
)

// ParseHandles validates a handle scheme name. Empty means uuid.
func ParseHandles(s string) (Handles, error) {
	switch Handles(s) {
	case "", HandlesUUID:
		return HandlesUUID, nil
	case HandlesSequential:
		return HandlesSequential, nil
	}
	return "", fmt.Errorf("unknown handle scheme %q (want uuid or sequential)", s)
}

// NewMinter returns a fresh minter for the scheme.
func (h Handles) NewMinter() Minter {
	if h == HandlesSequential {
		return NewSequentialMinter()
	}
	return UUIDMinter{}
}

// UUIDMinter mints random urn:uuid: handles.
type UUIDMinter struct{}

// Mint implements Minter.
func (UUIDMinter) Mint(string) rdf.IRI {
	return IRI(uuid.New().URN())
}

// SequentialMinter numbers handles per kind.
type SequentialMinter struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewSequentialMinter returns a minter whose counters start at zero.
func NewSequentialMinter() *SequentialMinter {
	return &SequentialMinter{counts: make(map[string]int)}
}

// Mint implements Minter.
func (m *SequentialMinter) Mint(kind string) rdf.IRI {
	m.mu.Lock()
	n := m.counts[kind]
	m.counts[kind] = n + 1
	m.mu.Unlock()
	return IRI(fmt.Sprintf("urn:cx:%s:%d", kind, n))
}
