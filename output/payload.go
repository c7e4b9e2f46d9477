package output

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/payloadregistry"
)

// RegisterPayloads registers the entity payload (cxrdf.entity.v1) with reg,
// so semstreams consumers can decode what the NATS sink publishes.
func RegisterPayloads(reg *payloadregistry.Registry) error {
	return reg.Register(&payloadregistry.Registration{
		Domain:      "cxrdf",
		Category:    "entity",
		Version:     "v1",
		Description: "One exported RDF subject with its triples",
		Factory:     func() any { return &EntityIngestMessage{} },
	})
}

// EntityType is the message type of published entity payloads.
var EntityType = message.Type{Domain: "cxrdf", Category: "entity", Version: "v1"}

// EntityIngestMessage carries every triple of one subject. It implements
// message.Payload so semstreams graph components can ingest it.
type EntityIngestMessage struct {
	ID         string           `json:"id"`
	Network    string           `json:"network"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (e *EntityIngestMessage) EntityID() string          { return e.ID }
func (e *EntityIngestMessage) Triples() []message.Triple { return e.TripleData }
func (e *EntityIngestMessage) Schema() message.Type      { return EntityType }

func (e *EntityIngestMessage) Validate() error {
	if e.ID == "" {
		return errors.New("entity ID is required")
	}
	if len(e.TripleData) == 0 {
		return errors.New("entity has no triples")
	}
	return nil
}

func (e *EntityIngestMessage) MarshalJSON() ([]byte, error) {
	type Alias EntityIngestMessage
	return json.Marshal((*Alias)(e))
}

func (e *EntityIngestMessage) UnmarshalJSON(data []byte) error {
	type Alias EntityIngestMessage
	return json.Unmarshal(data, (*Alias)(e))
}
