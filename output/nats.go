package output

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/knakk/rdf"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// DefaultSubject is the JetStream subject entity messages are published to.
const DefaultSubject = "graph.ingest.entity"

// Publisher publishes to a JetStream stream. jetstream.JetStream
// satisfies it.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// NATSSink publishes one EntityIngestMessage per graph subject.
type NATSSink struct {
	js      Publisher
	subject string
	now     func() time.Time

	published atomic.Int64
}

// NewNATSSink creates a sink publishing to subject. An empty subject selects
// DefaultSubject.
func NewNATSSink(js Publisher, subject string) *NATSSink {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSSink{js: js, subject: subject, now: time.Now}
}

// Write implements Sink.
func (s *NATSSink) Write(ctx context.Context, r Result) error {
	now := s.now()
	source := "cxrdf." + r.Policy

	var msg *EntityIngestMessage
	flush := func() error {
		if msg == nil {
			return nil
		}
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("entity %s: %w", msg.ID, err)
		}
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal entity %s: %w", msg.ID, err)
		}
		if _, err := s.js.Publish(ctx, s.subject, data); err != nil {
			return fmt.Errorf("publish entity %s: %w", msg.ID, err)
		}
		s.published.Add(1)
		return nil
	}

	for _, t := range r.Graph.Grouped() {
		id := t.Subj.String()
		if msg == nil || msg.ID != id {
			if err := flush(); err != nil {
				return err
			}
			msg = &EntityIngestMessage{ID: id, Network: r.Name, UpdatedAt: now}
		}
		msg.TripleData = append(msg.TripleData, message.Triple{
			Subject:    id,
			Predicate:  predicateName(t.Pred),
			Object:     objectValue(t.Obj),
			Source:     source,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	return flush()
}

// Published returns the number of entity messages sent.
func (s *NATSSink) Published() int64 {
	return s.published.Load()
}

// Close implements Sink. The connection is owned by the caller.
func (s *NATSSink) Close() error {
	return nil
}

// predicateName prefers the registered dotted name over the raw IRI.
func predicateName(p rdf.Predicate) string {
	if name, ok := ndex.PredicateName(p.String()); ok {
		return name
	}
	return p.String()
}

// objectValue converts literals to their Go value. IRIs stay strings.
func objectValue(o rdf.Object) any {
	lit, ok := o.(rdf.Literal)
	if !ok {
		return o.String()
	}
	lexical := lit.String()
	switch lit.DataType.String() {
	case ndex.XSDNamespace + "integer", ndex.XSDNamespace + "long", ndex.XSDNamespace + "int":
		if v, err := strconv.ParseInt(lexical, 10, 64); err == nil {
			return v
		}
	case ndex.XSDNamespace + "double", ndex.XSDNamespace + "float", ndex.XSDNamespace + "decimal":
		if v, err := strconv.ParseFloat(lexical, 64); err == nil {
			return v
		}
	case ndex.XSDNamespace + "boolean":
		if v, err := strconv.ParseBool(lexical); err == nil {
			return v
		}
	}
	return lexical
}
