package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/c360studio/semstreams/payloadregistry"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/cxrdf/export"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

func sampleResult() Result {
	g := graph.New()
	node := graph.IRI("urn:cx:node:0")
	g.Add(node, graph.IRI(ndex.RDFType), graph.IRI(ndex.ClassNode))
	g.Add(node, graph.IRI(ndex.HasID), graph.Literal(int64(1)))
	g.Add(node, graph.IRI(ndex.RDFSLabel), graph.Literal("TP53"))
	g.Add(graph.IRI("urn:cx:edge:0"), graph.IRI(ndex.EdgeHasInteraction), graph.Literal("increases"))
	return Result{Name: "sample", Policy: "predicate", Graph: g}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf, export.FormatNTriples)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, sink.Write(context.Background(), sampleResult()))
		}()
	}
	wg.Wait()
	require.NoError(t, sink.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 16)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, " ."), "interleaved output: %q", line)
	}
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := NewFileSink(dir, export.FormatTurtle)
	require.NoError(t, err)

	require.NoError(t, sink.Write(context.Background(), sampleResult()))
	assert.Equal(t, int64(1), sink.Written())

	data, err := os.ReadFile(filepath.Join(dir, "sample.ttl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<urn:cx:node:0>")

	nested := sampleResult()
	nested.Name = "batch/b/net"
	require.NoError(t, sink.Write(context.Background(), nested))
	assert.FileExists(t, filepath.Join(dir, "batch", "b", "net.ttl"))
	assert.Equal(t, filepath.Join(dir, "batch", "b", "net.ttl"), sink.Path("batch/b/net"))

	_, err = NewFileSink(dir, "rdfxml")
	assert.Error(t, err)
}

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, subject string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.msgs = append(p.msgs, published{subject: subject, data: data})
	return &jetstream.PubAck{Stream: "GRAPH"}, nil
}

func TestNATSSink(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewNATSSink(pub, "")
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	require.NoError(t, sink.Write(context.Background(), sampleResult()))
	require.Len(t, pub.msgs, 2, "one message per subject")
	assert.Equal(t, int64(2), sink.Published())

	var msg EntityIngestMessage
	require.NoError(t, json.Unmarshal(pub.msgs[0].data, &msg))
	assert.Equal(t, DefaultSubject, pub.msgs[0].subject)
	assert.Equal(t, "urn:cx:node:0", msg.ID)
	assert.Equal(t, "sample", msg.Network)
	require.Len(t, msg.TripleData, 3)
	assert.Equal(t, EntityType, msg.Schema())

	byPredicate := make(map[string]any)
	for _, tr := range msg.Triples() {
		assert.Equal(t, "cxrdf.predicate", tr.Source)
		assert.True(t, fixed.Equal(tr.Timestamp))
		byPredicate[tr.Predicate] = tr.Object
	}
	assert.Equal(t, ndex.ClassNode, byPredicate[ndex.RDFType])
	assert.Equal(t, float64(1), byPredicate[ndex.NodeID], "integers decode as JSON numbers")
	assert.Equal(t, "TP53", byPredicate[ndex.Label])
}

func TestNATSSink_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("no responders")}
	err := NewNATSSink(pub, "custom.subject").Write(context.Background(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no responders")
}

func TestObjectValue(t *testing.T) {
	assert.Equal(t, int64(42), objectValue(graph.Literal(int64(42))))
	assert.Equal(t, 1.5, objectValue(graph.Literal(1.5)))
	assert.Equal(t, true, objectValue(graph.Literal(true)))
	assert.Equal(t, "x", objectValue(graph.Literal("x")))
	assert.Equal(t, "urn:x", objectValue(graph.IRI("urn:x")))
}

func TestSQLiteSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "triples.db")
	sink, err := NewSQLiteSink(path)
	require.NoError(t, err)
	defer sink.Close()
	assert.Equal(t, path, sink.Path())

	ctx := context.Background()
	require.NoError(t, sink.Write(ctx, sampleResult()))
	second := sampleResult()
	second.Name = "other"
	second.Policy = "abstract"
	require.NoError(t, sink.Write(ctx, second))

	exports, err := sink.Exports(ctx)
	require.NoError(t, err)
	require.Len(t, exports, 2)
	assert.Equal(t, "sample", exports[0].Name)
	assert.Equal(t, "predicate", exports[0].Policy)
	assert.Equal(t, 4, exports[0].Triples)
	assert.False(t, exports[0].CreatedAt.IsZero())
	assert.Equal(t, "other", exports[1].Name)

	triples, err := sink.Triples(ctx, exports[0].ID)
	require.NoError(t, err)
	require.Len(t, triples, 4)
	assert.Equal(t, TripleRecord{
		Subject:    "urn:cx:node:0",
		Predicate:  ndex.RDFType,
		Object:     ndex.ClassNode,
		ObjectKind: KindIRI,
	}, triples[0])
	assert.Equal(t, KindLiteral, triples[2].ObjectKind)
	assert.Equal(t, "TP53", triples[2].Object)
	assert.Equal(t, ndex.XSDNamespace+"string", triples[2].DataType)
}

func TestSQLiteSink_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triples.db")
	sink, err := NewSQLiteSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Write(context.Background(), sampleResult()))
	require.NoError(t, sink.Close())

	sink, err = NewSQLiteSink(path)
	require.NoError(t, err)
	defer sink.Close()
	exports, err := sink.Exports(context.Background())
	require.NoError(t, err)
	assert.Len(t, exports, 1)
}

type failingSink struct{ closed bool }

func (f *failingSink) Write(context.Context, Result) error { return errors.New("disk full") }
func (f *failingSink) Close() error                        { f.closed = true; return nil }

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	failing := &failingSink{}
	m := Multi{NewWriterSink(&buf, export.FormatNTriples), failing}

	err := m.Write(context.Background(), sampleResult())
	assert.EqualError(t, err, "disk full")
	assert.NotEmpty(t, buf.String())

	require.NoError(t, m.Close())
	assert.True(t, failing.closed)
}

func TestRegisterPayloads(t *testing.T) {
	reg := payloadregistry.New()
	require.NoError(t, RegisterPayloads(reg))

	payload, ok := reg.Create("cxrdf", "entity", "v1").(*EntityIngestMessage)
	require.True(t, ok, "registry should create entity payloads")
	assert.Error(t, payload.Validate(), "empty payload is invalid")

	assert.Error(t, RegisterPayloads(reg), "duplicate registration")
}
