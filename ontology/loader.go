package ontology

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

// DefaultTimeout bounds a single ontology fetch over HTTP.
const DefaultTimeout = 60 * time.Second

// acceptHeader lists the serializations the loader can decode.
const acceptHeader = "application/rdf+xml, text/turtle;q=0.9, application/n-triples;q=0.8"

// RDFLoader loads ontologies serialized as RDF/XML, Turtle or N-Triples
// from a file or an http(s) URL. Gzipped sources ending in .gz are
// decompressed transparently.
type RDFLoader struct {
	client *http.Client
	logger *slog.Logger
}

// LoaderOption configures an RDFLoader.
type LoaderOption func(*RDFLoader)

// WithHTTPClient sets the HTTP client used for remote sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *RDFLoader) {
		l.client = c
	}
}

// WithLoaderLogger sets the logger.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *RDFLoader) {
		l.logger = logger
	}
}

// NewRDFLoader creates a loader.
func NewRDFLoader(opts ...LoaderOption) *RDFLoader {
	l := &RDFLoader{
		client: &http.Client{Timeout: DefaultTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes source into an Ontology.
func (l *RDFLoader) Load(ctx context.Context, source string) (*Ontology, error) {
	body, format, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	triples, err := decode(body, format)
	if err != nil {
		return nil, fmt.Errorf("decode ontology %s: %w", source, err)
	}
	l.logger.Debug("Ontology decoded", "source", source, "triples", len(triples))

	onto := build(triples)
	if onto.IRI == "" {
		onto.IRI = source
	}
	return onto, nil
}

// open returns the raw source stream and the format it should be decoded as.
func (l *RDFLoader) open(ctx context.Context, source string) (io.ReadCloser, rdf.Format, error) {
	name := source
	var body io.ReadCloser
	var contentType string

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", acceptHeader)
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, 0, fmt.Errorf("fetch ontology: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, 0, fmt.Errorf("fetch ontology %s: status %d", source, resp.StatusCode)
		}
		body = resp.Body
		contentType = resp.Header.Get("Content-Type")
		name = resp.Request.URL.Path
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, 0, fmt.Errorf("open ontology: %w", err)
		}
		body = f
	}

	if strings.HasSuffix(name, ".gz") {
		zr, err := gzip.NewReader(body)
		if err != nil {
			body.Close()
			return nil, 0, fmt.Errorf("gunzip ontology: %w", err)
		}
		body = &gzipBody{Reader: zr, raw: body}
		name = strings.TrimSuffix(name, ".gz")
	}

	return body, detectFormat(name, contentType), nil
}

type gzipBody struct {
	*gzip.Reader
	raw io.Closer
}

func (b *gzipBody) Close() error {
	return errors.Join(b.Reader.Close(), b.raw.Close())
}

// detectFormat picks the serialization from the file extension, then the
// content type. RDF/XML is the default.
func detectFormat(name, contentType string) rdf.Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".ttl":
		return rdf.Turtle
	case ".nt":
		return rdf.NTriples
	case ".owl", ".rdf", ".xml":
		return rdf.RDFXML
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "text/turtle", "application/x-turtle":
			return rdf.Turtle
		case "application/n-triples", "text/plain":
			return rdf.NTriples
		}
	}
	return rdf.RDFXML
}

func decode(r io.Reader, format rdf.Format) ([]rdf.Triple, error) {
	dec := rdf.NewTripleDecoder(r, format)
	var triples []rdf.Triple
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return triples, nil
		}
		if err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
}

// build assembles the class hierarchy. Only IRI subjects typed owl:Class
// or rdfs:Class become classes.
func build(triples []rdf.Triple) *Ontology {
	onto := &Ontology{}
	classes := make(map[string]*Class)
	restrictions := make(map[string]bool)

	for _, t := range triples {
		if t.Pred.String() != ndex.RDFType || t.Obj.Type() != rdf.TermIRI {
			continue
		}
		obj := t.Obj.String()
		switch {
		case obj == ndex.OWLOntology && t.Subj.Type() == rdf.TermIRI && onto.IRI == "":
			onto.IRI = t.Subj.String()
		case obj == ndex.OWLRestriction:
			restrictions[termKey(t.Subj)] = true
		case obj == ndex.OWLClass || obj == ndex.RDFSClass:
			if t.Subj.Type() != rdf.TermIRI {
				continue
			}
			iri := t.Subj.String()
			if _, ok := classes[iri]; !ok {
				c := &Class{IRI: iri}
				classes[iri] = c
				onto.Classes = append(onto.Classes, c)
			}
		}
	}

	seen := make(map[string]bool)
	for _, t := range triples {
		c, ok := classes[t.Subj.String()]
		if !ok || t.Subj.Type() != rdf.TermIRI {
			continue
		}
		switch t.Pred.String() {
		case ndex.RDFSLabel:
			if c.Label == "" && t.Obj.Type() == rdf.TermLiteral {
				c.Label = t.Obj.String()
			}
		case ndex.RDFSSubClassOf:
			key := c.IRI + " " + termKey(t.Obj)
			if seen[key] {
				continue
			}
			seen[key] = true
			c.Superclasses = append(c.Superclasses, expression(t.Obj, restrictions))
		}
	}

	// instances: any IRI typed with a known class
	for _, t := range triples {
		if t.Pred.String() != ndex.RDFType || t.Subj.Type() != rdf.TermIRI {
			continue
		}
		if c, ok := classes[t.Obj.String()]; ok && t.Obj.Type() == rdf.TermIRI {
			c.Instances = append(c.Instances, t.Subj.String())
		}
	}

	return onto
}

func expression(obj rdf.Object, restrictions map[string]bool) Expression {
	switch {
	case obj.Type() == rdf.TermIRI && obj.String() == ndex.OWLThing:
		return Expression{Kind: ExprThing, IRI: obj.String()}
	case obj.Type() == rdf.TermIRI:
		return Expression{Kind: ExprClass, IRI: obj.String()}
	case restrictions[termKey(obj)]:
		return Expression{Kind: ExprRestriction}
	default:
		return Expression{Kind: ExprAnonymous}
	}
}

func termKey(t rdf.Term) string {
	return t.Serialize(rdf.NTriples)
}
