package export_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/knakk/rdf"

	"github.com/c360studio/cxrdf/export"
	"github.com/c360studio/cxrdf/graph"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{"", export.FormatTurtle, false},
		{"turtle", export.FormatTurtle, false},
		{"ntriples", export.FormatNTriples, false},
		{"jsonld", export.FormatJSONLD, false},
		{"rdfxml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormat(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := export.ParsePolicy("")
	if err != nil || p != export.PolicyPredicate {
		t.Errorf("empty policy should default to predicate, got %q, %v", p, err)
	}
	for _, name := range export.PolicyNames() {
		if _, err := export.ParsePolicy(name); err != nil {
			t.Errorf("ParsePolicy(%q) failed: %v", name, err)
		}
		info, ok := export.GetPolicyInfo(export.Policy(name))
		if !ok || info.Description == "" || !strings.HasPrefix(info.IRI, ndex.Namespace) {
			t.Errorf("incomplete policy info for %q: %+v", name, info)
		}
	}
	if _, err := export.ParsePolicy("concise"); err == nil {
		t.Error("ParsePolicy should reject unknown names")
	}
	if info, _ := export.GetPolicyInfo(export.PolicyAspect); !info.Strict {
		t.Error("aspect policy should be strict")
	}
}

func TestExportNTriples(t *testing.T) {
	g := exportWith(t, export.PolicyPredicate, scenario)

	output, err := export.Serialize(g, export.FormatNTriples)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != g.Len() {
		t.Errorf("expected %d lines, got %d", g.Len(), len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("N-Triple line should end with ' .': %s", line)
		}
	}

	// the output must parse back to the same number of triples
	triples, err := decodeAll(output, rdf.NTriples)
	if err != nil {
		t.Fatalf("decode N-Triples: %v", err)
	}
	if len(triples) != g.Len() {
		t.Errorf("decoded %d triples, want %d", len(triples), g.Len())
	}
}

func TestExportTurtle(t *testing.T) {
	g := exportWith(t, export.PolicyPredicate, scenario)

	output, err := export.Serialize(g, export.FormatTurtle)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	for _, want := range []string{
		"@prefix cx:\t<" + ndex.Namespace + "> .",
		"<urn:cx:node:0>",
		"<urn:cx:edge:0>",
		`"increases"`,
		"cx:policy",
		"cx:predicate_policy",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Turtle output should contain %q", want)
		}
	}
	if strings.Contains(output, "ns0:") {
		t.Errorf("Turtle output should not invent prefixes:\n%s", output)
	}

	triples, err := decodeAll(output, rdf.Turtle)
	if err != nil {
		t.Fatalf("decode Turtle: %v", err)
	}
	if len(triples) != g.Len() {
		t.Errorf("decoded %d triples, want %d", len(triples), g.Len())
	}
}

func TestExportJSONLD(t *testing.T) {
	g := exportWith(t, export.PolicyPredicate, scenario)

	output, err := export.Serialize(g, export.FormatJSONLD)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var doc struct {
		Context map[string]string `json:"@context"`
		Graph   []map[string]any  `json:"@graph"`
	}
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("JSON-LD output is not valid JSON: %v", err)
	}
	if doc.Context["cx"] != ndex.Namespace {
		t.Errorf("@context should bind cx, got %v", doc.Context)
	}

	var node map[string]any
	for _, n := range doc.Graph {
		if n["@id"] == "urn:cx:node:0" {
			node = n
		}
	}
	if node == nil {
		t.Fatal("node urn:cx:node:0 missing from @graph")
	}
	types, _ := node["@type"].([]any)
	if len(types) != 1 || types[0] != ndex.ClassNode {
		t.Errorf("unexpected @type: %v", node["@type"])
	}
	labels, _ := node[ndex.RDFSLabel].([]any)
	if len(labels) != 1 || labels[0] != "A" {
		t.Errorf("unexpected label: %v", node[ndex.RDFSLabel])
	}
	related, _ := node["urn:cx:edge:0"].([]any)
	if len(related) != 1 {
		t.Fatalf("edge predicate missing: %v", node)
	}
	if ref, _ := related[0].(map[string]any); ref["@id"] != "urn:cx:node:1" {
		t.Errorf("edge should point at node 2, got %v", related[0])
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	const input = `[
		{"nodes": [{"@id": 1, "n": "A \"one\""}, {"@id": 2, "n": "B"}]},
		{"edges": [{"@id": 10, "s": 1, "t": 2, "i": "increases"}]},
		{"nodeAttributes": [{"po": 1, "n": "Color", "v": "Red"}, {"po": 2, "n": "hub", "v": true, "d": "boolean"}]},
		{"edgeAttributes": [{"po": 10, "n": "weight", "v": 0.5, "d": "double"}, {"po": 10, "n": "rank", "v": 3, "d": "double"}]}
	]`

	formats := []struct {
		format export.Format
		rdf    rdf.Format
	}{
		{export.FormatTurtle, rdf.Turtle},
		{export.FormatNTriples, rdf.NTriples},
	}

	for _, policy := range []export.Policy{export.PolicyAbstract, export.PolicyAspect, export.PolicyPredicate} {
		for _, handles := range []graph.Handles{graph.HandlesSequential, graph.HandlesUUID} {
			for _, f := range formats {
				t.Run(string(policy)+"/"+string(handles)+"/"+string(f.format), func(t *testing.T) {
					g := exportWith(t, policy, input, export.WithHandles(handles))

					output, err := export.Serialize(g, f.format)
					if err != nil {
						t.Fatalf("Serialize failed: %v", err)
					}
					decoded, err := decodeAll(output, f.rdf)
					if err != nil {
						t.Fatalf("decode %s: %v\n%s", f.format, err, output)
					}

					want := tripleSet(g.Triples())
					got := tripleSet(decoded)
					for key := range want {
						if !got[key] {
							t.Errorf("triple lost in %s: %s", f.format, key)
						}
					}
					for key := range got {
						if !want[key] {
							t.Errorf("unexpected triple in %s: %s", f.format, key)
						}
					}
				})
			}
		}
	}
}

func TestSerialize_EdgeAsPredicate(t *testing.T) {
	g := exportWith(t, export.PolicyPredicate, scenario)

	for _, f := range []rdf.Format{rdf.Turtle, rdf.NTriples} {
		format := export.FormatTurtle
		if f == rdf.NTriples {
			format = export.FormatNTriples
		}
		output, err := export.Serialize(g, format)
		if err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		decoded, err := decodeAll(output, f)
		if err != nil {
			t.Fatalf("decode %s: %v", format, err)
		}
		if !tripleSet(decoded)["<urn:cx:node:0> <urn:cx:edge:0> <urn:cx:node:1>"] {
			t.Errorf("%s output lost the edge statement:\n%s", format, output)
		}
	}
}

func TestJSONLDWriter_EncodeError(t *testing.T) {
	g := exportWith(t, export.PolicyPredicate, scenario)

	jw := export.NewJSONLDWriter()
	jw.AddGraph(g)
	jw.Document().Graph[0].Properties["broken"] = make(chan int)

	var buf bytes.Buffer
	if err := jw.Encode(&buf); err == nil {
		t.Error("Encode should report values JSON cannot represent")
	}

	jw = export.NewJSONLDWriter()
	jw.AddGraph(g)
	buf.Reset()
	if err := jw.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Error("Encode should write valid JSON")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	g := exportWith(t, export.PolicyAbstract, scenario)
	if _, err := export.Serialize(g, "rdfxml"); err == nil {
		t.Error("Serialize should reject unsupported formats")
	}
}

func TestFormatRegistry(t *testing.T) {
	for _, name := range export.FormatNames() {
		info, ok := export.GetFormatInfo(export.Format(name))
		if !ok {
			t.Fatalf("format %q not registered", name)
		}
		if info.MIMEType == "" || !strings.HasPrefix(info.Extension, ".") {
			t.Errorf("incomplete format info: %+v", info)
		}
	}
}

// tripleSet keys triples by their N-Triples form.
func tripleSet(triples []rdf.Triple) map[string]bool {
	set := make(map[string]bool, len(triples))
	for _, tr := range triples {
		key := tr.Subj.Serialize(rdf.NTriples) + " " + tr.Pred.Serialize(rdf.NTriples) + " " + tr.Obj.Serialize(rdf.NTriples)
		set[key] = true
	}
	return set
}

func decodeAll(data string, format rdf.Format) ([]rdf.Triple, error) {
	dec := rdf.NewTripleDecoder(strings.NewReader(data), format)
	var triples []rdf.Triple
	for {
		tr, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return triples, nil
		}
		if err != nil {
			return nil, err
		}
		triples = append(triples, tr)
	}
}
