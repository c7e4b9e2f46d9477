package output

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knakk/rdf"

	_ "modernc.org/sqlite"
)

// DefaultSQLitePath is the default location of the triple database.
const DefaultSQLitePath = ".cxrdf/triples.db"

// Term kinds stored in the object_kind column.
const (
	KindIRI     = "iri"
	KindBlank   = "blank"
	KindLiteral = "literal"
)

// SQLiteSink stores every export as a row in an exports table plus one row
// per triple.
type SQLiteSink struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewSQLiteSink opens (or creates) the database at path.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if path == "" {
		path = DefaultSQLitePath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open triple database: %w", err)
	}
	// One writer at a time; batch exports share the sink.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteSink{db: db, path: path, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		policy TEXT NOT NULL,
		triple_count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS triples (
		export_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		subject TEXT NOT NULL,
		predicate TEXT NOT NULL,
		object TEXT NOT NULL,
		object_kind TEXT NOT NULL,
		datatype TEXT,
		PRIMARY KEY (export_id, position),
		FOREIGN KEY (export_id) REFERENCES exports(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_triples_subject ON triples(subject);
	CREATE INDEX IF NOT EXISTS idx_triples_predicate ON triples(predicate);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Write implements Sink. One export is stored in a single transaction.
func (s *SQLiteSink) Write(ctx context.Context, r Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	triples := r.Graph.Triples()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO exports (name, policy, triple_count, created_at) VALUES (?, ?, ?, ?)`,
		r.Name, r.Policy, len(triples), s.now())
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	exportID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("export id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO triples (export_id, position, subject, predicate, object, object_kind, datatype)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare triple insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range triples {
		kind, datatype := termKind(t.Obj)
		if _, err := stmt.ExecContext(ctx, exportID, i,
			t.Subj.String(), t.Pred.String(), t.Obj.String(), kind, datatype); err != nil {
			return fmt.Errorf("insert triple %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ExportRecord is a stored export.
type ExportRecord struct {
	ID        int64
	Name      string
	Policy    string
	Triples   int
	CreatedAt time.Time
}

// TripleRecord is a stored triple.
type TripleRecord struct {
	Subject    string
	Predicate  string
	Object     string
	ObjectKind string
	DataType   string
}

// Exports lists stored exports, oldest first.
func (s *SQLiteSink) Exports(ctx context.Context) ([]ExportRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, policy, triple_count, created_at FROM exports ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	var out []ExportRecord
	for rows.Next() {
		var e ExportRecord
		if err := rows.Scan(&e.ID, &e.Name, &e.Policy, &e.Triples, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Triples returns the triples of one export in insertion order.
func (s *SQLiteSink) Triples(ctx context.Context, exportID int64) ([]TripleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, predicate, object, object_kind, COALESCE(datatype, '')
		 FROM triples WHERE export_id = ? ORDER BY position`, exportID)
	if err != nil {
		return nil, fmt.Errorf("query triples: %w", err)
	}
	defer rows.Close()

	var out []TripleRecord
	for rows.Next() {
		var t TripleRecord
		if err := rows.Scan(&t.Subject, &t.Predicate, &t.Object, &t.ObjectKind, &t.DataType); err != nil {
			return nil, fmt.Errorf("scan triple: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Path returns the database file path.
func (s *SQLiteSink) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func termKind(o rdf.Object) (string, any) {
	switch term := o.(type) {
	case rdf.Literal:
		return KindLiteral, term.DataType.String()
	case rdf.Blank:
		return KindBlank, nil
	default:
		return KindIRI, nil
	}
}
