package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/femtomc/abstrap/internal/ir"
	"github.com/femtomc/abstrap/internal/script"
)

// ErrNotFound indicates no module matched the given id or name.
var ErrNotFound = errors.New("module not found")

// Module is one stored operation tree with its metadata.
type Module struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Fingerprint     string `json:"fingerprint"`
	EncodingVersion string `json:"encoding_version"`
	Seq             int64  `json:"seq"`
}

// Save persists the tree rooted at op under the given name and returns
// the stored module. Saves are deduplicated by fingerprint: persisting
// a tree whose content already exists returns the existing module
// unchanged, including its original name.
func (s *Store) Save(ctx context.Context, name string, op *ir.Operation) (*Module, error) {
	fingerprint, err := ir.Fingerprint(op)
	if err != nil {
		return nil, fmt.Errorf("save module: %w", err)
	}

	doc, err := script.Encode(name, op)
	if err != nil {
		return nil, fmt.Errorf("save module: %w", err)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("save module: marshal body: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO modules (id, name, fingerprint, encoding_version, body)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`, s.newID(), name, fingerprint, ir.EncodingVersion, string(body))
	if err != nil {
		return nil, fmt.Errorf("save module: %w", err)
	}

	return s.byFingerprint(ctx, fingerprint)
}

// Get returns the module with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Module, error) {
	return s.scanOne(ctx, `
		SELECT seq, id, name, fingerprint, encoding_version FROM modules WHERE id = ?
	`, id)
}

// GetByName returns the most recently saved module with the given name.
func (s *Store) GetByName(ctx context.Context, name string) (*Module, error) {
	return s.scanOne(ctx, `
		SELECT seq, id, name, fingerprint, encoding_version FROM modules
		WHERE name = ? ORDER BY seq DESC LIMIT 1
	`, name)
}

// List returns all modules in insertion order.
func (s *Store) List(ctx context.Context) ([]Module, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, name, fingerprint, encoding_version FROM modules ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	var modules []Module
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.Seq, &m.ID, &m.Name, &m.Fingerprint, &m.EncodingVersion); err != nil {
			return nil, fmt.Errorf("list modules: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// Document returns the rebuild document stored for the module id.
func (s *Store) Document(ctx context.Context, id string) (*script.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM modules WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("module %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	var doc script.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return &doc, nil
}

// LoadOperation rebuilds the stored tree by re-driving the construction
// sequence its document describes, then verifies the fingerprint still
// matches the stored one.
func (s *Store) LoadOperation(ctx context.Context, id string, resolve script.Resolver) (*ir.Operation, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.Document(ctx, id)
	if err != nil {
		return nil, err
	}

	op, err := script.Build(doc, resolve)
	if err != nil {
		return nil, fmt.Errorf("rebuild module %q: %w", id, err)
	}

	fingerprint, err := ir.Fingerprint(op)
	if err != nil {
		return nil, fmt.Errorf("rebuild module %q: %w", id, err)
	}
	if fingerprint != m.Fingerprint {
		return nil, fmt.Errorf("rebuild module %q: fingerprint mismatch: stored %s, rebuilt %s", id, m.Fingerprint, fingerprint)
	}
	return op, nil
}

func (s *Store) byFingerprint(ctx context.Context, fingerprint string) (*Module, error) {
	return s.scanOne(ctx, `
		SELECT seq, id, name, fingerprint, encoding_version FROM modules WHERE fingerprint = ?
	`, fingerprint)
}

func (s *Store) scanOne(ctx context.Context, query string, arg any) (*Module, error) {
	var m Module
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&m.Seq, &m.ID, &m.Name, &m.Fingerprint, &m.EncodingVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("module %v: %w", arg, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query module: %w", err)
	}
	return &m, nil
}
