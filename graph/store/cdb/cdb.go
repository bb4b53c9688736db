package cdb

import (
	"database/sql"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

var _ graph.Store = (*CockroachDBStore)(nil)

const (
	createSchemaQuery = `
  CREATE TABLE IF NOT EXISTS link_records (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    source TEXT NOT NULL,
    target TEXT NOT NULL,
    weight BIGINT NOT NULL DEFAULT 0 CHECK (weight >= 0),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (source, target)
  )
  `
	upsertRecordQuery = `
  INSERT INTO link_records (source, target, weight, updated_at) VALUES ($1, $2, $3, NOW())
  ON CONFLICT (source, target) DO UPDATE SET weight=link_records.weight + EXCLUDED.weight, updated_at=NOW()
  `
	iterRecordsQuery = `
  SELECT source, target, weight FROM link_records ORDER BY source, target
  `
)

// CockroachDBStore is a graph.Store backed by CockroachDB or PostgreSQL.
type CockroachDBStore struct {
	db *sql.DB
}

// NewCockroachDBStore opens a connection to dsn and makes sure the
// link_records table exists.
func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(createSchemaQuery); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("create schema: %w", err)
	}

	return &CockroachDBStore{db}, nil
}

func (c *CockroachDBStore) Close() error {
	return c.db.Close()
}

func (c *CockroachDBStore) UpsertRecord(r *graph.Record) error {
	if err := graph.ValidateRecord(r); err != nil {
		return xerrors.Errorf("upsert record: %w", err)
	}

	if _, err := c.db.Exec(upsertRecordQuery, r.Source, r.Target, r.Weight); err != nil {
		if isCheckViolation(err) {
			err = graph.ErrInvalidRecord
		}
		return xerrors.Errorf("upsert record: %w", err)
	}
	return nil
}

func isCheckViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}

	return pqErr.Code.Name() == "check_violation"
}

func (c *CockroachDBStore) Records() (graph.RecordIterator, error) {
	rows, err := c.db.Query(iterRecordsQuery)
	if err != nil {
		return nil, xerrors.Errorf("records: %w", err)
	}
	return &recordIterator{rows: rows}, nil
}
