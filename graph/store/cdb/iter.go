package cdb

import (
	"database/sql"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"golang.org/x/xerrors"
)

type recordIterator struct {
	rows          *sql.Rows
	lastErr       error
	latchedRecord *graph.Record
}

func (i *recordIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	r := &graph.Record{}
	i.lastErr = i.rows.Scan(&r.Source, &r.Target, &r.Weight)
	if i.lastErr != nil {
		return false
	}
	i.latchedRecord = r
	return true
}

func (i *recordIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

func (i *recordIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return xerrors.Errorf("record iter: %w", err)
	}
	return nil
}

func (i *recordIterator) Record() *graph.Record {
	return i.latchedRecord
}
