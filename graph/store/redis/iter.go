package redis

import (
	"github.com/Ahmed-Sermani/linkrank/graph"
	"golang.org/x/xerrors"
)

type recordIterator struct {
	s *RedisStore

	sources []string
	pending []graph.Record

	latchedRecord *graph.Record
	lastErr       error
}

func (i *recordIterator) Next() bool {
	for len(i.pending) == 0 {
		if i.lastErr != nil || len(i.sources) == 0 {
			return false
		}
		i.lastErr = i.fetch(i.sources[0])
		i.sources = i.sources[1:]
	}

	i.latchedRecord = &i.pending[0]
	i.pending = i.pending[1:]
	return true
}

// fetch loads every outgoing link of source into the pending buffer.
func (i *recordIterator) fetch(source string) error {
	links, err := i.s.client.HGetAll(i.s.ctx, i.s.KeyOutLinks(source)).Result()
	if err != nil {
		return xerrors.Errorf("record iter: %w", err)
	}
	for target, val := range links {
		r, err := parseWeight(source, target, val)
		if err != nil {
			return xerrors.Errorf("record iter: %w", err)
		}
		i.pending = append(i.pending, r)
	}
	return nil
}

func (i *recordIterator) Record() *graph.Record {
	return i.latchedRecord
}

func (i *recordIterator) Error() error {
	return i.lastErr
}

func (i *recordIterator) Close() error {
	i.sources, i.pending = nil, nil
	return nil
}
