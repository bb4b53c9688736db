package memory

import (
	"sync"
	"time"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

var _ graph.Store = (*InMemoryStore)(nil)

type linkKey struct {
	src, dst string
}

type storedRecord struct {
	ID        uuid.UUID
	Record    graph.Record
	UpdatedAt time.Time
}

// InMemoryStore is a graph.Store that keeps every record in memory. It is
// safe for concurrent use.
type InMemoryStore struct {
	mu sync.RWMutex

	records map[uuid.UUID]*storedRecord
	keyIdx  map[linkKey]*storedRecord
	// bySource keeps the records of every source in insertion order.
	bySource map[string][]uuid.UUID
	sources  []string
}

// NewInMemoryStore creates a new in-memory record store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records:  make(map[uuid.UUID]*storedRecord),
		keyIdx:   make(map[linkKey]*storedRecord),
		bySource: make(map[string][]uuid.UUID),
	}
}

// UpsertRecord inserts r or adds its weight to the existing record for the
// same (source, target) pair.
func (s *InMemoryStore) UpsertRecord(r *graph.Record) error {
	if err := graph.ValidateRecord(r); err != nil {
		return xerrors.Errorf("upsert record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := linkKey{src: r.Source, dst: r.Target}
	if existing := s.keyIdx[key]; existing != nil {
		existing.Record.Weight += r.Weight
		existing.UpdatedAt = time.Now()
		return nil
	}

	rec := &storedRecord{Record: *r, UpdatedAt: time.Now()}
	for {
		rec.ID = uuid.New()
		if s.records[rec.ID] == nil {
			break
		}
	}

	s.records[rec.ID] = rec
	s.keyIdx[key] = rec
	if _, known := s.bySource[r.Source]; !known {
		s.sources = append(s.sources, r.Source)
	}
	s.bySource[r.Source] = append(s.bySource[r.Source], rec.ID)
	return nil
}

// Records returns an iterator over a snapshot of the stored records.
func (s *InMemoryStore) Records() (graph.RecordIterator, error) {
	s.mu.RLock()
	list := make([]graph.Record, 0, len(s.records))
	for _, src := range s.sources {
		for _, id := range s.bySource[src] {
			list = append(list, s.records[id].Record)
		}
	}
	s.mu.RUnlock()
	return &recordIterator{records: list}, nil
}

// Len returns the number of distinct (source, target) pairs.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
