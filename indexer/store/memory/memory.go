package memory

import (
	"sync"
	"time"

	"github.com/Ahmed-Sermani/linkrank/indexer"
	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/search/query"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

// The size of each page of results that is cached locally by the iterator.
const batchSize = 10

var _ indexer.Indexer = (*InMemoryBleveIndexer)(nil)

// InMemoryBleveIndexer is an indexer.Indexer backed by an in-memory bleve
// index. It is safe for concurrent use.
type InMemoryBleveIndexer struct {
	mu   sync.RWMutex
	docs map[string]*indexer.Document

	idx bleve.Index
}

// bleveDoc is the part of a document that bleve sees. PageRank is indexed
// so that search results can be sorted on it.
type bleveDoc struct {
	Title    string
	PageRank float64
}

// NewInMemoryBleveIndexer creates a text indexer that uses an in-memory
// bleve instance for indexing documents.
func NewInMemoryBleveIndexer() (*InMemoryBleveIndexer, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, xerrors.Errorf("create bleve index: %w", err)
	}

	return &InMemoryBleveIndexer{
		idx:  idx,
		docs: make(map[string]*indexer.Document),
	}, nil
}

// Index adds doc to the index or refreshes the title of an already indexed
// document. The stored PageRank score is preserved.
func (i *InMemoryBleveIndexer) Index(doc *indexer.Document) error {
	if doc.LinkID == uuid.Nil {
		return xerrors.Errorf("index: %w", indexer.ErrMissingLinkID)
	}

	doc.IndexedAt = time.Now()
	dcopy := copyDoc(doc)
	key := dcopy.LinkID.String()

	i.mu.Lock()
	defer i.mu.Unlock()
	if orig, exists := i.docs[key]; exists {
		dcopy.PageRank = orig.PageRank
	}

	if err := i.idx.Index(key, makeBleveDoc(dcopy)); err != nil {
		return xerrors.Errorf("index: %w", err)
	}
	i.docs[key] = dcopy
	return nil
}

// FindByID looks up a document by its link ID.
func (i *InMemoryBleveIndexer) FindByID(linkID uuid.UUID) (*indexer.Document, error) {
	return i.findByID(linkID.String())
}

func (i *InMemoryBleveIndexer) findByID(key string) (*indexer.Document, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if d, found := i.docs[key]; found {
		return copyDoc(d), nil
	}
	return nil, xerrors.Errorf("find by ID: %w", indexer.ErrNotFound)
}

// UpdateScore sets the PageRank score of the document with the specified
// link ID. Unknown IDs get a placeholder document without a title.
func (i *InMemoryBleveIndexer) UpdateScore(linkID uuid.UUID, score float64) error {
	key := linkID.String()

	i.mu.Lock()
	defer i.mu.Unlock()
	doc, found := i.docs[key]
	if !found {
		doc = &indexer.Document{LinkID: linkID}
		i.docs[key] = doc
	}

	doc.PageRank = score
	if err := i.idx.Index(key, makeBleveDoc(doc)); err != nil {
		return xerrors.Errorf("update score: %w", err)
	}
	return nil
}

// Search the index for a particular query and return back a result
// iterator. Results are ordered by PageRank and then by relevance.
func (i *InMemoryBleveIndexer) Search(q indexer.Query) (indexer.Iterator, error) {
	var bq query.Query
	switch q.Type {
	case indexer.QueryTypePhrase:
		bq = bleve.NewMatchPhraseQuery(q.Expr)
	default:
		bq = bleve.NewMatchQuery(q.Expr)
	}

	searchReq := bleve.NewSearchRequest(bq)
	searchReq.SortBy([]string{"-PageRank", "-_score"})
	searchReq.Size = batchSize
	searchReq.From = int(q.Offset)
	rs, err := i.idx.Search(searchReq)
	if err != nil {
		return nil, xerrors.Errorf("search: %w", err)
	}

	return &bleveIterator{idx: i, searchReq: searchReq, rs: rs, cumIdx: q.Offset}, nil
}

// Close the indexer and release any allocated resources.
func (i *InMemoryBleveIndexer) Close() error {
	return i.idx.Close()
}

func copyDoc(d *indexer.Document) *indexer.Document {
	dcopy := new(indexer.Document)
	*dcopy = *d
	return dcopy
}

func makeBleveDoc(d *indexer.Document) bleveDoc {
	return bleveDoc{
		Title:    d.Title,
		PageRank: d.PageRank,
	}
}
