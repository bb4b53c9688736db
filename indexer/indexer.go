/*
   Exposes ranked articles for title search ordered by PageRank score.
*/
package indexer

import (
	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

var (
	// ErrNotFound is returned by the indexer when attempting to look up
	// a document that does not exist.
	ErrNotFound = xerrors.New("not found")

	// ErrMissingLinkID is returned when attempting to index a document
	// that does not specify a valid link ID.
	ErrMissingLinkID = xerrors.New("document does not provide a valid linkID")
)

// Indexer is implemented by objects that can index and search documents.
type Indexer interface {
	// Index inserts a new document to the index or updates the title of an
	// existing one.
	Index(doc *Document) error

	// FindByID looks up a document by its link ID.
	FindByID(linkID uuid.UUID) (*Document, error)

	// Search the index for a particular query and return back a result
	// iterator.
	Search(query Query) (Iterator, error)

	// UpdateScore updates the PageRank score for a document with the
	// specified link ID.
	UpdateScore(linkID uuid.UUID, score float64) error
}

// Iterator is implemented by objects that can paginate search results.
type Iterator interface {
	Close() error
	Next() bool
	Error() error
	Document() *Document

	// TotalCount returns the approximate number of search results.
	TotalCount() uint64
}

// QueryType describes the types of queries supported by the indexer
// implementations.
type QueryType uint8

const (
	// QueryTypeMatch requests the indexer to match each expression term.
	QueryTypeMatch QueryType = iota

	// QueryTypePhrase searches for an exact phrase match.
	QueryTypePhrase
)

// Query encapsulates a set of parameters to use when searching indexed
// documents.
type Query struct {
	Type   QueryType
	Expr   string
	Offset uint64
}
