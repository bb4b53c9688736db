package indexer

import (
	"time"

	"github.com/google/uuid"
)

// Document is the searchable view of a ranked article.
type Document struct {
	// LinkID is the name-based identifier handed out by graph.ArticleID.
	LinkID uuid.UUID
	Title  string

	// IndexedAt indicates when the document title was last indexed.
	IndexedAt time.Time

	// PageRank holds the score assigned by the ranker service. Re-indexing
	// a document keeps its current score.
	PageRank float64
}
