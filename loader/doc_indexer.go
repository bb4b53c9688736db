package loader

import (
	"context"
	"time"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/Ahmed-Sermani/linkrank/indexer"
	"github.com/Ahmed-Sermani/linkrank/pipeline"
	"golang.org/x/xerrors"
)

var _ pipeline.Processor = (*docIndexer)(nil)

// docIndexer indexes the source article of each record. It consumes its
// payload so that only the store branch reaches the sink.
type docIndexer struct {
	indexer   DocumentIndexer
	normalize func(string) string
}

func newDocIndexer(idx DocumentIndexer, normalize func(string) string) *docIndexer {
	return &docIndexer{
		indexer:   idx,
		normalize: normalize,
	}
}

func (di *docIndexer) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*rowPayload)

	doc := &indexer.Document{
		LinkID:    graph.ArticleID(di.normalize(payload.Record.Source)),
		Title:     payload.Record.Source,
		IndexedAt: time.Now(),
	}
	if err := di.indexer.Index(doc); err != nil {
		return nil, xerrors.Errorf("line %d: %w", payload.Line, err)
	}
	return nil, nil
}
