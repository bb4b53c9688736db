package loader

import (
	"context"

	"github.com/Ahmed-Sermani/linkrank/pipeline"
	"golang.org/x/xerrors"
)

var _ pipeline.Processor = (*storeWriter)(nil)

type storeWriter struct {
	store RecordStore
}

func newStoreWriter(store RecordStore) *storeWriter {
	return &storeWriter{store: store}
}

func (sw *storeWriter) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*rowPayload)

	rec := payload.Record
	if err := sw.store.UpsertRecord(&rec); err != nil {
		return nil, xerrors.Errorf("line %d: %w", payload.Line, err)
	}
	return p, nil
}
