package loader

import (
	"context"
	"strconv"
	"strings"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/Ahmed-Sermani/linkrank/pipeline"
	"golang.org/x/xerrors"
)

var _ pipeline.Processor = (*rowParser)(nil)

// rowParser turns raw `title,link,count` fields into a graph.Record.
// Titles are only trimmed; case folding is left to the graph builder.
type rowParser struct{}

func newRowParser() *rowParser { return new(rowParser) }

func (rp *rowParser) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*rowPayload)

	weight, err := strconv.Atoi(strings.TrimSpace(payload.Fields[2]))
	if err != nil {
		return nil, xerrors.Errorf("line %d: parse count %q: %w", payload.Line, payload.Fields[2], graph.ErrInvalidRecord)
	}

	payload.Record = graph.Record{
		Source: graph.KeepCase(payload.Fields[0]),
		Target: graph.KeepCase(payload.Fields[1]),
		Weight: weight,
	}
	if err := graph.ValidateRecord(&payload.Record); err != nil {
		return nil, xerrors.Errorf("line %d: %w", payload.Line, err)
	}
	return p, nil
}
