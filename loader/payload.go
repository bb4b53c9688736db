package loader

import (
	"sync"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/Ahmed-Sermani/linkrank/pipeline"
)

var (
	_ pipeline.Payload = (*rowPayload)(nil)

	// Payloads are recycled to keep GC pressure low on large inputs.
	payloadPool = sync.Pool{
		New: func() any { return new(rowPayload) },
	}
)

type rowPayload struct {
	// Line is the 1-based position of the row in the input.
	Line   int
	Fields []string

	Record graph.Record
}

// NewRowPayload returns a pooled payload for a raw `title,link,count` row.
func NewRowPayload(line int, fields []string) pipeline.Payload {
	p := payloadPool.Get().(*rowPayload)
	p.Line = line
	p.Fields = append(p.Fields, fields...)
	return p
}

func (p *rowPayload) Clone() pipeline.Payload {
	newp := payloadPool.Get().(*rowPayload)
	newp.Line = p.Line
	newp.Fields = append(newp.Fields, p.Fields...)
	newp.Record = p.Record
	return newp
}

// MarkAsProcessed resets the payload and returns it to the pool. The
// capacity of Fields is kept for the next row.
func (p *rowPayload) MarkAsProcessed() {
	p.Line = 0
	p.Fields = p.Fields[:0]
	p.Record = graph.Record{}
	payloadPool.Put(p)
}
