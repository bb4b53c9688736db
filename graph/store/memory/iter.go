package memory

import "github.com/Ahmed-Sermani/linkrank/graph"

// recordIterator is a graph.RecordIterator over a snapshot taken by Records.
type recordIterator struct {
	records []graph.Record
	curIdx  int
}

func (i *recordIterator) Next() bool {
	if i.curIdx >= len(i.records) {
		return false
	}
	i.curIdx++
	return true
}

func (i *recordIterator) Record() *graph.Record {
	r := new(graph.Record)
	*r = i.records[i.curIdx-1]
	return r
}

func (i *recordIterator) Error() error {
	return nil
}

func (i *recordIterator) Close() error {
	return nil
}
