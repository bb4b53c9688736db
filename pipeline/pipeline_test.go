package pipeline_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/Ahmed-Sermani/linkrank/pipeline"
	"github.com/Ahmed-Sermani/linkrank/pipeline/runners"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(PipelineTestSuite))

type PipelineTestSuite struct{}

func Test(t *testing.T) { gc.TestingT(t) }

func (s *PipelineTestSuite) TestFIFOChain(c *gc.C) {
	p := pipeline.New(
		runners.FIFO(addSuffix("a")),
		runners.FIFO(addSuffix("b")),
	)

	src := &sourceStub{data: []string{"1", "2", "3"}}
	sink := new(sinkStub)
	c.Assert(p.Process(context.TODO(), src, sink), gc.IsNil)
	c.Assert(sink.values(), gc.DeepEquals, []string{"1ab", "2ab", "3ab"})
}

func (s *PipelineTestSuite) TestFixedWorkerPool(c *gc.C) {
	var data []string
	for i := 0; i < 100; i++ {
		data = append(data, fmt.Sprintf("%03d", i))
	}

	p := pipeline.New(runners.FixedWorkerPool(addSuffix("!"), 8))
	sink := new(sinkStub)
	c.Assert(p.Process(context.TODO(), &sourceStub{data: data}, sink), gc.IsNil)

	got := sink.values()
	sort.Strings(got)
	c.Assert(got, gc.HasLen, len(data))
	for i, v := range got {
		c.Assert(v, gc.Equals, data[i]+"!")
	}
}

func (s *PipelineTestSuite) TestBroadcastClonesPayloads(c *gc.C) {
	p := pipeline.New(runners.Broadcast(addSuffix("x"), addSuffix("y")))
	sink := new(sinkStub)
	c.Assert(p.Process(context.TODO(), &sourceStub{data: []string{"1", "2"}}, sink), gc.IsNil)

	got := sink.values()
	sort.Strings(got)
	c.Assert(got, gc.DeepEquals, []string{"1x", "1y", "2x", "2y"})
}

func (s *PipelineTestSuite) TestDroppedPayloadsAreMarkedProcessed(c *gc.C) {
	drop := pipeline.ProcessorFunc(func(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
		if p.(*stringPayload).val == "drop" {
			return nil, nil
		}
		return p, nil
	})

	src := &sourceStub{data: []string{"keep", "drop", "keep"}}
	sink := new(sinkStub)
	c.Assert(pipeline.New(runners.FIFO(drop)).Process(context.TODO(), src, sink), gc.IsNil)
	c.Assert(sink.values(), gc.DeepEquals, []string{"keep", "keep"})

	for _, p := range src.emitted {
		c.Assert(p.processed, gc.Equals, true, gc.Commentf("payload %q", p.val))
	}
}

func (s *PipelineTestSuite) TestStageErrorAbortsProcessing(c *gc.C) {
	expErr := xerrors.New("stage failed")
	fail := pipeline.ProcessorFunc(func(context.Context, pipeline.Payload) (pipeline.Payload, error) {
		return nil, expErr
	})

	err := pipeline.New(runners.FIFO(fail)).Process(context.TODO(), &sourceStub{data: []string{"1", "2"}}, new(sinkStub))
	c.Assert(xerrors.Is(err, expErr), gc.Equals, true)
	c.Assert(err, gc.ErrorMatches, "(?s).*pipeline stage 0: stage failed.*")
}

func (s *PipelineTestSuite) TestSourceAndSinkErrors(c *gc.C) {
	srcErr := xerrors.New("source exploded")
	err := pipeline.New(runners.FIFO(addSuffix("a"))).Process(
		context.TODO(), &sourceStub{data: []string{"1"}, err: srcErr}, new(sinkStub),
	)
	c.Assert(xerrors.Is(err, srcErr), gc.Equals, true)

	sinkErr := xerrors.New("sink exploded")
	err = pipeline.New(runners.FIFO(addSuffix("a"))).Process(
		context.TODO(), &sourceStub{data: []string{"1"}}, &sinkStub{err: sinkErr},
	)
	c.Assert(xerrors.Is(err, sinkErr), gc.Equals, true)
}

func (s *PipelineTestSuite) TestCancelledContext(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := new(sinkStub)
	err := pipeline.New(runners.FIFO(addSuffix("a"))).Process(ctx, &sourceStub{data: []string{"1", "2"}}, sink)
	c.Assert(err, gc.IsNil)
	c.Assert(len(sink.values()) <= 2, gc.Equals, true)
}

type stringPayload struct {
	mu        sync.Mutex
	val       string
	processed bool
}

func (p *stringPayload) Clone() pipeline.Payload { return &stringPayload{val: p.val} }

func (p *stringPayload) MarkAsProcessed() {
	p.mu.Lock()
	p.processed = true
	p.mu.Unlock()
}

func addSuffix(suffix string) pipeline.Processor {
	return pipeline.ProcessorFunc(func(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
		sp := p.(*stringPayload)
		sp.val += suffix
		return sp, nil
	})
}

type sourceStub struct {
	data    []string
	err     error
	idx     int
	emitted []*stringPayload
}

func (s *sourceStub) Next(context.Context) bool {
	if s.idx >= len(s.data) {
		return false
	}
	s.emitted = append(s.emitted, &stringPayload{val: s.data[s.idx]})
	s.idx++
	return true
}

func (s *sourceStub) Payload() pipeline.Payload { return s.emitted[len(s.emitted)-1] }
func (s *sourceStub) Error() error              { return s.err }

type sinkStub struct {
	mu   sync.Mutex
	data []string
	err  error
}

func (s *sinkStub) Consume(_ context.Context, p pipeline.Payload) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	s.data = append(s.data, p.(*stringPayload).val)
	s.mu.Unlock()
	return nil
}

func (s *sinkStub) values() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.data...)
}
