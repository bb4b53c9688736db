package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Ahmed-Sermani/linkrank/service"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(GroupTestSuite))

type GroupTestSuite struct{}

func Test(t *testing.T) { gc.TestingT(t) }

func (s *GroupTestSuite) TestCancelStopsAllServices(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	a, b := blockingService("a"), blockingService("b")

	done := make(chan error, 1)
	go func() { done <- service.Group{a, b}.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		c.Assert(err, gc.IsNil)
	case <-time.After(10 * time.Second):
		c.Fatal("timed out waiting for the group to exit")
	}
}

func (s *GroupTestSuite) TestServiceErrorCancelsOthers(c *gc.C) {
	failing := serviceFunc{name: "failing", run: func(context.Context) error {
		return xerrors.New("boom")
	}}

	err := service.Group{failing, blockingService("blocked")}.Run(context.Background())
	c.Assert(err, gc.ErrorMatches, "(?s).*failing: boom.*")
}

func (s *GroupTestSuite) TestGroupReturnsWhenServicesFinish(c *gc.C) {
	finished := serviceFunc{name: "oneshot", run: func(context.Context) error { return nil }}
	c.Assert(service.Group{finished, finished}.Run(context.Background()), gc.IsNil)
}

type serviceFunc struct {
	name string
	run  func(context.Context) error
}

func (s serviceFunc) Name() string                  { return s.name }
func (s serviceFunc) Run(ctx context.Context) error { return s.run(ctx) }

func blockingService(name string) service.Service {
	return serviceFunc{name: name, run: func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}}
}
