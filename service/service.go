/*
   Runs long-lived application services side by side.
*/
package service

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Service describes a long-lived component managed by a Group.
type Service interface {
	Name() string

	// Run executes the service and blocks until the context gets cancelled
	// or an error occurs.
	Run(context.Context) error
}

// Group is a list of Service instances that can be executed in parallel.
type Group []Service

// Run executes all Service instances in the group using the provided
// context. Calls to Run block until all services have completed executing
// either because the context was cancelled or any of the services reported
// an error. An error reported by one service cancels all the others.
func (g Group) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(g))
	wg.Add(len(g))
	for _, s := range g {
		go func(s Service) {
			defer wg.Done()
			if err := s.Run(runCtx); err != nil {
				errCh <- xerrors.Errorf("%s: %w", s.Name(), err)
				cancel()
			}
		}(s)
	}

	wg.Wait()
	close(errCh)

	var err error
	for svcErr := range errCh {
		err = multierror.Append(err, svcErr)
	}
	return err
}
