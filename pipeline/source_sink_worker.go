package pipeline

import (
	"context"

	"golang.org/x/xerrors"
)

// sourceWorker pushes the payloads of source into the input channel of the
// first stage.
func sourceWorker(ctx context.Context, source Source, outCh chan<- Payload, errCh chan<- error) {
	for source.Next(ctx) {
		payload := source.Payload()
		select {
		case outCh <- payload:
		case <-ctx.Done():
			return
		}
	}

	if err := source.Error(); err != nil {
		EmitError(xerrors.Errorf("pipeline source: %w", err), errCh)
	}
}

// sinkWorker hands the output of the last stage to sink and marks every
// consumed payload as processed.
func sinkWorker(ctx context.Context, sink Sink, inCh <-chan Payload, errCh chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, open := <-inCh:
			if !open {
				return
			}
			if err := sink.Consume(ctx, payload); err != nil {
				EmitError(xerrors.Errorf("pipeline sink: %w", err), errCh)
				return
			}
			payload.MarkAsProcessed()
		}
	}
}

// EmitError attempts to queue err on errCh. The error is dropped if the
// channel is already full.
func EmitError(err error, errCh chan<- error) {
	select {
	case errCh <- err:
	default: // error channel is full.
	}
}
