package runners

import (
	"context"

	"github.com/Ahmed-Sermani/linkrank/pipeline"
	"golang.org/x/xerrors"
)

type fifo struct {
	proc pipeline.Processor
}

// FIFO returns a StageRunner that processes payloads in first-in-first-out
// order. Each payload is passed to proc and the output is forwarded to the
// next stage.
func FIFO(proc pipeline.Processor) pipeline.StageRunner {
	return fifo{proc: proc}
}

func (runner fifo) Run(ctx context.Context, params pipeline.StageParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, open := <-params.Input():
			if !open {
				return
			}
			processed, err := runner.proc.Process(ctx, payload)
			if err != nil {
				pipeline.EmitError(
					xerrors.Errorf("pipeline stage %d: %w", params.StageIndex(), err),
					params.Error(),
				)
				return
			}
			// Nothing to forward; the payload ends its journey here.
			if processed == nil {
				payload.MarkAsProcessed()
				continue
			}

			select {
			case params.Output() <- processed:
			case <-ctx.Done():
				return
			}
		}
	}
}
