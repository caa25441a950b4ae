package pipeline

import (
	"context"
	"time"

	avahttp "github.com/fivetwenty-io/avatax-client/internal/http"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// Invoke runs an operation and blocks until it completes.
func (p *Pipeline) Invoke(ctx context.Context, desc *Descriptor, args Args) (*Result, error) {
	start := time.Now()

	req, err := p.build(desc, args)
	if err != nil {
		return nil, p.finish(desc, start, nil, err)
	}

	err = p.authorize(ctx, desc, req)
	if err != nil {
		return nil, p.finish(desc, start, nil, err)
	}

	resp, err := p.transport.Do(ctx, req)
	result, err := p.interpret(desc, resp, err)

	return result, p.finish(desc, start, result, err)
}

// InvokeAsync runs an operation in the background. Argument errors are
// reported through the returned future too, and no request is sent for them.
func (p *Pipeline) InvokeAsync(ctx context.Context, desc *Descriptor, args Args) *avatax.Future[*Result] {
	start := time.Now()

	req, err := p.build(desc, args)
	if err != nil {
		return avatax.Resolved[*Result](nil, p.finish(desc, start, nil, err))
	}

	future := avatax.NewFuture[*Result]()

	p.authorizeAsync(ctx, desc, req).OnComplete(func(req *avahttp.Request, err error) {
		if err != nil {
			future.Complete(nil, p.finish(desc, start, nil, err))

			return
		}

		p.transport.DoAsync(ctx, req).OnComplete(func(resp *avahttp.Response, err error) {
			result, err := p.interpret(desc, resp, err)
			future.Complete(result, p.finish(desc, start, result, err))
		})
	})

	return future
}

func (p *Pipeline) authorize(ctx context.Context, desc *Descriptor, req *avahttp.Request) error {
	if desc.Anonymous || p.auth == nil {
		return nil
	}

	return p.auth.Authorize(ctx, req.Header)
}

func (p *Pipeline) authorizeAsync(ctx context.Context, desc *Descriptor, req *avahttp.Request) *avatax.Future[*avahttp.Request] {
	if desc.Anonymous || p.auth == nil {
		return avatax.Resolved(req, nil)
	}

	return avatax.Go(func() (*avahttp.Request, error) {
		err := p.auth.Authorize(ctx, req.Header)
		if err != nil {
			return nil, err
		}

		return req, nil
	})
}

// finish records metrics and a debug log entry for a completed call and
// returns err unchanged.
func (p *Pipeline) finish(desc *Descriptor, start time.Time, result *Result, err error) error {
	elapsed := time.Since(start)
	outcome := outcomeOf(err)

	p.metrics.observe(desc.Name, outcome, elapsed)

	if p.logger != nil {
		fields := map[string]interface{}{
			"operation": desc.Name,
			"outcome":   outcome,
			"duration":  elapsed.String(),
		}

		if result != nil {
			fields["status"] = result.StatusCode
		}

		if err != nil {
			fields["error"] = err.Error()
		}

		p.logger.Debug("API call", fields)
	}

	return err
}
