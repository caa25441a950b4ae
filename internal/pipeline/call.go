package pipeline

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// Call invokes an operation declared with Returns JSON[T].
func Call[T any](ctx context.Context, p *Pipeline, desc *Descriptor, args Args) (*T, error) {
	result, err := p.Invoke(ctx, desc, args)
	if err != nil {
		return nil, err
	}

	return valueOf[T](desc, result)
}

// CallAsync is the asynchronous form of Call.
func CallAsync[T any](ctx context.Context, p *Pipeline, desc *Descriptor, args Args) *avatax.Future[*T] {
	return avatax.Then(p.InvokeAsync(ctx, desc, args), func(result *Result) (*T, error) {
		return valueOf[T](desc, result)
	})
}

// Exec invokes an operation whose success response carries no body.
func Exec(ctx context.Context, p *Pipeline, desc *Descriptor, args Args) error {
	_, err := p.Invoke(ctx, desc, args)

	return err
}

// ExecAsync is the asynchronous form of Exec.
func ExecAsync(ctx context.Context, p *Pipeline, desc *Descriptor, args Args) *avatax.Future[avatax.Empty] {
	return avatax.Then(p.InvokeAsync(ctx, desc, args), func(*Result) (avatax.Empty, error) {
		return avatax.Empty{}, nil
	})
}

func valueOf[T any](desc *Descriptor, result *Result) (*T, error) {
	value, ok := result.Value.(*T)
	if !ok {
		return nil, fmt.Errorf("%s: %w: got %T", desc.Name, avatax.ErrUnexpectedType, result.Value)
	}

	return value, nil
}
