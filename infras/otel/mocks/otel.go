package mocks

import (
	"cleanbook/infras/otel"
	"context"
)

type tracer struct{}

// NewOtel returns a tracer whose scopes record nothing, for unit tests.
func NewOtel() otel.Otel {
	return tracer{}
}

func (tracer) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (tracer) Shutdown(context.Context) error {
	return nil
}
