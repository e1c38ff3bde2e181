package otel_test

import (
	"cleanbook/config"
	"cleanbook/infras/otel"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "cleanbook"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Book")
	assert.NotNil(t, ctx)

	scope.SetAttributes(map[string]any{
		"date":  "2025-07-04",
		"count": 2,
		"admin": true,
		"times": []string{"10 AM"},
		"price": 150.5,
	})
	scope.AddEvent("claimed", map[string]any{"admin": "admin-1", "at": time.Unix(0, 0)})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}
