package mocks

import "cleanbook/infras/otel"

// scope discards everything recorded on it.
type scope struct{}

func NewScope() otel.Scope {
	return scope{}
}

func (scope) End() {}

func (scope) TraceError(error) {}

func (scope) TraceIfError(error) {}

func (scope) AddEvent(string, map[string]any) {}

func (scope) SetAttribute(string, any) {}

func (scope) SetAttributes(map[string]any) {}
