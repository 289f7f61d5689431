// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyViewport ctxKey = "viewport_width"
)

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithViewport annotates context with the client viewport width in CSS pixels
func WithViewport(ctx context.Context, width int) context.Context {
	if width > 0 {
		ctx = context.WithValue(ctx, keyViewport, width)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// ViewportWidth returns the client viewport width on the context, 0 when unknown
func ViewportWidth(ctx context.Context) int {
	if v, ok := ctx.Value(keyViewport).(int); ok {
		return v
	}
	return 0
}
