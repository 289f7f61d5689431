package net_test

import (
	"context"
	"testing"

	pnet "oasis/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("request id and viewport", func(t *testing.T) {
		ctx := pnet.WithViewport(pnet.WithRequest(base, "req-123"), 390)

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.ViewportWidth(ctx); got != 390 {
			t.Fatalf("ViewportWidth got %d want 390", got)
		}
	})

	t.Run("non positive width is ignored", func(t *testing.T) {
		ctx := pnet.WithViewport(base, -5)
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged for a bad width")
		}
		if got := pnet.ViewportWidth(ctx); got != 0 {
			t.Fatalf("ViewportWidth got %d want 0", got)
		}
	})

	t.Run("no ids returns same ctx and empty getters", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "")

		// should be the same reference since nothing was set
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when id is empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})
}
