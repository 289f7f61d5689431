package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestFromStatus(t *testing.T) {
	if FromStatus(200, "u") != nil || FromStatus(204, "u") != nil {
		t.Fatalf("2xx must not be an error")
	}
	cases := []struct {
		status int
		code   ErrorCode
	}{
		{http.StatusNotFound, ErrorCodeUnavailable},
		{http.StatusInternalServerError, ErrorCodeUnavailable},
		{http.StatusBadGateway, ErrorCodeUnavailable},
		{http.StatusTooManyRequests, ErrorCodeTooManyRequests},
	}
	for _, c := range cases {
		err := FromStatus(c.status, "https://feed.test/x")
		if CodeOf(err) != c.code {
			t.Fatalf("FromStatus(%d) code = %v, want %v", c.status, CodeOf(err), c.code)
		}
		if !IsNetwork(err) || IsDecode(err) {
			t.Fatalf("FromStatus(%d) should be a network error", c.status)
		}
	}
}

func TestFromTransportAndDecode(t *testing.T) {
	if FromTransport(nil, "x") != nil || FromDecode(nil, "x") != nil {
		t.Fatalf("nil in, nil out")
	}
	n := FromTransport(stderrs.New("dial tcp: connection refused"), "get feed")
	if !IsNetwork(n) || HTTPStatus(n) != http.StatusServiceUnavailable {
		t.Fatalf("transport error mapping: %v", n)
	}
	d := FromDecode(stderrs.New("invalid character"), "matchList")
	if !IsDecode(d) || IsNetwork(d) || HTTPStatus(d) != http.StatusBadGateway {
		t.Fatalf("decode error mapping: %v", d)
	}
	if got := d.Error(); got != "decode matchList: invalid character" {
		t.Fatalf("decode message = %q", got)
	}
	c := FromTransport(context.Canceled, "get feed")
	if got := WireFrom(c).Message; got != "get feed: canceled" {
		t.Fatalf("canceled message = %q", got)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Fatalf("nil should not be retryable")
	}
	if !IsRetryable(FromStatus(503, "u")) || !IsRetryable(FromStatus(429, "u")) {
		t.Fatalf("5xx and 429 should be retryable")
	}
	if IsRetryable(FromDecode(stderrs.New("bad"), "x")) {
		t.Fatalf("decode errors should not be retryable")
	}
	if IsRetryable(fmt.Errorf("wrapped: %w", context.Canceled)) || IsRetryable(context.DeadlineExceeded) {
		t.Fatalf("context errors should not be retryable")
	}
	if !IsRetryable(fmt.Errorf("get: %w", timeoutErr{})) {
		t.Fatalf("net timeout should be retryable")
	}
	if !IsRetryable(stderrs.New("read: connection reset by peer")) {
		t.Fatalf("connection reset should be retryable")
	}
	if IsRetryable(stderrs.New("nope")) || IsRetryable(NotFoundf("x")) {
		t.Fatalf("plain errors should not be retryable")
	}
	if !Retryable(Unavailablef("down")) {
		t.Fatalf("Retryable should delegate to IsRetryable")
	}
}
