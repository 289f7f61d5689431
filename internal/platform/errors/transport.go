package errors

// HTTP transport helpers for mapping feed failures to project ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// FromTransport wraps a failed round trip (dial, TLS, read, timeout) as an unavailable error.
// If err is nil, returns nil. Context cancellation keeps its own message so callers can tell
func FromTransport(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.Canceled) {
		return Wrap(err, ErrorCodeUnavailable, msg+": canceled")
	}
	return Wrap(err, ErrorCodeUnavailable, msg)
}

// FromStatus maps a non-2xx upstream status to an ErrorCode.
// 429 keeps TooManyRequests, everything else is Unavailable (the feed is down for us)
func FromStatus(status int, url string) error {
	if status >= 200 && status < 300 {
		return nil
	}
	code := ErrorCodeUnavailable
	if status == http.StatusTooManyRequests {
		code = ErrorCodeTooManyRequests
	}
	return &Error{code: code, msg: fmt.Sprintf("upstream %s: http %d", url, status), op: "http"}
}

// FromDecode wraps a body that could not be decoded as an upstream error
func FromDecode(err error, what string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, ErrorCodeUpstream, "decode "+what)
}

// IsNetwork reports whether err is a transport or status failure
func IsNetwork(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeUnavailable, ErrorCodeTooManyRequests:
		return true
	}
	return false
}

// IsDecode reports whether err is a decode failure
func IsDecode(err error) bool { return IsCode(err, ErrorCodeUpstream) }

// IsRetryable reports whether a feed error represents a transient condition worth
// retrying. It handles our coded errors, net.Error timeouts, and the common text
// the standard transport emits when a connection is dropped
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Do not retry local cancellations/timeouts; let the caller decide higher-level retries
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	if e, ok := As(err); ok {
		switch e.code {
		case ErrorCodeUnavailable, ErrorCodeTooManyRequests:
			return true
		case ErrorCodeUnknown:
			// fall through to the root cause
		default:
			return false
		}
	}

	root := Root(err)

	var ne net.Error
	if stderrs.As(root, &ne) && ne.Timeout() {
		return true
	}

	s := strings.ToLower(root.Error())
	switch {
	case strings.Contains(s, "connection reset by peer"),
		strings.Contains(s, "connection refused"),
		strings.Contains(s, "broken pipe"),
		strings.Contains(s, "unexpected eof"),
		strings.Contains(s, "server closed idle connection"):
		return true
	default:
		return false
	}
}
