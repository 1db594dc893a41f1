package whoisclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultMaxBytes = 1 << 20
)

type Transport interface {
	RoundTrip(ctx context.Context, addr string, query string) (string, time.Duration, error)
}

type tcpTransport struct {
	timeout  time.Duration
	maxBytes int64
}

// RoundTrip performs one whois exchange on a fresh connection: write the
// query line, then read until the peer closes the stream. One deadline
// bounds connect, write and read.
func (t *tcpTransport) RoundTrip(ctx context.Context, addr string, query string) (string, time.Duration, error) {
	timeout := t.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBytes := t.maxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	// A context deadline is the caller's per-query timer and takes
	// precedence over the configured default.
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}

	start := time.Now()
	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", time.Since(start), err
	}
	defer conn.Close()

	if err := conn.SetDeadline(deadline); err != nil {
		return "", time.Since(start), err
	}

	// Cancellation must unblock the read immediately, not at the deadline.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.SetDeadline(time.Now())
		case <-done:
		}
	}()

	if _, err := fmt.Fprintf(conn, "%s\r\n", query); err != nil {
		return "", time.Since(start), err
	}
	raw, err := io.ReadAll(io.LimitReader(conn, maxBytes))
	if err != nil {
		return "", time.Since(start), err
	}
	return string(raw), time.Since(start), nil
}
