package whoisclient

import (
	"context"
	"time"
)

type MockTransport struct {
	Responder func(addr string, query string) (string, time.Duration, error)
}

func (m *MockTransport) RoundTrip(ctx context.Context, addr string, query string) (string, time.Duration, error) {
	if m.Responder == nil {
		return "", 0, nil
	}
	return m.Responder(addr, query)
}
