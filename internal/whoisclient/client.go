package whoisclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Kind string

const (
	KindConnect Kind = "connect"
	KindTimeout Kind = "timeout"
	KindRead    Kind = "read"
)

type QueryError struct {
	Server string
	Kind   Kind
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("whois %s: %s: %v", e.Server, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func IsTimeout(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe) && qe.Kind == KindTimeout
}

type Options struct {
	Timeout          time.Duration
	MaxResponseBytes int64
	Logger           *zap.Logger
}

type Client struct {
	opts      Options
	transport Transport
}

func New(opts Options) *Client {
	return NewWithTransport(opts, &tcpTransport{timeout: opts.Timeout, maxBytes: opts.MaxResponseBytes})
}

func NewWithTransport(opts Options, transport Transport) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxResponseBytes == 0 {
		opts.MaxResponseBytes = defaultMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		opts:      opts,
		transport: transport,
	}
}

// Query sends one line to host:43 and reads the response to end of
// stream. Registrar servers reject the templated form, so bare sends
// the value verbatim; otherwise {domain} in template is substituted.
// No retries at this layer.
func (c *Client) Query(ctx context.Context, host, value, template string, bare bool) (string, time.Duration, error) {
	addr := NormalizeServer(host)
	query := value
	if !bare && template != "" {
		query = strings.ReplaceAll(template, "{domain}", value)
	}
	raw, rtt, err := c.transport.RoundTrip(ctx, addr, query)
	if err != nil {
		return "", rtt, classify(ctx, host, err)
	}
	c.logRaw(addr, query, raw)
	return raw, rtt, nil
}

func classify(ctx context.Context, server string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return context.Canceled
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &QueryError{Server: server, Kind: KindTimeout, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "read" {
		return &QueryError{Server: server, Kind: KindRead, Err: err}
	}
	return &QueryError{Server: server, Kind: KindConnect, Err: err}
}

func (c *Client) logRaw(addr, query, response string) {
	if c.opts.Logger.Core().Enabled(zap.DebugLevel) {
		c.opts.Logger.Debug("whois request",
			zap.String("server", addr),
			zap.String("query", query),
		)
		c.opts.Logger.Debug("whois response",
			zap.String("server", addr),
			zap.Int("bytes", len(response)),
			zap.String("body", response),
		)
	}
}

func NormalizeServer(server string) string {
	if server == "" {
		return server
	}
	if strings.HasPrefix(server, "[") {
		if strings.Contains(server, "]:") {
			return server
		}
		return server + ":43"
	}
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	if strings.Contains(server, ":") {
		return "[" + server + "]:43"
	}
	return server + ":43"
}
