package nscheck

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/jaxxstorm/whoistrace/internal/model"
	"github.com/miekg/dns"
	"go.uber.org/zap"
)

const defaultTimeout = 3 * time.Second

type Exchanger interface {
	Exchange(ctx context.Context, server string, msg *dns.Msg) (*dns.Msg, time.Duration, error)
}

type udpExchanger struct {
	timeout time.Duration
}

func (e *udpExchanger) Exchange(ctx context.Context, server string, msg *dns.Msg) (*dns.Msg, time.Duration, error) {
	timeout := e.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &dns.Client{Net: "udp", Timeout: timeout}
	if deadline, ok := ctx.Deadline(); ok {
		client.Timeout = time.Until(deadline)
	}
	return client.Exchange(msg, server)
}

type Options struct {
	Resolvers []string
	Timeout   time.Duration
	Logger    *zap.Logger
}

type Checker struct {
	opts      Options
	exchanger Exchanger
}

func New(opts Options) *Checker {
	return NewWithExchanger(opts, &udpExchanger{timeout: opts.Timeout})
}

func NewWithExchanger(opts Options, exchanger Exchanger) *Checker {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.Resolvers) == 0 {
		opts.Resolvers = DefaultResolverChain()
	}
	return &Checker{opts: opts, exchanger: exchanger}
}

// Check compares the name servers a whois lookup declared against the NS
// records DNS actually serves for the domain. Resolvers are tried in order
// and the first usable answer wins; NXDOMAIN counts as an answer with no
// records, a server failure moves on to the next resolver.
func (c *Checker) Check(ctx context.Context, domain string, declared []string) (*model.NSCheck, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeNS)
	msg.RecursionDesired = true

	var lastErr error
	for _, resolver := range c.opts.Resolvers {
		addr := normalizeResolver(resolver)
		resp, rtt, err := c.exchanger.Exchange(ctx, addr, msg)
		if err != nil {
			lastErr = err
			c.opts.Logger.Debug("resolver failed", zap.String("resolver", addr), zap.Error(err))
			continue
		}
		switch resp.Rcode {
		case dns.RcodeSuccess:
			c.opts.Logger.Debug("ns answer",
				zap.String("resolver", addr),
				zap.Duration("rtt", rtt),
				zap.Int("records", len(resp.Answer)))
			return compare(addr, declared, extractNS(resp)), nil
		case dns.RcodeNameError:
			return compare(addr, declared, nil), nil
		default:
			lastErr = fmt.Errorf("resolver %s: %s", addr, dns.RcodeToString[resp.Rcode])
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no resolvers configured")
	}
	return nil, lastErr
}

func compare(resolver string, declared, served []string) *model.NSCheck {
	declaredSet := hostSet(declared)
	servedSet := hostSet(served)

	check := &model.NSCheck{
		Resolver: resolver,
		Declared: sortedHosts(declaredSet),
		Served:   sortedHosts(servedSet),
	}
	for _, host := range check.Declared {
		if _, ok := servedSet[host]; ok {
			check.Matched = append(check.Matched, host)
		} else {
			check.MissingFromDNS = append(check.MissingFromDNS, host)
		}
	}
	for _, host := range check.Served {
		if _, ok := declaredSet[host]; !ok {
			check.ExtraInDNS = append(check.ExtraInDNS, host)
		}
	}
	check.Agreement = len(check.Matched) > 0 && len(check.MissingFromDNS) == 0 && len(check.ExtraInDNS) == 0
	return check
}

func extractNS(resp *dns.Msg) []string {
	hosts := []string{}
	for _, rr := range resp.Answer {
		if ns, ok := rr.(*dns.NS); ok {
			hosts = append(hosts, ns.Ns)
		}
	}
	return hosts
}

func hostSet(hosts []string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, host := range hosts {
		host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
		if host == "" {
			continue
		}
		set[host] = struct{}{}
	}
	return set
}

func sortedHosts(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for host := range set {
		out = append(out, host)
	}
	sort.Strings(out)
	return out
}

func normalizeResolver(resolver string) string {
	if strings.HasPrefix(resolver, "[") {
		if strings.Contains(resolver, "]:") {
			return resolver
		}
		return resolver + ":53"
	}
	if _, _, err := net.SplitHostPort(resolver); err == nil {
		return resolver
	}
	if strings.Contains(resolver, ":") {
		return "[" + resolver + "]:53"
	}
	return resolver + ":53"
}
