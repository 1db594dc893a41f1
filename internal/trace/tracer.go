package trace

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jaxxstorm/whoistrace/internal/analyze"
	"github.com/jaxxstorm/whoistrace/internal/model"
	"github.com/jaxxstorm/whoistrace/internal/parse"
	"github.com/jaxxstorm/whoistrace/internal/registry"
	"github.com/jaxxstorm/whoistrace/internal/whoisclient"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	IANAHost       string
	QueryTemplate  string
	DefaultTimeout time.Duration
	Logger         *zap.Logger
}

type Tracer struct {
	client *whoisclient.Client
	table  *registry.Table
	config Config
}

func New(client *whoisclient.Client, table *registry.Table, cfg Config) *Tracer {
	if cfg.IANAHost == "" {
		cfg.IANAHost = registry.IANAHost
	}
	if cfg.QueryTemplate == "" {
		cfg.QueryTemplate = registry.DefaultQueryTemplate
	}
	if cfg.DefaultTimeout == 0 {
		cfg.DefaultTimeout = registry.DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if table == nil {
		table = registry.Default()
	}
	return &Tracer{client: client, table: table, config: cfg}
}

// Lookup runs the three tier cascade: IANA for the TLD, the registry for the
// domain, and the registrar when the registry names a different server. Tiers
// run strictly in order because each target is learned from the previous
// response. A failed TLD extraction or a cancelled context aborts the call;
// any other failure leaves its tier empty and is recorded as a warning.
func (t *Tracer) Lookup(ctx context.Context, domain string) (model.LookupResult, error) {
	start := time.Now()
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")

	tld, err := registry.ExtractTLD(domain, t.table)
	if err != nil {
		return model.LookupResult{}, err
	}

	result := model.LookupResult{
		Domain: domain,
		TLD:    tld,
		Metadata: model.Metadata{
			ServersQueried: []string{},
			Errors:         []string{},
			Warnings:       []string{},
		},
	}

	ianaRaw, err := t.query(ctx, "iana", t.config.IANAHost, tld, t.config.QueryTemplate, false, t.config.DefaultTimeout)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return model.LookupResult{}, cerr
		}
		result.Metadata.Warnings = append(result.Metadata.Warnings, fmt.Sprintf("iana: %v", err))
	} else {
		tier := buildTier(&result, "iana", t.config.IANAHost, ianaRaw, tld)
		tier.Referral = parse.RegistryReferral(ianaRaw)
		result.PerTier.IANA = tier
		result.Metadata.ServersQueried = append(result.Metadata.ServersQueried, t.config.IANAHost)
	}

	registryHost := ""
	if result.PerTier.IANA != nil {
		registryHost = result.PerTier.IANA.Referral
	}
	registryTemplate := t.config.QueryTemplate
	registryTimeout := t.config.DefaultTimeout
	if entry, ok := t.table.Lookup(tld); ok {
		if registryHost == "" {
			registryHost = entry.Host
		}
		if entry.QueryTemplate != "" {
			registryTemplate = entry.QueryTemplate
		}
		if timeout := entry.Timeout(); timeout > 0 {
			registryTimeout = timeout
		}
	}
	if registryHost == "" {
		result.Metadata.Errors = append(result.Metadata.Errors, fmt.Sprintf("no registry server for tld %s", tld))
		outcome := analyze.Outcome{
			Kind:    analyze.OutcomeNoRegistry,
			Summary: fmt.Sprintf("no registry whois server known for .%s", tld),
			Hints:   []string{"the tld may have no port 43 service", "rdap may cover it instead"},
		}
		if result.PerTier.IANA != nil {
			outcome.EvidenceTiers = []string{"iana"}
		}
		t.finalize(&result, start, outcome)
		return result, nil
	}

	registrarExpected := false
	registryRaw, err := t.query(ctx, "registry", registryHost, domain, registryTemplate, false, registryTimeout)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return model.LookupResult{}, cerr
		}
		result.Metadata.Warnings = append(result.Metadata.Warnings, fmt.Sprintf("registry: %v", err))
	} else {
		tier := buildTier(&result, "registry", registryHost, registryRaw, domain)
		tier.Referral = parse.RegistrarReferral(registryRaw)
		result.PerTier.Registry = tier
		result.Metadata.ServersQueried = append(result.Metadata.ServersQueried, registryHost)
		if tier.Referral != "" && !strings.EqualFold(tier.Referral, registryHost) {
			registrarExpected = true
		}
	}

	if registrarExpected {
		registrarHost := result.PerTier.Registry.Referral
		registrarRaw, err := t.query(ctx, "registrar", registrarHost, domain, "", true, t.config.DefaultTimeout)
		if err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return model.LookupResult{}, cerr
			}
			result.Metadata.Warnings = append(result.Metadata.Warnings, fmt.Sprintf("registrar: %v", err))
		} else {
			result.PerTier.Registrar = buildTier(&result, "registrar", registrarHost, registrarRaw, domain)
			result.Metadata.ServersQueried = append(result.Metadata.ServersQueried, registrarHost)
		}
	}

	t.finalize(&result, start, classifyOutcome(result, registrarExpected))
	return result, nil
}

// LookupAll resolves several domains concurrently. Lookups are independent;
// the table is the only shared state and it is read only.
func (t *Tracer) LookupAll(ctx context.Context, domains []string, limit int) ([]model.LookupResult, error) {
	if len(domains) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = len(domains)
	}
	results := make([]model.LookupResult, len(domains))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, domain := range domains {
		i, domain := i, domain
		g.Go(func() error {
			result, err := t.Lookup(ctx, domain)
			if err != nil {
				return fmt.Errorf("%s: %w", domain, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (t *Tracer) query(ctx context.Context, tier, host, value, template string, bare bool, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tierCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	raw, rtt, err := t.client.Query(tierCtx, host, value, template, bare)
	if err != nil {
		t.config.Logger.Debug("tier query failed",
			zap.String("tier", tier),
			zap.String("server", host),
			zap.Error(err))
		return "", err
	}
	t.config.Logger.Debug("tier query complete",
		zap.String("tier", tier),
		zap.String("server", host),
		zap.Duration("rtt", rtt),
		zap.Int("bytes", len(raw)))
	return raw, nil
}

func (t *Tracer) finalize(result *model.LookupResult, start time.Time, outcome analyze.Outcome) {
	result.Metadata.TotalFields = result.PerTier.IANA.FieldCount() +
		result.PerTier.Registry.FieldCount() +
		result.PerTier.Registrar.FieldCount()
	result.Metadata.ElapsedMs = time.Since(start).Milliseconds()
	result.Diagnosis = analyze.Diagnose(outcome)
}

func buildTier(result *model.LookupResult, tier, host, raw, queried string) *model.TierResult {
	parsed := parse.Parse(raw, queried)
	for _, parseErr := range parsed.Errors {
		result.Metadata.Warnings = append(result.Metadata.Warnings, fmt.Sprintf("%s: %s", tier, parseErr))
	}
	return &model.TierResult{
		ServerHost:      host,
		RawResponseText: raw,
		ParsedFields:    parsed.Fields,
	}
}

func classifyOutcome(result model.LookupResult, registrarExpected bool) analyze.Outcome {
	if analyze.Unregistered(result) {
		return analyze.Outcome{
			Kind:          analyze.OutcomeUnregistered,
			Summary:       "registry reports no match",
			EvidenceTiers: []string{"registry"},
		}
	}
	if len(result.Metadata.ServersQueried) == 0 {
		return analyze.Outcome{
			Kind:    analyze.OutcomeUnreachable,
			Summary: "no whois server could be reached",
			Hints:   []string{"check network reachability", "port 43 egress is often blocked"},
		}
	}

	missing := []string{}
	if result.PerTier.IANA == nil {
		missing = append(missing, "iana")
	}
	if result.PerTier.Registry == nil {
		missing = append(missing, "registry")
	}
	if registrarExpected && result.PerTier.Registrar == nil {
		missing = append(missing, "registrar")
	}
	if len(missing) > 0 {
		hints := []string{}
		if registrarExpected && result.PerTier.Registrar == nil {
			hints = append(hints, "registrar whois servers rate limit aggressively")
		}
		return analyze.Outcome{
			Kind:          analyze.OutcomePartial,
			Summary:       fmt.Sprintf("cascade incomplete: %s missing", strings.Join(missing, ", ")),
			EvidenceTiers: missing,
			Hints:         hints,
		}
	}

	evidence := []string{"registry"}
	if result.PerTier.Registrar != nil {
		evidence = []string{"registrar"}
	}
	return analyze.Outcome{
		Kind:          analyze.OutcomeComplete,
		Summary:       "cascade complete",
		EvidenceTiers: evidence,
	}
}
