package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jaxxstorm/whoistrace/internal/analyze"
	"github.com/jaxxstorm/whoistrace/internal/model"
	"github.com/jaxxstorm/whoistrace/internal/nscheck"
	"github.com/jaxxstorm/whoistrace/internal/output"
	"github.com/jaxxstorm/whoistrace/internal/registry"
	"github.com/jaxxstorm/whoistrace/internal/trace"
	"github.com/jaxxstorm/whoistrace/internal/whoisclient"
	"go.uber.org/zap"
)

var Version = "dev"

type CLI struct {
	Lookup  LookupCmd  `cmd:"" default:"withargs" help:"Whois referral cascade for one or more domains (default)."`
	Servers ServersCmd `cmd:"servers" help:"Print the TLD to whois server table."`
	Version VersionCmd `cmd:"version" help:"Print version."`
}

type LookupCmd struct {
	Domains     []string      `arg:"" name:"domain" help:"Domain names to resolve."`
	Timeout     time.Duration `default:"5s" help:"Time budget per tier."`
	Servers     string        `help:"YAML file with TLD server overrides."`
	Output      string        `enum:"pretty,json" default:"pretty" help:"Output format."`
	CheckNS     bool          `name:"check-ns" help:"Compare whois name servers against DNS."`
	Resolvers   []string      `name:"resolver" help:"Resolver IPs for --check-ns (repeatable)."`
	Concurrency int           `default:"4" help:"Concurrent lookups."`
	Verbose     bool          `help:"Enable verbose logging."`
	Debug       bool          `help:"Enable debug logging (includes raw whois responses)."`
}

type ServersCmd struct {
	Servers string `help:"YAML file with TLD server overrides."`
	Output  string `enum:"pretty,json" default:"pretty" help:"Output format."`
}

type VersionCmd struct{}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("whoistrace"),
		kong.Description("Trace the whois referral cascade and explain registration state."),
	)

	if ctx.Selected() != nil && ctx.Selected().Name == "version" {
		fmt.Println(Version)
		return
	}

	if ctx.Selected() != nil && ctx.Selected().Name == "servers" {
		runServers(cli.Servers)
		return
	}

	logger, err := newLogger(cli.Lookup.Verbose, cli.Lookup.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runLookup(cli.Lookup, logger)
}

func runLookup(cmd LookupCmd, logger *zap.Logger) {
	table, err := loadTable(cmd.Servers)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := whoisclient.New(whoisclient.Options{
		Timeout: cmd.Timeout,
		Logger:  logger,
	})
	tracer := trace.New(client, table, trace.Config{
		DefaultTimeout: cmd.Timeout,
		Logger:         logger,
	})

	ctx := context.Background()
	results, err := tracer.LookupAll(ctx, cmd.Domains, cmd.Concurrency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var checker *nscheck.Checker
	if cmd.CheckNS {
		checker = nscheck.New(nscheck.Options{Resolvers: cmd.Resolvers, Logger: logger})
	}

	for i := range results {
		if results[i].PerTier.Registry != nil {
			summary := analyze.Summarize(results[i])
			results[i].Summary = &summary
		}
		if checker != nil && results[i].Summary != nil && len(results[i].Summary.NameServers) > 0 {
			check, err := checker.Check(ctx, results[i].Domain, results[i].Summary.NameServers)
			if err != nil {
				results[i].Metadata.Warnings = append(results[i].Metadata.Warnings, fmt.Sprintf("ns check: %v", err))
				continue
			}
			results[i].NSCheck = check
		}
	}

	rendered, err := render(cmd.Output, results)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(rendered)

	for _, result := range results {
		if result.Diagnosis.Classification != "COMPLETE" {
			os.Exit(2)
		}
	}
}

func runServers(cmd ServersCmd) {
	table, err := loadTable(cmd.Servers)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	entries := table.Entries()
	var rendered string
	if cmd.Output == "json" {
		rendered, err = output.RenderServersJSON(entries)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		rendered = output.RenderServersPretty(entries)
	}
	fmt.Println(rendered)
}

func render(format string, results []model.LookupResult) (string, error) {
	if format == "json" {
		if len(results) == 1 {
			return output.RenderJSON(results[0])
		}
		return output.RenderJSONAll(results)
	}
	parts := make([]string, 0, len(results))
	for _, result := range results {
		parts = append(parts, output.RenderPretty(result))
	}
	return strings.Join(parts, "\n\n"), nil
}

func loadTable(path string) (*registry.Table, error) {
	if path == "" {
		return registry.Default(), nil
	}
	return registry.Load(path)
}

func newLogger(verbose bool, debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
