package registry

import (
	"sort"
	"strings"
	"time"

	"github.com/jaxxstorm/whoistrace/internal/model"
)

const (
	IANAHost             = "whois.iana.org"
	DefaultQueryTemplate = "domain {domain}"
	DefaultTimeout       = 5 * time.Second
	DefaultMaxHops       = 3
)

// Table is an immutable snapshot of the TLD to whois server mapping.
// There is no mutation API; build a new table to change entries.
type Table struct {
	servers map[string]model.ServerConfig
}

func Default() *Table {
	return NewTable(defaultServers)
}

func NewTable(servers map[string]model.ServerConfig) *Table {
	copied := make(map[string]model.ServerConfig, len(servers))
	for tld, config := range servers {
		if config.QueryTemplate == "" {
			config.QueryTemplate = DefaultQueryTemplate
		}
		if config.MaxHops == 0 {
			config.MaxHops = DefaultMaxHops
		}
		copied[strings.ToLower(tld)] = config
	}
	return &Table{servers: copied}
}

// Lookup is an exact key match; suffix resolution happens in ExtractTLD.
func (t *Table) Lookup(tld string) (model.ServerConfig, bool) {
	config, ok := t.servers[strings.ToLower(tld)]
	return config, ok
}

func (t *Table) Has(tld string) bool {
	_, ok := t.servers[strings.ToLower(tld)]
	return ok
}

func (t *Table) Len() int {
	return len(t.servers)
}

func (t *Table) TLDs() []string {
	out := make([]string, 0, len(t.servers))
	for tld := range t.servers {
		out = append(out, tld)
	}
	sort.Strings(out)
	return out
}

func (t *Table) Entries() []model.ServerEntry {
	entries := make([]model.ServerEntry, 0, len(t.servers))
	for _, tld := range t.TLDs() {
		entries = append(entries, model.ServerEntry{TLD: tld, Config: t.servers[tld]})
	}
	return entries
}
