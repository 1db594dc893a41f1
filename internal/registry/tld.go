package registry

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoTLD = errors.New("no tld in domain")

// ExtractTLD prefers a two-label match (co.uk) over the final label,
// because multi-level ccTLDs run their own whois servers.
func ExtractTLD(domain string, table *Table) (string, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	domain = strings.TrimSuffix(domain, ".")

	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q", ErrNoTLD, domain)
	}
	if len(parts) >= 3 {
		twoLabel := parts[len(parts)-2] + "." + parts[len(parts)-1]
		if table.Has(twoLabel) {
			return twoLabel, nil
		}
	}
	tld := parts[len(parts)-1]
	if tld == "" {
		return "", fmt.Errorf("%w: %q", ErrNoTLD, domain)
	}
	return tld, nil
}
