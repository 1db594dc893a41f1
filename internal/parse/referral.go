package parse

import (
	"regexp"
	"strings"
)

var (
	registryReferralPattern  = regexp.MustCompile(`(?im)^\s*whois:\s*([A-Za-z0-9.\-]+)\s*$`)
	registrarReferralPattern = regexp.MustCompile(`(?im)^\s*registrar whois server:\s*(\S+)\s*$`)
)

// RegistryReferral pulls the registry whois host out of an IANA
// response. Returns empty on no match; hostnames are not validated
// beyond the match itself, bad ones fail at connect time.
func RegistryReferral(text string) string {
	m := registryReferralPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// RegistrarReferral pulls the registrar whois host out of a registry
// response. Some registries publish it as a URL; strip that down to
// the bare host.
func RegistrarReferral(text string) string {
	m := registrarReferralPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return stripReferralScheme(m[1])
}

func stripReferralScheme(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	if idx := strings.IndexAny(host, "/?"); idx >= 0 {
		host = host[:idx]
	}
	return host
}
