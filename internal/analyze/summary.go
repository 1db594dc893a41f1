package analyze

import (
	"regexp"
	"strings"
	"time"

	"github.com/jaxxstorm/whoistrace/internal/model"
)

const dateLayout = "2006-01-02"

var (
	registrarAliases = []string{"registrar", "sponsoring registrar", "registrar name"}
	ianaIDAliases    = []string{"registrar iana id", "sponsoring registrar iana id"}
	createdAliases   = []string{"creation date", "created", "created on", "created date", "registered on", "registration time", "registration date"}
	updatedAliases   = []string{"updated date", "last updated", "last modified", "last-update", "changed", "modified"}
	expiryAliases    = []string{"registry expiry date", "registrar registration expiration date", "expiry date", "expiration date", "expiration time", "expires", "expires on", "paid-till", "renewal date"}
	dnssecAliases    = []string{"dnssec"}
)

// Name server keys vary by registry; a host counts only when it follows the
// key and a colon on the same line. Nominet's bare "Name servers:" header
// with hosts on indented continuation lines yields no matches.
var (
	nameServerPattern = regexp.MustCompile(`(?im)^[ \t]*(?:name servers?|nameservers?|nserver)[ \t]*\.*:[ \t]*([A-Za-z0-9._\-]+)`)
	statusPattern     = regexp.MustCompile(`(?im)^[ \t]*(?:domain )?status[ \t]*:[ \t]*(\S+)`)
)

// Date layouts seen across registries. Verisign and most gTLDs use RFC 3339,
// Nominet uses 02-Jan-2006, tcinet uses dotted dates.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02 15:04:05",
	"2006.01.02",
	"2006/01/02",
	"20060102",
}

// Summarize distills per-tier parsed fields into the registration facts a
// caller usually wants. Field names vary by registry, so each fact is looked
// up through an alias list, preferring registrar data over registry data
// over IANA data.
func Summarize(result model.LookupResult) model.RegistrationSummary {
	summary := model.RegistrationSummary{
		Registered: result.PerTier.Registry != nil && !Unregistered(result),
	}
	summary.Registrar = fieldValue(result, registrarAliases...)
	summary.RegistrarIANAID = fieldValue(result, ianaIDAliases...)
	summary.DNSSEC = fieldValue(result, dnssecAliases...)

	// Repeated keys collapse to one entry in ParsedFields, so multi-valued
	// facts come from the raw text instead.
	summary.NameServers = collectMatches(result, nameServerPattern, normalizeHost)
	summary.Statuses = collectMatches(result, statusPattern, strings.TrimSpace)

	if created, ok := parseDate(fieldValue(result, createdAliases...)); ok {
		summary.CreatedDate = created.Format(dateLayout)
		summary.AgeDays = int(time.Since(created).Hours() / 24)
	}
	if updated, ok := parseDate(fieldValue(result, updatedAliases...)); ok {
		summary.UpdatedDate = updated.Format(dateLayout)
	}
	if expiry, ok := parseDate(fieldValue(result, expiryAliases...)); ok {
		summary.ExpiryDate = expiry.Format(dateLayout)
	}
	return summary
}

func fieldValue(result model.LookupResult, names ...string) string {
	tiers := []*model.TierResult{result.PerTier.Registrar, result.PerTier.Registry, result.PerTier.IANA}
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		for _, key := range tier.ParsedFields.Keys() {
			for _, name := range names {
				if !strings.EqualFold(key, name) {
					continue
				}
				if value, _ := tier.ParsedFields.Get(key); strings.TrimSpace(value) != "" {
					return strings.TrimSpace(value)
				}
			}
		}
	}
	return ""
}

func collectMatches(result model.LookupResult, pattern *regexp.Regexp, normalize func(string) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tier := range []*model.TierResult{result.PerTier.Registrar, result.PerTier.Registry} {
		if tier == nil {
			continue
		}
		for _, match := range pattern.FindAllStringSubmatch(tier.RawResponseText, -1) {
			value := normalize(match[1])
			if value == "" {
				continue
			}
			key := strings.ToLower(value)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, value)
		}
	}
	return out
}

func normalizeHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), " UTC"))
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
