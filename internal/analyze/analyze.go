package analyze

import (
	"strings"

	"github.com/jaxxstorm/whoistrace/internal/model"
)

type OutcomeKind string

const (
	OutcomeComplete     OutcomeKind = "COMPLETE"
	OutcomePartial      OutcomeKind = "PARTIAL"
	OutcomeUnregistered OutcomeKind = "UNREGISTERED"
	OutcomeNoRegistry   OutcomeKind = "NO_REGISTRY"
	OutcomeUnreachable  OutcomeKind = "UNREACHABLE"
)

type Outcome struct {
	Kind          OutcomeKind
	Summary       string
	EvidenceTiers []string
	Hints         []string
}

func Diagnose(outcome Outcome) model.Diagnosis {
	tiers := []string{}
	if len(outcome.EvidenceTiers) > 0 {
		tiers = append(tiers, outcome.EvidenceTiers...)
	}
	return model.Diagnosis{
		Classification: string(outcome.Kind),
		Summary:        outcome.Summary,
		EvidenceTiers:  tiers,
		Hints:          outcome.Hints,
	}
}

// Registries have no shared convention for "not registered"; these are the
// phrasings the major ones actually print.
var availabilityMarkers = []string{
	"no match",
	"not found",
	"no data found",
	"no entries found",
	"no object found",
	"status: free",
	"status: available",
	"available for registration",
	"is free",
}

// Unregistered reports whether the registry response says the domain does
// not exist. Only the registry tier is consulted; IANA answers describe the
// TLD, not the domain, and registrar responses never arrive for names the
// registry could not find.
func Unregistered(result model.LookupResult) bool {
	tier := result.PerTier.Registry
	if tier == nil || tier.RawResponseText == "" {
		return false
	}
	raw := strings.ToLower(tier.RawResponseText)
	for _, marker := range availabilityMarkers {
		if strings.Contains(raw, marker) {
			return true
		}
	}
	return false
}
