package analyze

import (
	"testing"

	"github.com/jaxxstorm/whoistrace/internal/model"
)

func TestDiagnoseCarriesEvidenceTiers(t *testing.T) {
	d := Diagnose(Outcome{Kind: OutcomeUnregistered, Summary: "registry reports no match", EvidenceTiers: []string{"registry"}})
	if d.Classification != "UNREGISTERED" {
		t.Fatalf("expected UNREGISTERED, got %s", d.Classification)
	}
	if len(d.EvidenceTiers) != 1 || d.EvidenceTiers[0] != "registry" {
		t.Fatalf("expected registry evidence, got %v", d.EvidenceTiers)
	}
}

func TestDiagnoseNoEvidence(t *testing.T) {
	d := Diagnose(Outcome{Kind: OutcomeUnreachable, Summary: "no server answered"})
	if d.EvidenceTiers == nil {
		t.Fatalf("evidence tiers should be empty, not nil")
	}
	if len(d.EvidenceTiers) != 0 {
		t.Fatalf("expected no evidence tiers, got %v", d.EvidenceTiers)
	}
}

func TestUnregisteredMarkers(t *testing.T) {
	cases := map[string]bool{
		`No match for "EXAMPLE-UNUSED.COM".`:        true,
		"Domain not found.":                         true,
		"NOT FOUND":                                 true,
		"Status: AVAILABLE":                         true,
		"example-unused.nl is free":                 true,
		"The queried object does not exist: no entries found": true,
		"Domain Name: EXAMPLE.COM\nStatus: ok":      false,
		"Registrar: Example Registrar Services":     false,
	}
	for raw, want := range cases {
		result := model.LookupResult{PerTier: model.PerTier{Registry: &model.TierResult{RawResponseText: raw}}}
		if got := Unregistered(result); got != want {
			t.Fatalf("Unregistered(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestUnregisteredNeedsRegistryTier(t *testing.T) {
	if Unregistered(model.LookupResult{}) {
		t.Fatalf("missing registry tier should not read as unregistered")
	}
	result := model.LookupResult{PerTier: model.PerTier{IANA: &model.TierResult{RawResponseText: "no match"}}}
	if Unregistered(result) {
		t.Fatalf("IANA tier text should not read as unregistered")
	}
}
