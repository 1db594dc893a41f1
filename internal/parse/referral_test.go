package parse

import "testing"

const ianaFixture = `% IANA WHOIS server
% for more information on IANA, visit http://www.iana.org

domain:       COM

organisation: VeriSign Global Registry Services

whois:        whois.verisign-grs.com

status:       ACTIVE
`

func TestRegistryReferral(t *testing.T) {
	if host := RegistryReferral(ianaFixture); host != "whois.verisign-grs.com" {
		t.Fatalf("unexpected referral: %q", host)
	}
}

func TestRegistryReferralAbsent(t *testing.T) {
	if host := RegistryReferral("domain: COM\nstatus: ACTIVE\n"); host != "" {
		t.Fatalf("expected empty referral, got %q", host)
	}
}

func TestRegistryReferralFirstMatchWins(t *testing.T) {
	text := "whois: whois.first.example\nwhois: whois.second.example\n"
	if host := RegistryReferral(text); host != "whois.first.example" {
		t.Fatalf("unexpected referral: %q", host)
	}
}

func TestRegistrarReferral(t *testing.T) {
	text := "   Domain Name: EXAMPLE.COM\n   Registrar WHOIS Server: whois.markmonitor.com\n"
	if host := RegistrarReferral(text); host != "whois.markmonitor.com" {
		t.Fatalf("unexpected referral: %q", host)
	}
}

func TestRegistrarReferralCaseInsensitive(t *testing.T) {
	text := "registrar whois server: WHOIS.GODADDY.COM\n"
	if host := RegistrarReferral(text); host != "WHOIS.GODADDY.COM" {
		t.Fatalf("unexpected referral: %q", host)
	}
}

func TestRegistrarReferralStripsURLForm(t *testing.T) {
	cases := map[string]string{
		"Registrar WHOIS Server: https://whois.godaddy.com/":     "whois.godaddy.com",
		"Registrar WHOIS Server: http://whois.tucows.com/whois?": "whois.tucows.com",
	}
	for text, want := range cases {
		if host := RegistrarReferral(text); host != want {
			t.Fatalf("for %q expected %q, got %q", text, want, host)
		}
	}
}

func TestRegistrarReferralAbsent(t *testing.T) {
	if host := RegistrarReferral("Domain Name: EXAMPLE.COM\nRegistrar: MarkMonitor Inc.\n"); host != "" {
		t.Fatalf("expected empty referral, got %q", host)
	}
}
