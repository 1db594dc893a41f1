package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jaxxstorm/whoistrace/internal/model"
)

func RenderPretty(result model.LookupResult) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("whoistrace")
	tierStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	lines := []string{title, ""}
	lines = append(lines, tierStyle.Render(fmt.Sprintf("%s (.%s)", result.Domain, result.TLD)), "")

	tiers := []struct {
		name string
		tier *model.TierResult
	}{
		{"iana", result.PerTier.IANA},
		{"registry", result.PerTier.Registry},
		{"registrar", result.PerTier.Registrar},
	}
	for _, entry := range tiers {
		if entry.tier == nil {
			lines = append(lines, fmt.Sprintf("%s %-9s %s", failStyle.Render("--"), entry.name, tierNote(result, entry.name)))
			continue
		}
		line := fmt.Sprintf("%s %-9s %s fields=%d", okStyle.Render("OK"), entry.name, entry.tier.ServerHost, entry.tier.FieldCount())
		if entry.tier.Referral != "" {
			line += " refer=" + entry.tier.Referral
		}
		lines = append(lines, tierStyle.Render(line))
	}

	if s := result.Summary; s != nil {
		lines = append(lines, "")
		if s.Registered {
			lines = append(lines, okStyle.Render("registered"))
		} else {
			lines = append(lines, failStyle.Render("not registered"))
		}
		facts := []struct{ label, value string }{
			{"registrar", s.Registrar},
			{"iana id", s.RegistrarIANAID},
			{"created", s.CreatedDate},
			{"updated", s.UpdatedDate},
			{"expires", s.ExpiryDate},
			{"dnssec", s.DNSSEC},
		}
		for _, fact := range facts {
			if fact.value != "" {
				lines = append(lines, fmt.Sprintf("  %-10s %s", fact.label, fact.value))
			}
		}
		if s.AgeDays > 0 {
			lines = append(lines, fmt.Sprintf("  %-10s %d days", "age", s.AgeDays))
		}
		if len(s.Statuses) > 0 {
			lines = append(lines, fmt.Sprintf("  %-10s %s", "status", strings.Join(s.Statuses, ", ")))
		}
		if len(s.NameServers) > 0 {
			lines = append(lines, fmt.Sprintf("  %-10s %s", "ns", strings.Join(s.NameServers, ", ")))
		}
	}

	if c := result.NSCheck; c != nil {
		lines = append(lines, "")
		label := okStyle.Render("ns agree")
		if !c.Agreement {
			label = failStyle.Render("ns differ")
		}
		lines = append(lines, fmt.Sprintf("%s resolver=%s declared=%d served=%d", label, c.Resolver, len(c.Declared), len(c.Served)))
		if len(c.MissingFromDNS) > 0 {
			lines = append(lines, "  missing from dns: "+strings.Join(c.MissingFromDNS, ", "))
		}
		if len(c.ExtraInDNS) > 0 {
			lines = append(lines, "  extra in dns: "+strings.Join(c.ExtraInDNS, ", "))
		}
	}

	lines = append(lines, "")
	summary := fmt.Sprintf("%s %s", result.Diagnosis.Classification, result.Diagnosis.Summary)
	if result.Diagnosis.Classification == "COMPLETE" {
		lines = append(lines, okStyle.Render(summary))
	} else {
		lines = append(lines, failStyle.Render(summary))
	}
	if len(result.Diagnosis.Hints) > 0 {
		lines = append(lines, "Hints:")
		for _, hint := range result.Diagnosis.Hints {
			lines = append(lines, "- "+hint)
		}
	}
	if len(result.Metadata.Errors) > 0 {
		lines = append(lines, "Errors:")
		for _, e := range result.Metadata.Errors {
			lines = append(lines, "- "+e)
		}
	}
	if len(result.Metadata.Warnings) > 0 {
		lines = append(lines, "Warnings:")
		for _, w := range result.Metadata.Warnings {
			lines = append(lines, "- "+w)
		}
	}

	lines = append(lines, "", fmt.Sprintf("queried %d servers in %dms", len(result.Metadata.ServersQueried), result.Metadata.ElapsedMs))
	return strings.Join(lines, "\n")
}

func RenderServersPretty(entries []model.ServerEntry) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render("whois server table")
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	lines := []string{title, ""}
	for _, entry := range entries {
		line := fmt.Sprintf("%-8s %-28s %s", entry.TLD, entry.Config.Host, entry.Config.QueryTemplate)
		if entry.Config.TimeoutMs > 0 {
			line += fmt.Sprintf(" timeout=%dms", entry.Config.TimeoutMs)
		}
		lines = append(lines, rowStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

func tierNote(result model.LookupResult, tier string) string {
	for _, warning := range result.Metadata.Warnings {
		if strings.HasPrefix(warning, tier+":") {
			return "failed:" + strings.TrimPrefix(warning, tier+":")
		}
	}
	if tier == "registrar" {
		registry := result.PerTier.Registry
		switch {
		case registry == nil:
			return "skipped: registry tier missing"
		case registry.Referral == "":
			return "skipped: no registrar referral"
		case strings.EqualFold(registry.Referral, registry.ServerHost):
			return "skipped: referral matches registry host"
		}
	}
	return "not queried"
}
