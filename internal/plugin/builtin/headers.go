package builtin

import (
	"context"
	"fmt"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

type headerCheck struct {
	name        string
	severity    domain.Severity
	description string
	remediation string
}

var securityHeaders = []headerCheck{
	{
		name:        "Strict-Transport-Security",
		severity:    domain.SeverityMedium,
		description: "Missing HSTS header allows protocol downgrade attacks",
		remediation: "Add Strict-Transport-Security with a max-age of at least one year",
	},
	{
		name:        "Content-Security-Policy",
		severity:    domain.SeverityMedium,
		description: "Missing CSP header increases XSS risk",
		remediation: "Define a Content-Security-Policy restricting script sources",
	},
	{
		name:        "X-Frame-Options",
		severity:    domain.SeverityMedium,
		description: "Missing X-Frame-Options header allows clickjacking attacks",
		remediation: "Set X-Frame-Options to DENY or SAMEORIGIN",
	},
	{
		name:        "X-Content-Type-Options",
		severity:    domain.SeverityLow,
		description: "Missing X-Content-Type-Options allows MIME-sniffing attacks",
		remediation: "Set X-Content-Type-Options to nosniff",
	},
	{
		name:        "Referrer-Policy",
		severity:    domain.SeverityLow,
		description: "Missing Referrer-Policy header may leak sensitive URLs",
		remediation: "Set Referrer-Policy to strict-origin-when-cross-origin or stricter",
	},
	{
		name:        "Permissions-Policy",
		severity:    domain.SeverityInfo,
		description: "Missing Permissions-Policy header does not restrict browser features",
		remediation: "Add a Permissions-Policy header disabling unused browser features",
	},
}

// SecurityHeaders reports standard security response headers the
// target does not send.
func SecurityHeaders() *plugin.Plugin {
	return &plugin.Plugin{
		Meta: domain.PluginMetadata{
			Name:        "security-headers",
			Description: "Checks responses for missing security headers",
			Category:    "configuration",
			RiskLevel:   domain.RiskLow,
			Version:     "1.0.0",
			Author:      "barracuda",
		},
		Runner: plugin.RunnerFunc(runSecurityHeaders),
	}
}

func runSecurityHeaders(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error) {
	resp, err := client.Get(ctx, target, nil)
	if err != nil {
		return nil, err
	}

	var vulns []domain.Vulnerability
	for _, check := range securityHeaders {
		if resp.Header.Get(check.name) != "" {
			continue
		}
		v := domain.NewVulnerability(fmt.Sprintf("Missing %s Header", check.name), target, check.severity)
		v.Description = check.description
		v.Recommendation = check.remediation
		v.Evidence["header"] = check.name
		v.Evidence["status_code"] = resp.StatusCode
		vulns = append(vulns, v)
	}
	return vulns, nil
}
