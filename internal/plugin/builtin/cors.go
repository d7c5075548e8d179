package builtin

import (
	"context"
	"fmt"
	"net/url"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

// CORS probes the target with attacker-controlled Origin values and
// reports misconfigured Access-Control-Allow-Origin responses.
func CORS() *plugin.Plugin {
	return &plugin.Plugin{
		Meta: domain.PluginMetadata{
			Name:        "cors",
			Description: "Checks for CORS misconfigurations",
			Category:    "configuration",
			RiskLevel:   domain.RiskLow,
			Version:     "1.0.0",
			Author:      "barracuda",
		},
		Runner: plugin.RunnerFunc(runCORS),
	}
}

func runCORS(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error) {
	host := ""
	if u, err := url.Parse(target); err == nil {
		host = u.Hostname()
	}

	testOrigins := []string{
		"https://evil.example",
		"null",
		"https://" + host + ".evil.example",
	}

	for _, origin := range testOrigins {
		resp, err := client.Get(ctx, target, &httpx.RequestOptions{
			Headers: map[string]string{"Origin": origin},
		})
		if err != nil {
			continue
		}

		acao := resp.Header.Get("Access-Control-Allow-Origin")
		acac := resp.Header.Get("Access-Control-Allow-Credentials")

		switch {
		case acao == "*":
			v := domain.NewVulnerability("CORS Wildcard Origin", target, domain.SeverityMedium)
			v.Description = "The server allows cross-origin requests from any origin"
			v.Recommendation = "Configure CORS to only allow trusted origins"
			v.Evidence["access_control_allow_origin"] = acao
			return []domain.Vulnerability{v}, nil

		case acao == "null" && origin == "null":
			v := domain.NewVulnerability("CORS Null Origin Allowed", target, domain.SeverityHigh)
			v.Description = "The server accepts the null origin, which sandboxed documents can forge"
			v.Recommendation = "Never allow the null origin"
			v.Evidence["access_control_allow_origin"] = acao
			return []domain.Vulnerability{v}, nil

		case acao == origin && origin != "null":
			severity := domain.SeverityMedium
			if acac == "true" {
				severity = domain.SeverityHigh
			}
			v := domain.NewVulnerability("CORS Origin Reflection", target, severity)
			v.Description = fmt.Sprintf("The server reflects the arbitrary origin %q in Access-Control-Allow-Origin", origin)
			v.Recommendation = "Validate the Origin header against an allow-list"
			v.Evidence["access_control_allow_origin"] = acao
			v.Evidence["access_control_allow_credentials"] = acac
			return []domain.Vulnerability{v}, nil
		}
	}
	return nil, nil
}
