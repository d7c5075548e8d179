package builtin

import (
	"context"
	"fmt"
	"regexp"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

// versionedBanner matches server banners that leak a version number.
var versionedBanner = regexp.MustCompile(`(?i)^[\w.-]+/[\d.]+`)

// InfoDisclosure flags response headers that expose the server stack.
func InfoDisclosure() *plugin.Plugin {
	return &plugin.Plugin{
		Meta: domain.PluginMetadata{
			Name:        "info-disclosure",
			Description: "Detects technology and version disclosure in response headers",
			Category:    "information",
			RiskLevel:   domain.RiskLow,
			Version:     "1.0.0",
			Author:      "barracuda",
		},
		Runner: plugin.RunnerFunc(runInfoDisclosure),
	}
}

func runInfoDisclosure(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error) {
	resp, err := client.Get(ctx, target, nil)
	if err != nil {
		return nil, err
	}

	var vulns []domain.Vulnerability

	if server := resp.Header.Get("Server"); versionedBanner.MatchString(server) {
		v := domain.NewVulnerability("Server Version Disclosure", target, domain.SeverityLow)
		v.Description = fmt.Sprintf("The Server header exposes software and version: %s", server)
		v.Recommendation = "Strip the version from the Server header"
		v.Evidence["server"] = server
		vulns = append(vulns, v)
	}

	for _, header := range []string{"X-Powered-By", "X-AspNet-Version", "X-AspNetMvc-Version", "X-Generator"} {
		value := resp.Header.Get(header)
		if value == "" {
			continue
		}
		v := domain.NewVulnerability(fmt.Sprintf("Information Disclosure: %s Header", header), target, domain.SeverityLow)
		v.Description = fmt.Sprintf("The %s header exposes the technology stack: %s", header, value)
		v.Recommendation = fmt.Sprintf("Remove the %s header from responses", header)
		v.Evidence["header"] = header
		v.Evidence["value"] = value
		vulns = append(vulns, v)
	}
	return vulns, nil
}
