package builtin

import (
	"bytes"
	"context"
	"net/url"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

// xssMarker is unlikely to occur naturally in a page, so finding it
// verbatim in the response means the parameter was reflected unencoded.
const xssMarker = `"><bcd'x1f`

var xssParams = []string{"q", "s", "search", "query", "id", "page", "keyword"}

// ReflectedXSS injects a marker into common query parameters and
// reports parameters whose value comes back unencoded.
func ReflectedXSS() *plugin.Plugin {
	return &plugin.Plugin{
		Meta: domain.PluginMetadata{
			Name:        "reflected-xss",
			Description: "Probes common query parameters for unencoded reflection",
			Category:    "injection",
			RiskLevel:   domain.RiskMedium,
			Version:     "1.0.0",
			Author:      "barracuda",
		},
		Runner: plugin.RunnerFunc(runReflectedXSS),
	}
}

func runReflectedXSS(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error) {
	params := candidateParams(target, xssParams)

	var vulns []domain.Vulnerability
	for _, param := range params {
		resp, err := client.Get(ctx, target, &httpx.RequestOptions{
			Params: map[string]string{param: xssMarker},
		})
		if err != nil {
			continue
		}
		if !bytes.Contains(resp.Body, []byte(xssMarker)) {
			continue
		}
		v := domain.NewVulnerability("Reflected Cross-Site Scripting", resp.URL, domain.SeverityHigh)
		v.Description = "The parameter value is reflected in the response without HTML encoding"
		v.Recommendation = "HTML-encode all user input before rendering it"
		v.Payload = xssMarker
		v.Evidence["parameter"] = param
		v.Confidence = 0.8
		vulns = append(vulns, v)
	}
	return vulns, nil
}

// candidateParams prefers parameters already present on the target URL
// and falls back to a common-name list for bare URLs.
func candidateParams(target string, fallback []string) []string {
	u, err := url.Parse(target)
	if err != nil {
		return fallback
	}
	existing := u.Query()
	if len(existing) == 0 {
		return fallback
	}
	params := make([]string, 0, len(existing))
	for name := range existing {
		params = append(params, name)
	}
	return params
}
