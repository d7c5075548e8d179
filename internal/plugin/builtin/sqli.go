package builtin

import (
	"context"
	"regexp"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

var sqlErrors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)you have an error in your sql syntax`),
	regexp.MustCompile(`(?i)warning: mysqli?_`),
	regexp.MustCompile(`(?i)unclosed quotation mark after the character string`),
	regexp.MustCompile(`(?i)quoted string not properly terminated`),
	regexp.MustCompile(`(?i)pg_query\(\): query failed`),
	regexp.MustCompile(`(?i)sqlite3?\.OperationalError`),
	regexp.MustCompile(`(?i)org\.hibernate\.exception`),
	regexp.MustCompile(`(?i)syntax error at or near`),
}

var sqliPayloads = []string{`'`, `"`, `1' OR '1'='1`}

var sqliParams = []string{"id", "q", "page", "user", "item", "cat"}

// SQLInjection sends quote-breaking payloads into query parameters and
// looks for database error signatures in the response body.
func SQLInjection() *plugin.Plugin {
	return &plugin.Plugin{
		Meta: domain.PluginMetadata{
			Name:        "sql-injection",
			Description: "Probes query parameters for error-based SQL injection",
			Category:    "injection",
			RiskLevel:   domain.RiskHigh,
			Version:     "1.0.0",
			Author:      "barracuda",
		},
		Runner: plugin.RunnerFunc(runSQLInjection),
	}
}

func runSQLInjection(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error) {
	params := candidateParams(target, sqliParams)

	var vulns []domain.Vulnerability
	for _, param := range params {
		for _, payload := range sqliPayloads {
			resp, err := client.Get(ctx, target, &httpx.RequestOptions{
				Params: map[string]string{param: payload},
			})
			if err != nil {
				continue
			}
			sig := matchSQLError(resp.Body)
			if sig == "" {
				continue
			}
			v := domain.NewVulnerability("Error-Based SQL Injection", resp.URL, domain.SeverityCritical)
			v.Description = "A database error message appeared after injecting a quote-breaking payload"
			v.Recommendation = "Use parameterized queries and never interpolate user input into SQL"
			v.Payload = payload
			v.Evidence["parameter"] = param
			v.Evidence["error_signature"] = sig
			v.Confidence = 0.9
			vulns = append(vulns, v)
			break
		}
	}
	return vulns, nil
}

func matchSQLError(body []byte) string {
	for _, re := range sqlErrors {
		if m := re.Find(body); m != nil {
			return string(m)
		}
	}
	return ""
}
