package builtin

import (
	"context"
	"fmt"

	"bytemomo/barracuda/internal/domain"
	"bytemomo/barracuda/internal/httpx"
	"bytemomo/barracuda/internal/plugin"
)

type sensitivePath struct {
	path        string
	severity    domain.Severity
	description string
}

var sensitivePaths = []sensitivePath{
	{"/.git/HEAD", domain.SeverityHigh, "Exposed git repository allows full source code disclosure"},
	{"/.env", domain.SeverityCritical, "Exposed environment file commonly contains credentials"},
	{"/.htaccess", domain.SeverityLow, "Exposed .htaccess reveals server configuration"},
	{"/backup.sql", domain.SeverityCritical, "Exposed SQL dump may contain the full database"},
	{"/config.php.bak", domain.SeverityHigh, "Backup of configuration file may contain credentials"},
	{"/server-status", domain.SeverityMedium, "Apache server-status page leaks request and client details"},
	{"/phpinfo.php", domain.SeverityMedium, "phpinfo page exposes full PHP configuration"},
	{"/admin/", domain.SeverityInfo, "Admin interface is exposed without network restriction"},
}

// SensitivePaths requests well-known sensitive files and reports the
// ones the server serves.
func SensitivePaths() *plugin.Plugin {
	return &plugin.Plugin{
		Meta: domain.PluginMetadata{
			Name:        "sensitive-paths",
			Description: "Checks well-known paths for exposed sensitive files",
			Category:    "exposure",
			RiskLevel:   domain.RiskMedium,
			Version:     "1.0.0",
			Author:      "barracuda",
		},
		Runner: plugin.RunnerFunc(runSensitivePaths),
	}
}

func runSensitivePaths(ctx context.Context, target string, client *httpx.Client) ([]domain.Vulnerability, error) {
	base := httpx.BaseURL(target)
	if base == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTarget, target)
	}

	noFollow := false
	var vulns []domain.Vulnerability
	for _, sp := range sensitivePaths {
		full, err := httpx.JoinURL(base, sp.path)
		if err != nil {
			continue
		}
		resp, err := client.Get(ctx, full, &httpx.RequestOptions{FollowRedirects: &noFollow})
		if err != nil {
			continue
		}
		if resp.StatusCode != 200 || len(resp.Body) == 0 {
			continue
		}
		v := domain.NewVulnerability(fmt.Sprintf("Sensitive Path Exposed: %s", sp.path), full, sp.severity)
		v.Description = sp.description
		v.Recommendation = "Remove the file from the web root or deny access to it"
		v.Evidence["path"] = sp.path
		v.Evidence["status_code"] = resp.StatusCode
		v.Evidence["content_length"] = len(resp.Body)
		vulns = append(vulns, v)
	}
	return vulns, nil
}
