package report

import (
	"html/template"
	"os"
	"strings"

	"bytemomo/barracuda/internal/domain"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"lower": strings.ToLower,
	"severities": func() []domain.Severity {
		return []domain.Severity{
			domain.SeverityCritical,
			domain.SeverityHigh,
			domain.SeverityMedium,
			domain.SeverityLow,
			domain.SeverityInfo,
		}
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Scan Report - {{.Target}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #1a1a1a; }
  h1 { border-bottom: 2px solid #ddd; padding-bottom: .5rem; }
  .meta { color: #555; margin-bottom: 1.5rem; }
  .summary span { display: inline-block; margin-right: 1rem; padding: .2rem .6rem; border-radius: 4px; color: #fff; }
  .critical { background: #8b0000; }
  .high { background: #d9534f; }
  .medium { background: #f0ad4e; }
  .low { background: #5bc0de; }
  .info { background: #777; }
  .vuln { border: 1px solid #ddd; border-left: 6px solid #bbb; border-radius: 4px; padding: 1rem; margin: 1rem 0; }
  .vuln.critical, .vuln.high { border-left-color: #d9534f; }
  .vuln.medium { border-left-color: #f0ad4e; }
  .vuln.low { border-left-color: #5bc0de; }
  .vuln h3 { margin: 0 0 .5rem; }
  dt { font-weight: 600; margin-top: .5rem; }
  dd { margin: 0; }
  code { background: #f4f4f4; padding: .1rem .3rem; border-radius: 3px; }
</style>
</head>
<body>
<h1>Scan Report</h1>
<div class="meta">
  <div>Target: <code>{{.Target}}</code></div>
  <div>Scanner: barracuda {{.ScanInfo.ScannerVersion}}</div>
  <div>Time: {{.Timestamp.Format "2006-01-02 15:04:05 MST"}}</div>
  <div>Plugins: {{range $i, $p := .ScanInfo.PluginsUsed}}{{if $i}}, {{end}}{{$p}}{{end}}</div>
</div>
<div class="summary">
  {{- $breakdown := .SeverityBreakdown }}
  {{- range $sev := severities }}
  <span class="{{lower (printf "%s" $sev)}}">{{$sev}}: {{index $breakdown $sev}}</span>
  {{- end }}
</div>
{{if .Vulnerabilities}}
{{range .Vulnerabilities}}
<div class="vuln {{lower (printf "%s" .Severity)}}">
  <h3>[{{.Severity}}] {{.Title}}</h3>
  <dl>
    <dt>URL</dt><dd><code>{{.URL}}</code></dd>
    <dt>Plugin</dt><dd>{{.PluginName}} ({{.PluginCategory}})</dd>
    {{if .Description}}<dt>Description</dt><dd>{{.Description}}</dd>{{end}}
    {{if .Recommendation}}<dt>Recommendation</dt><dd>{{.Recommendation}}</dd>{{end}}
    {{if .Payload}}<dt>Payload</dt><dd><code>{{.Payload}}</code></dd>{{end}}
  </dl>
</div>
{{end}}
{{else}}
<p>No vulnerabilities found.</p>
{{end}}
</body>
</html>
`))

func writeHTML(path string, result *domain.ScanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return htmlTemplate.Execute(f, result)
}
