package report

import (
	"os"
	"strings"
	"text/template"

	"bytemomo/barracuda/internal/domain"
)

var textTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`BARRACUDA SCAN REPORT
=====================

Target:   {{.Target}}
Scanner:  barracuda {{.ScanInfo.ScannerVersion}}
Time:     {{.Timestamp.Format "2006-01-02 15:04:05 MST"}}
Plugins:  {{join .ScanInfo.PluginsUsed ", "}}
Findings: {{.Total}}


Severity breakdown:
  CRITICAL: {{.CountBySeverity "CRITICAL"}}
  HIGH:     {{.CountBySeverity "HIGH"}}
  MEDIUM:   {{.CountBySeverity "MEDIUM"}}
  LOW:      {{.CountBySeverity "LOW"}}
  INFO:     {{.CountBySeverity "INFO"}}
{{if .Vulnerabilities}}
{{- range $i, $v := .Vulnerabilities}}
----------------------------------------
[{{$v.Severity}}] {{$v.Title}}
  URL:    {{$v.URL}}
  Plugin: {{$v.PluginName}} ({{$v.PluginCategory}})
{{- if $v.Description}}
  Description:    {{$v.Description}}
{{- end}}
{{- if $v.Recommendation}}
  Recommendation: {{$v.Recommendation}}
{{- end}}
{{- if $v.Payload}}
  Payload:        {{$v.Payload}}
{{- end}}
{{- end}}
{{else}}
No vulnerabilities found.
{{end}}`))

func writeText(path string, result *domain.ScanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return textTemplate.Execute(f, result)
}
