// Package report renders scan results to files in the supported
// output formats.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"bytemomo/barracuda/internal/domain"
)

// Options controls what goes into a rendered report.
type Options struct {
	// IncludeRequestResponse keeps raw request/response captures in
	// the output. Off by default, they can be large.
	IncludeRequestResponse bool
	// IncludePayloads keeps the injected payload strings.
	IncludePayloads bool
}

// Generator writes reports into an output directory.
type Generator struct {
	outDir string
	opts   Options
}

// New creates a generator rooted at outDir.
func New(outDir string, opts Options) *Generator {
	return &Generator{outDir: outDir, opts: opts}
}

// Formats lists the supported report formats.
func Formats() []string { return []string{"json", "html", "txt", "xml"} }

// Save renders the result in the given format. When path is empty a
// timestamped file name is generated under the output directory. The
// written path is returned.
func (g *Generator) Save(result *domain.ScanResult, format, path string) (string, error) {
	sorted := *result
	sorted.Vulnerabilities = append([]domain.Vulnerability(nil), result.Vulnerabilities...)
	(&sorted).SortBySeverity()
	prepared := g.prepare(&sorted)

	if path == "" {
		if err := os.MkdirAll(g.outDir, 0o755); err != nil {
			return "", fmt.Errorf("create report directory %s: %w", g.outDir, err)
		}
		name := fmt.Sprintf("scan_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
		path = filepath.Join(g.outDir, name)
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report directory %s: %w", dir, err)
		}
	}

	var err error
	switch format {
	case "json":
		err = writeJSON(path, prepared)
	case "html":
		err = writeHTML(path, prepared)
	case "txt":
		err = writeText(path, prepared)
	case "xml":
		err = writeXML(path, prepared)
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"path":   path,
		"format": format,
	}).Info("Report written")
	return path, nil
}

// prepare applies the inclusion options to a copy of the result.
func (g *Generator) prepare(result *domain.ScanResult) *domain.ScanResult {
	if g.opts.IncludeRequestResponse && g.opts.IncludePayloads {
		return result
	}
	out := *result
	out.Vulnerabilities = make([]domain.Vulnerability, len(result.Vulnerabilities))
	for i, v := range result.Vulnerabilities {
		if !g.opts.IncludeRequestResponse {
			v.Request = ""
			v.Response = ""
		}
		if !g.opts.IncludePayloads {
			v.Payload = ""
		}
		out.Vulnerabilities[i] = v
	}
	return &out
}

func writeJSON(path string, result *domain.ScanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
