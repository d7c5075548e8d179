package report

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"

	"bytemomo/barracuda/internal/domain"
)

// XML mirrors the JSON document, except Evidence maps are flattened
// into ordered item elements since XML has no native map encoding.

type xmlEvidenceItem struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type xmlVulnerability struct {
	ID             string            `xml:"id"`
	Title          string            `xml:"title"`
	URL            string            `xml:"url"`
	Severity       string            `xml:"severity"`
	Description    string            `xml:"description,omitempty"`
	Recommendation string            `xml:"recommendation,omitempty"`
	PluginName     string            `xml:"plugin_name"`
	PluginCategory string            `xml:"plugin_category"`
	Payload        string            `xml:"payload,omitempty"`
	Evidence       []xmlEvidenceItem `xml:"evidence>item,omitempty"`
	Timestamp      string            `xml:"timestamp"`
	Confidence     float64           `xml:"confidence"`
}

type xmlScanInfo struct {
	ScannerVersion string   `xml:"scanner_version"`
	TargetURL      string   `xml:"target_url"`
	PluginsUsed    []string `xml:"plugins_used>plugin"`
}

type xmlReport struct {
	XMLName         xml.Name           `xml:"scan_result"`
	Target          string             `xml:"target"`
	Timestamp       string             `xml:"timestamp"`
	ScanInfo        xmlScanInfo        `xml:"scan_info"`
	Vulnerabilities []xmlVulnerability `xml:"vulnerabilities>vulnerability"`
}

func toXMLReport(result *domain.ScanResult) xmlReport {
	doc := xmlReport{
		Target:    result.Target,
		Timestamp: result.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		ScanInfo: xmlScanInfo{
			ScannerVersion: result.ScanInfo.ScannerVersion,
			TargetURL:      result.ScanInfo.TargetURL,
			PluginsUsed:    result.ScanInfo.PluginsUsed,
		},
	}
	for _, v := range result.Vulnerabilities {
		xv := xmlVulnerability{
			ID:             v.ID,
			Title:          v.Title,
			URL:            v.URL,
			Severity:       string(v.Severity),
			Description:    v.Description,
			Recommendation: v.Recommendation,
			PluginName:     v.PluginName,
			PluginCategory: v.PluginCategory,
			Payload:        v.Payload,
			Timestamp:      v.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			Confidence:     v.Confidence,
		}
		keys := make([]string, 0, len(v.Evidence))
		for k := range v.Evidence {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			xv.Evidence = append(xv.Evidence, xmlEvidenceItem{
				Key:   k,
				Value: fmt.Sprintf("%v", v.Evidence[k]),
			})
		}
		doc.Vulnerabilities = append(doc.Vulnerabilities, xv)
	}
	return doc
}

func writeXML(path string, result *domain.ScanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(toXMLReport(result)); err != nil {
		return err
	}
	return enc.Close()
}
