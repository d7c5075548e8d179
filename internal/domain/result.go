package domain

import (
	"sort"
	"strings"
	"time"
)

// ScanInfo is the metadata block of a scan run.
type ScanInfo struct {
	ScannerVersion string   `json:"scanner_version"`
	TargetURL      string   `json:"target_url"`
	PluginsUsed    []string `json:"plugins_used"`
}

// ScanResult is the outcome of one orchestration run. It is mutable
// while the scan is running (vulnerabilities are appended in plugin
// completion order) and treated as read-only once returned.
type ScanResult struct {
	Target          string          `json:"target"`
	Timestamp       time.Time       `json:"timestamp"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	ScanInfo        ScanInfo        `json:"scan_info"`
}

// NewScanResult creates an empty result for a target, stamped with the
// scan start time.
func NewScanResult(target, scannerVersion string) *ScanResult {
	return &ScanResult{
		Target:          target,
		Timestamp:       time.Now().UTC(),
		Vulnerabilities: []Vulnerability{},
		ScanInfo: ScanInfo{
			ScannerVersion: scannerVersion,
			TargetURL:      target,
			PluginsUsed:    []string{},
		},
	}
}

// Add appends a vulnerability, normalizing it first.
func (r *ScanResult) Add(v Vulnerability) {
	v.Normalize()
	r.Vulnerabilities = append(r.Vulnerabilities, v)
}

// Total returns the number of collected vulnerabilities.
func (r *ScanResult) Total() int { return len(r.Vulnerabilities) }

// CountBySeverity returns how many vulnerabilities carry the given
// severity. Matching is case-insensitive.
func (r *ScanResult) CountBySeverity(severity string) int {
	return len(r.BySeverity(severity))
}

// SeverityBreakdown returns the per-bucket counts for the five known
// severity levels.
func (r *ScanResult) SeverityBreakdown() map[Severity]int {
	breakdown := map[Severity]int{
		SeverityCritical: 0,
		SeverityHigh:     0,
		SeverityMedium:   0,
		SeverityLow:      0,
		SeverityInfo:     0,
	}
	for _, v := range r.Vulnerabilities {
		if _, ok := breakdown[v.Severity]; ok {
			breakdown[v.Severity]++
		}
	}
	return breakdown
}

// BySeverity returns vulnerabilities matching the severity, compared
// case-insensitively.
func (r *ScanResult) BySeverity(severity string) []Vulnerability {
	want := ParseSeverity(severity)
	var out []Vulnerability
	for _, v := range r.Vulnerabilities {
		if v.Severity == want {
			out = append(out, v)
		}
	}
	return out
}

// ByPlugin returns vulnerabilities produced by the named plugin.
func (r *ScanResult) ByPlugin(name string) []Vulnerability {
	var out []Vulnerability
	for _, v := range r.Vulnerabilities {
		if v.PluginName == name {
			out = append(out, v)
		}
	}
	return out
}

// ByCategory returns vulnerabilities whose plugin category matches,
// compared case-insensitively.
func (r *ScanResult) ByCategory(category string) []Vulnerability {
	var out []Vulnerability
	for _, v := range r.Vulnerabilities {
		if strings.EqualFold(v.PluginCategory, category) {
			out = append(out, v)
		}
	}
	return out
}

// SortBySeverity sorts the vulnerabilities in place, most severe first,
// ties broken by ascending title. The sort is stable and idempotent.
func (r *ScanResult) SortBySeverity() {
	sort.SliceStable(r.Vulnerabilities, func(i, j int) bool {
		a, b := r.Vulnerabilities[i], r.Vulnerabilities[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		return a.Title < b.Title
	})
}
