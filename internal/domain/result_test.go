package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSortBySeverityOrdersAndIsIdempotent(t *testing.T) {
	t.Parallel()

	r := NewScanResult("https://example.com", "test")
	r.Add(NewVulnerability("b-low", "https://example.com", SeverityLow))
	r.Add(NewVulnerability("a-critical", "https://example.com", SeverityCritical))
	r.Add(NewVulnerability("c-medium", "https://example.com", SeverityMedium))

	r.SortBySeverity()
	want := []string{"a-critical", "c-medium", "b-low"}
	if got := titles(r); !reflect.DeepEqual(got, want) {
		t.Fatalf("after sort got %v, want %v", got, want)
	}

	r.SortBySeverity()
	if got := titles(r); !reflect.DeepEqual(got, want) {
		t.Fatalf("second sort changed order: %v", got)
	}
}

func TestSortBySeverityBreaksTiesByTitle(t *testing.T) {
	t.Parallel()

	r := NewScanResult("https://example.com", "test")
	r.Add(NewVulnerability("zeta", "https://example.com", SeverityHigh))
	r.Add(NewVulnerability("alpha", "https://example.com", SeverityHigh))

	r.SortBySeverity()
	if got := titles(r); !reflect.DeepEqual(got, []string{"alpha", "zeta"}) {
		t.Fatalf("tie not broken by title: %v", got)
	}
}

func TestSeverityBreakdownCountsAllBuckets(t *testing.T) {
	t.Parallel()

	r := NewScanResult("https://example.com", "test")
	r.Add(NewVulnerability("a", "https://example.com", SeverityHigh))
	r.Add(NewVulnerability("b", "https://example.com", SeverityHigh))
	r.Add(NewVulnerability("c", "https://example.com", SeverityInfo))

	b := r.SeverityBreakdown()
	if b[SeverityHigh] != 2 || b[SeverityInfo] != 1 || b[SeverityCritical] != 0 {
		t.Fatalf("unexpected breakdown: %v", b)
	}
	if len(b) != 5 {
		t.Fatalf("expected all five buckets present, got %d", len(b))
	}
}

func TestAddNormalizesSeverityAndConfidence(t *testing.T) {
	t.Parallel()

	r := NewScanResult("https://example.com", "test")
	r.Add(Vulnerability{Title: "t", URL: "https://example.com", Severity: "high", Confidence: 3})

	v := r.Vulnerabilities[0]
	if v.Severity != SeverityHigh {
		t.Errorf("severity not normalized: %q", v.Severity)
	}
	if v.Confidence != 1 {
		t.Errorf("confidence not clamped: %g", v.Confidence)
	}
	if v.ID == "" || v.Timestamp.IsZero() {
		t.Error("ID and timestamp should be filled in")
	}
}

func TestVulnerabilityJSONRoundTrip(t *testing.T) {
	t.Parallel()

	v := NewVulnerability("SQL Injection", "https://example.com/?id=1", SeverityCritical)
	v.Description = "desc"
	v.PluginName = "sql-injection"
	v.PluginCategory = "injection"
	v.Payload = "'"
	v.Evidence["parameter"] = "id"

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Vulnerability
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != v.ID || back.Title != v.Title || back.Severity != v.Severity {
		t.Fatalf("round trip changed identity fields: %+v", back)
	}
	if back.Evidence["parameter"] != "id" {
		t.Fatalf("round trip lost evidence: %+v", back.Evidence)
	}
}

func TestFilterAccessors(t *testing.T) {
	t.Parallel()

	r := NewScanResult("https://example.com", "test")
	a := NewVulnerability("a", "https://example.com", SeverityHigh)
	a.PluginName = "cors"
	a.PluginCategory = "Configuration"
	b := NewVulnerability("b", "https://example.com", SeverityLow)
	b.PluginName = "sql-injection"
	b.PluginCategory = "injection"
	r.Add(a)
	r.Add(b)

	if got := r.BySeverity("high"); len(got) != 1 || got[0].Title != "a" {
		t.Fatalf("BySeverity: %v", got)
	}
	if got := r.ByPlugin("sql-injection"); len(got) != 1 || got[0].Title != "b" {
		t.Fatalf("ByPlugin: %v", got)
	}
	if got := r.ByCategory("configuration"); len(got) != 1 || got[0].Title != "a" {
		t.Fatalf("ByCategory: %v", got)
	}
	if r.CountBySeverity("LOW") != 1 {
		t.Fatal("CountBySeverity should match case-insensitively")
	}
}

func titles(r *ScanResult) []string {
	out := make([]string, len(r.Vulnerabilities))
	for i, v := range r.Vulnerabilities {
		out[i] = v.Title
	}
	return out
}
