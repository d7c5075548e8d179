package domain

import "testing"

func TestParseSeverityNormalizesCaseAndSpace(t *testing.T) {
	t.Parallel()

	cases := map[string]Severity{
		"critical": SeverityCritical,
		" HIGH ":   SeverityHigh,
		"Medium":   SeverityMedium,
		"low":      SeverityLow,
		"info":     SeverityInfo,
		"bogus":    Severity("BOGUS"),
	}
	for in, want := range cases {
		if got := ParseSeverity(in); got != want {
			t.Errorf("ParseSeverity(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSeverityRankOrdersMostSevereFirst(t *testing.T) {
	t.Parallel()

	ordered := []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("expected %s to rank before %s", ordered[i-1], ordered[i])
		}
	}
	if unknown := Severity("WEIRD").Rank(); unknown <= SeverityInfo.Rank() {
		t.Errorf("unknown severity should rank after INFO, got %d", unknown)
	}
}
