package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vulnerability is one issue discovered by a plugin during a scan.
// Instances are created by plugins and owned by the ScanResult that
// collects them; they are not mutated after creation.
type Vulnerability struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	Severity       Severity       `json:"severity"`
	Description    string         `json:"description,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
	PluginName     string         `json:"plugin_name"`
	PluginCategory string         `json:"plugin_category"`
	Payload        string         `json:"payload,omitempty"`
	Request        string         `json:"request,omitempty"`
	Response       string         `json:"response,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	Confidence     float64        `json:"confidence"`
}

// NewVulnerability builds a vulnerability with a fresh ID and timestamp.
// Severity is normalized and confidence defaults to 1.0.
func NewVulnerability(title, url string, severity Severity) Vulnerability {
	return Vulnerability{
		ID:         uuid.NewString(),
		Title:      title,
		URL:        url,
		Severity:   ParseSeverity(string(severity)),
		Evidence:   map[string]any{},
		Timestamp:  time.Now().UTC(),
		Confidence: 1.0,
	}
}

// Normalize clamps confidence into [0,1], uppercases the severity and
// fills the ID and timestamp if the vulnerability was built by hand.
func (v *Vulnerability) Normalize() {
	v.Severity = ParseSeverity(string(v.Severity))
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now().UTC()
	}
	if v.Evidence == nil {
		v.Evidence = map[string]any{}
	}
}
