package domain

import "strings"

// RiskLevel classifies how intrusive a plugin's probes are.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// IsValid reports whether l is a recognized risk level.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// ParseRiskLevel normalizes an arbitrary string to a RiskLevel.
func ParseRiskLevel(s string) RiskLevel {
	return RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
}

// PluginMetadata is the descriptor attached to a plugin implementation
// at registration time. It is plain data; implementations carry no
// metadata accessors of their own.
type PluginMetadata struct {
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Category    string    `yaml:"category" json:"category"`
	RiskLevel   RiskLevel `yaml:"risk_level" json:"risk_level"`
	Version     string    `yaml:"version" json:"version"`
	Author      string    `yaml:"author" json:"author"`
	References  []string  `yaml:"references,omitempty" json:"references,omitempty"`
	Tags        []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
}
