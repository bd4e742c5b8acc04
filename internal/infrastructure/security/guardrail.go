// Package security scans generated scripts against guardrail rules before
// they reach the sandbox. OS process isolation plus the run timeout is the
// real boundary; this layer exists to warn about, and optionally block, the
// obviously destructive patterns a model can emit.
package security

import (
	"errors"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/arcgen/assets"
	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/ports"
)

// Guardrail implements the SecurityService port.
type Guardrail struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule DangerPattern
}

// DangerPattern describes a regex-based guardrail rule.
type DangerPattern struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
	Action  string `yaml:"action"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		DangerPatterns []DangerPattern `yaml:"danger_patterns"`
	} `yaml:"rules"`
}

// NewGuardrail loads guardrail rules from disk, falling back to the
// embedded defaults when the path is empty or missing.
func NewGuardrail(path string) (*Guardrail, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	var compiled []compiledPattern
	for _, pattern := range rules.Rules.DangerPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{re: re, rule: pattern})
	}

	return &Guardrail{patterns: compiled}, nil
}

// Evaluate implements ports.SecurityService. It scans the script text and
// reports the most severe matched rule's level and action, with every
// matched rule's message as a reason.
func (g *Guardrail) Evaluate(source string) (domain.RiskAssessment, error) {
	if g == nil {
		return domain.RiskAssessment{}, errors.New("guardrail nil")
	}
	assessment := domain.RiskAssessment{
		Level:  domain.RiskSafe,
		Action: domain.ActionAllow,
	}
	for _, pattern := range g.patterns {
		if !pattern.re.MatchString(source) {
			continue
		}
		ruleLevel := parseRiskLevel(pattern.rule.Level)
		if ruleLevel.Severity() > assessment.Level.Severity() {
			assessment.Level = ruleLevel
			assessment.Action = parseAction(pattern.rule.Action)
		}
		assessment.Reasons = append(assessment.Reasons, pattern.rule.Message)
		assessment.MatchedRules = append(assessment.MatchedRules, pattern.rule.Pattern)
	}
	return assessment, nil
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	data := assets.DefaultGuardrailYAML
	if path != "" {
		if fileData, err := os.ReadFile(path); err == nil {
			data = fileData
		}
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	return rules, nil
}

func parseRiskLevel(level string) domain.RiskLevel {
	switch level {
	case "critical":
		return domain.RiskCritical
	case "high":
		return domain.RiskHigh
	case "medium":
		return domain.RiskMedium
	case "low":
		return domain.RiskLow
	default:
		return domain.RiskSafe
	}
}

func parseAction(action string) domain.GuardrailAction {
	switch action {
	case "block":
		return domain.ActionBlock
	case "warn":
		return domain.ActionWarn
	default:
		return domain.ActionAllow
	}
}

var _ ports.SecurityService = (*Guardrail)(nil)
