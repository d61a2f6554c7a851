package engine

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// Thresholds are the fixed breakpoints the rules evaluate against.
// For ctr and conversion rate lower is worse (critical < warning);
// for cpc higher is worse (warning < critical).
type Thresholds struct {
	CTR struct {
		Critical float64 `yaml:"critical"`
		Warning  float64 `yaml:"warning"`
	} `yaml:"ctr"`
	CPC struct {
		Warning  float64 `yaml:"warning"`
		Critical float64 `yaml:"critical"`
	} `yaml:"cpc"`
	ConversionRate struct {
		Critical float64 `yaml:"critical"`
		Warning  float64 `yaml:"warning"`
	} `yaml:"conversion_rate"`
	BudgetRemainingPct struct {
		Exhausted float64 `yaml:"exhausted"`
		Low       float64 `yaml:"low"`
	} `yaml:"budget_remaining_pct"`
	Sample struct {
		ConversionCriticalClicks int64 `yaml:"conversion_critical_clicks"`
		ConversionWarningClicks  int64 `yaml:"conversion_warning_clicks"`
		TrackingClicks           int64 `yaml:"tracking_clicks"`
	} `yaml:"sample"`
}

type issueYAML struct {
	Severity        Severity `yaml:"severity"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	RootCauses      []string `yaml:"root_causes"`
	Recommendations []string `yaml:"recommendations"`
	ScoreDeduction  int      `yaml:"score_deduction"`
}

type rulesFile struct {
	Thresholds Thresholds              `yaml:"thresholds"`
	Issues     map[IssueKind]issueYAML `yaml:"issues"`
}

// Read-only after init; safe for unsynchronized concurrent reads.
var (
	thresholds Thresholds
	catalog    map[IssueKind]IssueDefinition
)

var allKinds = []IssueKind{
	LowCTRCritical, LowCTRWarning,
	HighCPCCritical, HighCPCWarning,
	LowConversionCritical, LowConversionWarning,
	TrackingFailure,
	BudgetExhausted, BudgetLow,
}

func init() {
	var f rulesFile
	if err := yaml.Unmarshal(rulesYAML, &f); err != nil {
		panic(fmt.Errorf("engine: parse rules.yaml: %w", err))
	}

	catalog = make(map[IssueKind]IssueDefinition, len(allKinds))
	for _, kind := range allKinds {
		def, ok := f.Issues[kind]
		if !ok {
			panic(fmt.Errorf("engine: rules.yaml missing issue %s", kind))
		}
		if def.ScoreDeduction <= 0 {
			panic(fmt.Errorf("engine: issue %s has non-positive score deduction", kind))
		}
		catalog[kind] = IssueDefinition{
			Kind:            kind,
			Severity:        def.Severity,
			Title:           def.Title,
			Description:     def.Description,
			RootCauses:      def.RootCauses,
			Recommendations: def.Recommendations,
			ScoreDeduction:  def.ScoreDeduction,
		}
	}

	t := f.Thresholds
	if t.CTR.Critical >= t.CTR.Warning {
		panic(fmt.Errorf("engine: ctr thresholds out of order"))
	}
	if t.ConversionRate.Critical >= t.ConversionRate.Warning {
		panic(fmt.Errorf("engine: conversion_rate thresholds out of order"))
	}
	if t.CPC.Warning >= t.CPC.Critical {
		panic(fmt.Errorf("engine: cpc thresholds out of order"))
	}
	if t.BudgetRemainingPct.Exhausted >= t.BudgetRemainingPct.Low {
		panic(fmt.Errorf("engine: budget thresholds out of order"))
	}
	thresholds = t
}

// definition returns the catalog entry for kind.
func definition(kind IssueKind) (IssueDefinition, bool) {
	def, ok := catalog[kind]
	return def, ok
}

// newIssue copies a catalog entry into a fired Issue.
func newIssue(kind IssueKind, metricValue, threshold float64) Issue {
	def := catalog[kind]
	return Issue{
		Kind:            def.Kind,
		Severity:        def.Severity,
		Title:           def.Title,
		Description:     def.Description,
		RootCauses:      def.RootCauses,
		Recommendations: def.Recommendations,
		ScoreDeduction:  def.ScoreDeduction,
		MetricValue:     metricValue,
		Threshold:       threshold,
	}
}
