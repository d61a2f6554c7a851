package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogComplete(t *testing.T) {
	for _, kind := range allKinds {
		def, ok := definition(kind)
		if !ok {
			t.Fatalf("catalog missing %s", kind)
		}
		assert.Equal(t, kind, def.Kind)
		assert.NotEmpty(t, def.Title, "title for %s", kind)
		assert.NotEmpty(t, def.Description, "description for %s", kind)
		assert.NotEmpty(t, def.RootCauses, "root causes for %s", kind)
		assert.NotEmpty(t, def.Recommendations, "recommendations for %s", kind)
		assert.Greater(t, def.ScoreDeduction, 0, "deduction for %s", kind)
	}
}

func TestCatalogSeverities(t *testing.T) {
	critical := []IssueKind{
		LowCTRCritical, HighCPCCritical, LowConversionCritical,
		TrackingFailure, BudgetExhausted,
	}
	warning := []IssueKind{
		LowCTRWarning, HighCPCWarning, LowConversionWarning, BudgetLow,
	}
	for _, kind := range critical {
		def, _ := definition(kind)
		assert.Equal(t, SeverityCritical, def.Severity, "%s", kind)
	}
	for _, kind := range warning {
		def, _ := definition(kind)
		assert.Equal(t, SeverityWarning, def.Severity, "%s", kind)
	}
}

func TestThresholdOrdering(t *testing.T) {
	// Lower-is-worse metrics: critical sits below warning. Higher-is-
	// worse metrics: warning sits below critical.
	assert.Less(t, thresholds.CTR.Critical, thresholds.CTR.Warning)
	assert.Less(t, thresholds.ConversionRate.Critical, thresholds.ConversionRate.Warning)
	assert.Less(t, thresholds.CPC.Warning, thresholds.CPC.Critical)
	assert.Less(t, thresholds.BudgetRemainingPct.Exhausted, thresholds.BudgetRemainingPct.Low)
}

func TestNewIssueCopiesDefinition(t *testing.T) {
	iss := newIssue(LowCTRCritical, 0.2, 0.5)
	def, _ := definition(LowCTRCritical)

	assert.Equal(t, def.Title, iss.Title)
	assert.Equal(t, def.ScoreDeduction, iss.ScoreDeduction)
	assert.Equal(t, 0.2, iss.MetricValue)
	assert.Equal(t, 0.5, iss.Threshold)
}
