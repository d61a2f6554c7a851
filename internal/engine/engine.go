package engine

const (
	summaryHealthy  = "Campaign is performing well"
	summaryWarning  = "Campaign has some issues that need attention"
	summaryCritical = "Campaign has critical issues requiring immediate action"
)

// Diagnose evaluates a campaign snapshot against the rule catalog and
// returns a full diagnosis. It is a pure function: every input produces
// a Diagnosis, never an error, and concurrent calls share nothing but
// the read-only catalog.
//
// Five rule groups run in a fixed order, each firing at most one issue
// with the critical condition checked before the warning one.
func Diagnose(c Campaign) Diagnosis {
	issues := make([]Issue, 0, 4)
	score := 100

	fire := func(iss Issue) {
		issues = append(issues, iss)
		score -= iss.ScoreDeduction
	}

	// Budget spent is estimated as cpc*clicks; there is no ground-truth
	// spend field in the record. Zero declared budget means unlimited
	// remaining, not an error.
	spent := c.CPC * float64(c.Clicks)
	remainingPct := 100.0
	if c.Budget > 0 {
		remainingPct = (c.Budget - spent) / c.Budget * 100
	}

	// CTR
	switch {
	case c.CTR < thresholds.CTR.Critical:
		fire(newIssue(LowCTRCritical, c.CTR, thresholds.CTR.Critical))
	case c.CTR < thresholds.CTR.Warning:
		fire(newIssue(LowCTRWarning, c.CTR, thresholds.CTR.Warning))
	}

	// CPC
	switch {
	case c.CPC > thresholds.CPC.Critical:
		fire(newIssue(HighCPCCritical, c.CPC, thresholds.CPC.Critical))
	case c.CPC > thresholds.CPC.Warning:
		fire(newIssue(HighCPCWarning, c.CPC, thresholds.CPC.Warning))
	}

	// Conversion rate, guarded by minimum click counts so low-traffic
	// campaigns are not judged on statistically insignificant samples.
	switch {
	case c.ConversionRate < thresholds.ConversionRate.Critical && c.Clicks > thresholds.Sample.ConversionCriticalClicks:
		fire(newIssue(LowConversionCritical, c.ConversionRate, thresholds.ConversionRate.Critical))
	case c.ConversionRate < thresholds.ConversionRate.Warning && c.Clicks > thresholds.Sample.ConversionWarningClicks:
		fire(newIssue(LowConversionWarning, c.ConversionRate, thresholds.ConversionRate.Warning))
	}

	// Tracking: many clicks with zero conversions points at broken
	// measurement rather than genuinely zero conversions.
	if c.Clicks > thresholds.Sample.TrackingClicks && c.Conversions == 0 {
		fire(newIssue(TrackingFailure, 0, 1))
	}

	// Budget
	switch {
	case remainingPct < thresholds.BudgetRemainingPct.Exhausted:
		fire(newIssue(BudgetExhausted, remainingPct, thresholds.BudgetRemainingPct.Exhausted))
	case remainingPct < thresholds.BudgetRemainingPct.Low:
		fire(newIssue(BudgetLow, remainingPct, thresholds.BudgetRemainingPct.Low))
	}

	// Deductions may drive the running total negative; clamp once at
	// the end.
	healthScore := score
	if healthScore < 0 {
		healthScore = 0
	}
	if healthScore > 100 {
		healthScore = 100
	}

	status, summary := statusFor(healthScore)

	return Diagnosis{
		CampaignID:      c.ID,
		CampaignName:    c.Name,
		HealthScore:     healthScore,
		Status:          status,
		Summary:         summary,
		Issues:          issues,
		Recommendations: collectRecommendations(issues),
		MetricsAnalyzed: MetricsSnapshot{
			CTR:                c.CTR,
			CPC:                c.CPC,
			ConversionRate:     c.ConversionRate,
			BudgetRemainingPct: round1(remainingPct),
		},
	}
}

// statusFor maps a clamped health score onto a status band. Lower
// bounds are inclusive.
func statusFor(score int) (Status, string) {
	switch {
	case score >= 80:
		return StatusHealthy, summaryHealthy
	case score >= 50:
		return StatusWarning, summaryWarning
	default:
		return StatusCritical, summaryCritical
	}
}

// collectRecommendations flattens issue recommendations in rule order,
// collapsing duplicates to their first appearance.
func collectRecommendations(issues []Issue) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, iss := range issues {
		for _, rec := range iss.Recommendations {
			if _, ok := seen[rec]; ok {
				continue
			}
			seen[rec] = struct{}{}
			out = append(out, rec)
		}
	}
	return out
}
