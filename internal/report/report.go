// Package report renders campaign diagnoses as plain-text documents
// suitable for download or archiving.
package report

import (
	"fmt"
	"strings"
	"time"

	"ad-campaign-analyzer/internal/engine"
)

const (
	maxRootCauses      = 3
	maxRecommendations = 8
)

// Filename returns the download name for a campaign's report.
func Filename(campaignID int64, now time.Time) string {
	return fmt.Sprintf("campaign_%d_report_%s.txt", campaignID, now.Format("20060102_150405"))
}

// Render produces the full text report for one diagnosed campaign.
func Render(c engine.Campaign, d engine.Diagnosis, now time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "  AD CAMPAIGN REPORT\n")
	fmt.Fprintf(&b, "  Generated: %s\n", now.Format("January 2, 2006 at 15:04"))
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "Campaign: %s\n", c.Name)
	fmt.Fprintf(&b, "Health Score: %d/100\n", d.HealthScore)
	fmt.Fprintf(&b, "Status: %s\n\n", strings.ToUpper(string(d.Status)))

	fmt.Fprintf(&b, "--- CAMPAIGN OVERVIEW ---\n")
	fmt.Fprintf(&b, "Budget: $%.2f\n", c.Budget)
	fmt.Fprintf(&b, "Impressions: %d\n", c.Impressions)
	fmt.Fprintf(&b, "Clicks: %d\n", c.Clicks)
	fmt.Fprintf(&b, "Conversions: %d\n\n", c.Conversions)

	m := d.MetricsAnalyzed
	fmt.Fprintf(&b, "--- KEY METRICS ---\n")
	fmt.Fprintf(&b, "CTR: %.2f%% (>= 2.0%% is good)\n", m.CTR)
	fmt.Fprintf(&b, "CPC: $%.2f (<= $5.00 is good)\n", m.CPC)
	fmt.Fprintf(&b, "Conversion Rate: %.2f%% (>= 2.0%% is good)\n", m.ConversionRate)
	fmt.Fprintf(&b, "Budget Remaining: %.1f%% (>= 20%% is safe)\n\n", m.BudgetRemainingPct)

	fmt.Fprintf(&b, "--- ISSUES DETECTED (%d) ---\n", len(d.Issues))
	if len(d.Issues) == 0 {
		fmt.Fprintf(&b, "No issues detected. Campaign is healthy!\n")
	}
	for i, iss := range d.Issues {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, strings.ToUpper(string(iss.Severity)), iss.Title)
		fmt.Fprintf(&b, "   %s\n", iss.Description)
		if len(iss.RootCauses) > 0 {
			fmt.Fprintf(&b, "   Possible root causes:\n")
			for _, cause := range capped(iss.RootCauses, maxRootCauses) {
				fmt.Fprintf(&b, "   - %s\n", cause)
			}
		}
	}
	b.WriteString("\n")

	recs := capped(d.Recommendations, maxRecommendations)
	fmt.Fprintf(&b, "--- TOP RECOMMENDATIONS (%d) ---\n", len(recs))
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	fmt.Fprintf(&b, "\n%s\n", strings.Repeat("-", 60))
	fmt.Fprintf(&b, "Generated by Ad Campaign Analyzer\n")
	return b.String()
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
