package storage

import (
	"context"
	"fmt"

	"ad-campaign-analyzer/internal/engine"
)

// Demo campaigns, one per failure mode the diagnostic rules cover.
var seedCampaigns = []struct {
	name        string
	budget      float64
	impressions int64
	clicks      int64
	conversions int64
}{
	// ctr 3.0%, cpc $1.11, conversion rate 4.0%: strong rates, though
	// the cpc*clicks spend estimate still reads the budget as spent
	{"Spring Sale - Google Search (Healthy)", 5000, 150000, 4500, 180},
	// ctr 0.2%: critically low
	{"Brand Awareness - Display Network (Low CTR)", 3000, 500000, 1000, 25},
	// cpc $13.33: critically expensive
	{"Competitor Keywords - Search (High CPC)", 8000, 20000, 600, 18},
	// 2400 clicks, zero conversions: tracking looks broken
	{"Black Friday - Retargeting (Tracking Issue)", 4500, 80000, 2400, 0},
	// spend ~ $1000 of $1000: budget exhausted
	{"Holiday Rush - Facebook (Budget Exhausted)", 1000, 45000, 990, 30},
	// terrible ctr, zero conversions, exhausted budget all at once
	{"New Product Launch - Broken Campaign", 2000, 900000, 900, 0},
}

// Seed inserts the demo campaigns and returns how many were created.
func (s *Store) Seed(ctx context.Context) (int, error) {
	count := 0
	for _, sc := range seedCampaigns {
		m := engine.ComputeMetrics(sc.budget, sc.impressions, sc.clicks, sc.conversions)
		_, err := s.CreateCampaign(ctx, Campaign{
			Name:           sc.name,
			Budget:         sc.budget,
			Impressions:    sc.impressions,
			Clicks:         sc.clicks,
			Conversions:    sc.conversions,
			CTR:            m.CTR,
			CPC:            m.CPC,
			ConversionRate: m.ConversionRate,
		})
		if err != nil {
			return count, fmt.Errorf("seed %q: %w", sc.name, err)
		}
		count++
	}
	return count, nil
}
