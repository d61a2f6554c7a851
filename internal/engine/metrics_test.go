package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name        string
		budget      float64
		impressions int64
		clicks      int64
		conversions int64
		want        Metrics
	}{
		{
			name:   "healthy campaign",
			budget: 5000, impressions: 150000, clicks: 4500, conversions: 180,
			want: Metrics{CTR: 3.0, CPC: 1.11, ConversionRate: 4.0},
		},
		{
			name:   "zero impressions yields zero ctr",
			budget: 1000, impressions: 0, clicks: 0, conversions: 0,
			want: Metrics{},
		},
		{
			name:   "zero clicks yields zero cpc and conversion rate",
			budget: 1000, impressions: 5000, clicks: 0, conversions: 0,
			want: Metrics{},
		},
		{
			name:   "all zero counters",
			budget: 0, impressions: 0, clicks: 0, conversions: 0,
			want: Metrics{},
		},
		{
			name:   "rounds to two decimals",
			budget: 1000, impressions: 30000, clicks: 999, conversions: 33,
			// ctr = 999/30000*100 = 3.33, cpc = 1000/999 = 1.001 -> 1.0,
			// conv = 33/999*100 = 3.3033 -> 3.3
			want: Metrics{CTR: 3.33, CPC: 1.0, ConversionRate: 3.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMetrics(tt.budget, tt.impressions, tt.clicks, tt.conversions)
			assert.Equal(t, tt.want, got)
		})
	}
}
