package engine

import "math"

// ComputeMetrics derives CTR, CPC and conversion rate from raw counters,
// each rounded to two decimals. A zero denominator yields 0 rather than
// an error: no activity, no rate to report.
func ComputeMetrics(budget float64, impressions, clicks, conversions int64) Metrics {
	var m Metrics
	if impressions > 0 {
		m.CTR = round2(float64(clicks) / float64(impressions) * 100)
	}
	if clicks > 0 {
		m.CPC = round2(budget / float64(clicks))
		m.ConversionRate = round2(float64(conversions) / float64(clicks) * 100)
	}
	return m
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
