// Package analysis scores a token's scraped metrics. The heuristic is fixed
// arithmetic: the same TokenMetrics always produce the same AnalysisResult.
package analysis

import (
	"github.com/pumpscope/pumpscope/internal/models"
	"github.com/pumpscope/pumpscope/internal/normalize"
)

// Baseline both scores start from before the factor adjustments.
const baseScore = 50

// Analyze maps normalized token metrics to a risk score, a quality score and
// a trade signal. Factor categories apply independently; within a category
// the branches are mutually exclusive. Both scores are clamped to [0,100]
// before the signal is derived, and the BUY condition is checked before SELL.
func Analyze(m models.TokenMetrics) models.AnalysisResult {
	risk := baseScore
	quality := baseScore

	// Market cap factor
	if m.MarketCap < 10000 {
		risk += 20
		quality -= 10
	} else if m.MarketCap > 100000 {
		risk -= 10
		quality += 15
	}

	// Volume strength, only when the source exposed a volume figure
	if m.HasVolume24h {
		if m.Volume24h < 1000 {
			risk += 15
		} else if m.Volume24h > 10000 {
			risk -= 10
			quality += 10
		}
	}

	// 24h momentum
	if m.HasChange24h {
		if m.Change24h > 10 {
			quality += 10
		}
		if m.Change24h < -10 {
			risk += 15
		}
	}

	// Overextended since launch?
	if m.FromLaunch > 300 {
		risk += 20
		quality -= 10
	} else if m.FromLaunch > 100 {
		risk += 10
	}

	// Bonding curve near graduation is safer
	if m.BondingProgress > 70 {
		risk -= 10
		quality += 10
	} else if m.BondingProgress < 25 {
		risk += 10
	}

	risk = clampScore(risk)
	quality = clampScore(quality)

	signal := models.SignalHold
	reason := "Neutral structure/conditions"

	if quality > 65 && risk < 50 {
		signal = models.SignalBuy
		if m.HasVolume24h {
			reason = "Strong momentum + acceptable risk"
		} else {
			reason = "Strong structure with manageable risk"
		}
	} else if risk > 70 {
		signal = models.SignalSell
		reason = "High risk microcap/weak-structure conditions"
	}

	return models.AnalysisResult{
		RiskScore:    risk,
		QualityScore: quality,
		Signal:       signal,
		Reason:       reason,
	}
}

// MetricsFromDetail normalizes a scraped detail page into scoring input. The
// detail page carries no volume or 24h-change figures, so those factors stay
// unavailable.
func MetricsFromDetail(d models.ProjectDetail) models.TokenMetrics {
	return models.TokenMetrics{
		MarketCap:       normalize.ParseCurrency(d.MarketCap),
		FromLaunch:      normalize.ParsePercent(d.FromLaunch),
		BondingProgress: normalize.ClampPercent(normalize.ParsePercent(d.Progress)),
	}
}

// MetricsFromSummary normalizes a listing card into scoring input. The 24h
// change factor is available only when the card actually rendered one.
func MetricsFromSummary(p models.ProjectSummary) models.TokenMetrics {
	return models.TokenMetrics{
		MarketCap:       normalize.ParseCurrency(p.MarketCap),
		Change24h:       normalize.ParsePercent(p.Change),
		HasChange24h:    p.Change != nil,
		BondingProgress: normalize.ClampPercent(normalize.ParsePercent(p.Progress)),
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
