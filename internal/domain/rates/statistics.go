package rates

import (
	"math"
	"sort"
)

// Round2 rounds a monetary value to cents. Applied only at output boundaries;
// intermediate math stays at full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Mean returns the arithmetic mean, or 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Percentile computes the p-th percentile (p in [0,1]) by linear
// interpolation between order statistics, matching PERCENTILE_CONT. Returns
// 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	rank := p * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// RecommendedRange derives the +-2.5% band around a market average, rounded
// to cents at the boundary
func RecommendedRange(average float64) (low, high float64) {
	return Round2(average * 0.975), Round2(average * 1.025)
}

// EstimatedPercentile approximates where a proposed rate sits in the
// distribution by interpolating linearly between the competitive floor
// (treated as its percentile) and the mean (treated as the median). This is
// a rough approximation, not a true percentile; it is preserved as-is because
// the recommendation thresholds built on it are externally visible.
func EstimatedPercentile(proposed, floor, mean float64, floorPercentile float64) float64 {
	if mean <= 0 {
		return 0
	}
	floorPct := floorPercentile * 100
	if mean <= floor {
		if proposed >= mean {
			return 50
		}
		return floorPct
	}
	pct := floorPct + (proposed-floor)/(mean-floor)*(50-floorPct)
	return clamp(pct, 1, 99)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
