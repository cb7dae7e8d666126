package risk

import (
	"math"
	"sort"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
)

// tradingDaysPerYear annualizes daily return statistics.
const tradingDaysPerYear = 252

// Conservative fallbacks used when the price series is too short to
// estimate a statistic.
const (
	fallbackVaR95             = 0.10
	fallbackVaR99             = 0.15
	fallbackExpectedShortfall = 0.20
	fallbackMaxDrawdown       = 0.30
	fallbackVolatility        = 0.30
	fallbackBeta              = 1.0
	fallbackTrackingError     = 0.05
)

// ComputeMetrics derives quantitative risk measures from the supplied price
// history. With fewer than two usable price points every statistic falls
// back to its conservative default; caller-supplied volatility and beta
// always win over both.
func ComputeMetrics(m *MarketData) Metrics {
	returns := dailyReturns(m.PriceHistory)

	out := Metrics{
		VaR95:             fallbackVaR95,
		VaR99:             fallbackVaR99,
		ExpectedShortfall: fallbackExpectedShortfall,
		MaxDrawdown:       fallbackMaxDrawdown,
		Volatility:        fallbackVolatility,
		Beta:              fallbackBeta,
		TrackingError:     fallbackTrackingError,
	}

	if len(returns) > 0 {
		mean, std := meanStd(returns)

		out.VaR95 = lossQuantile(returns, 0.05)
		out.VaR99 = lossQuantile(returns, 0.01)
		out.ExpectedShortfall = expectedShortfall(returns, 0.05)
		out.MaxDrawdown = maxDrawdown(m.PriceHistory)
		out.Volatility = std * math.Sqrt(tradingDaysPerYear)

		if std > 0 {
			out.SharpeRatio = scoring.Round(mean/std*math.Sqrt(tradingDaysPerYear), 4)
		}
		if down := downsideStd(returns); down > 0 {
			out.SortinoRatio = scoring.Round(mean/down*math.Sqrt(tradingDaysPerYear), 4)
		}
	}

	if m.Volatility > 0 {
		out.Volatility = m.Volatility
	}
	if m.Beta != 0 {
		out.Beta = m.Beta
	}

	out.VaR95 = scoring.Round(out.VaR95, 4)
	out.VaR99 = scoring.Round(out.VaR99, 4)
	out.ExpectedShortfall = scoring.Round(out.ExpectedShortfall, 4)
	out.MaxDrawdown = scoring.Round(out.MaxDrawdown, 4)
	out.Volatility = scoring.Round(out.Volatility, 4)

	return out
}

// dailyReturns converts a price series into simple returns, skipping
// non-positive prices.
func dailyReturns(points []PricePoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1].Price, points[i].Price
		if prev <= 0 || cur <= 0 {
			continue
		}
		returns = append(returns, cur/prev-1)
	}
	return returns
}

func meanStd(xs []float64) (mean, std float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	if len(xs) < 2 {
		return mean, 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}

// downsideStd is the standard deviation of negative returns only, against a
// zero target.
func downsideStd(xs []float64) float64 {
	var ss float64
	var n int
	for _, x := range xs {
		if x < 0 {
			ss += x * x
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(ss / float64(n))
}

// lossQuantile returns the loss at the given lower-tail quantile of the
// return distribution, as a positive fraction. A profitable tail yields 0.
func lossQuantile(returns []float64, q float64) float64 {
	v := quantile(returns, q)
	if v >= 0 {
		return 0
	}
	return -v
}

// expectedShortfall is the mean loss beyond the q lower-tail quantile.
func expectedShortfall(returns []float64, q float64) float64 {
	cut := quantile(returns, q)
	var sum float64
	var n int
	for _, r := range returns {
		if r <= cut {
			sum += r
			n++
		}
	}
	if n == 0 || sum >= 0 {
		return 0
	}
	return -sum / float64(n)
}

// quantile computes the q-quantile with linear interpolation.
func quantile(xs []float64, q float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// maxDrawdown is the largest peak-to-trough decline of the price series, as
// a positive fraction of the peak.
func maxDrawdown(points []PricePoint) float64 {
	var peak, worst float64
	for _, p := range points {
		if p.Price <= 0 {
			continue
		}
		if p.Price > peak {
			peak = p.Price
		}
		if peak > 0 {
			if dd := (peak - p.Price) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
