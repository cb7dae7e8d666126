package revenue

import (
	"fmt"
	"strings"
	"time"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
)

// BaseRevenue is the genre-neutral starting point of every prediction.
const BaseRevenue = 1000.0

// ModelAccuracy is the published backtest accuracy of the model.
const ModelAccuracy = 0.85

// genreMultipliers scale the base revenue by genre demand.
var genreMultipliers = map[string]float64{
	"pop":        1.2,
	"rock":       1.0,
	"hip-hop":    1.3,
	"electronic": 0.9,
	"classical":  0.7,
	"jazz":       0.6,
	"country":    0.8,
	"r&b":        1.1,
}

const defaultGenreMultiplier = 1.0

// platformShares splits predicted revenue across streaming platforms.
var platformShares = map[string]float64{
	"spotify":       0.35,
	"apple_music":   0.25,
	"youtube_music": 0.20,
	"amazon_music":  0.10,
	"other":         0.10,
}

// FeatureWeights is the relative importance of the model's input features,
// published through the model-info endpoint.
var FeatureWeights = map[string]float64{
	"genre_popularity": 0.25,
	"artist_followers": 0.20,
	"track_quality":    0.15,
	"release_timing":   0.15,
	"marketing_budget": 0.10,
	"platform_reach":   0.10,
	"seasonal_factor":  0.05,
}

// SupportedGenres lists the genres with calibrated multipliers.
var SupportedGenres = []string{
	"pop", "rock", "hip-hop", "electronic", "classical", "jazz", "country", "r&b",
}

// Engine computes revenue predictions. Stateless and safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the engine's time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a revenue prediction engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Predict computes a full revenue prediction for one request.
func (e *Engine) Predict(req *PredictionRequest) (*Prediction, error) {
	period := req.PredictionPeriod
	if period == 0 {
		period = DefaultPeriodDays
	}
	if period < 1 || period > MaxPeriodDays {
		return nil, fmt.Errorf("prediction period %d outside [1, %d] days", period, MaxPeriodDays)
	}

	confidence := req.ConfidenceLevel
	if confidence == 0 {
		confidence = DefaultConfidenceLevel
	}
	if confidence < MinConfidenceLevel || confidence > MaxConfidenceLevel {
		return nil, fmt.Errorf("confidence level %v outside [%v, %v]", confidence, MinConfidenceLevel, MaxConfidenceLevel)
	}

	base := e.baseRevenue(&req.Metadata)

	if mc := req.MarketConditions; mc != nil {
		base *= mc.GenrePopularity
		base *= mc.SeasonalFactor
	}

	// Observed revenue pulls the model estimate halfway toward reality.
	if h := req.HistoricalData; h != nil && len(h.Revenue) > 0 {
		base = (base + mean(h.Revenue)) / 2
	}

	// Longer horizons deflate per-period certainty.
	timeFactor := 1 - float64(period)/365*0.3
	if timeFactor < 0.1 {
		timeFactor = 0.1
	}
	predicted := scoring.Round(base*timeFactor, 2)

	margin := predicted * (1 - confidence) * 2
	interval := ConfidenceInterval{
		Lower: scoring.Round(maxf(0, predicted-margin), 2),
		Upper: scoring.Round(predicted+margin, 2),
	}

	return &Prediction{
		PredictedRevenue:    predicted,
		ConfidenceInterval:  interval,
		BreakdownByPlatform: platformBreakdown(predicted),
		BreakdownByPeriod:   periodBreakdown(predicted, period),
		RiskFactors:         riskFactors(req, period),
		Recommendations:     buildRecommendations(req, predicted),
		ModelAccuracy:       ModelAccuracy,
		PredictionDate:      e.now(),
	}, nil
}

// baseRevenue derives the pre-adjustment revenue from track metadata alone.
func (e *Engine) baseRevenue(meta *TrackMetadata) float64 {
	mult, ok := genreMultipliers[strings.ToLower(meta.Genre)]
	if !ok {
		mult = defaultGenreMultiplier
	}

	// Three minutes is the reference duration.
	durationFactor := scoring.Clamp(float64(meta.DurationSec)/180, 0.5, 1.5)

	// Fresh releases earn more; the advantage fades over the first two years.
	daysSinceRelease := e.now().Sub(meta.ReleaseDate).Hours() / 24
	recencyFactor := 1 - daysSinceRelease/365*0.5
	if recencyFactor < 0.3 {
		recencyFactor = 0.3
	}

	return BaseRevenue * mult * durationFactor * recencyFactor
}

func platformBreakdown(total float64) map[string]float64 {
	out := make(map[string]float64, len(platformShares))
	for platform, share := range platformShares {
		out[platform] = scoring.Round(total*share, 2)
	}
	return out
}

// periodBreakdown spreads revenue over up to twelve months with front-loaded
// decay: each month earns 15 points less of the flat monthly share, floored
// at 10%.
func periodBreakdown(total float64, days int) []PeriodRevenue {
	months := days/30 + 1
	if months > 12 {
		months = 12
	}

	out := make([]PeriodRevenue, 0, months)
	var cumulative float64
	for month := 0; month < months; month++ {
		decay := 1 - float64(month)*0.15
		if decay < 0.1 {
			decay = 0.1
		}
		monthly := scoring.Round(total/12*decay, 2)
		cumulative += monthly

		growth := 0.0
		if month > 0 {
			growth = -15
		}
		out = append(out, PeriodRevenue{
			Period:     fmt.Sprintf("Month %d", month+1),
			Revenue:    monthly,
			Cumulative: scoring.Round(cumulative, 2),
			GrowthRate: growth,
		})
	}
	return out
}

func riskFactors(req *PredictionRequest, period int) []string {
	var risks []string

	if mc := req.MarketConditions; mc != nil {
		if mc.CompetitionLevel > 0.7 {
			risks = append(risks, "High competition in genre")
		}
		if mc.GenrePopularity < 0.3 {
			risks = append(risks, "Low genre popularity")
		}
	}

	if req.HistoricalData == nil || len(req.HistoricalData.Revenue) == 0 {
		risks = append(risks, "Limited historical data")
	}

	if period > 730 {
		risks = append(risks, "Long-term prediction uncertainty")
	}

	if len(req.Metadata.Features) == 0 {
		risks = append(risks, "Limited artist performance data")
	}

	return risks
}

func buildRecommendations(req *PredictionRequest, predicted float64) []string {
	var recs []string

	if predicted < 500 {
		recs = append(recs,
			"Consider increasing marketing budget",
			"Explore collaboration opportunities",
		)
	} else if predicted > 5000 {
		recs = append(recs,
			"Consider premium pricing strategy",
			"Expand to additional platforms",
		)
	}

	switch strings.ToLower(req.Metadata.Genre) {
	case "pop", "hip-hop":
		recs = append(recs, "Focus on social media promotion")
	case "classical", "jazz":
		recs = append(recs, "Target niche streaming platforms")
	}

	if mc := req.MarketConditions; mc != nil {
		if mc.SeasonalFactor > 1.2 {
			recs = append(recs, "Optimize for seasonal trends")
		}
		if mc.CompetitionLevel > 0.8 {
			recs = append(recs, "Differentiate through unique features")
		}
	}

	return recs
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
