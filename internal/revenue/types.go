// Package revenue implements streaming-revenue prediction for music catalogue
// assets: a deterministic base-revenue model adjusted by market conditions and
// historical performance, with platform and monthly breakdowns.
package revenue

import "time"

// TrackMetadata describes the track a prediction is for.
type TrackMetadata struct {
	Title       string             `json:"title" binding:"required"`
	Artist      string             `json:"artist" binding:"required"`
	Genre       string             `json:"genre" binding:"required"`
	DurationSec int                `json:"duration"`
	ReleaseDate time.Time          `json:"release_date"`
	Language    string             `json:"language"`
	Explicit    bool               `json:"explicit"`
	Features    map[string]float64 `json:"features,omitempty"` // audio features
}

// HistoricalData carries observed streaming performance.
type HistoricalData struct {
	Streams   []int64              `json:"streams"`
	Revenue   []float64            `json:"revenue"`
	Dates     []time.Time          `json:"dates"`
	Platforms map[string][]float64 `json:"platforms,omitempty"`
}

// MarketConditions adjusts a prediction for the current market.
type MarketConditions struct {
	GenrePopularity  float64 `json:"genre_popularity"` // 0-1
	SeasonalFactor   float64 `json:"seasonal_factor"`  // 0-2
	CompetitionLevel float64 `json:"competition_level"` // 0-1
}

// PredictionRequest asks for a revenue prediction over a period.
type PredictionRequest struct {
	Metadata         TrackMetadata     `json:"music_metadata" binding:"required"`
	HistoricalData   *HistoricalData   `json:"historical_data,omitempty"`
	MarketConditions *MarketConditions `json:"market_conditions,omitempty"`
	PredictionPeriod int               `json:"prediction_period"` // days, default 365
	ConfidenceLevel  float64           `json:"confidence_level"`  // default 0.95
}

// ConfidenceInterval brackets a prediction.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PeriodRevenue is one month of the prediction's decay curve.
type PeriodRevenue struct {
	Period     string  `json:"period"`
	Revenue    float64 `json:"revenue"`
	Cumulative float64 `json:"cumulative"`
	GrowthRate float64 `json:"growth_rate"` // percent vs previous month
}

// Prediction is a completed revenue prediction.
type Prediction struct {
	PredictedRevenue    float64            `json:"predicted_revenue"`
	ConfidenceInterval  ConfidenceInterval `json:"confidence_interval"`
	BreakdownByPlatform map[string]float64 `json:"breakdown_by_platform"`
	BreakdownByPeriod   []PeriodRevenue    `json:"breakdown_by_period"`
	RiskFactors         []string           `json:"risk_factors"`
	Recommendations     []string           `json:"recommendations"`
	ModelAccuracy       float64            `json:"model_accuracy"`
	PredictionDate      time.Time          `json:"prediction_date"`
}

// Request defaults and bounds.
const (
	DefaultPeriodDays      = 365
	MaxPeriodDays          = 1095
	DefaultConfidenceLevel = 0.95
	MinConfidenceLevel     = 0.80
	MaxConfidenceLevel     = 0.99
)

// MaxBatchSize bounds a single batch-prediction call.
const MaxBatchSize = 50
