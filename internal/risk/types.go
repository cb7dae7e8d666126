// Package risk implements multi-factor investment risk assessment for
// MantleMusicFi assets: per-category risk scoring, quantitative metrics
// derived from price history, scenario analysis, and portfolio stress
// testing.
//
// Like the credit engine, the risk engine is stateless and deterministic.
// Everything the original inputs left to chance (market depth, platform
// reliability, regional exposure) is an explicit request field with a
// documented default.
package risk

import "time"

// RiskType is a risk assessment category.
type RiskType string

const (
	RiskMarket      RiskType = "market"
	RiskCredit      RiskType = "credit"
	RiskLiquidity   RiskType = "liquidity"
	RiskOperational RiskType = "operational"
	RiskRegulatory  RiskType = "regulatory"
	RiskTechnology  RiskType = "technology"
)

// AllRiskTypes lists every supported assessment category.
var AllRiskTypes = []RiskType{
	RiskMarket, RiskCredit, RiskLiquidity, RiskOperational, RiskRegulatory, RiskTechnology,
}

// Valid reports whether the risk type is supported.
func (r RiskType) Valid() bool {
	switch r {
	case RiskMarket, RiskCredit, RiskLiquidity, RiskOperational, RiskRegulatory, RiskTechnology:
		return true
	}
	return false
}

// Level is the overall risk classification of an assessment.
type Level string

const (
	LevelVeryLow  Level = "very_low"
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very_high"
	LevelExtreme  Level = "extreme"
)

// Severe reports whether the level calls for defensive action.
func (l Level) Severe() bool {
	return l == LevelHigh || l == LevelVeryHigh || l == LevelExtreme
}

// AssetType identifies the kind of music asset being assessed.
type AssetType string

const (
	AssetMusicToken    AssetType = "music_token"
	AssetArtistShare   AssetType = "artist_share"
	AssetRoyaltyStream AssetType = "royalty_stream"
	AssetLabelEquity   AssetType = "label_equity"
	AssetPlatformToken AssetType = "platform_token"
)

// AllAssetTypes lists every supported asset type.
var AllAssetTypes = []AssetType{
	AssetMusicToken, AssetArtistShare, AssetRoyaltyStream, AssetLabelEquity, AssetPlatformToken,
}

// Valid reports whether the asset type is supported.
func (a AssetType) Valid() bool {
	switch a {
	case AssetMusicToken, AssetArtistShare, AssetRoyaltyStream, AssetLabelEquity, AssetPlatformToken:
		return true
	}
	return false
}

// TimeHorizon is the investment horizon an assessment targets.
type TimeHorizon string

const (
	HorizonShort  TimeHorizon = "short_term"  // 1-3 months
	HorizonMedium TimeHorizon = "medium_term" // 3-12 months
	HorizonLong   TimeHorizon = "long_term"   // 1+ years
)

// Valid reports whether the time horizon is supported.
func (h TimeHorizon) Valid() bool {
	switch h {
	case HorizonShort, HorizonMedium, HorizonLong:
		return true
	}
	return false
}

// AssetInfo describes the asset under assessment.
type AssetInfo struct {
	AssetID           string    `json:"asset_id"`
	AssetType         AssetType `json:"asset_type"`
	Name              string    `json:"name"`
	Symbol            string    `json:"symbol"`
	CurrentPrice      float64   `json:"current_price"`
	MarketCap         float64   `json:"market_cap"`
	Volume24h         float64   `json:"volume_24h"`
	CirculatingSupply float64   `json:"circulating_supply"`
	TotalSupply       float64   `json:"total_supply"`
}

// PricePoint is one observation in a price series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// MarketData carries the market observations an assessment runs on.
type MarketData struct {
	PriceHistory    []PricePoint       `json:"price_history"`
	Volatility      float64            `json:"volatility"`
	Beta            float64            `json:"beta"`
	CorrelationWith map[string]float64 `json:"correlation_matrix"`
	MarketSentiment float64            `json:"market_sentiment"` // -1 to 1
	MarketDepth     float64            `json:"market_depth"`     // 0-1, 0 means unknown
}

// PortfolioData describes the caller's portfolio context.
type PortfolioData struct {
	TotalValue           float64            `json:"total_value"`
	Allocation           map[string]float64 `json:"allocation"`
	DiversificationScore float64            `json:"diversification_score"`
	ConcentrationRisk    float64            `json:"concentration_risk"`
}

// OperationalInputs carries the operational and technology observations
// used by the operational, regulatory, and technology sub-scorers. Zero
// values fall back to the defaults documented on each field.
type OperationalInputs struct {
	PlatformReliability float64 `json:"platform_reliability"` // 0-1, default 0.95
	IncidentCount       int     `json:"incident_count"`       // operational incidents, trailing year
	ManualProcessShare  float64 `json:"manual_process_share"` // 0-1 share of manual workflows
	AuditAgeDays        int     `json:"audit_age_days"`       // days since last contract audit
	NetworkCongestion   float64 `json:"network_congestion"`   // 0-1
	SecurityIncidents   int     `json:"security_incidents"`   // trailing year
	RegionalRisk        float64 `json:"regional_risk"`        // 0-1, default 0.5
}

// AssessmentRequest asks for a risk assessment over the given categories.
type AssessmentRequest struct {
	AssessmentID    string             `json:"assessment_id" binding:"required"`
	AssetInfo       *AssetInfo         `json:"asset_info,omitempty"`
	PortfolioData   *PortfolioData     `json:"portfolio_data,omitempty"`
	MarketData      MarketData         `json:"market_data"`
	Operational     *OperationalInputs `json:"operational_inputs,omitempty"`
	TimeHorizon     TimeHorizon        `json:"time_horizon" binding:"required"`
	RiskTolerance   float64            `json:"risk_tolerance"` // 0=conservative, 1=aggressive
	AssessmentTypes []RiskType         `json:"assessment_types" binding:"required"`
}

// Metrics are the quantitative risk measures of an assessment. VaR and
// expected shortfall are loss fractions (positive numbers).
type Metrics struct {
	VaR95             float64 `json:"var_95"`
	VaR99             float64 `json:"var_99"`
	ExpectedShortfall float64 `json:"expected_shortfall"`
	MaxDrawdown       float64 `json:"max_drawdown"`
	SharpeRatio       float64 `json:"sharpe_ratio"`
	SortinoRatio      float64 `json:"sortino_ratio"`
	Volatility        float64 `json:"volatility"`
	Beta              float64 `json:"beta"`
	TrackingError     float64 `json:"tracking_error"`
}

// Scenario is one adverse scenario with its estimated effect on the asset.
type Scenario struct {
	ScenarioName         string   `json:"scenario_name"`
	Probability          float64  `json:"probability"`
	Impact               float64  `json:"impact"`
	Description          string   `json:"description"`
	PotentialLoss        float64  `json:"potential_loss"`
	MitigationStrategies []string `json:"mitigation_strategies"`
}

// FactorAnalysis groups the raw factor readings behind each sub-score.
type FactorAnalysis struct {
	MarketFactors      map[string]float64 `json:"market_factors"`
	CreditFactors      map[string]float64 `json:"credit_factors"`
	LiquidityFactors   map[string]float64 `json:"liquidity_factors"`
	OperationalFactors map[string]float64 `json:"operational_factors"`
	RegulatoryFactors  map[string]float64 `json:"regulatory_factors"`
	TechnologyFactors  map[string]float64 `json:"technology_factors"`
}

// StressSummary holds the built-in stress tables attached to an assessment.
type StressSummary struct {
	PriceShock        map[string]float64 `json:"price_shock"`
	LiquidityStress   map[string]float64 `json:"liquidity_stress"`
	CorrelationStress map[string]float64 `json:"correlation_stress"`
}

// AssessmentResult is a completed risk assessment.
type AssessmentResult struct {
	AssessmentID     string               `json:"assessment_id"`
	OverallRiskLevel Level                `json:"overall_risk_level"`
	OverallRiskScore float64              `json:"overall_risk_score"` // 0-100
	Confidence       float64              `json:"confidence"`
	RiskBreakdown    map[RiskType]float64 `json:"risk_breakdown"`
	RiskMetrics      Metrics              `json:"risk_metrics"`
	RiskScenarios    []Scenario           `json:"risk_scenarios"`
	Recommendations  []string             `json:"recommendations"`
	RiskFactors      FactorAnalysis       `json:"risk_factors"`
	StressTests      StressSummary        `json:"stress_test_results"`
	CreatedAt        time.Time            `json:"created_at"`
	ValidUntil       time.Time            `json:"valid_until"`
}

// Validity is how long an assessment remains current.
const Validity = 24 * time.Hour
