package risk

import (
	"fmt"
	"time"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
)

// Score bounds and per-category base scores.
const (
	ScoreFloor = 0
	ScoreCeil  = 100

	baseMarket      = 50
	baseCredit      = 30
	baseLiquidity   = 40
	baseOperational = 25
	baseRegulatory  = 35
	baseTechnology  = 20
)

// Defaults for observations the caller may omit.
const (
	DefaultMarketDepth         = 0.5
	DefaultPlatformReliability = 0.95
	DefaultRegionalRisk        = 0.5
)

// Weights combines the per-category scores into the overall risk score.
// Renormalization handles assessments over a subset of categories.
var Weights = scoring.MustWeightProfile("risk", map[string]float64{
	string(RiskMarket):      0.30,
	string(RiskCredit):      0.25,
	string(RiskLiquidity):   0.20,
	string(RiskOperational): 0.10,
	string(RiskRegulatory):  0.10,
	string(RiskTechnology):  0.05,
})

// LevelTable maps an overall risk score to its level (score <= cutoff).
var LevelTable = scoring.MustAscendingTable([]scoring.Band{
	{Label: string(LevelVeryLow), Cutoff: 20},
	{Label: string(LevelLow), Cutoff: 40},
	{Label: string(LevelMedium), Cutoff: 60},
	{Label: string(LevelHigh), Cutoff: 80},
	{Label: string(LevelVeryHigh), Cutoff: 95},
}, string(LevelExtreme))

// horizonDecay discounts the overall score by investment horizon: short
// horizons feel the full risk, long horizons amortize it.
var horizonDecay = map[TimeHorizon]float64{
	HorizonShort:  1.0,
	HorizonMedium: 0.8,
	HorizonLong:   0.6,
}

// liquidityHorizonFactor scales liquidity risk the opposite way: exiting a
// thin market is hardest on a short horizon.
var liquidityHorizonFactor = map[TimeHorizon]float64{
	HorizonShort:  1.2,
	HorizonMedium: 1.0,
	HorizonLong:   0.8,
}

// assetCreditRisk is the counterparty-risk contribution per asset type.
var assetCreditRisk = map[AssetType]float64{
	AssetMusicToken:    40,
	AssetArtistShare:   35,
	AssetRoyaltyStream: 25,
	AssetLabelEquity:   30,
	AssetPlatformToken: 45,
}

// assetRegulatoryRisk is the regulatory-exposure contribution per asset type.
var assetRegulatoryRisk = map[AssetType]float64{
	AssetMusicToken:    30,
	AssetArtistShare:   40,
	AssetRoyaltyStream: 20,
	AssetLabelEquity:   35,
	AssetPlatformToken: 45,
}

// Engine computes risk assessments. Stateless and safe for concurrent use.
type Engine struct {
	weights *scoring.WeightProfile
	levels  *scoring.ThresholdTable
	now     func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the engine's time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a risk assessment engine with the standard weights and
// level thresholds.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: Weights,
		levels:  LevelTable,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assess computes a full risk assessment for one request.
func (e *Engine) Assess(req *AssessmentRequest) (*AssessmentResult, error) {
	if len(req.AssessmentTypes) == 0 {
		return nil, fmt.Errorf("no assessment types requested")
	}
	if !req.TimeHorizon.Valid() {
		return nil, fmt.Errorf("unknown time horizon %q", req.TimeHorizon)
	}

	breakdown := make(map[RiskType]float64, len(req.AssessmentTypes))
	weighted := make(map[string]float64, len(req.AssessmentTypes))
	for _, rt := range req.AssessmentTypes {
		if !rt.Valid() {
			return nil, fmt.Errorf("unknown risk type %q", rt)
		}
		score := e.scoreCategory(rt, req)
		breakdown[rt] = score
		weighted[string(rt)] = score
	}

	aggregate, err := e.weights.Aggregate(weighted)
	if err != nil {
		return nil, fmt.Errorf("aggregate risk score: %w", err)
	}
	overall := scoring.Round(scoring.Clamp(aggregate*horizonDecay[req.TimeHorizon], ScoreFloor, ScoreCeil), 2)
	level := Level(e.levels.Classify(overall))

	now := e.now()
	return &AssessmentResult{
		AssessmentID:     req.AssessmentID,
		OverallRiskLevel: level,
		OverallRiskScore: overall,
		Confidence:       e.confidence(req),
		RiskBreakdown:    breakdown,
		RiskMetrics:      ComputeMetrics(&req.MarketData),
		RiskScenarios:    buildScenarios(overall),
		Recommendations:  recommendations(req, overall, level),
		RiskFactors:      e.analyzeFactors(req),
		StressTests:      builtinStressTables(),
		CreatedAt:        now,
		ValidUntil:       now.Add(Validity),
	}, nil
}

func (e *Engine) scoreCategory(rt RiskType, req *AssessmentRequest) float64 {
	switch rt {
	case RiskMarket:
		return e.scoreMarket(&req.MarketData)
	case RiskCredit:
		return e.scoreCredit(req.AssetInfo)
	case RiskLiquidity:
		return e.scoreLiquidity(req)
	case RiskOperational:
		return e.scoreOperational(req.Operational)
	case RiskRegulatory:
		return e.scoreRegulatory(req)
	case RiskTechnology:
		return e.scoreTechnology(req.Operational)
	}
	return 0
}

func (e *Engine) scoreMarket(m *MarketData) float64 {
	score := float64(baseMarket)

	if m.Volatility > 0 {
		score += scoring.CapLinear(m.Volatility, 100, 40)
	}

	if beta := abs(m.Beta); beta > 1 {
		score += scoring.CapLinear(beta-1, 20, 20)
	}

	if m.MarketSentiment < 0 {
		score += -m.MarketSentiment * 30
	}

	if avg, ok := avgCorrelation(m.CorrelationWith); ok && avg > 0.7 {
		score += (avg - 0.7) * 50
	}

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreCredit(asset *AssetInfo) float64 {
	score := float64(baseCredit)
	if asset == nil {
		return score
	}

	if risk, ok := assetCreditRisk[asset.AssetType]; ok {
		score += risk
	} else {
		score += 40
	}

	switch {
	case asset.MarketCap <= 0:
		// no size signal
	case asset.MarketCap < 1_000_000:
		score += 30
	case asset.MarketCap < 10_000_000:
		score += 20
	default:
		score += 10
	}

	if asset.Volume24h > 0 && asset.MarketCap > 0 {
		if asset.Volume24h/asset.MarketCap < 0.01 {
			score += 25
		}
	}

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreLiquidity(req *AssessmentRequest) float64 {
	score := float64(baseLiquidity)

	if asset := req.AssetInfo; asset != nil && asset.Volume24h > 0 {
		switch {
		case asset.Volume24h < 10_000:
			score += 40
		case asset.Volume24h < 100_000:
			score += 25
		default:
			score += 10
		}
	}

	// Thin order books add risk; full depth adds none.
	depth := req.MarketData.MarketDepth
	if depth <= 0 {
		depth = DefaultMarketDepth
	}
	score += (1 - depth) * 30

	score *= liquidityHorizonFactor[req.TimeHorizon]

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreOperational(ops *OperationalInputs) float64 {
	score := float64(baseOperational)

	reliability := DefaultPlatformReliability
	if ops != nil && ops.PlatformReliability > 0 {
		reliability = ops.PlatformReliability
	}
	score += scoring.CapLinear(1-reliability, 100, 30)

	if ops != nil {
		score += scoring.CapLinear(float64(ops.IncidentCount), 5, 15)
		score += ops.ManualProcessShare * 15
	}

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreRegulatory(req *AssessmentRequest) float64 {
	score := float64(baseRegulatory)

	if asset := req.AssetInfo; asset != nil {
		if risk, ok := assetRegulatoryRisk[asset.AssetType]; ok {
			score += risk
		} else {
			score += 35
		}
	}

	regional := DefaultRegionalRisk
	if req.Operational != nil && req.Operational.RegionalRisk > 0 {
		regional = req.Operational.RegionalRisk
	}
	score += regional * 25

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreTechnology(ops *OperationalInputs) float64 {
	score := float64(baseTechnology)

	if ops != nil {
		score += scoring.CapLinear(float64(ops.AuditAgeDays)/30, 5, 35)
		score += ops.NetworkCongestion * 25
		score += scoring.CapLinear(float64(ops.SecurityIncidents), 5, 20)
	}

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

// confidence estimates how much data backed the assessment.
func (e *Engine) confidence(req *AssessmentRequest) float64 {
	return scoring.NewConfidence().
		AddIf(len(req.MarketData.PriceHistory) > 30, 0.2).
		AddIf(req.MarketData.Volatility > 0, 0.1).
		AddIf(req.AssetInfo != nil && req.AssetInfo.MarketCap > 0, 0.1).
		AddIf(len(req.AssessmentTypes) >= 4, 0.1).
		Value()
}

// analyzeFactors surfaces the raw readings behind each sub-score so callers
// can see what drove the numbers.
func (e *Engine) analyzeFactors(req *AssessmentRequest) FactorAnalysis {
	avgCorr, _ := avgCorrelation(req.MarketData.CorrelationWith)

	depth := req.MarketData.MarketDepth
	if depth <= 0 {
		depth = DefaultMarketDepth
	}
	reliability := DefaultPlatformReliability
	regional := DefaultRegionalRisk
	var incidents, auditAge, secIncidents float64
	var manualShare, congestion float64
	if ops := req.Operational; ops != nil {
		if ops.PlatformReliability > 0 {
			reliability = ops.PlatformReliability
		}
		if ops.RegionalRisk > 0 {
			regional = ops.RegionalRisk
		}
		incidents = float64(ops.IncidentCount)
		manualShare = ops.ManualProcessShare
		auditAge = float64(ops.AuditAgeDays)
		congestion = ops.NetworkCongestion
		secIncidents = float64(ops.SecurityIncidents)
	}

	var assetCredit, assetRegulatory, marketCap, volume float64
	if asset := req.AssetInfo; asset != nil {
		assetCredit = assetCreditRisk[asset.AssetType] / 100
		assetRegulatory = assetRegulatoryRisk[asset.AssetType] / 100
		marketCap = asset.MarketCap
		volume = asset.Volume24h
	}

	return FactorAnalysis{
		MarketFactors: map[string]float64{
			"volatility":       req.MarketData.Volatility,
			"beta":             req.MarketData.Beta,
			"market_sentiment": req.MarketData.MarketSentiment,
			"correlation_risk": avgCorr,
		},
		CreditFactors: map[string]float64{
			"asset_type_risk": assetCredit,
			"market_cap":      marketCap,
		},
		LiquidityFactors: map[string]float64{
			"market_depth":   depth,
			"trading_volume": volume,
		},
		OperationalFactors: map[string]float64{
			"platform_reliability": reliability,
			"incident_count":       incidents,
			"manual_process_share": manualShare,
		},
		RegulatoryFactors: map[string]float64{
			"regional_risk":         regional,
			"asset_regulatory_risk": assetRegulatory,
		},
		TechnologyFactors: map[string]float64{
			"audit_age_days":     auditAge,
			"network_congestion": congestion,
			"security_incidents": secIncidents,
		},
	}
}

// recommendations builds the risk-management advice list. Order is fixed:
// level-driven warnings first, condition-specific advice, then the standing
// guidance every assessment carries.
func recommendations(req *AssessmentRequest, score float64, level Level) []string {
	var recs []string

	if level.Severe() {
		recs = append(recs,
			"Consider reducing position size",
			"Implement strict stop-loss orders",
			"Increase portfolio diversification",
			"Monitor positions more frequently",
		)
	}

	if score > 70 {
		recs = append(recs, "Consider hedging strategies to reduce risk exposure")
	}

	if req.TimeHorizon == HorizonShort && score > 60 {
		recs = append(recs, "Short-term high risk detected - consider extending time horizon")
	}

	if req.AssetInfo != nil && req.AssetInfo.Volume24h < 50_000 {
		recs = append(recs, "Low liquidity detected - plan exit strategy carefully")
	}

	if req.MarketData.Volatility > 0.3 {
		recs = append(recs, "High volatility - consider dollar-cost averaging")
	}

	return append(recs,
		"Regular portfolio rebalancing recommended",
		"Stay informed about market developments",
		"Maintain adequate cash reserves",
		"Consider professional risk management advice",
	)
}

func avgCorrelation(m map[string]float64) (float64, bool) {
	if len(m) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range m {
		sum += v
	}
	return sum / float64(len(m)), true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
