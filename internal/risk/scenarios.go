package risk

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
)

// lossRange is an interval of potential loss fractions.
type lossRange struct {
	lo, hi float64
}

// at interpolates the range at t in [0,1].
func (r lossRange) at(t float64) float64 {
	return r.lo + (r.hi-r.lo)*scoring.Clamp(t, 0, 1)
}

// scenarioSpec is one entry of the fixed scenario catalogue.
type scenarioSpec struct {
	name        string
	probability float64
	impact      float64
	description string
	loss        lossRange
	mitigations []string
}

// The scenario catalogue. Potential loss scales within each range with the
// overall risk score: riskier assets sit closer to the top of the range.
var scenarioCatalogue = []scenarioSpec{
	{
		name:        "Market Crash",
		probability: 0.05,
		impact:      0.8,
		description: "Severe market downturn affecting all music assets",
		loss:        lossRange{0.3, 0.7},
		mitigations: []string{
			"Diversify across different asset types",
			"Implement stop-loss orders",
			"Maintain cash reserves",
		},
	},
	{
		name:        "Regulatory Changes",
		probability: 0.15,
		impact:      0.6,
		description: "New regulations affecting music token trading",
		loss:        lossRange{0.2, 0.5},
		mitigations: []string{
			"Stay informed about regulatory developments",
			"Ensure compliance with current regulations",
			"Diversify geographically",
		},
	},
	{
		name:        "Technical Failure",
		probability: 0.10,
		impact:      0.4,
		description: "Platform or smart contract technical issues",
		loss:        lossRange{0.1, 0.3},
		mitigations: []string{
			"Use multiple platforms",
			"Regular security audits",
			"Backup recovery plans",
		},
	},
	{
		name:        "Liquidity Crisis",
		probability: 0.20,
		impact:      0.5,
		description: "Severe reduction in market liquidity",
		loss:        lossRange{0.15, 0.4},
		mitigations: []string{
			"Maintain diverse asset portfolio",
			"Monitor liquidity metrics",
			"Plan exit strategies",
		},
	},
}

// buildScenarios instantiates the catalogue against an overall risk score.
func buildScenarios(overallScore float64) []Scenario {
	out := make([]Scenario, 0, len(scenarioCatalogue))
	for _, spec := range scenarioCatalogue {
		out = append(out, Scenario{
			ScenarioName:         spec.name,
			Probability:          spec.probability,
			Impact:               spec.impact,
			Description:          spec.description,
			PotentialLoss:        scoring.Round(spec.loss.at(overallScore/ScoreCeil), 4),
			MitigationStrategies: spec.mitigations,
		})
	}
	return out
}

// builtinStressTables returns the fixed shock tables attached to every
// assessment: symmetric price shocks, liquidity regimes, and correlation
// regimes.
func builtinStressTables() StressSummary {
	priceShocks := []float64{-0.5, -0.3, -0.2, -0.1, 0.1, 0.2, 0.3, 0.5}
	price := make(map[string]float64, len(priceShocks))
	for _, shock := range priceShocks {
		price[fmt.Sprintf("%.0f%%", shock*100)] = scoring.Round(math.Abs(shock), 4)
	}

	liquidityRegimes := map[string]float64{
		"normal":   1.0,
		"stressed": 0.5,
		"crisis":   0.2,
		"extreme":  0.05,
	}
	liquidity := make(map[string]float64, len(liquidityRegimes))
	for regime, available := range liquidityRegimes {
		liquidity[regime] = scoring.Round((1-available)*0.3, 4)
	}

	return StressSummary{
		PriceShock:      price,
		LiquidityStress: liquidity,
		CorrelationStress: map[string]float64{
			"normal_correlation":  0.45,
			"high_correlation":    0.80,
			"extreme_correlation": 0.95,
		},
	}
}

// Stress test scenario identifiers (wire-level).
const (
	StressMarketCrash     = "market_crash"
	StressLiquidityCrisis = "liquidity_crisis"
	StressRegulatoryShock = "regulatory_shock"
)

// MaxStressAssets bounds a single stress-test call.
const MaxStressAssets = 100

// stressProfile holds the per-scenario loss range, base probability, and
// correlation adjustment used by the stress tester.
type stressProfile struct {
	loss        lossRange
	probability float64
	correlation float64
}

var stressProfiles = map[string]stressProfile{
	StressMarketCrash:     {loss: lossRange{0.3, 0.8}, probability: 0.05, correlation: 1.4},
	StressLiquidityCrisis: {loss: lossRange{0.2, 0.6}, probability: 0.20, correlation: 1.3},
	StressRegulatoryShock: {loss: lossRange{0.1, 0.5}, probability: 0.15, correlation: 1.2},
}

// defaultStressProfile covers scenario names outside the known set.
var defaultStressProfile = stressProfile{loss: lossRange{0.1, 0.4}, probability: 0.10, correlation: 1.2}

// DefaultStressScenarios is the scenario list used when a request omits one.
var DefaultStressScenarios = []string{StressMarketCrash, StressLiquidityCrisis}

// StressTestRequest runs the given scenarios over a set of assets.
type StressTestRequest struct {
	AssetIDs  []string `json:"asset_ids" binding:"required"`
	Scenarios []string `json:"stress_scenarios"`
	Severity  float64  `json:"severity"` // (0, 1], default 0.5
}

// StressImpact is one asset's outcome under one scenario.
type StressImpact struct {
	PotentialLoss    float64 `json:"potential_loss"`
	RecoveryTimeDays int     `json:"recovery_time_days"`
	Probability      float64 `json:"probability"`
}

// ScenarioAggregate is the portfolio-level outcome of one scenario.
type ScenarioAggregate struct {
	AverageLoss           float64 `json:"average_loss"`
	WorstCaseLoss         float64 `json:"worst_case_loss"`
	CorrelationAdjustment float64 `json:"correlation_adjustment"`
}

// StressTestParameters echoes the inputs a stress test ran with.
type StressTestParameters struct {
	Severity        float64  `json:"severity"`
	ScenariosTested []string `json:"scenarios_tested"`
	AssetsCount     int      `json:"assets_count"`
}

// StressTestResult is a completed stress test: one impact per asset and
// scenario, one aggregate per scenario.
type StressTestResult struct {
	IndividualAssets map[string]map[string]StressImpact `json:"individual_assets"`
	PortfolioImpact  map[string]ScenarioAggregate       `json:"portfolio_impact"`
	TestParameters   StressTestParameters               `json:"test_parameters"`
	Recommendations  []string                           `json:"recommendations"`
}

// RunStressTest evaluates every requested scenario against every asset.
// Per-asset variation within a scenario's loss range comes from a stable
// hash of the asset and scenario identifiers, so repeated runs agree.
func RunStressTest(req *StressTestRequest) (*StressTestResult, error) {
	if len(req.AssetIDs) == 0 {
		return nil, fmt.Errorf("no asset ids given")
	}
	if len(req.AssetIDs) > MaxStressAssets {
		return nil, fmt.Errorf("too many assets: %d exceeds limit %d", len(req.AssetIDs), MaxStressAssets)
	}

	severity := req.Severity
	if severity == 0 {
		severity = 0.5
	}
	if severity < 0.1 || severity > 1.0 {
		return nil, fmt.Errorf("severity %v outside [0.1, 1.0]", severity)
	}

	scenarios := req.Scenarios
	if len(scenarios) == 0 {
		scenarios = DefaultStressScenarios
	}

	individual := make(map[string]map[string]StressImpact, len(req.AssetIDs))
	for _, assetID := range req.AssetIDs {
		perAsset := make(map[string]StressImpact, len(scenarios))
		for _, scenario := range scenarios {
			profile, ok := stressProfiles[scenario]
			if !ok {
				profile = defaultStressProfile
			}

			loss := severity * profile.loss.at(assetFraction(assetID, scenario))
			perAsset[scenario] = StressImpact{
				PotentialLoss:    scoring.Round(loss, 4),
				RecoveryTimeDays: 30 + int(math.Round(loss*300)),
				Probability:      profile.probability,
			}
		}
		individual[assetID] = perAsset
	}

	portfolio := make(map[string]ScenarioAggregate, len(scenarios))
	for _, scenario := range scenarios {
		profile, ok := stressProfiles[scenario]
		if !ok {
			profile = defaultStressProfile
		}

		var sum, worst float64
		for _, assetID := range req.AssetIDs {
			loss := individual[assetID][scenario].PotentialLoss
			sum += loss
			if loss > worst {
				worst = loss
			}
		}
		portfolio[scenario] = ScenarioAggregate{
			AverageLoss:           scoring.Round(sum/float64(len(req.AssetIDs)), 4),
			WorstCaseLoss:         worst,
			CorrelationAdjustment: profile.correlation,
		}
	}

	return &StressTestResult{
		IndividualAssets: individual,
		PortfolioImpact:  portfolio,
		TestParameters: StressTestParameters{
			Severity:        severity,
			ScenariosTested: scenarios,
			AssetsCount:     len(req.AssetIDs),
		},
		Recommendations: []string{
			"Consider hedging strategies for high-impact scenarios",
			"Maintain adequate liquidity buffers",
			"Monitor correlation changes during stress periods",
			"Review and update risk limits regularly",
		},
	}, nil
}

// assetFraction maps an asset/scenario pair to a stable value in [0, 1).
func assetFraction(assetID, scenario string) float64 {
	h := fnv.New32a()
	h.Write([]byte(assetID))
	h.Write([]byte{'|'})
	h.Write([]byte(scenario))
	return float64(h.Sum32()) / float64(math.MaxUint32+1)
}
