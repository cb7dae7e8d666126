package risk

import (
	"fmt"
	"testing"
)

func TestRunStressTest_Shape(t *testing.T) {
	req := &StressTestRequest{
		AssetIDs:  []string{"asset-a", "asset-b", "asset-c"},
		Scenarios: []string{StressMarketCrash, StressLiquidityCrisis, StressRegulatoryShock},
		Severity:  0.5,
	}

	result, err := RunStressTest(req)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.IndividualAssets) != 3 {
		t.Errorf("got %d assets, want 3", len(result.IndividualAssets))
	}
	for _, assetID := range req.AssetIDs {
		perAsset, ok := result.IndividualAssets[assetID]
		if !ok {
			t.Errorf("missing asset %s", assetID)
			continue
		}
		if len(perAsset) != 3 {
			t.Errorf("asset %s has %d scenarios, want 3", assetID, len(perAsset))
		}
	}
	if len(result.PortfolioImpact) != 3 {
		t.Errorf("got %d portfolio aggregates, want 3", len(result.PortfolioImpact))
	}

	if result.TestParameters.Severity != 0.5 || result.TestParameters.AssetsCount != 3 {
		t.Errorf("parameters = %+v", result.TestParameters)
	}
	if len(result.Recommendations) != 4 {
		t.Errorf("recommendations = %v", result.Recommendations)
	}
}

func TestRunStressTest_Deterministic(t *testing.T) {
	req := &StressTestRequest{AssetIDs: []string{"asset-a", "asset-b"}}

	a, err := RunStressTest(req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunStressTest(req)
	if err != nil {
		t.Fatal(err)
	}

	for assetID, scenarios := range a.IndividualAssets {
		for scenario, impact := range scenarios {
			if other := b.IndividualAssets[assetID][scenario]; other != impact {
				t.Errorf("%s/%s differs between runs: %+v vs %+v", assetID, scenario, impact, other)
			}
		}
	}
}

func TestRunStressTest_ImpactBounds(t *testing.T) {
	req := &StressTestRequest{
		AssetIDs:  []string{"a1", "a2", "a3", "a4", "a5"},
		Scenarios: []string{StressMarketCrash, StressLiquidityCrisis, StressRegulatoryShock, "alien_invasion"},
		Severity:  1.0,
	}

	result, err := RunStressTest(req)
	if err != nil {
		t.Fatal(err)
	}

	bounds := map[string]lossRange{
		StressMarketCrash:     {0.3, 0.8},
		StressLiquidityCrisis: {0.2, 0.6},
		StressRegulatoryShock: {0.1, 0.5},
		"alien_invasion":      {0.1, 0.4},
	}

	for assetID, scenarios := range result.IndividualAssets {
		for scenario, impact := range scenarios {
			r := bounds[scenario]
			if impact.PotentialLoss < r.lo || impact.PotentialLoss > r.hi {
				t.Errorf("%s/%s loss %v outside [%v, %v]", assetID, scenario, impact.PotentialLoss, r.lo, r.hi)
			}
			if impact.RecoveryTimeDays < 30 || impact.RecoveryTimeDays > 365 {
				t.Errorf("%s/%s recovery %d days outside [30, 365]", assetID, scenario, impact.RecoveryTimeDays)
			}
			if impact.Probability <= 0 || impact.Probability > 1 {
				t.Errorf("%s/%s probability %v", assetID, scenario, impact.Probability)
			}
		}
	}
}

func TestRunStressTest_AggregatesConsistent(t *testing.T) {
	req := &StressTestRequest{
		AssetIDs: []string{"a1", "a2", "a3", "a4"},
		Severity: 0.7,
	}

	result, err := RunStressTest(req)
	if err != nil {
		t.Fatal(err)
	}

	for scenario, agg := range result.PortfolioImpact {
		var worst float64
		for _, assetID := range req.AssetIDs {
			if loss := result.IndividualAssets[assetID][scenario].PotentialLoss; loss > worst {
				worst = loss
			}
		}
		if agg.WorstCaseLoss != worst {
			t.Errorf("%s worst case %v, want %v", scenario, agg.WorstCaseLoss, worst)
		}
		if agg.AverageLoss > agg.WorstCaseLoss {
			t.Errorf("%s average %v exceeds worst %v", scenario, agg.AverageLoss, agg.WorstCaseLoss)
		}
		if agg.CorrelationAdjustment < 1.0 {
			t.Errorf("%s correlation adjustment %v < 1", scenario, agg.CorrelationAdjustment)
		}
	}
}

func TestRunStressTest_SeverityScales(t *testing.T) {
	mild, err := RunStressTest(&StressTestRequest{AssetIDs: []string{"asset-a"}, Severity: 0.2})
	if err != nil {
		t.Fatal(err)
	}
	severe, err := RunStressTest(&StressTestRequest{AssetIDs: []string{"asset-a"}, Severity: 1.0})
	if err != nil {
		t.Fatal(err)
	}

	for _, scenario := range DefaultStressScenarios {
		m := mild.IndividualAssets["asset-a"][scenario].PotentialLoss
		s := severe.IndividualAssets["asset-a"][scenario].PotentialLoss
		if m >= s {
			t.Errorf("%s: severity 0.2 loss %v >= severity 1.0 loss %v", scenario, m, s)
		}
	}
}

func TestRunStressTest_Defaults(t *testing.T) {
	result, err := RunStressTest(&StressTestRequest{AssetIDs: []string{"asset-a"}})
	if err != nil {
		t.Fatal(err)
	}

	if result.TestParameters.Severity != 0.5 {
		t.Errorf("default severity = %v, want 0.5", result.TestParameters.Severity)
	}
	if len(result.TestParameters.ScenariosTested) != len(DefaultStressScenarios) {
		t.Errorf("default scenarios = %v", result.TestParameters.ScenariosTested)
	}
}

func TestRunStressTest_Rejections(t *testing.T) {
	if _, err := RunStressTest(&StressTestRequest{}); err == nil {
		t.Error("expected error for no assets")
	}
	if _, err := RunStressTest(&StressTestRequest{AssetIDs: []string{"a"}, Severity: 0.05}); err == nil {
		t.Error("expected error for severity below 0.1")
	}
	if _, err := RunStressTest(&StressTestRequest{AssetIDs: []string{"a"}, Severity: 1.5}); err == nil {
		t.Error("expected error for severity above 1.0")
	}

	many := make([]string, MaxStressAssets+1)
	for i := range many {
		many[i] = fmt.Sprintf("asset-%d", i)
	}
	if _, err := RunStressTest(&StressTestRequest{AssetIDs: many}); err == nil {
		t.Error("expected error for oversized asset list")
	}
}
