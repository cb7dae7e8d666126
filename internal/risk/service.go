package risk

import (
	"context"
	"time"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/logging"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/metrics"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/traces"
)

// EventSink receives completed assessments for fan-out to live subscribers.
type EventSink interface {
	Publish(event string, data any)
}

// Service wraps the risk engine with validation, instrumentation, and event
// publishing.
type Service struct {
	engine *Engine
	events EventSink
}

// NewService creates a new risk assessment service. events may be nil.
func NewService(engine *Engine, events EventSink) *Service {
	return &Service{engine: engine, events: events}
}

// Assess validates and runs a single risk assessment.
func (s *Service) Assess(ctx context.Context, req *AssessmentRequest) (*AssessmentResult, error) {
	ctx, span := traces.StartSpan(ctx, "risk.assess", traces.Model("risk"))
	defer span.End()

	start := time.Now()

	if errs := req.Validate(); len(errs) > 0 {
		metrics.ObserveAssessment("risk", "invalid", time.Since(start))
		return nil, errs
	}

	result, err := s.engine.Assess(req)
	if err != nil {
		metrics.ObserveAssessment("risk", "error", time.Since(start))
		return nil, err
	}

	metrics.ObserveAssessment("risk", "ok", time.Since(start))
	metrics.RiskScoreDistribution.Observe(result.OverallRiskScore)

	logging.L(ctx).Info("risk assessment completed",
		"assessment_id", result.AssessmentID,
		"risk_level", result.OverallRiskLevel,
		"risk_score", result.OverallRiskScore,
		"categories", len(result.RiskBreakdown),
		"confidence", result.Confidence,
	)

	if s.events != nil {
		s.events.Publish("risk_assessment", result)
	}

	return result, nil
}

// StressTest validates and runs a portfolio stress test.
func (s *Service) StressTest(ctx context.Context, req *StressTestRequest) (*StressTestResult, error) {
	ctx, span := traces.StartSpan(ctx, "risk.stress_test", traces.BatchCount(len(req.AssetIDs)), traces.Model("stress_test"))
	defer span.End()

	start := time.Now()

	if errs := req.Validate(); len(errs) > 0 {
		metrics.ObserveAssessment("stress_test", "invalid", time.Since(start))
		return nil, errs
	}

	result, err := RunStressTest(req)
	if err != nil {
		metrics.ObserveAssessment("stress_test", "error", time.Since(start))
		return nil, err
	}

	metrics.ObserveAssessment("stress_test", "ok", time.Since(start))

	logging.L(ctx).Info("stress test completed",
		"assets", result.TestParameters.AssetsCount,
		"scenarios", len(result.TestParameters.ScenariosTested),
		"severity", result.TestParameters.Severity,
	)

	if s.events != nil {
		s.events.Publish("stress_test", result)
	}

	return result, nil
}

// ModelInfo describes the risk model to API consumers.
func (s *Service) ModelInfo() map[string]any {
	return map[string]any{
		"model_name":           "MantleMusic Risk Assessment Model v1.0",
		"supported_risk_types": AllRiskTypes,
		"risk_levels":          LevelTable.Labels(),
		"asset_types":          AllAssetTypes,
		"time_horizons":        []TimeHorizon{HorizonShort, HorizonMedium, HorizonLong},
		"risk_metrics": []string{
			"Value at Risk (VaR)",
			"Expected Shortfall",
			"Maximum Drawdown",
			"Sharpe Ratio",
			"Sortino Ratio",
			"Beta Coefficient",
		},
		"stress_test_scenarios": []string{
			"Market Crash",
			"Liquidity Crisis",
			"Regulatory Changes",
			"Technology Failures",
		},
		"model_features": []string{
			"Multi-factor risk analysis",
			"Dynamic correlation modeling",
			"Stress testing capabilities",
			"Scenario-based risk assessment",
			"Real-time risk monitoring",
		},
	}
}
