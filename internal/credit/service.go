package credit

import (
	"context"
	"time"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/logging"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/metrics"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/traces"
)

// EventSink receives completed assessments for fan-out to live subscribers.
type EventSink interface {
	Publish(event string, data any)
}

// BatchSummary extends the generic batch counters with the mean score over
// successful items.
type BatchSummary struct {
	scoring.BatchSummary
	AverageScore float64 `json:"average_score"`
}

// Service wraps the scoring engine with validation, instrumentation, and
// event publishing.
type Service struct {
	engine *Engine
	events EventSink
}

// NewService creates a new credit scoring service. events may be nil.
func NewService(engine *Engine, events EventSink) *Service {
	return &Service{engine: engine, events: events}
}

// Score validates and scores a single request.
func (s *Service) Score(ctx context.Context, req *ScoreRequest) (*ScoreResult, error) {
	ctx, span := traces.StartSpan(ctx, "credit.score", traces.UserID(req.UserID), traces.Model("credit"))
	defer span.End()

	start := time.Now()

	if errs := req.Validate(); len(errs) > 0 {
		metrics.ObserveAssessment("credit", "invalid", time.Since(start))
		return nil, errs
	}

	result, err := s.engine.Score(req)
	if err != nil {
		metrics.ObserveAssessment("credit", "error", time.Since(start))
		return nil, err
	}

	metrics.ObserveAssessment("credit", "ok", time.Since(start))
	metrics.CreditScoreDistribution.Observe(float64(result.CreditScore))

	logging.L(ctx).Info("credit score computed",
		"user_id", result.UserID,
		"user_type", req.UserType,
		"score", result.CreditScore,
		"grade", result.CreditGrade,
		"risk_level", result.RiskLevel,
		"confidence", result.Confidence,
	)

	if s.events != nil {
		s.events.Publish("credit_score", result)
	}

	return result, nil
}

// ScoreBatch scores up to MaxBatchSize requests concurrently. Oversized
// batches are rejected wholesale; individual failures are reported per item
// without failing the batch.
func (s *Service) ScoreBatch(ctx context.Context, reqs []*ScoreRequest) ([]scoring.BatchItem[ScoreResult], BatchSummary, error) {
	ctx, span := traces.StartSpan(ctx, "credit.score_batch", traces.BatchCount(len(reqs)), traces.Model("credit"))
	defer span.End()

	items, counts, err := scoring.RunBatch(ctx, MaxBatchSize, reqs, s.Score)
	if err != nil {
		return nil, BatchSummary{}, err
	}
	metrics.BatchSize.WithLabelValues("credit").Observe(float64(len(reqs)))

	summary := BatchSummary{BatchSummary: counts}
	if counts.Successful > 0 {
		var total int
		for _, item := range items {
			if item.Success {
				total += item.Result.CreditScore
			}
		}
		summary.AverageScore = scoring.Round(float64(total)/float64(counts.Successful), 2)
	}

	logging.L(ctx).Info("credit batch scored",
		"total", counts.Total,
		"successful", counts.Successful,
		"failed", counts.Failed,
	)

	return items, summary, nil
}

// ModelInfo describes the scoring model to API consumers.
func (s *Service) ModelInfo() map[string]any {
	return map[string]any{
		"model_name":           "MantleMusic Credit Scoring Model v1.0",
		"score_range":          "300-850",
		"supported_user_types": []UserType{UserArtist, UserInvestor, UserLabel, UserProducer},
		"risk_levels":          RiskTable.Labels(),
		"credit_grades":        GradeTable.Labels(),
		"update_frequency":     "Real-time",
		"factors": map[string]string{
			"financial_history":     "35-40%",
			"user_specific_metrics": "25-30%",
			"blockchain_activity":   "20%",
			"social_reputation":     "10-15%",
		},
	}
}
