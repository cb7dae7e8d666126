package revenue

import (
	"context"
	"time"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/logging"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/metrics"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
	"github.com/mbdtf202-cyber/MantleMusicFi/internal/traces"
)

// EventSink receives completed predictions for fan-out to live subscribers.
type EventSink interface {
	Publish(event string, data any)
}

// BatchSummary extends the generic batch counters with the mean predicted
// revenue over successful items.
type BatchSummary struct {
	scoring.BatchSummary
	AverageRevenue float64 `json:"average_revenue"`
}

// Service wraps the prediction engine with validation, instrumentation, and
// event publishing.
type Service struct {
	engine *Engine
	events EventSink
}

// NewService creates a new revenue prediction service. events may be nil.
func NewService(engine *Engine, events EventSink) *Service {
	return &Service{engine: engine, events: events}
}

// Predict validates and runs a single prediction.
func (s *Service) Predict(ctx context.Context, req *PredictionRequest) (*Prediction, error) {
	ctx, span := traces.StartSpan(ctx, "revenue.predict", traces.TrackID(req.Metadata.Title), traces.Model("revenue"))
	defer span.End()

	start := time.Now()

	if errs := req.Validate(); len(errs) > 0 {
		metrics.ObserveAssessment("revenue", "invalid", time.Since(start))
		return nil, errs
	}

	result, err := s.engine.Predict(req)
	if err != nil {
		metrics.ObserveAssessment("revenue", "error", time.Since(start))
		return nil, err
	}

	metrics.ObserveAssessment("revenue", "ok", time.Since(start))

	logging.L(ctx).Info("revenue prediction completed",
		"title", req.Metadata.Title,
		"artist", req.Metadata.Artist,
		"genre", req.Metadata.Genre,
		"predicted_revenue", result.PredictedRevenue,
	)

	if s.events != nil {
		s.events.Publish("revenue_prediction", result)
	}

	return result, nil
}

// PredictBatch runs up to MaxBatchSize predictions concurrently. Oversized
// batches are rejected wholesale; individual failures are reported per item
// without failing the batch.
func (s *Service) PredictBatch(ctx context.Context, reqs []*PredictionRequest) ([]scoring.BatchItem[Prediction], BatchSummary, error) {
	ctx, span := traces.StartSpan(ctx, "revenue.predict_batch", traces.BatchCount(len(reqs)), traces.Model("revenue"))
	defer span.End()

	items, counts, err := scoring.RunBatch(ctx, MaxBatchSize, reqs, s.Predict)
	if err != nil {
		return nil, BatchSummary{}, err
	}
	metrics.BatchSize.WithLabelValues("revenue").Observe(float64(len(reqs)))

	summary := BatchSummary{BatchSummary: counts}
	if counts.Successful > 0 {
		var total float64
		for _, item := range items {
			if item.Success {
				total += item.Result.PredictedRevenue
			}
		}
		summary.AverageRevenue = scoring.Round(total/float64(counts.Successful), 2)
	}

	logging.L(ctx).Info("revenue batch predicted",
		"total", counts.Total,
		"successful", counts.Successful,
		"failed", counts.Failed,
	)

	return items, summary, nil
}

// ModelInfo describes the prediction model to API consumers.
func (s *Service) ModelInfo() map[string]any {
	return map[string]any{
		"model_name":        "MantleMusic Revenue Predictor v1.0",
		"accuracy":          ModelAccuracy,
		"feature_weights":   FeatureWeights,
		"supported_genres":  SupportedGenres,
		"prediction_range":  "1-1095 days",
		"confidence_levels": "80%-99%",
	}
}
