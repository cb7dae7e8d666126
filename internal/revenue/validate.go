package revenue

import (
	"fmt"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/validation"
)

// Validate checks a prediction request at the API boundary. Zero period and
// confidence level mean "use the defaults"; the engine fills them in.
func (r *PredictionRequest) Validate() validation.ValidationErrors {
	errs := validation.Validate(
		validation.Required("music_metadata.title", r.Metadata.Title),
		validation.Required("music_metadata.artist", r.Metadata.Artist),
		validation.Required("music_metadata.genre", r.Metadata.Genre),
		validation.MaxLength("music_metadata.title", r.Metadata.Title, 256),
		validation.MaxLength("music_metadata.artist", r.Metadata.Artist, 256),
		validation.NonNegative("music_metadata.duration", float64(r.Metadata.DurationSec)),
	)

	if r.PredictionPeriod != 0 && (r.PredictionPeriod < 1 || r.PredictionPeriod > MaxPeriodDays) {
		errs = append(errs, validation.ValidationError{
			Field:   "prediction_period",
			Message: fmt.Sprintf("must be between 1 and %d days", MaxPeriodDays),
		})
	}

	if r.ConfidenceLevel != 0 && (r.ConfidenceLevel < MinConfidenceLevel || r.ConfidenceLevel > MaxConfidenceLevel) {
		errs = append(errs, validation.ValidationError{
			Field:   "confidence_level",
			Message: fmt.Sprintf("must be between %v and %v", MinConfidenceLevel, MaxConfidenceLevel),
		})
	}

	if mc := r.MarketConditions; mc != nil {
		errs = append(errs, validation.Validate(
			validation.Ratio("market_conditions.genre_popularity", mc.GenrePopularity),
			validation.InRange("market_conditions.seasonal_factor", mc.SeasonalFactor, 0, 2),
			validation.Ratio("market_conditions.competition_level", mc.CompetitionLevel),
		)...)
	}

	if h := r.HistoricalData; h != nil {
		for i, rev := range h.Revenue {
			if rev < 0 {
				errs = append(errs, validation.ValidationError{
					Field:   fmt.Sprintf("historical_data.revenue[%d]", i),
					Message: "must not be negative",
				})
			}
		}
	}

	return errs
}
