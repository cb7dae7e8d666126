package risk

import (
	"fmt"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/validation"
)

// Validate checks an assessment request at the API boundary.
func (r *AssessmentRequest) Validate() validation.ValidationErrors {
	errs := validation.Validate(
		validation.Required("assessment_id", r.AssessmentID),
		validation.MaxLength("assessment_id", r.AssessmentID, 128),
		validation.Ratio("risk_tolerance", r.RiskTolerance),
		validation.Ratio("market_data.market_depth", r.MarketData.MarketDepth),
		validation.InRange("market_data.market_sentiment", r.MarketData.MarketSentiment, -1, 1),
		validation.NonNegative("market_data.volatility", r.MarketData.Volatility),
	)

	if !r.TimeHorizon.Valid() {
		errs = append(errs, validation.ValidationError{
			Field:   "time_horizon",
			Message: fmt.Sprintf("must be one of short_term, medium_term, long_term (got %q)", r.TimeHorizon),
		})
	}

	if len(r.AssessmentTypes) == 0 {
		errs = append(errs, validation.ValidationError{
			Field:   "assessment_types",
			Message: "at least one assessment type is required",
		})
	}
	for _, rt := range r.AssessmentTypes {
		if !rt.Valid() {
			errs = append(errs, validation.ValidationError{
				Field:   "assessment_types",
				Message: fmt.Sprintf("unknown risk type %q", rt),
			})
		}
	}

	if asset := r.AssetInfo; asset != nil {
		errs = append(errs, validation.Validate(
			validation.Required("asset_info.asset_id", asset.AssetID),
			validation.NonNegative("asset_info.current_price", asset.CurrentPrice),
			validation.NonNegative("asset_info.market_cap", asset.MarketCap),
			validation.NonNegative("asset_info.volume_24h", asset.Volume24h),
		)...)
		if !asset.AssetType.Valid() {
			errs = append(errs, validation.ValidationError{
				Field:   "asset_info.asset_type",
				Message: fmt.Sprintf("unknown asset type %q", asset.AssetType),
			})
		}
	}

	if ops := r.Operational; ops != nil {
		errs = append(errs, validation.Validate(
			validation.Ratio("operational_inputs.platform_reliability", ops.PlatformReliability),
			validation.Ratio("operational_inputs.manual_process_share", ops.ManualProcessShare),
			validation.Ratio("operational_inputs.network_congestion", ops.NetworkCongestion),
			validation.Ratio("operational_inputs.regional_risk", ops.RegionalRisk),
			validation.NonNegative("operational_inputs.incident_count", float64(ops.IncidentCount)),
			validation.NonNegative("operational_inputs.audit_age_days", float64(ops.AuditAgeDays)),
			validation.NonNegative("operational_inputs.security_incidents", float64(ops.SecurityIncidents)),
		)...)
	}

	for i, p := range r.MarketData.PriceHistory {
		if p.Price < 0 {
			errs = append(errs, validation.ValidationError{
				Field:   fmt.Sprintf("market_data.price_history[%d].price", i),
				Message: "must not be negative",
			})
		}
	}

	return errs
}

// Validate checks a stress-test request at the API boundary. Severity 0
// means "use the default"; RunStressTest fills it in.
func (r *StressTestRequest) Validate() validation.ValidationErrors {
	var errs validation.ValidationErrors

	if len(r.AssetIDs) == 0 {
		errs = append(errs, validation.ValidationError{
			Field:   "asset_ids",
			Message: "at least one asset id is required",
		})
	}
	if len(r.AssetIDs) > MaxStressAssets {
		errs = append(errs, validation.ValidationError{
			Field:   "asset_ids",
			Message: fmt.Sprintf("exceeds limit of %d assets", MaxStressAssets),
		})
	}
	for i, id := range r.AssetIDs {
		if id == "" {
			errs = append(errs, validation.ValidationError{
				Field:   fmt.Sprintf("asset_ids[%d]", i),
				Message: "must not be empty",
			})
		}
	}

	if r.Severity != 0 && (r.Severity < 0.1 || r.Severity > 1.0) {
		errs = append(errs, validation.ValidationError{
			Field:   "severity",
			Message: "must be between 0.1 and 1.0",
		})
	}

	return errs
}
