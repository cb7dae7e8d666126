package credit

import (
	"fmt"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/validation"
)

// Validate checks a score request at the API boundary. The engine assumes
// these checks have passed.
func (r *ScoreRequest) Validate() validation.ValidationErrors {
	errs := validation.Validate(
		validation.Required("user_id", r.UserID),
		validation.MaxLength("user_id", r.UserID, 128),
		validation.NonNegative("financial_history.total_revenue", r.FinancialHistory.TotalRevenue),
		validation.NonNegative("financial_history.defaults", float64(r.FinancialHistory.Defaults)),
		validation.NonNegative("financial_history.late_payments", float64(r.FinancialHistory.LatePayments)),
		validation.NonNegative("financial_history.total_transactions", float64(r.FinancialHistory.TotalTransactions)),
		validation.NonNegative("financial_history.average_transaction_size", r.FinancialHistory.AverageTransactionSize),
		validation.ValidWallet("blockchain_metrics.wallet_address", r.BlockchainMetrics.WalletAddress),
		validation.NonNegative("blockchain_metrics.wallet_age", float64(r.BlockchainMetrics.WalletAgeDays)),
		validation.NonNegative("blockchain_metrics.transaction_count", float64(r.BlockchainMetrics.TransactionCount)),
		validation.NonNegative("blockchain_metrics.total_volume", r.BlockchainMetrics.TotalVolume),
		validation.NonNegative("blockchain_metrics.staking_amount", r.BlockchainMetrics.StakingAmount),
		validation.Ratio("social_metrics.community_reputation", r.SocialMetrics.CommunityReputation),
		validation.Ratio("social_metrics.negative_sentiment_ratio", r.SocialMetrics.NegativeSentimentRatio),
		validation.NonNegative("social_metrics.social_engagement_rate", r.SocialMetrics.EngagementRate),
	)

	if !r.UserType.Valid() {
		errs = append(errs, validation.ValidationError{
			Field:   "user_type",
			Message: fmt.Sprintf("must be one of artist, investor, label, producer (got %q)", r.UserType),
		})
	}

	if r.ArtistMetrics != nil {
		errs = append(errs, validation.Validate(
			validation.NonNegative("artist_metrics.total_streams", float64(r.ArtistMetrics.TotalStreams)),
			validation.NonNegative("artist_metrics.follower_count", float64(r.ArtistMetrics.FollowerCount)),
			validation.NonNegative("artist_metrics.engagement_rate", r.ArtistMetrics.EngagementRate),
			validation.NonNegative("artist_metrics.release_frequency", r.ArtistMetrics.ReleaseFrequency),
			validation.NonNegative("artist_metrics.collaboration_count", float64(r.ArtistMetrics.CollaborationCount)),
			validation.NonNegative("artist_metrics.awards_count", float64(r.ArtistMetrics.AwardsCount)),
		)...)
	}

	if r.InvestorMetrics != nil {
		errs = append(errs, validation.Validate(
			validation.NonNegative("investor_metrics.total_invested", r.InvestorMetrics.TotalInvested),
			validation.NonNegative("investor_metrics.portfolio_size", float64(r.InvestorMetrics.PortfolioSize)),
			validation.NonNegative("investor_metrics.successful_investments", float64(r.InvestorMetrics.SuccessfulInvestments)),
			validation.NonNegative("investor_metrics.failed_investments", float64(r.InvestorMetrics.FailedInvestments)),
			validation.Ratio("investor_metrics.diversification_score", r.InvestorMetrics.DiversificationScore),
		)...)
	}

	for platform, n := range r.SocialMetrics.Followers {
		if n < 0 {
			errs = append(errs, validation.ValidationError{
				Field:   "social_metrics.social_media_followers." + platform,
				Message: "must not be negative",
			})
		}
	}

	return errs
}
