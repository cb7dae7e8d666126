// Package credit implements FICO-style credit scoring for MantleMusicFi
// participants. A score is computed from structured metric bundles
// (financial history, blockchain activity, social reputation, plus
// artist- or investor-specific metrics), combined through a weight profile
// selected by user type, and classified into a credit grade and risk level.
//
// The engine is stateless and deterministic: identical inputs always
// produce identical results apart from timestamps.
package credit

import "time"

// UserType identifies the kind of platform participant being scored.
type UserType string

const (
	UserArtist   UserType = "artist"
	UserInvestor UserType = "investor"
	UserLabel    UserType = "label"
	UserProducer UserType = "producer"
)

// Valid reports whether the user type is one of the supported variants.
func (u UserType) Valid() bool {
	switch u {
	case UserArtist, UserInvestor, UserLabel, UserProducer:
		return true
	}
	return false
}

// Grade is a credit grade from AAA (best) to D (worst).
type Grade string

const (
	GradeAAA Grade = "AAA"
	GradeAA  Grade = "AA"
	GradeA   Grade = "A"
	GradeBBB Grade = "BBB"
	GradeBB  Grade = "BB"
	GradeB   Grade = "B"
	GradeCCC Grade = "CCC"
	GradeCC  Grade = "CC"
	GradeC   Grade = "C"
	GradeD   Grade = "D"
)

// RiskLevel is the coarse lending-risk classification of a credit score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// FinancialHistory is the financial-track-record metric bundle.
// All fields are counts, amounts, or ratios; zero values mean "no data".
type FinancialHistory struct {
	TotalRevenue           float64 `json:"total_revenue"`
	Defaults               int     `json:"defaults"`
	LatePayments           int     `json:"late_payments"`
	TotalTransactions      int     `json:"total_transactions"`
	AverageTransactionSize float64 `json:"average_transaction_size"`
}

// ArtistMetrics is the artist-specific metric bundle.
type ArtistMetrics struct {
	TotalStreams       int64   `json:"total_streams"`
	MonthlyListeners   int64   `json:"monthly_listeners"`
	FollowerCount      int64   `json:"follower_count"`
	EngagementRate     float64 `json:"engagement_rate"`
	ReleaseFrequency   float64 `json:"release_frequency"` // releases per month
	CollaborationCount int     `json:"collaboration_count"`
	AwardsCount        int     `json:"awards_count"`
}

// InvestorMetrics is the investor-specific metric bundle.
type InvestorMetrics struct {
	TotalInvested          float64 `json:"total_invested"`
	PortfolioSize          int     `json:"portfolio_size"`
	SuccessfulInvestments  int     `json:"successful_investments"`
	FailedInvestments      int     `json:"failed_investments"`
	AverageROI             float64 `json:"average_roi"`
	DiversificationScore   float64 `json:"diversification_score"` // 0-1
	InvestmentDurationDays float64 `json:"investment_duration_avg"`
}

// BlockchainMetrics is the on-chain activity metric bundle.
type BlockchainMetrics struct {
	WalletAddress           string  `json:"wallet_address,omitempty"`
	WalletAgeDays           int     `json:"wallet_age"`
	TransactionCount        int     `json:"transaction_count"`
	TotalVolume             float64 `json:"total_volume"`
	SmartContractCalls      int     `json:"smart_contract_interactions"`
	DeFiParticipation       bool    `json:"defi_participation"`
	GovernanceParticipation int     `json:"governance_participation"`
	StakingAmount           float64 `json:"staking_amount"`
}

// SocialMetrics is the social-reputation metric bundle.
type SocialMetrics struct {
	Followers              map[string]int64 `json:"social_media_followers"`
	EngagementRate         float64          `json:"social_engagement_rate"`
	CommunityReputation    float64          `json:"community_reputation"` // 0-1
	VerifiedAccounts       int              `json:"verified_accounts"`
	NegativeSentimentRatio float64          `json:"negative_sentiment_ratio"` // 0-1
}

// ScoreRequest carries one user's metric bundles. Bundles are treated as
// immutable once submitted; the engine never mutates them.
type ScoreRequest struct {
	UserID            string             `json:"user_id" binding:"required"`
	UserType          UserType           `json:"user_type" binding:"required"`
	FinancialHistory  FinancialHistory   `json:"financial_history"`
	ArtistMetrics     *ArtistMetrics     `json:"artist_metrics,omitempty"`
	InvestorMetrics   *InvestorMetrics   `json:"investor_metrics,omitempty"`
	BlockchainMetrics BlockchainMetrics  `json:"blockchain_metrics"`
	SocialMetrics     SocialMetrics      `json:"social_metrics"`
}

// ScoreResult is a completed credit assessment.
type ScoreResult struct {
	UserID          string             `json:"user_id"`
	CreditScore     int                `json:"credit_score"` // 300-850
	CreditGrade     Grade              `json:"credit_grade"`
	RiskLevel       RiskLevel          `json:"risk_level"`
	Confidence      float64            `json:"confidence"` // 0-1
	ScoreBreakdown  map[string]float64 `json:"score_breakdown"`
	RiskFactors     []string           `json:"risk_factors"`
	PositiveFactors []string           `json:"positive_factors"`
	Recommendations []string           `json:"recommendations"`
	NextReviewDate  time.Time          `json:"next_review_date"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ReviewHorizon is how long a credit score remains current before the next
// scheduled review.
const ReviewHorizon = 90 * 24 * time.Hour

// MaxBatchSize bounds a single batch-scoring call. Larger batches are
// rejected wholesale.
const MaxBatchSize = 100
