package credit

import (
	"fmt"
	"time"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/scoring"
)

// Score bounds and the neutral base every sub-score starts from.
const (
	ScoreFloor   = 300
	ScoreCeil    = 850
	BaseSubScore = 500
)

// Breakdown category names. These are part of the external contract: they
// key both the weight profiles and the score_breakdown map in results.
const (
	CategoryFinancial  = "financial_history"
	CategorySpecific   = "specific_metrics"
	CategoryBlockchain = "blockchain_metrics"
	CategorySocial     = "social_metrics"
	CategoryAdditional = "additional_factors"
	BreakdownTotal     = "weighted_total"
)

// ArtistWeights combines bundles for artist-type users. The additional
// factors slot has no sub-scorer yet; renormalization absorbs it.
var ArtistWeights = scoring.MustWeightProfile("artist", map[string]float64{
	CategoryFinancial:  0.35,
	CategorySpecific:   0.25,
	CategoryBlockchain: 0.20,
	CategorySocial:     0.15,
	CategoryAdditional: 0.05,
})

// InvestorWeights combines bundles for investor, label, and producer users.
var InvestorWeights = scoring.MustWeightProfile("investor", map[string]float64{
	CategoryFinancial:  0.40,
	CategorySpecific:   0.30,
	CategoryBlockchain: 0.20,
	CategorySocial:     0.10,
})

// GradeTable maps a credit score to its grade (score >= cutoff).
var GradeTable = scoring.MustDescendingTable([]scoring.Band{
	{Label: string(GradeAAA), Cutoff: 800},
	{Label: string(GradeAA), Cutoff: 750},
	{Label: string(GradeA), Cutoff: 700},
	{Label: string(GradeBBB), Cutoff: 650},
	{Label: string(GradeBB), Cutoff: 600},
	{Label: string(GradeB), Cutoff: 550},
	{Label: string(GradeCCC), Cutoff: 500},
	{Label: string(GradeCC), Cutoff: 450},
	{Label: string(GradeC), Cutoff: 400},
}, string(GradeD))

// RiskTable maps a credit score to a lending risk level (score >= cutoff).
var RiskTable = scoring.MustDescendingTable([]scoring.Band{
	{Label: string(RiskLow), Cutoff: 700},
	{Label: string(RiskMedium), Cutoff: 600},
	{Label: string(RiskHigh), Cutoff: 500},
}, string(RiskVeryHigh))

// Engine computes credit scores. Stateless and safe for concurrent use;
// construct once with validated configuration and share.
type Engine struct {
	artistWeights   *scoring.WeightProfile
	investorWeights *scoring.WeightProfile
	grades          *scoring.ThresholdTable
	riskLevels      *scoring.ThresholdTable
	now             func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the engine's time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a credit scoring engine with the standard weight
// profiles and threshold tables.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		artistWeights:   ArtistWeights,
		investorWeights: InvestorWeights,
		grades:          GradeTable,
		riskLevels:      RiskTable,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes a full credit assessment for one request.
func (e *Engine) Score(req *ScoreRequest) (*ScoreResult, error) {
	if !req.UserType.Valid() {
		return nil, fmt.Errorf("unknown user type %q", req.UserType)
	}

	breakdown := map[string]float64{
		CategoryFinancial:  e.scoreFinancial(&req.FinancialHistory),
		CategoryBlockchain: e.scoreBlockchain(&req.BlockchainMetrics),
		CategorySocial:     e.scoreSocial(&req.SocialMetrics),
		CategorySpecific:   e.scoreSpecific(req),
	}

	weights := e.weightsFor(req.UserType)
	aggregate, err := weights.Aggregate(breakdown)
	if err != nil {
		return nil, fmt.Errorf("aggregate credit score: %w", err)
	}
	score := int(scoring.Clamp(aggregate, ScoreFloor, ScoreCeil))

	breakdown[BreakdownTotal] = float64(score)

	confidence := e.confidence(req)

	now := e.now()
	return &ScoreResult{
		UserID:          req.UserID,
		CreditScore:     score,
		CreditGrade:     Grade(e.grades.Classify(float64(score))),
		RiskLevel:       RiskLevel(e.riskLevels.Classify(float64(score))),
		Confidence:      confidence,
		ScoreBreakdown:  breakdown,
		RiskFactors:     evalRules(riskRules, req, score),
		PositiveFactors: evalRules(positiveRules, req, score),
		Recommendations: evalRules(recommendationRules, req, score),
		NextReviewDate:  now.Add(ReviewHorizon),
		CreatedAt:       now,
	}, nil
}

func (e *Engine) weightsFor(ut UserType) *scoring.WeightProfile {
	if ut == UserArtist {
		return e.artistWeights
	}
	return e.investorWeights
}

// scoreSpecific picks the user-type-specific sub-scorer. A missing bundle
// scores neutral.
func (e *Engine) scoreSpecific(req *ScoreRequest) float64 {
	switch {
	case req.UserType == UserArtist && req.ArtistMetrics != nil:
		return e.scoreArtist(req.ArtistMetrics)
	case req.UserType == UserInvestor && req.InvestorMetrics != nil:
		return e.scoreInvestor(req.InvestorMetrics)
	default:
		return BaseSubScore
	}
}

// scoreFinancial scores the financial-history bundle. An all-zero bundle
// scores exactly the base.
func (e *Engine) scoreFinancial(f *FinancialHistory) float64 {
	score := float64(BaseSubScore)

	// Revenue: 1 point per 10k, capped.
	score += scoring.CapLinear(f.TotalRevenue/10000, 1, 100)

	// Payment reliability across all recorded transactions.
	if f.TotalTransactions > 0 {
		bad := float64(f.Defaults + f.LatePayments)
		ratio := 1 - bad/float64(f.TotalTransactions)
		score += scoring.CapLinear(ratio, 150, 150)
	}

	// Transaction size: 1 point per 100 units, capped.
	score += scoring.CapLinear(f.AverageTransactionSize/100, 1, 50)

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreArtist(a *ArtistMetrics) float64 {
	score := float64(BaseSubScore)

	score += scoring.LogContribution(float64(a.TotalStreams), 10, 100)
	score += scoring.LogContribution(float64(a.FollowerCount), 15, 80)
	score += scoring.CapLinear(a.EngagementRate, 50, 50)
	score += scoring.CapLinear(a.ReleaseFrequency, 10, 30)
	score += scoring.CapLinear(float64(a.CollaborationCount), 2, 40)
	score += scoring.CapLinear(float64(a.AwardsCount), 10, 50)

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreInvestor(inv *InvestorMetrics) float64 {
	score := float64(BaseSubScore)

	score += scoring.CapLinear(inv.TotalInvested/50000, 1, 100)
	score += scoring.CapLinear(float64(inv.PortfolioSize), 2, 50)

	if total := inv.SuccessfulInvestments + inv.FailedInvestments; total > 0 {
		successRate := float64(inv.SuccessfulInvestments) / float64(total)
		score += scoring.CapLinear(successRate, 100, 100)
	}

	score += scoring.CapLinear(inv.AverageROI, 100, 80)
	score += scoring.CapLinear(inv.DiversificationScore, 70, 70)

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreBlockchain(b *BlockchainMetrics) float64 {
	score := float64(BaseSubScore)

	// Wallet age: 1 point per 10 days, capped.
	score += scoring.CapLinear(float64(b.WalletAgeDays)/10, 1, 50)
	score += scoring.LogContribution(float64(b.TransactionCount), 20, 80)
	score += scoring.LogContribution(b.TotalVolume, 15, 70)

	if b.DeFiParticipation {
		score += 30
	}
	score += scoring.CapLinear(float64(b.GovernanceParticipation), 5, 40)
	score += scoring.CapLinear(b.StakingAmount/1000, 1, 30)

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

func (e *Engine) scoreSocial(s *SocialMetrics) float64 {
	score := float64(BaseSubScore)

	var totalFollowers int64
	for _, n := range s.Followers {
		totalFollowers += n
	}
	score += scoring.LogContribution(float64(totalFollowers), 15, 80)
	score += scoring.CapLinear(s.EngagementRate, 60, 60)
	score += scoring.CapLinear(s.CommunityReputation, 50, 50)
	score += scoring.CapLinear(float64(s.VerifiedAccounts), 20, 60)

	// Negative sentiment is the one subtractive signal.
	score -= s.NegativeSentimentRatio * 100

	return scoring.Clamp(score, ScoreFloor, ScoreCeil)
}

// confidence estimates how much data backed the score.
func (e *Engine) confidence(req *ScoreRequest) float64 {
	c := scoring.NewConfidence().
		AddIf(req.FinancialHistory.TotalTransactions > 10, 0.2).
		AddIf(req.BlockchainMetrics.TransactionCount > 50, 0.15).
		AddIf(len(req.SocialMetrics.Followers) > 0, 0.1)

	if req.UserType == UserArtist && req.ArtistMetrics != nil {
		c.AddIf(req.ArtistMetrics.TotalStreams > 1000, 0.05)
	}

	return c.Value()
}
