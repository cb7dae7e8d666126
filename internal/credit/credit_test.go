package credit

import (
	"math"
	"testing"
	"time"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testEngine() *Engine {
	return NewEngine(WithClock(testClock))
}

// emptyRequest has every metric bundle zeroed. Each sub-score should land
// exactly on the base, so the aggregate is the base too.
func emptyRequest(ut UserType) *ScoreRequest {
	return &ScoreRequest{UserID: "user-1", UserType: ut}
}

func strongArtistRequest() *ScoreRequest {
	return &ScoreRequest{
		UserID:   "artist-1",
		UserType: UserArtist,
		FinancialHistory: FinancialHistory{
			TotalRevenue:           500000,
			TotalTransactions:      200,
			AverageTransactionSize: 2500,
		},
		ArtistMetrics: &ArtistMetrics{
			TotalStreams:       50_000_000,
			FollowerCount:      2_000_000,
			EngagementRate:     0.8,
			ReleaseFrequency:   2,
			CollaborationCount: 25,
			AwardsCount:        6,
		},
		BlockchainMetrics: BlockchainMetrics{
			WalletAgeDays:           900,
			TransactionCount:        5000,
			TotalVolume:             250000,
			DeFiParticipation:       true,
			GovernanceParticipation: 12,
			StakingAmount:           40000,
		},
		SocialMetrics: SocialMetrics{
			Followers:           map[string]int64{"spotify": 1_500_000, "instagram": 800_000},
			EngagementRate:      0.7,
			CommunityReputation: 0.9,
			VerifiedAccounts:    3,
		},
	}
}

func weakRequest() *ScoreRequest {
	return &ScoreRequest{
		UserID:   "user-weak",
		UserType: UserArtist,
		FinancialHistory: FinancialHistory{
			TotalRevenue:      500,
			Defaults:          3,
			LatePayments:      8,
			TotalTransactions: 12,
		},
		BlockchainMetrics: BlockchainMetrics{
			WalletAgeDays:    5,
			TransactionCount: 2,
		},
		SocialMetrics: SocialMetrics{
			NegativeSentimentRatio: 0.5,
		},
	}
}

func TestEngine_EmptyRequestScoresBase(t *testing.T) {
	e := testEngine()

	for _, ut := range []UserType{UserArtist, UserInvestor, UserLabel, UserProducer} {
		result, err := e.Score(emptyRequest(ut))
		if err != nil {
			t.Fatalf("Score(%s): %v", ut, err)
		}
		if result.CreditScore != BaseSubScore {
			t.Errorf("%s: score = %d, want %d", ut, result.CreditScore, BaseSubScore)
		}
		if result.CreditGrade != GradeCCC {
			t.Errorf("%s: grade = %s, want CCC", ut, result.CreditGrade)
		}
		if result.RiskLevel != RiskHigh {
			t.Errorf("%s: risk level = %s, want high", ut, result.RiskLevel)
		}
		if result.Confidence != 0.5 {
			t.Errorf("%s: confidence = %v, want 0.5 with no data", ut, result.Confidence)
		}
	}
}

func TestEngine_UnknownUserType(t *testing.T) {
	e := testEngine()
	if _, err := e.Score(&ScoreRequest{UserID: "x", UserType: "robot"}); err == nil {
		t.Fatal("expected error for unknown user type")
	}
}

func TestEngine_ScoreBounds(t *testing.T) {
	e := testEngine()

	strong, err := e.Score(strongArtistRequest())
	if err != nil {
		t.Fatal(err)
	}
	weak, err := e.Score(weakRequest())
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range []*ScoreResult{strong, weak} {
		if r.CreditScore < ScoreFloor || r.CreditScore > ScoreCeil {
			t.Errorf("score %d outside [%d, %d]", r.CreditScore, ScoreFloor, ScoreCeil)
		}
	}
	if strong.CreditScore <= weak.CreditScore {
		t.Errorf("strong profile (%d) should outscore weak profile (%d)", strong.CreditScore, weak.CreditScore)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	e := testEngine()
	req := strongArtistRequest()

	a, err := e.Score(req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Score(req)
	if err != nil {
		t.Fatal(err)
	}

	if a.CreditScore != b.CreditScore || a.CreditGrade != b.CreditGrade || a.Confidence != b.Confidence {
		t.Errorf("identical inputs produced different results: %+v vs %+v", a, b)
	}
	for k, v := range a.ScoreBreakdown {
		if b.ScoreBreakdown[k] != v {
			t.Errorf("breakdown[%s] differs: %v vs %v", k, v, b.ScoreBreakdown[k])
		}
	}
}

func TestEngine_BreakdownContainsTotal(t *testing.T) {
	e := testEngine()
	result, err := e.Score(strongArtistRequest())
	if err != nil {
		t.Fatal(err)
	}

	total, ok := result.ScoreBreakdown[BreakdownTotal]
	if !ok {
		t.Fatal("breakdown missing weighted_total")
	}
	if int(total) != result.CreditScore {
		t.Errorf("weighted_total %v != credit score %d", total, result.CreditScore)
	}

	for _, cat := range []string{CategoryFinancial, CategorySpecific, CategoryBlockchain, CategorySocial} {
		sub, ok := result.ScoreBreakdown[cat]
		if !ok {
			t.Errorf("breakdown missing %s", cat)
			continue
		}
		if sub < ScoreFloor || sub > ScoreCeil {
			t.Errorf("%s sub-score %v outside [%d, %d]", cat, sub, ScoreFloor, ScoreCeil)
		}
	}
}

func TestEngine_MissingSpecificBundleScoresNeutral(t *testing.T) {
	e := testEngine()

	// Artist with no artist metrics: specific slot scores the base.
	req := emptyRequest(UserArtist)
	result, err := e.Score(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := result.ScoreBreakdown[CategorySpecific]; got != BaseSubScore {
		t.Errorf("specific sub-score = %v, want %d", got, BaseSubScore)
	}

	// Investor metrics on an artist request are ignored.
	req.InvestorMetrics = &InvestorMetrics{TotalInvested: 1_000_000}
	result2, err := e.Score(req)
	if err != nil {
		t.Fatal(err)
	}
	if result2.CreditScore != result.CreditScore {
		t.Errorf("investor bundle changed an artist score: %d vs %d", result2.CreditScore, result.CreditScore)
	}
}

func TestEngine_Timestamps(t *testing.T) {
	e := testEngine()
	result, err := e.Score(emptyRequest(UserInvestor))
	if err != nil {
		t.Fatal(err)
	}

	now := testClock()
	if !result.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", result.CreatedAt, now)
	}
	if want := now.Add(ReviewHorizon); !result.NextReviewDate.Equal(want) {
		t.Errorf("next_review_date = %v, want %v", result.NextReviewDate, want)
	}
}

func TestEngine_ConfidenceAccumulates(t *testing.T) {
	e := testEngine()

	result, err := e.Score(strongArtistRequest())
	if err != nil {
		t.Fatal(err)
	}

	// All four confidence signals fire: 0.5 + 0.2 + 0.15 + 0.1 + 0.05 = 1.0
	if math.Abs(result.Confidence-1.0) > 1e-9 {
		t.Errorf("confidence = %v, want 1.0", result.Confidence)
	}
}

func TestEngine_GradeThresholds(t *testing.T) {
	tests := []struct {
		score float64
		grade Grade
	}{
		{850, GradeAAA},
		{800, GradeAAA},
		{799, GradeAA},
		{750, GradeAA},
		{700, GradeA},
		{650, GradeBBB},
		{600, GradeBB},
		{550, GradeB},
		{500, GradeCCC},
		{450, GradeCC},
		{400, GradeC},
		{399, GradeD},
		{300, GradeD},
	}
	for _, tt := range tests {
		if got := Grade(GradeTable.Classify(tt.score)); got != tt.grade {
			t.Errorf("Classify(%v) = %s, want %s", tt.score, got, tt.grade)
		}
	}
}

func TestEngine_RiskLevelThresholds(t *testing.T) {
	tests := []struct {
		score float64
		level RiskLevel
	}{
		{850, RiskLow},
		{700, RiskLow},
		{699, RiskMedium},
		{600, RiskMedium},
		{599, RiskHigh},
		{500, RiskHigh},
		{499, RiskVeryHigh},
		{300, RiskVeryHigh},
	}
	for _, tt := range tests {
		if got := RiskLevel(RiskTable.Classify(tt.score)); got != tt.level {
			t.Errorf("Classify(%v) = %s, want %s", tt.score, got, tt.level)
		}
	}
}

func TestFactors_WeakProfile(t *testing.T) {
	e := testEngine()
	result, err := e.Score(weakRequest())
	if err != nil {
		t.Fatal(err)
	}

	wantRisks := []string{
		"History of payment defaults",
		"Frequent late payments",
		"Low revenue history",
		"New wallet address",
		"Limited blockchain activity",
		"High negative sentiment",
		"Below average credit score",
	}
	if len(result.RiskFactors) != len(wantRisks) {
		t.Fatalf("risk factors = %v, want %v", result.RiskFactors, wantRisks)
	}
	for i, want := range wantRisks {
		if result.RiskFactors[i] != want {
			t.Errorf("risk factor %d = %q, want %q", i, result.RiskFactors[i], want)
		}
	}

	if !contains(result.Recommendations, "Focus on building consistent payment history") {
		t.Errorf("missing payment-history recommendation: %v", result.Recommendations)
	}
	if !contains(result.Recommendations, "Consider participating in DeFi protocols") {
		t.Errorf("missing DeFi recommendation: %v", result.Recommendations)
	}
}

func TestFactors_StrongProfile(t *testing.T) {
	e := testEngine()
	result, err := e.Score(strongArtistRequest())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"No payment defaults",
		"Strong revenue history",
		"Active DeFi participant",
		"Active in governance",
		"Verified social media accounts",
		"Strong community reputation",
	} {
		if !contains(result.PositiveFactors, want) {
			t.Errorf("missing positive factor %q in %v", want, result.PositiveFactors)
		}
	}

	// A score cannot be both excellent and merely good.
	if contains(result.PositiveFactors, "Excellent credit score") && contains(result.PositiveFactors, "Good credit score") {
		t.Error("both grade factors fired")
	}
}

func TestValidate(t *testing.T) {
	valid := strongArtistRequest()
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("valid request rejected: %v", errs)
	}

	tests := []struct {
		name   string
		mutate func(*ScoreRequest)
		field  string
	}{
		{"missing user id", func(r *ScoreRequest) { r.UserID = "" }, "user_id"},
		{"bad user type", func(r *ScoreRequest) { r.UserType = "alien" }, "user_type"},
		{"negative revenue", func(r *ScoreRequest) { r.FinancialHistory.TotalRevenue = -1 }, "financial_history.total_revenue"},
		{"bad wallet", func(r *ScoreRequest) { r.BlockchainMetrics.WalletAddress = "0x123" }, "blockchain_metrics.wallet_address"},
		{"sentiment over 1", func(r *ScoreRequest) { r.SocialMetrics.NegativeSentimentRatio = 1.2 }, "social_metrics.negative_sentiment_ratio"},
		{"negative followers", func(r *ScoreRequest) { r.SocialMetrics.Followers = map[string]int64{"x": -5} }, "social_metrics.social_media_followers.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := strongArtistRequest()
			tt.mutate(req)
			errs := req.Validate()
			if len(errs) == 0 {
				t.Fatal("expected validation error")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %s in %v", tt.field, errs)
			}
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
