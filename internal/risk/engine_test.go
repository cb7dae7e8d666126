package risk

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

func baseRequest(horizon TimeHorizon, types ...RiskType) *AssessmentRequest {
	return &AssessmentRequest{
		AssessmentID:    "assess-1",
		TimeHorizon:     horizon,
		RiskTolerance:   0.5,
		AssessmentTypes: types,
	}
}

func TestEngine_MarketOnlyBaseline(t *testing.T) {
	e := testEngine()

	// Empty market data: only the base score contributes.
	result, err := e.Assess(baseRequest(HorizonShort, RiskMarket))
	if err != nil {
		t.Fatal(err)
	}
	if result.OverallRiskScore != 50 {
		t.Errorf("score = %v, want 50", result.OverallRiskScore)
	}
	if result.OverallRiskLevel != LevelMedium {
		t.Errorf("level = %s, want medium", result.OverallRiskLevel)
	}
	if got := result.RiskBreakdown[RiskMarket]; got != 50 {
		t.Errorf("market breakdown = %v, want 50", got)
	}
}

func TestEngine_AllCategoriesDefaults(t *testing.T) {
	e := testEngine()

	result, err := e.Assess(baseRequest(HorizonMedium, AllRiskTypes...))
	if err != nil {
		t.Fatal(err)
	}

	// market 50, credit 30, liquidity 55, operational 30, regulatory 47.5,
	// technology 20; weighted 42.25, medium-term decay 0.8.
	if result.OverallRiskScore != 33.8 {
		t.Errorf("score = %v, want 33.8", result.OverallRiskScore)
	}
	if result.OverallRiskLevel != LevelLow {
		t.Errorf("level = %s, want low", result.OverallRiskLevel)
	}
	if len(result.RiskBreakdown) != len(AllRiskTypes) {
		t.Errorf("breakdown has %d entries, want %d", len(result.RiskBreakdown), len(AllRiskTypes))
	}
}

func TestEngine_HorizonOrdering(t *testing.T) {
	e := testEngine()

	scores := make(map[TimeHorizon]float64)
	for _, h := range []TimeHorizon{HorizonShort, HorizonMedium, HorizonLong} {
		result, err := e.Assess(baseRequest(h, AllRiskTypes...))
		if err != nil {
			t.Fatal(err)
		}
		scores[h] = result.OverallRiskScore
	}

	if !(scores[HorizonLong] < scores[HorizonMedium] && scores[HorizonMedium] < scores[HorizonShort]) {
		t.Errorf("decay ordering violated: %v", scores)
	}
}

func TestEngine_MarketSubScore(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name string
		data MarketData
		want float64
	}{
		{"empty", MarketData{}, 50},
		{"volatility capped", MarketData{Volatility: 0.9}, 90},
		{"beta", MarketData{Beta: 1.5}, 60},
		{"negative beta symmetric", MarketData{Beta: -1.5}, 60},
		{"negative sentiment", MarketData{MarketSentiment: -0.5}, 65},
		{"positive sentiment ignored", MarketData{MarketSentiment: 0.8}, 50},
		{"high correlation", MarketData{CorrelationWith: map[string]float64{"a": 0.8, "b": 0.9}}, 57.5},
		{"low correlation ignored", MarketData{CorrelationWith: map[string]float64{"a": 0.2}}, 50},
		{"everything clamps at 100", MarketData{Volatility: 0.5, Beta: 3, MarketSentiment: -1, CorrelationWith: map[string]float64{"a": 1}}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.scoreMarket(&tt.data); got != tt.want {
				t.Errorf("scoreMarket = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_CreditSubScore(t *testing.T) {
	e := testEngine()

	if got := e.scoreCredit(nil); got != 30 {
		t.Errorf("no asset: %v, want 30", got)
	}

	tests := []struct {
		name  string
		asset AssetInfo
		want  float64
	}{
		{"small cap music token", AssetInfo{AssetType: AssetMusicToken, MarketCap: 500_000}, 100},
		{"mid cap royalty stream", AssetInfo{AssetType: AssetRoyaltyStream, MarketCap: 5_000_000}, 75},
		{"large cap label equity", AssetInfo{AssetType: AssetLabelEquity, MarketCap: 50_000_000}, 70},
		{"illiquid platform token", AssetInfo{AssetType: AssetPlatformToken, MarketCap: 50_000_000, Volume24h: 100_000}, 100},
		{"liquid platform token", AssetInfo{AssetType: AssetPlatformToken, MarketCap: 50_000_000, Volume24h: 5_000_000}, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.scoreCredit(&tt.asset); got != tt.want {
				t.Errorf("scoreCredit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_LiquiditySubScore(t *testing.T) {
	e := testEngine()

	// Thin volume, default depth, short horizon: (40+40+15)*1.2 = 100 (clamped from 114).
	req := baseRequest(HorizonShort, RiskLiquidity)
	req.AssetInfo = &AssetInfo{AssetType: AssetMusicToken, Volume24h: 5_000}
	if got := e.scoreLiquidity(req); got != 100 {
		t.Errorf("thin short-term = %v, want 100", got)
	}

	// Deep healthy market, long horizon: (40+10+0)*0.8 = 40.
	req = baseRequest(HorizonLong, RiskLiquidity)
	req.AssetInfo = &AssetInfo{AssetType: AssetMusicToken, Volume24h: 500_000}
	req.MarketData.MarketDepth = 1.0
	if got := e.scoreLiquidity(req); got != 40 {
		t.Errorf("deep long-term = %v, want 40", got)
	}
}

func TestEngine_OperationalAndTechnologyDefaults(t *testing.T) {
	e := testEngine()

	if got := e.scoreOperational(nil); got != 30 {
		t.Errorf("operational default = %v, want 30", got)
	}
	if got := e.scoreTechnology(nil); got != 20 {
		t.Errorf("technology default = %v, want 20", got)
	}

	ops := &OperationalInputs{
		PlatformReliability: 0.8,
		IncidentCount:       2,
		ManualProcessShare:  0.4,
		AuditAgeDays:        180,
		NetworkCongestion:   0.2,
		SecurityIncidents:   1,
	}
	// operational: 25 + 20 + 10 + 6 = 61
	if got := e.scoreOperational(ops); got != 61 {
		t.Errorf("operational = %v, want 61", got)
	}
	// technology: 20 + 30 + 5 + 5 = 60
	if got := e.scoreTechnology(ops); got != 60 {
		t.Errorf("technology = %v, want 60", got)
	}
}

func TestEngine_LevelThresholds(t *testing.T) {
	tests := []struct {
		score float64
		level Level
	}{
		{0, LevelVeryLow},
		{20, LevelVeryLow},
		{20.01, LevelLow},
		{40, LevelLow},
		{60, LevelMedium},
		{80, LevelHigh},
		{95, LevelVeryHigh},
		{95.01, LevelExtreme},
		{100, LevelExtreme},
	}
	for _, tt := range tests {
		if got := Level(LevelTable.Classify(tt.score)); got != tt.level {
			t.Errorf("Classify(%v) = %s, want %s", tt.score, got, tt.level)
		}
	}
}

func TestEngine_Confidence(t *testing.T) {
	e := testEngine()

	sparse := baseRequest(HorizonShort, RiskMarket)
	if got := e.confidence(sparse); got != 0.5 {
		t.Errorf("sparse confidence = %v, want 0.5", got)
	}

	rich := baseRequest(HorizonShort, RiskMarket, RiskCredit, RiskLiquidity, RiskOperational)
	rich.MarketData.Volatility = 0.2
	rich.AssetInfo = &AssetInfo{AssetType: AssetMusicToken, MarketCap: 1_000_000}
	rich.MarketData.PriceHistory = make([]PricePoint, 31)
	if got := e.confidence(rich); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("rich confidence = %v, want 1.0", got)
	}
}

func TestEngine_ScenariosScaleWithScore(t *testing.T) {
	low := buildScenarios(0)
	high := buildScenarios(100)

	if len(low) != 4 || len(high) != 4 {
		t.Fatalf("scenario counts: %d, %d, want 4", len(low), len(high))
	}

	// Market Crash range is [0.3, 0.7].
	if low[0].PotentialLoss != 0.3 {
		t.Errorf("low-score crash loss = %v, want 0.3", low[0].PotentialLoss)
	}
	if high[0].PotentialLoss != 0.7 {
		t.Errorf("high-score crash loss = %v, want 0.7", high[0].PotentialLoss)
	}

	mid := buildScenarios(50)
	if mid[0].PotentialLoss != 0.5 {
		t.Errorf("mid-score crash loss = %v, want 0.5", mid[0].PotentialLoss)
	}
	for i := range mid {
		if mid[i].PotentialLoss < low[i].PotentialLoss || mid[i].PotentialLoss > high[i].PotentialLoss {
			t.Errorf("scenario %s loss %v outside [%v, %v]", mid[i].ScenarioName, mid[i].PotentialLoss, low[i].PotentialLoss, high[i].PotentialLoss)
		}
	}
}

func TestEngine_Recommendations(t *testing.T) {
	e := testEngine()

	// Risky setup: volatile illiquid small-cap token on a short horizon.
	req := baseRequest(HorizonShort, AllRiskTypes...)
	req.MarketData.Volatility = 0.5
	req.MarketData.MarketSentiment = -0.8
	req.AssetInfo = &AssetInfo{AssetType: AssetPlatformToken, MarketCap: 400_000, Volume24h: 9_000}

	result, err := e.Assess(req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.OverallRiskLevel.Severe() {
		t.Fatalf("expected severe level, got %s (%v)", result.OverallRiskLevel, result.OverallRiskScore)
	}

	for _, want := range []string{
		"Consider reducing position size",
		"Consider hedging strategies to reduce risk exposure",
		"Low liquidity detected - plan exit strategy carefully",
		"High volatility - consider dollar-cost averaging",
		"Regular portfolio rebalancing recommended",
	} {
		if !containsStr(result.Recommendations, want) {
			t.Errorf("missing recommendation %q in %v", want, result.Recommendations)
		}
	}

	// Calm setup keeps only the standing guidance.
	calm, err := e.Assess(baseRequest(HorizonLong, RiskMarket))
	if err != nil {
		t.Fatal(err)
	}
	if len(calm.Recommendations) != 4 {
		t.Errorf("calm recommendations = %v, want the 4 standing items", calm.Recommendations)
	}
}

func TestEngine_ValidityWindow(t *testing.T) {
	e := testEngine()
	result, err := e.Assess(baseRequest(HorizonMedium, RiskMarket))
	if err != nil {
		t.Fatal(err)
	}

	now := testClock()
	if !result.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want %v", result.CreatedAt, now)
	}
	if want := now.Add(Validity); !result.ValidUntil.Equal(want) {
		t.Errorf("valid_until = %v, want %v", result.ValidUntil, want)
	}
}

func TestEngine_RejectsBadInput(t *testing.T) {
	e := testEngine()

	if _, err := e.Assess(baseRequest(HorizonShort)); err == nil {
		t.Error("expected error for empty assessment types")
	}
	if _, err := e.Assess(baseRequest("someday", RiskMarket)); err == nil {
		t.Error("expected error for bad horizon")
	}
	if _, err := e.Assess(baseRequest(HorizonShort, "gossip")); err == nil {
		t.Error("expected error for bad risk type")
	}
}

func TestEngine_Deterministic(t *testing.T) {
	e := testEngine()
	req := baseRequest(HorizonMedium, AllRiskTypes...)
	req.MarketData.Volatility = 0.25
	req.AssetInfo = &AssetInfo{AssetType: AssetArtistShare, MarketCap: 2_000_000, Volume24h: 80_000}

	a, err := e.Assess(req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Assess(req)
	if err != nil {
		t.Fatal(err)
	}

	if a.OverallRiskScore != b.OverallRiskScore || a.OverallRiskLevel != b.OverallRiskLevel {
		t.Errorf("identical inputs diverged: %v/%s vs %v/%s",
			a.OverallRiskScore, a.OverallRiskLevel, b.OverallRiskScore, b.OverallRiskLevel)
	}
	for k, v := range a.RiskBreakdown {
		if b.RiskBreakdown[k] != v {
			t.Errorf("breakdown[%s] differs: %v vs %v", k, v, b.RiskBreakdown[k])
		}
	}
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
