package credit

// rule pairs a predicate over the raw request and computed score with the
// message it emits. Rules fire independently, in declaration order, with no
// early exit; duplicate messages are collapsed.
type rule struct {
	when func(req *ScoreRequest, score int) bool
	text string
}

func evalRules(rules []rule, req *ScoreRequest, score int) []string {
	out := make([]string, 0, len(rules))
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if !r.when(req, score) || seen[r.text] {
			continue
		}
		seen[r.text] = true
		out = append(out, r.text)
	}
	return out
}

// riskRules flag negative signals in the submitted metrics.
var riskRules = []rule{
	{
		when: func(r *ScoreRequest, _ int) bool { return r.FinancialHistory.Defaults > 0 },
		text: "History of payment defaults",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.FinancialHistory.LatePayments > 5 },
		text: "Frequent late payments",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.FinancialHistory.TotalRevenue < 1000 },
		text: "Low revenue history",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.BlockchainMetrics.WalletAgeDays < 30 },
		text: "New wallet address",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.BlockchainMetrics.TransactionCount < 10 },
		text: "Limited blockchain activity",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.SocialMetrics.NegativeSentimentRatio > 0.3 },
		text: "High negative sentiment",
	},
	{
		when: func(_ *ScoreRequest, score int) bool { return score < 500 },
		text: "Below average credit score",
	},
}

// positiveRules flag strengths in the submitted metrics.
var positiveRules = []rule{
	{
		when: func(r *ScoreRequest, _ int) bool { return r.FinancialHistory.Defaults == 0 },
		text: "No payment defaults",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.FinancialHistory.TotalRevenue > 10000 },
		text: "Strong revenue history",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.BlockchainMetrics.DeFiParticipation },
		text: "Active DeFi participant",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.BlockchainMetrics.GovernanceParticipation > 5 },
		text: "Active in governance",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.SocialMetrics.VerifiedAccounts > 0 },
		text: "Verified social media accounts",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.SocialMetrics.CommunityReputation > 0.8 },
		text: "Strong community reputation",
	},
	{
		when: func(_ *ScoreRequest, score int) bool { return score > 700 },
		text: "Excellent credit score",
	},
	{
		when: func(_ *ScoreRequest, score int) bool { return score > 600 && score <= 700 },
		text: "Good credit score",
	},
}

// recommendationRules suggest concrete improvement steps.
var recommendationRules = []rule{
	{
		when: func(_ *ScoreRequest, score int) bool { return score < 600 },
		text: "Focus on building consistent payment history",
	},
	{
		when: func(_ *ScoreRequest, score int) bool { return score < 600 },
		text: "Increase transaction volume gradually",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.BlockchainMetrics.TransactionCount < 50 },
		text: "Increase blockchain activity and engagement",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return !r.BlockchainMetrics.DeFiParticipation },
		text: "Consider participating in DeFi protocols",
	},
	{
		when: func(r *ScoreRequest, _ int) bool { return r.SocialMetrics.NegativeSentimentRatio > 0.2 },
		text: "Improve community engagement and reputation",
	},
	{
		when: func(r *ScoreRequest, _ int) bool {
			return r.UserType == UserArtist && r.ArtistMetrics != nil && r.ArtistMetrics.EngagementRate < 0.1
		},
		text: "Increase fan engagement and interaction",
	},
	{
		when: func(r *ScoreRequest, _ int) bool {
			return r.UserType == UserArtist && r.ArtistMetrics != nil && r.ArtistMetrics.ReleaseFrequency < 1
		},
		text: "Maintain regular content release schedule",
	},
}
