package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the MantleMusicFi MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolScoreCredit = mcp.NewTool("score_credit",
	mcp.WithDescription(
		"Compute a credit score (300-850) for a MantleMusicFi user from their "+
			"financial, blockchain, and social metrics. Returns the score with grade, "+
			"risk level, per-category breakdown, and the factors that drove it. "+
			"Works for artists, investors, producers, and labels."),
	mcp.WithString("user_id",
		mcp.Required(),
		mcp.Description("Platform user ID to score")),
	mcp.WithString("user_type",
		mcp.Description("User role: 'artist', 'investor', 'producer', or 'label' (default 'artist')"),
		mcp.Enum("artist", "investor", "producer", "label")),
	mcp.WithObject("financial_metrics",
		mcp.Description("Financial inputs, e.g. {\"monthly_revenue\": 5000, \"revenue_growth_rate\": 0.2, \"payment_history_score\": 0.9}")),
	mcp.WithObject("blockchain_metrics",
		mcp.Description("On-chain inputs, e.g. {\"wallet_age_days\": 400, \"transaction_count\": 120, \"staking_amount\": 1000}")),
	mcp.WithObject("social_metrics",
		mcp.Description("Social inputs, e.g. {\"monthly_listeners\": 80000, \"engagement_rate\": 0.06}")),
)

var ToolAssessRisk = mcp.NewTool("assess_risk",
	mcp.WithDescription(
		"Run a multi-category risk assessment (market, credit, liquidity, operational, "+
			"regulatory, technology) for a music asset or portfolio. Returns a 0-100 risk "+
			"score with level, per-category breakdown, risk metrics (VaR, drawdown, Sharpe), "+
			"scenarios, and recommendations."),
	mcp.WithString("assessment_id",
		mcp.Required(),
		mcp.Description("Caller-chosen identifier for this assessment")),
	mcp.WithString("time_horizon",
		mcp.Required(),
		mcp.Description("Assessment horizon: 'short_term', 'medium_term', or 'long_term'"),
		mcp.Enum("short_term", "medium_term", "long_term")),
	mcp.WithArray("assessment_types",
		mcp.Required(),
		mcp.Description("Risk categories to evaluate, e.g. [\"market\", \"liquidity\"]")),
	mcp.WithObject("asset_info",
		mcp.Description("Asset under assessment, e.g. {\"asset_id\": \"token-1\", \"asset_type\": \"music_token\", \"market_cap\": 2000000}")),
	mcp.WithObject("market_data",
		mcp.Description("Market inputs, e.g. {\"volatility\": 0.4, \"beta\": 1.2, \"price_history\": [...]}")),
)

var ToolRunStressTest = mcp.NewTool("run_stress_test",
	mcp.WithDescription(
		"Stress-test a list of assets against adverse scenarios (market_crash, "+
			"liquidity_crisis, regulatory_shock). Returns per-asset potential losses, "+
			"recovery times, and portfolio-level aggregates per scenario."),
	mcp.WithArray("asset_ids",
		mcp.Required(),
		mcp.Description("Asset IDs to stress (max 100)")),
	mcp.WithArray("scenarios",
		mcp.Description("Scenarios to run (default: market_crash, liquidity_crisis)")),
	mcp.WithNumber("severity",
		mcp.Description("Shock severity in [0.1, 1.0] (default 0.5)")),
)

var ToolPredictRevenue = mcp.NewTool("predict_revenue",
	mcp.WithDescription(
		"Predict streaming revenue for a music track over a chosen horizon. "+
			"Returns predicted revenue with confidence interval, per-platform and "+
			"per-month breakdowns, risk factors, and recommendations."),
	mcp.WithString("title",
		mcp.Required(),
		mcp.Description("Track title")),
	mcp.WithString("artist",
		mcp.Required(),
		mcp.Description("Artist name")),
	mcp.WithString("genre",
		mcp.Required(),
		mcp.Description("Genre (pop, rock, hip-hop, electronic, classical, jazz, country, r&b)")),
	mcp.WithNumber("duration",
		mcp.Description("Track duration in seconds")),
	mcp.WithString("release_date",
		mcp.Description("Release date in RFC 3339 format (e.g. '2025-03-01T00:00:00Z')")),
	mcp.WithNumber("prediction_period",
		mcp.Description("Horizon in days, 1-1095 (default 365)")),
	mcp.WithObject("market_conditions",
		mcp.Description("Market inputs, e.g. {\"genre_popularity\": 0.7, \"seasonal_factor\": 1.1, \"competition_level\": 0.5}")),
)

var ToolGetModelInfo = mcp.NewTool("get_model_info",
	mcp.WithDescription(
		"Get metadata for one of the MantleMusicFi scoring models: score ranges, "+
			"factor weights, supported user/asset types, and update cadence."),
	mcp.WithString("model",
		mcp.Required(),
		mcp.Description("Which model: 'credit', 'risk', or 'revenue'"),
		mcp.Enum("credit", "risk", "revenue")),
)
