package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	client *MusicFiClient
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client *MusicFiClient) *Handlers {
	return &Handlers{client: client}
}

// HandleScoreCredit computes a credit score for a user.
func (h *Handlers) HandleScoreCredit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := req.GetString("user_id", "")
	if userID == "" {
		return mcp.NewToolResultError("user_id is required"), nil
	}

	body := map[string]any{
		"user_id":   userID,
		"user_type": req.GetString("user_type", "artist"),
	}
	args := req.GetArguments()
	for argKey, bodyKey := range map[string]string{
		"financial_metrics":  "financial_history",
		"blockchain_metrics": "blockchain_metrics",
		"social_metrics":     "social_metrics",
	} {
		if m, ok := args[argKey].(map[string]any); ok {
			body[bodyKey] = m
		}
	}

	raw, err := h.client.ScoreCredit(ctx, body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to score credit: %v", err)), nil
	}

	text, err := formatCreditScore(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse score: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleAssessRisk runs a risk assessment.
func (h *Handlers) HandleAssessRisk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	assessmentID := req.GetString("assessment_id", "")
	if assessmentID == "" {
		return mcp.NewToolResultError("assessment_id is required"), nil
	}
	horizon := req.GetString("time_horizon", "")
	if horizon == "" {
		return mcp.NewToolResultError("time_horizon is required"), nil
	}

	args := req.GetArguments()
	types, ok := args["assessment_types"].([]any)
	if !ok || len(types) == 0 {
		return mcp.NewToolResultError("assessment_types is required"), nil
	}

	body := map[string]any{
		"assessment_id":    assessmentID,
		"time_horizon":     horizon,
		"assessment_types": types,
	}
	if m, ok := args["asset_info"].(map[string]any); ok {
		body["asset_info"] = m
	}
	if m, ok := args["market_data"].(map[string]any); ok {
		body["market_data"] = m
	}

	raw, err := h.client.AssessRisk(ctx, body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to assess risk: %v", err)), nil
	}

	text, err := formatRiskAssessment(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse assessment: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleRunStressTest stress-tests a set of assets.
func (h *Handlers) HandleRunStressTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	assetIDs := toStringSlice(args["asset_ids"])
	if len(assetIDs) == 0 {
		return mcp.NewToolResultError("asset_ids is required"), nil
	}
	scenarios := toStringSlice(args["scenarios"])
	severity := req.GetFloat("severity", 0)

	raw, err := h.client.RunStressTest(ctx, assetIDs, scenarios, severity)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Stress test failed: %v", err)), nil
	}

	text, err := formatStressTest(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse stress test: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandlePredictRevenue predicts streaming revenue for a track.
func (h *Handlers) HandlePredictRevenue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	artist := req.GetString("artist", "")
	genre := req.GetString("genre", "")
	if title == "" || artist == "" || genre == "" {
		return mcp.NewToolResultError("title, artist, and genre are required"), nil
	}

	metadata := map[string]any{
		"title":  title,
		"artist": artist,
		"genre":  genre,
	}
	if d := req.GetFloat("duration", 0); d > 0 {
		metadata["duration"] = d
	}
	if rd := req.GetString("release_date", ""); rd != "" {
		metadata["release_date"] = rd
	}

	body := map[string]any{"music_metadata": metadata}
	if p := req.GetFloat("prediction_period", 0); p > 0 {
		body["prediction_period"] = int(p)
	}
	if m, ok := req.GetArguments()["market_conditions"].(map[string]any); ok {
		body["market_conditions"] = m
	}

	raw, err := h.client.PredictRevenue(ctx, body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to predict revenue: %v", err)), nil
	}

	text, err := formatRevenuePrediction(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse prediction: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// HandleGetModelInfo returns model metadata.
func (h *Handlers) HandleGetModelInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := req.GetString("model", "")
	if model == "" {
		return mcp.NewToolResultError("model is required"), nil
	}

	raw, err := h.client.GetModelInfo(ctx, model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get model info: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Model info (%s):\n%s", model, formatJSON(raw))), nil
}

// ---------------------------------------------------------------------------
// Result formatting
// ---------------------------------------------------------------------------

func formatCreditScore(raw json.RawMessage) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Credit Assessment:\n")
	if v := getString(m, "user_id"); v != "" {
		sb.WriteString(fmt.Sprintf("  User: %s\n", v))
	}
	if v, ok := getFloat(m, "credit_score"); ok {
		sb.WriteString(fmt.Sprintf("  Score: %.0f (grade %s, %s risk)\n",
			v, getString(m, "credit_grade"), getString(m, "risk_level")))
	}
	if v, ok := getFloat(m, "confidence"); ok {
		sb.WriteString(fmt.Sprintf("  Confidence: %.0f%%\n", v*100))
	}
	writeStringList(&sb, "Risk factors", m["risk_factors"])
	writeStringList(&sb, "Positive factors", m["positive_factors"])
	writeStringList(&sb, "Recommendations", m["recommendations"])
	return sb.String(), nil
}

func formatRiskAssessment(raw json.RawMessage) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Risk Assessment:\n")
	if v := getString(m, "assessment_id"); v != "" {
		sb.WriteString(fmt.Sprintf("  ID: %s\n", v))
	}
	if v, ok := getFloat(m, "overall_risk_score"); ok {
		sb.WriteString(fmt.Sprintf("  Overall: %.1f/100 (%s)\n", v, getString(m, "overall_risk_level")))
	}
	if breakdown, ok := m["risk_breakdown"].(map[string]any); ok && len(breakdown) > 0 {
		sb.WriteString("  Breakdown:\n")
		for category, score := range breakdown {
			if f, ok := score.(float64); ok {
				sb.WriteString(fmt.Sprintf("    %s: %.1f\n", category, f))
			}
		}
	}
	if metrics, ok := m["risk_metrics"].(map[string]any); ok {
		if v, ok := getFloat(metrics, "var_95"); ok {
			sb.WriteString(fmt.Sprintf("  VaR 95%%: %.2f%%\n", v*100))
		}
		if v, ok := getFloat(metrics, "max_drawdown"); ok {
			sb.WriteString(fmt.Sprintf("  Max drawdown: %.2f%%\n", v*100))
		}
	}
	writeStringList(&sb, "Recommendations", m["recommendations"])
	return sb.String(), nil
}

func formatStressTest(raw json.RawMessage) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Stress Test Results:\n")
	if portfolio, ok := m["portfolio_impact"].(map[string]any); ok && len(portfolio) > 0 {
		sb.WriteString("  Portfolio impact by scenario:\n")
		for scenario, agg := range portfolio {
			a, ok := agg.(map[string]any)
			if !ok {
				continue
			}
			avg, _ := getFloat(a, "average_loss")
			worst, _ := getFloat(a, "worst_case_loss")
			sb.WriteString(fmt.Sprintf("    %s: avg loss %.1f%%, worst %.1f%%\n", scenario, avg*100, worst*100))
		}
	}
	if assets, ok := m["individual_assets"].(map[string]any); ok {
		sb.WriteString(fmt.Sprintf("  Assets tested: %d\n", len(assets)))
	}
	writeStringList(&sb, "Recommendations", m["recommendations"])
	return sb.String(), nil
}

func formatRevenuePrediction(raw json.RawMessage) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Revenue Prediction:\n")
	if v, ok := getFloat(m, "predicted_revenue"); ok {
		sb.WriteString(fmt.Sprintf("  Predicted: $%.2f\n", v))
	}
	if ci, ok := m["confidence_interval"].(map[string]any); ok {
		lower, _ := getFloat(ci, "lower")
		upper, _ := getFloat(ci, "upper")
		sb.WriteString(fmt.Sprintf("  Range: $%.2f - $%.2f\n", lower, upper))
	}
	if platforms, ok := m["breakdown_by_platform"].(map[string]any); ok && len(platforms) > 0 {
		sb.WriteString("  By platform:\n")
		for platform, v := range platforms {
			if f, ok := v.(float64); ok {
				sb.WriteString(fmt.Sprintf("    %s: $%.2f\n", platform, f))
			}
		}
	}
	writeStringList(&sb, "Risk factors", m["risk_factors"])
	writeStringList(&sb, "Recommendations", m["recommendations"])
	return sb.String(), nil
}

func writeStringList(sb *strings.Builder, label string, v any) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("  %s:\n", label))
	for _, item := range items {
		if s, ok := item.(string); ok {
			sb.WriteString(fmt.Sprintf("    - %s\n", s))
		}
	}
}

func formatJSON(raw json.RawMessage) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return string(raw)
	}
	return pretty.String()
}

func toStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// getString extracts a string value from a map, trying multiple key names.
func getString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok {
				return s
			}
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%g", f)
			}
		}
	}
	return ""
}

// getFloat extracts a float64 value from a map, trying multiple key names.
func getFloat(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if f, ok := v.(float64); ok {
				return f, true
			}
		}
	}
	return 0, false
}
