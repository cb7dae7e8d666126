package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mbdtf202-cyber/MantleMusicFi/internal/retry"
)

// Config holds the configuration for connecting to the MantleMusicFi platform.
type Config struct {
	APIURL string // Base URL, e.g. "http://localhost:8080"
	APIKey string // Optional bearer token
}

// MusicFiClient is a pure HTTP client for the MantleMusicFi scoring API.
type MusicFiClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewMusicFiClient creates a new client for the scoring platform.
func NewMusicFiClient(cfg Config) *MusicFiClient {
	return &MusicFiClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// apiError represents an error response from the platform.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest makes an HTTP request to the platform and returns the unwrapped
// "data" payload from the success envelope. Transient failures (network
// errors, 5xx) are retried with backoff; 4xx responses are not.
func (c *MusicFiClient) doRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	u, err := url.Parse(c.cfg.APIURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	var respBody []byte
	err = retry.Do(ctx, 3, 200*time.Millisecond, func() error {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}

		if c.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode >= 400 {
			var apiErr apiError
			if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
				err = fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Message)
			} else {
				err = fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
			}
			if resp.StatusCode < 500 {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Unwrap {"success": true, "data": ...}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}
	return json.RawMessage(respBody), nil
}

// ScoreCredit computes a credit score for a user profile.
func (c *MusicFiClient) ScoreCredit(ctx context.Context, request map[string]any) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPost, "/v1/credit/score", request)
}

// AssessRisk runs a multi-category risk assessment.
func (c *MusicFiClient) AssessRisk(ctx context.Context, request map[string]any) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPost, "/v1/risk/assess", request)
}

// RunStressTest runs stress scenarios over a set of assets.
func (c *MusicFiClient) RunStressTest(ctx context.Context, assetIDs []string, scenarios []string, severity float64) (json.RawMessage, error) {
	body := map[string]any{
		"asset_ids": assetIDs,
	}
	if len(scenarios) > 0 {
		body["stress_scenarios"] = scenarios
	}
	if severity > 0 {
		body["severity"] = severity
	}
	return c.doRequest(ctx, http.MethodPost, "/v1/risk/stress-test", body)
}

// PredictRevenue predicts streaming revenue for a track.
func (c *MusicFiClient) PredictRevenue(ctx context.Context, request map[string]any) (json.RawMessage, error) {
	return c.doRequest(ctx, http.MethodPost, "/v1/revenue/predict", request)
}

// GetModelInfo fetches model metadata for one of the scoring models.
func (c *MusicFiClient) GetModelInfo(ctx context.Context, model string) (json.RawMessage, error) {
	switch model {
	case "credit", "risk", "revenue":
	default:
		return nil, fmt.Errorf("unknown model %q (want credit, risk, or revenue)", model)
	}
	return c.doRequest(ctx, http.MethodGet, "/v1/"+model+"/model/info", nil)
}
