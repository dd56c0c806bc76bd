package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"garment-backend/internal/logging"
	"garment-backend/internal/metrics"

	"go.uber.org/zap"
)

// Endpoint names used in errors, logs and metrics
const (
	EndpointManpowerSummary = "manpower_summary"
	EndpointOvertimeGet     = "overtime_get"
	EndpointOvertimeSave    = "overtime_save"
	EndpointSalaryGet       = "salary_get"
	EndpointSalarySave      = "salary_save"
)

const maxResponseBytes = 8 << 20

// Client talks to the factory API that owns manpower, overtime and salary data
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a collaborator client. timeout <= 0 means 15 seconds.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logging.Named("upstream"),
	}
}

// envelope is the {success, data, message} wrapper every endpoint answers with
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body interface{}, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome(err)).Inc()
		if err != nil {
			c.logger.Warn("upstream call failed",
				zap.String("endpoint", endpoint),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
		}
	}()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "malformed response body"}
	}
	if !env.Success {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: fmt.Sprintf("unexpected data: %v", err)}
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isTransport(err):
		return "transport_error"
	default:
		return "api_error"
	}
}

func isTransport(err error) bool {
	_, ok := err.(*TransportError)
	return ok
}

func dateQuery(date string) url.Values {
	q := url.Values{}
	q.Set("date", date)
	return q
}
