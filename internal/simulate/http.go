package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/dhand/internal/domain/model"
)

// Outcome of posting one tap.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeAccepted
	OutcomeDuplicate
)

// Client talks to the dhand HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// PostTap submits one tap to POST /taps.
func (c *Client) PostTap(ctx context.Context, t *model.Tap) (Outcome, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to marshal tap: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/taps", bytes.NewReader(body))
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("post tap: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusAccepted:
		return OutcomeAccepted, nil
	case http.StatusOK:
		var ack AckResponse
		if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil && !ack.Duplicate {
			return OutcomeAccepted, nil
		}
		return OutcomeDuplicate, nil
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return OutcomeFailed, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(msg))
	}
}

// Score fetches GET /score.
func (c *Client) Score(ctx context.Context) (ScoreResponse, error) {
	var s ScoreResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/score", http.NoBody)
	if err != nil {
		return s, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return s, fmt.Errorf("get score: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return s, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return s, fmt.Errorf("decode score: %w", err)
	}
	return s, nil
}
