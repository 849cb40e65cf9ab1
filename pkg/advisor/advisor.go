package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SuggestInput is the submission context sent to the feedback advisor.
type SuggestInput struct {
	LessonContent    string `json:"lessonContent"`
	StudentAnswer    string `json:"studentAnswer"`
	StudentReasoning string `json:"studentReasoning,omitempty"`
	LessonID         string `json:"lessonId"`
	StudentID        string `json:"studentId"`
	Timestamp        string `json:"timestamp"`
}

// SuggestOutput is the advisor's response.
type SuggestOutput struct {
	FeedbackSuggestion string `json:"feedbackSuggestion"`
}

// Advisor produces a natural-language feedback suggestion for a submission.
// Callers treat any failure as "no suggestion".
type Advisor interface {
	Suggest(ctx context.Context, input SuggestInput) (*SuggestOutput, error)
}

// Client talks to the advisor service over HTTP
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a new advisor client. An empty baseURL is allowed; the
// caller should then skip suggestion calls entirely.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Suggest requests a feedback suggestion for one submission
func (c *Client) Suggest(ctx context.Context, input SuggestInput) (*SuggestOutput, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode advisor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/suggest-feedback", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build advisor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("advisor returned status %d: %s", resp.StatusCode, payload)
	}

	var out SuggestOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode advisor response: %w", err)
	}
	if out.FeedbackSuggestion == "" {
		return nil, fmt.Errorf("advisor returned an empty suggestion")
	}

	return &out, nil
}
