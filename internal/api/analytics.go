package api

import (
	"context"
	"net/url"
)

// SessionOption summarizes one past quiz session for analytics pickers.
type SessionOption struct {
	SessionID     string  `json:"sessionId"`
	Attempts      int     `json:"attempts"`
	Accuracy      float64 `json:"accuracy"`
	StartedAt     string  `json:"startedAt,omitempty"`
	LastAttemptAt string  `json:"lastAttemptAt,omitempty"`
	PrimarySource string  `json:"primarySource,omitempty"`
}

// SourceOption summarizes accuracy per document source.
type SourceOption struct {
	Label    string  `json:"label"`
	Value    string  `json:"value"`
	Attempts int     `json:"attempts"`
	Accuracy float64 `json:"accuracy"`
}

// AnalyticsOptions lists the sessions and sources available to filter
// quiz analytics by.
type AnalyticsOptions struct {
	Sessions        []SessionOption `json:"sessions"`
	Sources         []SourceOption  `json:"sources"`
	LatestSessionID string          `json:"latestSessionId,omitempty"`
}

// QuizAnalyticsOptions fetches the analytics filter options.
func (c *Client) QuizAnalyticsOptions(ctx context.Context) (*AnalyticsOptions, error) {
	var opts AnalyticsOptions
	if err := c.get(ctx, "/analytics/quiz/options", &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// SessionAnalytics fetches the backend's aggregate view of one session,
// identified by the client-generated session id.
func (c *Client) SessionAnalytics(ctx context.Context, sessionID string) (*SessionOption, error) {
	var opt SessionOption
	path := "/analytics/quiz/summary?sessionId=" + url.QueryEscape(sessionID)
	if err := c.get(ctx, path, &opt); err != nil {
		return nil, err
	}
	return &opt, nil
}
