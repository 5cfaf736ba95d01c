package api

import "context"

// DashboardMetric is one headline number with its trend direction.
type DashboardMetric struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	Value           string  `json:"value"`
	Change          float64 `json:"change"`
	ChangeDirection string  `json:"changeDirection"` // "up" or "down"
	HelperText      string  `json:"helperText,omitempty"`
}

// DashboardActivity is one entry in the activity timeline.
type DashboardActivity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Timestamp   string `json:"timestamp"`
}

// DashboardSystem reports one subsystem's health.
type DashboardSystem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"` // operational, degraded, maintenance
	UpdatedAt   string `json:"updatedAt"`
	Description string `json:"description,omitempty"`
}

// DashboardRecommendation is one suggested next action.
type DashboardRecommendation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CTALabel    string `json:"ctaLabel"`
}

// DashboardOverview is the full dashboard payload.
type DashboardOverview struct {
	Metrics         []DashboardMetric         `json:"metrics"`
	Activity        []DashboardActivity       `json:"activity"`
	Systems         []DashboardSystem         `json:"systems"`
	Recommendations []DashboardRecommendation `json:"recommendations"`
}

// Overview fetches the dashboard snapshot.
func (c *Client) Overview(ctx context.Context) (*DashboardOverview, error) {
	var overview DashboardOverview
	if err := c.get(ctx, "/dashboard/overview", &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}
