package api

import "context"

// ChatTurn is one entry of the running conversation sent for context.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest asks the assistant a question grounded in the learner's
// ingested documents.
type ChatRequest struct {
	Message      string     `json:"message"`
	Sources      []string   `json:"sources,omitempty"`
	TopK         int        `json:"top_k,omitempty"`
	Conversation []ChatTurn `json:"conversation,omitempty"`
}

// ChatResponse is the assistant's answer with the documents it cited.
type ChatResponse struct {
	Message string   `json:"message"`
	Sources []string `json:"sources"`
}

// Ask sends one chat message with conversation context.
func (c *Client) Ask(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.post(ctx, "/chat/ask", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
