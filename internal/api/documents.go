package api

import (
	"context"
	"fmt"
	"net/url"
)

// Document is one ingested document in the learner's library.
type Document struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Owner      string   `json:"owner"`
	UploadedAt string   `json:"uploaded_at"`
	Tags       []string `json:"tags"`
	Difficulty string   `json:"difficulty,omitempty"`
	Version    int      `json:"version,omitempty"`
}

// DocumentChunk is one indexed passage of a document.
type DocumentChunk struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	ChunkIndex int    `json:"chunk_index"`
}

// DocumentDetail is the expanded view of one document.
type DocumentDetail struct {
	Source     string          `json:"source"`
	ChunkCount int             `json:"chunk_count"`
	IngestedAt string          `json:"ingested_at,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	Chunks     []DocumentChunk `json:"chunks"`
}

// UploadTicket acknowledges a requested ingestion; progress is polled
// by id while the backend chunks and indexes the file.
type UploadTicket struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Documents lists the learner's document library.
func (c *Client) Documents(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := c.get(ctx, "/documents", &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// DocumentByID fetches one document with its chunks.
func (c *Client) DocumentByID(ctx context.Context, id string) (*DocumentDetail, error) {
	var detail DocumentDetail
	path := fmt.Sprintf("/documents/%s", url.PathEscape(id))
	if err := c.get(ctx, path, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// RequestUpload registers a document for ingestion by name and size.
// The actual byte transfer is the backend's concern; the client only
// tracks the resulting queue item.
func (c *Client) RequestUpload(ctx context.Context, name string, sizeBytes int64) (*UploadTicket, error) {
	body := map[string]any{"name": name, "size_bytes": sizeBytes}
	var ticket UploadTicket
	if err := c.post(ctx, "/documents/upload", body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
