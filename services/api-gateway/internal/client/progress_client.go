package client

import (
	"context"
	"net/http"
)

type ProgressClient struct {
	baseURL string
	http    *http.Client
}

func NewProgressClient(url string) *ProgressClient {
	return &ProgressClient{baseURL: url, http: newHTTPClient()}
}

type ProgressResponse struct {
	Progress map[string]int `json:"progress"`
}

type SaveProgressResponse struct {
	Category string `json:"category"`
	Unlocked int    `json:"unlocked"`
}

func (c *ProgressClient) GetProgress(ctx context.Context, userID, game string) (ProgressResponse, error) {
	var res ProgressResponse
	err := doJSON(ctx, c.http, http.MethodGet, c.baseURL+"/progress/"+userID+"/"+game, nil, &res)
	return res, err
}

func (c *ProgressClient) SaveProgress(ctx context.Context, userID, game, category string, level int) (SaveProgressResponse, error) {
	var res SaveProgressResponse
	err := doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/progress/"+userID+"/"+game, map[string]any{
		"category": category,
		"level":    level,
	}, &res)
	return res, err
}
