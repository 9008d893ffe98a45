package client

import (
	"context"
	"net/http"
)

type AnalyticsClient struct {
	baseURL string
	http    *http.Client
}

func NewAnalyticsClient(url string) *AnalyticsClient {
	return &AnalyticsClient{baseURL: url, http: newHTTPClient()}
}

func (c *AnalyticsClient) Visit(ctx context.Context, userID, scene string, seconds int) error {
	return doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/visits", map[string]any{
		"user_id": userID,
		"scene":   scene,
		"seconds": seconds,
	}, nil)
}

func (c *AnalyticsClient) GameOver(ctx context.Context, userID, scene string) error {
	return doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/gameovers", map[string]any{
		"user_id": userID,
		"scene":   scene,
	}, nil)
}
