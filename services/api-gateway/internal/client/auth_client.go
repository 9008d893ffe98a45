package client

import (
	"context"
	"net/http"
)

type AuthClient struct {
	baseURL string
	http    *http.Client
}

func NewAuthClient(url string) *AuthClient {
	return &AuthClient{baseURL: url, http: newHTTPClient()}
}

type TokensResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *AuthClient) Register(ctx context.Context, username, email, password string) (string, error) {
	var res struct {
		UserID string `json:"user_id"`
	}
	err := doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &res)
	return res.UserID, err
}

func (c *AuthClient) Login(ctx context.Context, email, password string) (TokensResponse, error) {
	var res TokensResponse
	err := doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	return res, err
}

func (c *AuthClient) Refresh(ctx context.Context, refreshToken string) (TokensResponse, error) {
	var res TokensResponse
	err := doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &res)
	return res, err
}

func (c *AuthClient) Logout(ctx context.Context, refreshToken string) error {
	return doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/logout", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
}

// Validate проверяет access-токен и возвращает id пользователя.
func (c *AuthClient) Validate(ctx context.Context, accessToken string) (string, error) {
	var res struct {
		UserID string `json:"user_id"`
	}
	err := doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/validate", map[string]string{
		"access_token": accessToken,
	}, &res)
	return res.UserID, err
}
