package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pet-center-client/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Address  string `json:"address,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type MeResponse struct {
	User *models.User `json:"user"`
}

// Register creates a new account. The new user starts with an empty
// wallet and no admin rights.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/register", req, nil)
	if err != nil {
		return nil, err
	}

	var result RegisterResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal register response: %v", err)
	}
	return &result, nil
}

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	req := map[string]string{"username": username, "password": password}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/login", req, nil)
	if err != nil {
		return nil, err
	}

	var result LoginResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal login response: %v", err)
	}
	return &result, nil
}

// Logout invalidates the current token server-side. The caller clears
// the local session regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/logout", nil, nil)
	return err
}

// Me is the session probe: it returns the identity behind the current
// token. A nil user (or any rejection) means logged out.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var result MeResponse
	if err := c.get(ctx, "/api/me", &result); err != nil {
		return nil, err
	}
	return result.User, nil
}
