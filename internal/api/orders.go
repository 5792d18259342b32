package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"pet-center-client/internal/models"
)

type OrderRequest struct {
	Items []models.OrderItem `json:"items"`
}

type OrderResult struct {
	Message      string  `json:"message"`
	TotalCharged float64 `json:"total_charged"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// PlaceOrder submits one batch order covering every line of a checkout.
// The server applies the batch atomically: all lines settle or none do.
// Each call carries a fresh Idempotency-Key so the server can fence
// accidental resubmission of the same attempt.
func (c *Client) PlaceOrder(ctx context.Context, items []models.OrderItem) (*OrderResult, error) {
	req := &OrderRequest{Items: items}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/shop/order", req, headers)
	if err != nil {
		return nil, err
	}

	var result OrderResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order response: %v", err)
	}
	return &result, nil
}

// MyOrders returns the caller's settled purchases, newest first.
func (c *Client) MyOrders(ctx context.Context) ([]models.ShopOrder, error) {
	var orders []models.ShopOrder
	if err := c.get(ctx, "/api/shop/my-orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// WalletBalance returns the caller's current wallet balance.
func (c *Client) WalletBalance(ctx context.Context) (float64, error) {
	var result BalanceResponse
	if err := c.get(ctx, "/api/wallet/balance", &result); err != nil {
		return 0, err
	}
	return result.Balance, nil
}

// AddFunds tops up the caller's wallet.
func (c *Client) AddFunds(ctx context.Context, amount float64) error {
	req := map[string]float64{"amount": amount}
	_, err := c.doRequest(ctx, http.MethodPost, "/api/wallet/add-funds", req, nil)
	return err
}
