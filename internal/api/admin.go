package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pet-center-client/internal/models"
)

// Admin CRUD surface. Every call here requires an admin token; the
// server answers 403 otherwise.

type ShelterRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location,omitempty"`
	Contact  string `json:"contact,omitempty"`
	Capacity int    `json:"capacity,omitempty" validate:"gte=0"`
}

type PetRequest struct {
	ShelterID   int64   `json:"shelter_id" validate:"required,gt=0"`
	CaretakerID *int64  `json:"caretaker_id,omitempty"`
	Name        string  `json:"name" validate:"required"`
	Species     string  `json:"species" validate:"required"`
	Breed       string  `json:"breed,omitempty"`
	Age         int     `json:"age" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=available pending adopted"`
}

type CaretakerRequest struct {
	ShelterID int64  `json:"shelter_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required"`
	Contact   string `json:"contact,omitempty"`
}

type ShopItemRequest struct {
	ShelterID     int64   `json:"shelter_id" validate:"required,gt=0"`
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price" validate:"gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
}

func (c *Client) CreateShelter(ctx context.Context, req *ShelterRequest) (*models.Shelter, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/admin/shelters", req, nil)
	if err != nil {
		return nil, err
	}

	var result models.Shelter
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shelter response: %v", err)
	}
	return &result, nil
}

func (c *Client) UpdateShelter(ctx context.Context, shelterID int64, req *ShelterRequest) error {
	return c.updateEntity(ctx, fmt.Sprintf("/api/admin/shelters/%d", shelterID), req)
}

func (c *Client) DeleteShelter(ctx context.Context, shelterID int64) error {
	return c.deleteEntity(ctx, fmt.Sprintf("/api/admin/shelters/%d", shelterID))
}

func (c *Client) CreatePet(ctx context.Context, req *PetRequest) (*models.Pet, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/admin/pets", req, nil)
	if err != nil {
		return nil, err
	}

	var result models.Pet
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pet response: %v", err)
	}
	return &result, nil
}

func (c *Client) UpdatePet(ctx context.Context, petID int64, req *PetRequest) error {
	return c.updateEntity(ctx, fmt.Sprintf("/api/admin/pets/%d", petID), req)
}

func (c *Client) DeletePet(ctx context.Context, petID int64) error {
	return c.deleteEntity(ctx, fmt.Sprintf("/api/admin/pets/%d", petID))
}

func (c *Client) ListCaretakers(ctx context.Context) ([]models.Caretaker, error) {
	var caretakers []models.Caretaker
	if err := c.get(ctx, "/api/admin/caretakers", &caretakers); err != nil {
		return nil, err
	}
	return caretakers, nil
}

func (c *Client) CreateCaretaker(ctx context.Context, req *CaretakerRequest) (*models.Caretaker, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/admin/caretakers", req, nil)
	if err != nil {
		return nil, err
	}

	var result models.Caretaker
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal caretaker response: %v", err)
	}
	return &result, nil
}

func (c *Client) UpdateCaretaker(ctx context.Context, caretakerID int64, req *CaretakerRequest) error {
	return c.updateEntity(ctx, fmt.Sprintf("/api/admin/caretakers/%d", caretakerID), req)
}

func (c *Client) DeleteCaretaker(ctx context.Context, caretakerID int64) error {
	return c.deleteEntity(ctx, fmt.Sprintf("/api/admin/caretakers/%d", caretakerID))
}

func (c *Client) CreateShopItem(ctx context.Context, req *ShopItemRequest) (*models.ShopItem, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/admin/shop/items", req, nil)
	if err != nil {
		return nil, err
	}

	var result models.ShopItem
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shop item response: %v", err)
	}
	return &result, nil
}

func (c *Client) UpdateShopItem(ctx context.Context, itemID int64, req *ShopItemRequest) error {
	return c.updateEntity(ctx, fmt.Sprintf("/api/admin/shop/items/%d", itemID), req)
}

func (c *Client) DeleteShopItem(ctx context.Context, itemID int64) error {
	return c.deleteEntity(ctx, fmt.Sprintf("/api/admin/shop/items/%d", itemID))
}

func (c *Client) updateEntity(ctx context.Context, path string, req interface{}) error {
	_, err := c.doRequest(ctx, http.MethodPut, path, req, nil)
	return err
}

func (c *Client) deleteEntity(ctx context.Context, path string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	return err
}
