package api

import (
	"context"
	"fmt"

	"pet-center-client/internal/models"
)

// ListPets returns available pets, optionally filtered to one shelter
// (shelterID 0 means all shelters).
func (c *Client) ListPets(ctx context.Context, shelterID int64) ([]models.Pet, error) {
	path := "/api/pets"
	if shelterID > 0 {
		path = fmt.Sprintf("%s?shelter_id=%d", path, shelterID)
	}

	var pets []models.Pet
	if err := c.get(ctx, path, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// GetPet returns one pet with its vet records and adoption eligibility.
func (c *Client) GetPet(ctx context.Context, petID int64) (*models.Pet, error) {
	var pet models.Pet
	if err := c.get(ctx, fmt.Sprintf("/api/pets/%d", petID), &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// ListShelters returns all shelters.
func (c *Client) ListShelters(ctx context.Context) ([]models.Shelter, error) {
	var shelters []models.Shelter
	if err := c.get(ctx, "/api/shelters", &shelters); err != nil {
		return nil, err
	}
	return shelters, nil
}

// ListShopItems returns in-stock shop items, optionally filtered to one
// shelter. Out-of-stock items are omitted by the server.
func (c *Client) ListShopItems(ctx context.Context, shelterID int64) ([]models.ShopItem, error) {
	path := "/api/shop/items"
	if shelterID > 0 {
		path = fmt.Sprintf("%s?shelter_id=%d", path, shelterID)
	}

	var items []models.ShopItem
	if err := c.get(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}
