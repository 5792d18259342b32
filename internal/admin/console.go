// Package admin wraps the API client's admin surface for the console:
// CRUD on shelters, pets, caretakers and shop items, plus application
// processing. Panels are independent request wrappers with no shared
// state; the server enforces every business rule, the console only
// rejects obviously malformed payloads before they hit the network.
package admin

import (
	"context"
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"

	"pet-center-client/internal/api"
	"pet-center-client/internal/models"
)

// ErrAdminRequired is returned when the current session lacks the admin
// flag. The server would answer 403 anyway; failing locally keeps the
// console responsive.
var ErrAdminRequired = errors.New("admin privileges required")

// SessionInfo is the slice of session state the console guards on.
type SessionInfo interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

type Console struct {
	client   *api.Client
	session  SessionInfo
	validate *validator.Validate
}

func NewConsole(client *api.Client, session SessionInfo) *Console {
	return &Console{
		client:   client,
		session:  session,
		validate: validator.New(),
	}
}

func (c *Console) guard() error {
	if !c.session.IsAuthenticated() || !c.session.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

func (c *Console) check(req interface{}) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid request: %v", err)
	}
	return nil
}

// Shelters

func (c *Console) CreateShelter(ctx context.Context, req *api.ShelterRequest) (*models.Shelter, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	return c.client.CreateShelter(ctx, req)
}

func (c *Console) UpdateShelter(ctx context.Context, shelterID int64, req *api.ShelterRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	return c.client.UpdateShelter(ctx, shelterID, req)
}

func (c *Console) DeleteShelter(ctx context.Context, shelterID int64) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.client.DeleteShelter(ctx, shelterID)
}

// Pets

func (c *Console) CreatePet(ctx context.Context, req *api.PetRequest) (*models.Pet, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	return c.client.CreatePet(ctx, req)
}

func (c *Console) UpdatePet(ctx context.Context, petID int64, req *api.PetRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	return c.client.UpdatePet(ctx, petID, req)
}

func (c *Console) DeletePet(ctx context.Context, petID int64) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.client.DeletePet(ctx, petID)
}

// Caretakers

func (c *Console) ListCaretakers(ctx context.Context) ([]models.Caretaker, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	return c.client.ListCaretakers(ctx)
}

func (c *Console) CreateCaretaker(ctx context.Context, req *api.CaretakerRequest) (*models.Caretaker, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	return c.client.CreateCaretaker(ctx, req)
}

func (c *Console) UpdateCaretaker(ctx context.Context, caretakerID int64, req *api.CaretakerRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	return c.client.UpdateCaretaker(ctx, caretakerID, req)
}

func (c *Console) DeleteCaretaker(ctx context.Context, caretakerID int64) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.client.DeleteCaretaker(ctx, caretakerID)
}

// Shop items

func (c *Console) CreateShopItem(ctx context.Context, req *api.ShopItemRequest) (*models.ShopItem, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	return c.client.CreateShopItem(ctx, req)
}

func (c *Console) UpdateShopItem(ctx context.Context, itemID int64, req *api.ShopItemRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	return c.client.UpdateShopItem(ctx, itemID, req)
}

func (c *Console) DeleteShopItem(ctx context.Context, itemID int64) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.client.DeleteShopItem(ctx, itemID)
}

// Applications

func (c *Console) ListApplications(ctx context.Context) ([]models.AdoptionApplication, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	return c.client.ListApplications(ctx)
}

func (c *Console) ApproveApplication(ctx context.Context, applicationID int64) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.client.ApproveApplication(ctx, applicationID)
}

func (c *Console) RejectApplication(ctx context.Context, applicationID int64, reason string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if reason == "" {
		reason = "Not specified"
	}
	return c.client.RejectApplication(ctx, applicationID, reason)
}

func (c *Console) ListDonorApplications(ctx context.Context) ([]models.DonorApplication, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	return c.client.ListDonorApplications(ctx)
}

func (c *Console) AcceptDonorApplication(ctx context.Context, donorAppID, shelterID int64) error {
	if err := c.guard(); err != nil {
		return err
	}
	if shelterID <= 0 {
		return fmt.Errorf("invalid request: shelter_id must be positive")
	}
	return c.client.AcceptDonorApplication(ctx, donorAppID, shelterID)
}

// Vet records

func (c *Console) AddVetRecord(ctx context.Context, req *api.VetRecordRequest) error {
	if err := c.guard(); err != nil {
		return err
	}
	if req.PetID <= 0 || req.CheckupDate == "" {
		return fmt.Errorf("invalid request: pet_id and checkup_date are required")
	}
	return c.client.AddVetRecord(ctx, req)
}
