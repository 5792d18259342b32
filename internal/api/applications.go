package api

import (
	"context"
	"fmt"
	"net/http"

	"pet-center-client/internal/models"
)

type DonorApplicationRequest struct {
	PetName      string `json:"pet_name"`
	Species      string `json:"species"`
	Breed        string `json:"breed,omitempty"`
	Age          int    `json:"age"`
	Description  string `json:"description,omitempty"`
	HealthStatus string `json:"health_status,omitempty"`
}

type VetRecordRequest struct {
	PetID       int64  `json:"pet_id"`
	CheckupDate string `json:"checkup_date"`
	Remarks     string `json:"remarks,omitempty"`
	Treatment   string `json:"treatment,omitempty"`
}

// ApplyForAdoption submits an adoption application for a pet.
func (c *Client) ApplyForAdoption(ctx context.Context, petID int64) error {
	req := map[string]int64{"pet_id": petID}
	_, err := c.doRequest(ctx, http.MethodPost, "/api/adoptions/apply", req, nil)
	return err
}

// MyApplications returns the caller's adoption applications, newest first.
func (c *Client) MyApplications(ctx context.Context) ([]models.AdoptionApplication, error) {
	var apps []models.AdoptionApplication
	if err := c.get(ctx, "/api/adoptions/my-applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListApplications returns every adoption application (admin only).
func (c *Client) ListApplications(ctx context.Context) ([]models.AdoptionApplication, error) {
	var apps []models.AdoptionApplication
	if err := c.get(ctx, "/api/admin/adoptions", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ApproveApplication approves an adoption application (admin only).
func (c *Client) ApproveApplication(ctx context.Context, applicationID int64) error {
	path := fmt.Sprintf("/api/admin/adoptions/%d/approve", applicationID)
	_, err := c.doRequest(ctx, http.MethodPost, path, nil, nil)
	return err
}

// RejectApplication rejects an adoption application with a reason
// (admin only).
func (c *Client) RejectApplication(ctx context.Context, applicationID int64, reason string) error {
	path := fmt.Sprintf("/api/admin/adoptions/%d/reject", applicationID)
	req := map[string]string{"reason": reason}
	_, err := c.doRequest(ctx, http.MethodPost, path, req, nil)
	return err
}

// SubmitDonorApplication offers a pet for surrender to the center.
func (c *Client) SubmitDonorApplication(ctx context.Context, req *DonorApplicationRequest) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/donors/apply", req, nil)
	return err
}

// ListDonorApplications returns every donor application (admin only).
func (c *Client) ListDonorApplications(ctx context.Context) ([]models.DonorApplication, error) {
	var apps []models.DonorApplication
	if err := c.get(ctx, "/api/admin/donors", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// AcceptDonorApplication accepts a surrendered pet into a shelter
// (admin only).
func (c *Client) AcceptDonorApplication(ctx context.Context, donorAppID, shelterID int64) error {
	path := fmt.Sprintf("/api/admin/donors/%d/accept", donorAppID)
	req := map[string]int64{"shelter_id": shelterID}
	_, err := c.doRequest(ctx, http.MethodPost, path, req, nil)
	return err
}

// AddVetRecord appends a checkup record to a pet's medical history
// (admin only).
func (c *Client) AddVetRecord(ctx context.Context, req *VetRecordRequest) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/api/admin/vet-records", req, nil)
	return err
}
