package apitest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pet-center-client/internal/models"
)

// Admin CRUD handlers. The client console validates payloads before
// sending; the double re-checks only what it needs to stay consistent.

type shelterPayload struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
	Capacity int    `json:"capacity"`
}

type petPayload struct {
	ShelterID   int64   `json:"shelter_id" binding:"required"`
	CaretakerID *int64  `json:"caretaker_id"`
	Name        string  `json:"name" binding:"required"`
	Species     string  `json:"species" binding:"required"`
	Breed       string  `json:"breed"`
	Age         int     `json:"age"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
}

type caretakerPayload struct {
	ShelterID int64  `json:"shelter_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Contact   string `json:"contact"`
}

type itemPayload struct {
	ShelterID     int64   `json:"shelter_id" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

func (s *Server) handleCreateShelter(c *gin.Context) {
	var req shelterPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqShelter++
	shelter := models.Shelter{
		ID:       s.seqShelter,
		Name:     req.Name,
		Location: req.Location,
		Contact:  req.Contact,
		Capacity: req.Capacity,
	}
	s.shelters[shelter.ID] = &shelter

	c.JSON(http.StatusCreated, shelter)
}

func (s *Server) handleUpdateShelter(c *gin.Context) {
	var req shelterPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shelter, ok := s.shelters[pathID(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shelter not found"})
		return
	}
	shelter.Name = req.Name
	shelter.Location = req.Location
	shelter.Contact = req.Contact
	shelter.Capacity = req.Capacity

	c.JSON(http.StatusOK, gin.H{"message": "Shelter updated successfully"})
}

func (s *Server) handleDeleteShelter(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(c)
	if _, ok := s.shelters[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shelter not found"})
		return
	}
	delete(s.shelters, id)

	c.JSON(http.StatusOK, gin.H{"message": "Shelter deleted successfully"})
}

func (s *Server) handleCreatePet(c *gin.Context) {
	var req petPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shelter_id, name and species required"})
		return
	}
	if req.Status == "" {
		req.Status = "available"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shelters[req.ShelterID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shelter not found"})
		return
	}

	s.seqPet++
	pet := models.Pet{
		ID:          s.seqPet,
		ShelterID:   req.ShelterID,
		CaretakerID: req.CaretakerID,
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Age:         req.Age,
		Price:       req.Price,
		Status:      req.Status,
	}
	s.pets[pet.ID] = &pet

	c.JSON(http.StatusCreated, pet)
}

func (s *Server) handleUpdatePet(c *gin.Context) {
	var req petPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shelter_id, name and species required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pet, ok := s.pets[pathID(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}
	pet.ShelterID = req.ShelterID
	pet.CaretakerID = req.CaretakerID
	pet.Name = req.Name
	pet.Species = req.Species
	pet.Breed = req.Breed
	pet.Age = req.Age
	pet.Price = req.Price
	if req.Status != "" {
		pet.Status = req.Status
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet updated successfully"})
}

func (s *Server) handleDeletePet(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(c)
	if _, ok := s.pets[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}
	delete(s.pets, id)
	delete(s.vetRecords, id)

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}

func (s *Server) handleCreateCaretaker(c *gin.Context) {
	var req caretakerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shelter_id and name required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shelters[req.ShelterID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shelter not found"})
		return
	}

	s.seqCaretaker++
	caretaker := models.Caretaker{
		ID:        s.seqCaretaker,
		ShelterID: req.ShelterID,
		Name:      req.Name,
		Contact:   req.Contact,
	}
	s.caretakers[caretaker.ID] = &caretaker

	c.JSON(http.StatusCreated, caretaker)
}

func (s *Server) handleUpdateCaretaker(c *gin.Context) {
	var req caretakerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shelter_id and name required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	caretaker, ok := s.caretakers[pathID(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Caretaker not found"})
		return
	}
	caretaker.ShelterID = req.ShelterID
	caretaker.Name = req.Name
	caretaker.Contact = req.Contact

	c.JSON(http.StatusOK, gin.H{"message": "Caretaker updated successfully"})
}

func (s *Server) handleDeleteCaretaker(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(c)
	if _, ok := s.caretakers[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Caretaker not found"})
		return
	}
	delete(s.caretakers, id)

	c.JSON(http.StatusOK, gin.H{"message": "Caretaker deleted successfully"})
}

func (s *Server) handleCreateItem(c *gin.Context) {
	var req itemPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shelter_id and name required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shelters[req.ShelterID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shelter not found"})
		return
	}

	s.seqItem++
	item := models.ShopItem{
		ID:            s.seqItem,
		ShelterID:     req.ShelterID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}
	s.items[item.ID] = &item

	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	var req itemPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shelter_id and name required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[pathID(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop item not found"})
		return
	}
	item.ShelterID = req.ShelterID
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.StockQuantity = req.StockQuantity

	c.JSON(http.StatusOK, gin.H{"message": "Shop item updated successfully"})
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(c)
	if _, ok := s.items[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop item not found"})
		return
	}
	delete(s.items, id)

	c.JSON(http.StatusOK, gin.H{"message": "Shop item deleted successfully"})
}
