package apitest

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"pet-center-client/internal/models"
)

func pathID(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return id
}

func queryShelterID(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.Query("shelter_id"), 10, 64)
	return id
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Auth

func (s *Server) handleRegister(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Contact  string `json:"contact" binding:"required"`
		Address  string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByName[req.Username]; taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed: username already exists"})
		return
	}

	s.seqUser++
	user := models.User{
		ID:       s.seqUser,
		Username: req.Username,
		Name:     req.Name,
		Contact:  req.Contact,
		Address:  req.Address,
	}
	s.users[user.ID] = &userRecord{user: user, passwordHash: hash}
	s.usersByName[user.Username] = user.ID

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_id": user.ID})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing credentials"})
		return
	}

	s.mu.Lock()
	userID, ok := s.usersByName[req.Username]
	var rec *userRecord
	if ok {
		rec = s.users[userID]
	}
	s.mu.Unlock()

	if rec == nil || bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := s.tokens.Generate(rec.user.ID, rec.user.Username, rec.user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": rec.user})
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, exists := c.Get("token"); exists {
		s.mu.Lock()
		s.revoked[token.(string)] = true
		s.mu.Unlock()
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (s *Server) handleMe(c *gin.Context) {
	s.mu.Lock()
	rec := s.users[currentUserID(c)]
	s.mu.Unlock()

	if rec == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": rec.user})
}

// Catalog

func (s *Server) handleListPets(c *gin.Context) {
	shelterID := queryShelterID(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	pets := make([]models.Pet, 0)
	for _, pet := range s.pets {
		if pet.Status != "available" {
			continue
		}
		if shelterID > 0 && pet.ShelterID != shelterID {
			continue
		}
		p := *pet
		if shelter, ok := s.shelters[p.ShelterID]; ok {
			p.ShelterName = shelter.Name
		}
		pets = append(pets, p)
	}
	sort.Slice(pets, func(i, j int) bool { return pets[i].ID < pets[j].ID })

	c.JSON(http.StatusOK, pets)
}

func (s *Server) handleGetPet(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pet, ok := s.pets[pathID(c)]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}

	p := *pet
	if shelter, ok := s.shelters[p.ShelterID]; ok {
		p.ShelterName = shelter.Name
	}
	if p.CaretakerID != nil {
		if caretaker, ok := s.caretakers[*p.CaretakerID]; ok {
			p.CaretakerName = caretaker.Name
		}
	}
	p.VetRecords = append([]models.VetRecord{}, s.vetRecords[p.ID]...)
	p.Eligibility = eligibilityOf(&p)

	c.JSON(http.StatusOK, p)
}

// eligibilityOf mirrors the service's adoption-eligibility rule: a pet
// must be available and have at least one vet checkup on record.
func eligibilityOf(pet *models.Pet) string {
	switch {
	case pet.Status != "available":
		return "Not eligible - not available"
	case len(pet.VetRecords) == 0:
		return "Pending vet check"
	default:
		return "Eligible"
	}
}

func (s *Server) handleListShelters(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shelters := make([]models.Shelter, 0, len(s.shelters))
	for _, shelter := range s.shelters {
		shelters = append(shelters, *shelter)
	}
	sort.Slice(shelters, func(i, j int) bool { return shelters[i].ID < shelters[j].ID })

	c.JSON(http.StatusOK, shelters)
}

func (s *Server) handleListItems(c *gin.Context) {
	shelterID := queryShelterID(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.ShopItem, 0)
	for _, item := range s.items {
		if item.StockQuantity <= 0 {
			continue
		}
		if shelterID > 0 && item.ShelterID != shelterID {
			continue
		}
		it := *item
		if shelter, ok := s.shelters[it.ShelterID]; ok {
			it.ShelterName = shelter.Name
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	c.JSON(http.StatusOK, items)
}

// Shop

func (s *Server) handlePlaceOrder(c *gin.Context) {
	var req struct {
		Items []models.OrderItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items required"})
		return
	}

	idempKey := c.GetHeader("Idempotency-Key")

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replay the stored outcome for a key the service has seen; a
	// resubmitted attempt must not settle twice.
	if idempKey != "" {
		if reply, seen := s.seenOrders[idempKey]; seen {
			c.JSON(reply.status, reply.body)
			return
		}
	}

	reply := s.applyOrder(currentUserID(c), req.Items)
	if idempKey != "" {
		s.seenOrders[idempKey] = reply
	}
	c.JSON(reply.status, reply.body)
}

// applyOrder settles a batch atomically: every line is validated before
// anything is mutated, so a rejection leaves stock and wallet untouched.
// Caller holds the lock.
func (s *Server) applyOrder(userID int64, items []models.OrderItem) orderReply {
	rec, ok := s.users[userID]
	if !ok {
		return orderReply{http.StatusUnauthorized, gin.H{"error": "Login required"}}
	}

	var total float64
	for _, line := range items {
		if line.Quantity < 1 {
			return orderReply{http.StatusBadRequest, gin.H{"error": "invalid quantity"}}
		}
		item, ok := s.items[line.ItemID]
		if !ok {
			return orderReply{http.StatusBadRequest, gin.H{"error": "item not found"}}
		}
		if item.StockQuantity < line.Quantity {
			return orderReply{http.StatusBadRequest, gin.H{"error": "Insufficient stock for " + item.Name}}
		}
		total += item.Price * float64(line.Quantity)
	}
	total = round2(total)

	if rec.user.Wallet < total {
		return orderReply{http.StatusBadRequest, gin.H{
			"error":    "Insufficient funds",
			"required": total,
			"balance":  round2(rec.user.Wallet),
		}}
	}

	orderDate := time.Now().Format("2006-01-02")
	for _, line := range items {
		item := s.items[line.ItemID]
		item.StockQuantity -= line.Quantity

		s.seqOrder++
		s.orders = append(s.orders, models.ShopOrder{
			ID:         s.seqOrder,
			UserID:     userID,
			ItemID:     item.ID,
			ShelterID:  item.ShelterID,
			Quantity:   line.Quantity,
			TotalPrice: round2(item.Price * float64(line.Quantity)),
			OrderDate:  orderDate,
			ItemName:   item.Name,
		})
	}
	rec.user.Wallet = round2(rec.user.Wallet - total)

	return orderReply{http.StatusCreated, gin.H{
		"message":       "Order placed successfully",
		"total_charged": total,
	}}
}

func (s *Server) handleMyOrders(c *gin.Context) {
	userID := currentUserID(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]models.ShopOrder, 0)
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			order := s.orders[i]
			if shelter, ok := s.shelters[order.ShelterID]; ok {
				order.ShelterName = shelter.Name
			}
			orders = append(orders, order)
		}
	}

	c.JSON(http.StatusOK, orders)
}

// Wallet

func (s *Server) handleWalletBalance(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[currentUserID(c)]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": round2(rec.user.Wallet)})
}

func (s *Server) handleAddFunds(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[currentUserID(c)]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	rec.user.Wallet = round2(rec.user.Wallet + req.Amount)

	c.JSON(http.StatusOK, gin.H{"message": "Funds added successfully"})
}

// Adoptions

func (s *Server) handleApplyAdoption(c *gin.Context) {
	var req struct {
		PetID int64 `json:"pet_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pet_id required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pet, ok := s.pets[req.PetID]
	if !ok || pet.Status != "available" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pet is not available for adoption"})
		return
	}

	s.seqAdoption++
	app := models.AdoptionApplication{
		ID:     s.seqAdoption,
		UserID: currentUserID(c),
		PetID:  req.PetID,
		Status: "pending",
		Date:   time.Now().Format("2006-01-02"),
	}
	s.adoptions[app.ID] = &app
	pet.Status = "pending"

	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully"})
}

func (s *Server) handleMyApplications(c *gin.Context) {
	userID := currentUserID(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	apps := make([]models.AdoptionApplication, 0)
	for _, app := range s.adoptions {
		if app.UserID != userID {
			continue
		}
		a := *app
		if pet, ok := s.pets[a.PetID]; ok {
			a.PetName = pet.Name
			a.Species = pet.Species
			a.Breed = pet.Breed
			a.Price = pet.Price
		}
		apps = append(apps, a)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID > apps[j].ID })

	c.JSON(http.StatusOK, apps)
}

func (s *Server) handleListApplications(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := make([]models.AdoptionApplication, 0, len(s.adoptions))
	for _, app := range s.adoptions {
		a := *app
		if pet, ok := s.pets[a.PetID]; ok {
			a.PetName = pet.Name
		}
		apps = append(apps, a)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })

	c.JSON(http.StatusOK, apps)
}

func (s *Server) handleApproveApplication(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.adoptions[pathID(c)]
	if !ok || app.Status != "pending" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application is not pending"})
		return
	}

	app.Status = "approved"
	if pet, ok := s.pets[app.PetID]; ok {
		pet.Status = "adopted"
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application approved successfully"})
}

func (s *Server) handleRejectApplication(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Reason == "" {
		req.Reason = "Not specified"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.adoptions[pathID(c)]
	if !ok || app.Status != "pending" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application is not pending"})
		return
	}

	app.Status = "rejected"
	app.Reason = req.Reason
	if pet, ok := s.pets[app.PetID]; ok {
		pet.Status = "available"
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application rejected"})
}

// Donors

func (s *Server) handleDonorApply(c *gin.Context) {
	var req struct {
		PetName      string `json:"pet_name" binding:"required"`
		Species      string `json:"species" binding:"required"`
		Breed        string `json:"breed"`
		Age          int    `json:"age"`
		Description  string `json:"description"`
		HealthStatus string `json:"health_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pet_name and species required"})
		return
	}
	if req.HealthStatus == "" {
		req.HealthStatus = "Unknown"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqDonor++
	app := models.DonorApplication{
		ID:           s.seqDonor,
		UserID:       currentUserID(c),
		PetName:      req.PetName,
		Species:      req.Species,
		Breed:        req.Breed,
		Age:          req.Age,
		Description:  req.Description,
		HealthStatus: req.HealthStatus,
		Status:       "pending",
		Date:         time.Now().Format("2006-01-02"),
	}
	s.donors[app.ID] = &app

	c.JSON(http.StatusCreated, gin.H{"message": "Donor application submitted successfully"})
}

func (s *Server) handleListDonors(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := make([]models.DonorApplication, 0, len(s.donors))
	for _, app := range s.donors {
		apps = append(apps, *app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })

	c.JSON(http.StatusOK, apps)
}

func (s *Server) handleAcceptDonor(c *gin.Context) {
	var req struct {
		ShelterID int64 `json:"shelter_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shelter_id required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.donors[pathID(c)]
	if !ok || app.Status != "pending" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Donor application is not pending"})
		return
	}
	if _, ok := s.shelters[req.ShelterID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shelter not found"})
		return
	}

	app.Status = "accepted"
	s.seqPet++
	s.pets[s.seqPet] = &models.Pet{
		ID:        s.seqPet,
		ShelterID: req.ShelterID,
		Name:      app.PetName,
		Species:   app.Species,
		Breed:     app.Breed,
		Age:       app.Age,
		Status:    "available",
	}

	c.JSON(http.StatusOK, gin.H{"message": "Donor application accepted successfully"})
}

// Vet records

func (s *Server) handleAddVetRecord(c *gin.Context) {
	var req struct {
		PetID       int64  `json:"pet_id" binding:"required"`
		CheckupDate string `json:"checkup_date" binding:"required"`
		Remarks     string `json:"remarks"`
		Treatment   string `json:"treatment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pet_id and checkup_date required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[req.PetID]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pet not found"})
		return
	}

	s.seqVet++
	s.vetRecords[req.PetID] = append(s.vetRecords[req.PetID], models.VetRecord{
		ID:          s.seqVet,
		PetID:       req.PetID,
		CheckupDate: req.CheckupDate,
		Remarks:     req.Remarks,
		Treatment:   req.Treatment,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Vet record added successfully"})
}

func (s *Server) handleListCaretakers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caretakers := make([]models.Caretaker, 0, len(s.caretakers))
	for _, caretaker := range s.caretakers {
		caretakers = append(caretakers, *caretaker)
	}
	sort.Slice(caretakers, func(i, j int) bool { return caretakers[i].ID < caretakers[j].ID })

	c.JSON(http.StatusOK, caretakers)
}
