// Package apitest hosts an in-process double of the pet center REST
// service for integration tests. It mirrors the real service's
// contracts: bearer-token auth, browser-facing CORS, and an atomic
// batch order endpoint that settles a whole cart or rejects it whole.
package apitest

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"pet-center-client/internal/models"
)

type userRecord struct {
	user         models.User
	passwordHash []byte
}

type orderReply struct {
	status int
	body   gin.H
}

// Server holds the fake service's entire state in memory. All handlers
// run under one mutex; the double favors obvious correctness over
// throughput.
type Server struct {
	router *gin.Engine
	tokens *tokenManager

	mu          sync.Mutex
	users       map[int64]*userRecord
	usersByName map[string]int64
	shelters    map[int64]*models.Shelter
	caretakers  map[int64]*models.Caretaker
	pets        map[int64]*models.Pet
	vetRecords  map[int64][]models.VetRecord
	items       map[int64]*models.ShopItem
	orders      []models.ShopOrder
	adoptions   map[int64]*models.AdoptionApplication
	donors      map[int64]*models.DonorApplication
	revoked     map[string]bool
	seenOrders  map[string]orderReply

	seqUser, seqShelter, seqCaretaker, seqPet, seqItem, seqOrder, seqAdoption, seqDonor, seqVet int64
}

func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		tokens:      newTokenManager("apitest-secret", time.Hour),
		users:       make(map[int64]*userRecord),
		usersByName: make(map[string]int64),
		shelters:    make(map[int64]*models.Shelter),
		caretakers:  make(map[int64]*models.Caretaker),
		pets:        make(map[int64]*models.Pet),
		vetRecords:  make(map[int64][]models.VetRecord),
		items:       make(map[int64]*models.ShopItem),
		adoptions:   make(map[int64]*models.AdoptionApplication),
		donors:      make(map[int64]*models.DonorApplication),
		revoked:     make(map[string]bool),
		seenOrders:  make(map[string]orderReply),
	}

	router := gin.New()
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
		api.GET("/pets", s.handleListPets)
		api.GET("/pets/:id", s.handleGetPet)
		api.GET("/shelters", s.handleListShelters)
		api.GET("/shop/items", s.handleListItems)

		authed := api.Group("", s.authRequired())
		{
			authed.POST("/logout", s.handleLogout)
			authed.GET("/me", s.handleMe)
			authed.POST("/shop/order", s.handlePlaceOrder)
			authed.GET("/shop/my-orders", s.handleMyOrders)
			authed.GET("/wallet/balance", s.handleWalletBalance)
			authed.POST("/wallet/add-funds", s.handleAddFunds)
			authed.POST("/adoptions/apply", s.handleApplyAdoption)
			authed.GET("/adoptions/my-applications", s.handleMyApplications)
			authed.POST("/donors/apply", s.handleDonorApply)
		}

		admin := api.Group("", s.authRequired(), s.adminRequired())
		{
			admin.GET("/admin/adoptions", s.handleListApplications)
			admin.POST("/admin/adoptions/:id/approve", s.handleApproveApplication)
			admin.POST("/admin/adoptions/:id/reject", s.handleRejectApplication)
			admin.GET("/admin/donors", s.handleListDonors)
			admin.POST("/admin/donors/:id/accept", s.handleAcceptDonor)
			admin.GET("/admin/caretakers", s.handleListCaretakers)
			admin.POST("/admin/vet-records", s.handleAddVetRecord)

			admin.POST("/admin/shelters", s.handleCreateShelter)
			admin.PUT("/admin/shelters/:id", s.handleUpdateShelter)
			admin.DELETE("/admin/shelters/:id", s.handleDeleteShelter)
			admin.POST("/admin/pets", s.handleCreatePet)
			admin.PUT("/admin/pets/:id", s.handleUpdatePet)
			admin.DELETE("/admin/pets/:id", s.handleDeletePet)
			admin.POST("/admin/caretakers", s.handleCreateCaretaker)
			admin.PUT("/admin/caretakers/:id", s.handleUpdateCaretaker)
			admin.DELETE("/admin/caretakers/:id", s.handleDeleteCaretaker)
			admin.POST("/admin/shop/items", s.handleCreateItem)
			admin.PUT("/admin/shop/items/:id", s.handleUpdateItem)
			admin.DELETE("/admin/shop/items/:id", s.handleDeleteItem)
		}
	}

	s.router = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Middleware

func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]

		claims, err := s.tokens.Validate(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		s.mu.Lock()
		revoked := s.revoked[tokenString]
		_, exists := s.users[claims.UserID]
		s.mu.Unlock()

		if revoked || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("is_admin", claims.IsAdmin)
		c.Set("token", tokenString)
		c.Next()
	}
}

func (s *Server) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAdmin, _ := c.Get("is_admin"); isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	if v, exists := c.Get("user_id"); exists {
		return v.(int64)
	}
	return 0
}

// Seed helpers for tests. All take the lock themselves.

func (s *Server) SeedUser(username, password, name string, wallet float64, isAdmin bool) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqUser++
	user := models.User{
		ID:       s.seqUser,
		Username: username,
		Name:     name,
		Wallet:   wallet,
		IsAdmin:  isAdmin,
	}
	s.users[user.ID] = &userRecord{user: user, passwordHash: hash}
	s.usersByName[username] = user.ID
	return &user
}

func (s *Server) SeedShelter(name, location string) *models.Shelter {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqShelter++
	shelter := models.Shelter{ID: s.seqShelter, Name: name, Location: location}
	s.shelters[shelter.ID] = &shelter
	return &shelter
}

func (s *Server) SeedPet(shelterID int64, name, species string, price float64) *models.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqPet++
	pet := models.Pet{
		ID:        s.seqPet,
		ShelterID: shelterID,
		Name:      name,
		Species:   species,
		Price:     price,
		Status:    "available",
	}
	s.pets[pet.ID] = &pet
	return &pet
}

func (s *Server) SeedShopItem(shelterID int64, name string, price float64, stock int) *models.ShopItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqItem++
	item := models.ShopItem{
		ID:            s.seqItem,
		ShelterID:     shelterID,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
	}
	s.items[item.ID] = &item
	return &item
}

func (s *Server) SeedVetRecord(petID int64, checkupDate, remarks string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqVet++
	s.vetRecords[petID] = append(s.vetRecords[petID], models.VetRecord{
		ID:          s.seqVet,
		PetID:       petID,
		CheckupDate: checkupDate,
		Remarks:     remarks,
	})
}

// Inspection helpers for assertions.

func (s *Server) WalletOf(userID int64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.users[userID]; ok {
		return rec.user.Wallet
	}
	return 0
}

func (s *Server) StockOf(itemID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.items[itemID]; ok {
		return item.StockQuantity
	}
	return 0
}

func (s *Server) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
