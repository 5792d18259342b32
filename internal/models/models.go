package models

// Wire models for the pet center API. Field names follow the JSON the
// service emits; identifiers are the server's numeric primary keys.

// User is the authenticated identity as reported by the session probe.
type User struct {
	ID       int64   `json:"user_id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Contact  string  `json:"contact,omitempty"`
	Address  string  `json:"address,omitempty"`
	Wallet   float64 `json:"wallet"`
	IsAdmin  bool    `json:"is_admin"`
}

// Shelter groups pets and shop items under one facility.
type Shelter struct {
	ID       int64  `json:"shelter_id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Contact  string `json:"contact,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// Caretaker is a staff member assigned to pets within a shelter.
type Caretaker struct {
	ID        int64  `json:"caretaker_id"`
	ShelterID int64  `json:"shelter_id"`
	Name      string `json:"name"`
	Contact   string `json:"contact,omitempty"`
}

// Pet is a catalog entry available for adoption.
type Pet struct {
	ID            int64       `json:"pet_id"`
	ShelterID     int64       `json:"shelter_id"`
	CaretakerID   *int64      `json:"caretaker_id,omitempty"`
	Name          string      `json:"name"`
	Species       string      `json:"species"`
	Breed         string      `json:"breed,omitempty"`
	Age           int         `json:"age"`
	Price         float64     `json:"price"`
	Status        string      `json:"status,omitempty"` // available, pending, adopted
	ShelterName   string      `json:"shelter_name,omitempty"`
	CaretakerName string      `json:"caretaker_name,omitempty"`
	VetRecords    []VetRecord `json:"vet_records,omitempty"`
	Eligibility   string      `json:"eligibility,omitempty"`
}

// VetRecord is one checkup entry in a pet's medical history.
type VetRecord struct {
	ID          int64  `json:"record_id"`
	PetID       int64  `json:"pet_id"`
	CheckupDate string `json:"checkup_date"`
	Remarks     string `json:"remarks,omitempty"`
	Treatment   string `json:"treatment,omitempty"`
}

// ShopItem is a purchasable supply listed by a shelter.
type ShopItem struct {
	ID            int64   `json:"item_id"`
	ShelterID     int64   `json:"shelter_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	ShelterName   string  `json:"shelter_name,omitempty"`
}

// AdoptionApplication tracks a user's request to adopt a pet.
type AdoptionApplication struct {
	ID      int64  `json:"application_id"`
	UserID  int64  `json:"user_id"`
	PetID   int64  `json:"pet_id"`
	Status  string `json:"status"` // pending, approved, rejected
	Date    string `json:"date,omitempty"`
	Reason  string `json:"reason,omitempty"`
	PetName string `json:"pet_name,omitempty"`
	Species string `json:"species,omitempty"`
	Breed   string `json:"breed,omitempty"`
	Price   float64 `json:"price,omitempty"`
}

// DonorApplication is an offer to surrender a pet to a shelter.
type DonorApplication struct {
	ID           int64  `json:"donor_app_id"`
	UserID       int64  `json:"user_id"`
	PetName      string `json:"pet_name"`
	Species      string `json:"species"`
	Breed        string `json:"breed,omitempty"`
	Age          int    `json:"age"`
	Description  string `json:"description,omitempty"`
	HealthStatus string `json:"health_status,omitempty"`
	Status       string `json:"status,omitempty"`
	Date         string `json:"application_date,omitempty"`
}

// OrderItem is one line of a batch order request.
type OrderItem struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// ShopOrder is one settled purchase line from the user's order history.
type ShopOrder struct {
	ID          int64   `json:"order_id"`
	UserID      int64   `json:"user_id"`
	ItemID      int64   `json:"item_id"`
	ShelterID   int64   `json:"shelter_id"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
	OrderDate   string  `json:"order_date,omitempty"`
	ItemName    string  `json:"item_name,omitempty"`
	ShelterName string  `json:"shelter_name,omitempty"`
}
