package api_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-center-client/internal/api"
	"pet-center-client/internal/apitest"
	"pet-center-client/internal/models"
	"pet-center-client/internal/session"
)

// newClient wires a client, a fresh session and the in-process pet
// center double together.
func newClient(t *testing.T) (*api.Client, *session.Session, *apitest.Server) {
	t.Helper()
	fake := apitest.NewServer()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	sess := session.New()
	return api.NewClient(srv.URL, 5*time.Second, sess), sess, fake
}

func login(t *testing.T, client *api.Client, sess *session.Session, username, password string) *models.User {
	t.Helper()
	resp, err := client.Login(context.Background(), username, password)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	sess.Set(resp.User, resp.Token)
	return resp.User
}

func TestRegisterAndLogin(t *testing.T) {
	client, sess, _ := newClient(t)
	ctx := context.Background()

	_, err := client.Register(ctx, &api.RegisterRequest{
		Username: "alice",
		Password: "secret123",
		Name:     "Alice",
		Contact:  "555-0101",
		Address:  "12 Bark St",
	})
	require.NoError(t, err)

	user := login(t, client, sess, "alice", "secret123")
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
}

func TestLoginBadCredentials(t *testing.T) {
	client, _, fake := newClient(t)
	fake.SeedUser("alice", "secret123", "Alice", 0, false)

	_, err := client.Login(context.Background(), "alice", "wrong")
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	client, sess, fake := newClient(t)
	fake.SeedUser("alice", "secret123", "Alice", 0, false)
	login(t, client, sess, "alice", "secret123")

	require.NoError(t, client.Logout(context.Background()))

	_, err := client.Me(context.Background())
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestListPetsFiltersByShelter(t *testing.T) {
	client, _, fake := newClient(t)
	s1 := fake.SeedShelter("Happy Paws", "Springfield")
	s2 := fake.SeedShelter("Second Chance", "Shelbyville")
	fake.SeedPet(s1.ID, "Rex", "Dog", 50)
	fake.SeedPet(s2.ID, "Whiskers", "Cat", 30)

	ctx := context.Background()

	all, err := client.ListPets(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := client.ListPets(ctx, s2.ID)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Whiskers", only[0].Name)
}

func TestGetPetEligibility(t *testing.T) {
	client, _, fake := newClient(t)
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	unchecked := fake.SeedPet(shelter.ID, "Rex", "Dog", 50)
	checked := fake.SeedPet(shelter.ID, "Whiskers", "Cat", 30)
	fake.SeedVetRecord(checked.ID, "2026-08-01", "healthy")

	ctx := context.Background()

	pet, err := client.GetPet(ctx, unchecked.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending vet check", pet.Eligibility)
	assert.Equal(t, "Happy Paws", pet.ShelterName)

	pet, err = client.GetPet(ctx, checked.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eligible", pet.Eligibility)
	require.Len(t, pet.VetRecords, 1)
}

func TestListShopItemsHidesOutOfStock(t *testing.T) {
	client, _, fake := newClient(t)
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	fake.SeedShopItem(shelter.ID, "Dog Food", 9.99, 10)
	fake.SeedShopItem(shelter.ID, "Rare Toy", 19.99, 0)

	items, err := client.ListShopItems(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dog Food", items[0].Name)
}

func TestPlaceOrderSettlesWalletAndStock(t *testing.T) {
	client, sess, fake := newClient(t)
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	food := fake.SeedShopItem(shelter.ID, "Dog Food", 5.00, 10)
	leash := fake.SeedShopItem(shelter.ID, "Leash", 10.00, 3)
	buyer := fake.SeedUser("alice", "secret123", "Alice", 100.0, false)
	login(t, client, sess, "alice", "secret123")

	result, err := client.PlaceOrder(context.Background(), []models.OrderItem{
		{ItemID: food.ID, Quantity: 2},
		{ItemID: leash.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 20.00, result.TotalCharged)

	assert.Equal(t, 80.00, fake.WalletOf(buyer.ID))
	assert.Equal(t, 8, fake.StockOf(food.ID))
	assert.Equal(t, 2, fake.StockOf(leash.ID))
	assert.Equal(t, 1, fake.OrderCount())

	orders, err := client.MyOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestPlaceOrderInsufficientFunds(t *testing.T) {
	client, sess, fake := newClient(t)
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	item := fake.SeedShopItem(shelter.ID, "Aquarium", 50.00, 5)
	buyer := fake.SeedUser("alice", "secret123", "Alice", 10.0, false)
	login(t, client, sess, "alice", "secret123")

	_, err := client.PlaceOrder(context.Background(), []models.OrderItem{
		{ItemID: item.ID, Quantity: 1},
	})

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	require.True(t, apiErr.IsInsufficientFunds())
	assert.Equal(t, 50.00, *apiErr.Required)
	assert.Equal(t, 10.00, *apiErr.Balance)

	// nothing settled
	assert.Equal(t, 10.00, fake.WalletOf(buyer.ID))
	assert.Equal(t, 5, fake.StockOf(item.ID))
	assert.Equal(t, 0, fake.OrderCount())
}

func TestPlaceOrderInsufficientStockIsAtomic(t *testing.T) {
	client, sess, fake := newClient(t)
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	food := fake.SeedShopItem(shelter.ID, "Dog Food", 5.00, 10)
	leash := fake.SeedShopItem(shelter.ID, "Leash", 10.00, 1)
	buyer := fake.SeedUser("alice", "secret123", "Alice", 100.0, false)
	login(t, client, sess, "alice", "secret123")

	_, err := client.PlaceOrder(context.Background(), []models.OrderItem{
		{ItemID: food.ID, Quantity: 2},
		{ItemID: leash.ID, Quantity: 5},
	})

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.False(t, apiErr.IsInsufficientFunds())

	// the valid line must not have settled either
	assert.Equal(t, 10, fake.StockOf(food.ID))
	assert.Equal(t, 100.00, fake.WalletOf(buyer.ID))
}

func TestPlaceOrderRequiresAuth(t *testing.T) {
	client, _, fake := newClient(t)
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	item := fake.SeedShopItem(shelter.ID, "Dog Food", 5.00, 10)

	_, err := client.PlaceOrder(context.Background(), []models.OrderItem{
		{ItemID: item.ID, Quantity: 1},
	})

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestWalletTopUp(t *testing.T) {
	client, sess, fake := newClient(t)
	fake.SeedUser("alice", "secret123", "Alice", 10.0, false)
	login(t, client, sess, "alice", "secret123")
	ctx := context.Background()

	require.NoError(t, client.AddFunds(ctx, 15.5))

	balance, err := client.WalletBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25.5, balance)
}

func TestAdoptionFlow(t *testing.T) {
	client, sess, fake := newClient(t)
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	pet := fake.SeedPet(shelter.ID, "Rex", "Dog", 50)
	fake.SeedUser("alice", "secret123", "Alice", 0, false)
	login(t, client, sess, "alice", "secret123")
	ctx := context.Background()

	require.NoError(t, client.ApplyForAdoption(ctx, pet.ID))

	apps, err := client.MyApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "pending", apps[0].Status)

	// pending pets leave the browsable catalog
	pets, err := client.ListPets(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	// port 9 is discard; nothing listens there in tests
	client := api.NewClient("http://127.0.0.1:9", 500*time.Millisecond, session.New())

	_, err := client.WalletBalance(context.Background())
	require.Error(t, err)
	var apiErr *api.APIError
	assert.False(t, errors.As(err, &apiErr))
}
