package cli_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-center-client/internal/admin"
	"pet-center-client/internal/api"
	"pet-center-client/internal/apitest"
	"pet-center-client/internal/cart"
	"pet-center-client/internal/checkout"
	"pet-center-client/internal/cli"
	"pet-center-client/internal/session"
)

// runScript feeds newline-separated commands to a fresh shell wired
// against the given fake service and returns everything it printed.
func runScript(t *testing.T, fake *apitest.Server, script string) string {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	sess := session.New()
	client := api.NewClient(srv.URL, 5*time.Second, sess)
	shoppingCart := cart.New(sess)
	orch := checkout.NewOrchestrator(shoppingCart, client, sess)
	console := admin.NewConsole(client, sess)

	var out bytes.Buffer
	shell := cli.NewShell(client, sess, shoppingCart, orch, console, "> ", strings.NewReader(script), &out)
	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func TestShellShoppingSession(t *testing.T) {
	fake := apitest.NewServer()
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	food := fake.SeedShopItem(shelter.ID, "DogFood", 5.00, 10)
	leash := fake.SeedShopItem(shelter.ID, "Leash", 10.00, 3)
	buyer := fake.SeedUser("alice", "secret123", "Alice", 100.0, false)

	out := runScript(t, fake, strings.Join([]string{
		"login alice secret123",
		"shop",
		"cart add 1 2",
		"cart add 2",
		"checkout",
		"orders",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "DogFood")
	assert.Contains(t, out, "Order placed. Charged $20.00.")
	assert.Equal(t, 1, fake.OrderCount())
	assert.Equal(t, 80.00, fake.WalletOf(buyer.ID))
	assert.Equal(t, 8, fake.StockOf(food.ID))
	assert.Equal(t, 2, fake.StockOf(leash.ID))
}

func TestShellCheckoutInsufficientFundsKeepsCart(t *testing.T) {
	fake := apitest.NewServer()
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	item := fake.SeedShopItem(shelter.ID, "Aquarium", 50.00, 5)
	buyer := fake.SeedUser("alice", "secret123", "Alice", 10.0, false)

	out := runScript(t, fake, strings.Join([]string{
		"login alice secret123",
		"cart add 1",
		"checkout",
		"cart",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "Insufficient funds: order needs $50.00, wallet has $10.00. Cart kept.")
	assert.Contains(t, out, "Aquarium")
	assert.Equal(t, 0, fake.OrderCount())
	assert.Equal(t, 10.00, fake.WalletOf(buyer.ID))
	assert.Equal(t, 5, fake.StockOf(item.ID))
}

func TestShellRequiresLoginToAddToCart(t *testing.T) {
	fake := apitest.NewServer()
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	fake.SeedShopItem(shelter.ID, "DogFood", 5.00, 10)

	out := runScript(t, fake, "cart add 1\nquit\n")
	assert.Contains(t, out, "authentication required")
}

func TestShellCheckoutEmptyCart(t *testing.T) {
	fake := apitest.NewServer()
	fake.SeedUser("alice", "secret123", "Alice", 100.0, false)

	out := runScript(t, fake, "login alice secret123\ncheckout\nquit\n")
	assert.Contains(t, out, "cart is empty")
}

func TestShellLogoutDropsCart(t *testing.T) {
	fake := apitest.NewServer()
	shelter := fake.SeedShelter("Happy Paws", "Springfield")
	fake.SeedShopItem(shelter.ID, "DogFood", 5.00, 10)
	fake.SeedUser("alice", "secret123", "Alice", 100.0, false)

	out := runScript(t, fake, strings.Join([]string{
		"login alice secret123",
		"cart add 1",
		"logout",
		"login alice secret123",
		"cart",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "Logged out.")
	assert.Contains(t, out, "Your cart is empty.")
	assert.Equal(t, 0, fake.OrderCount())
}

func TestShellUnknownCommand(t *testing.T) {
	out := runScript(t, apitest.NewServer(), "frobnicate\nquit\n")
	assert.Contains(t, out, `unknown command "frobnicate"`)
}
