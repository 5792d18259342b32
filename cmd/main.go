package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"pet-center-client/configs"
	"pet-center-client/internal/admin"
	"pet-center-client/internal/api"
	"pet-center-client/internal/cart"
	"pet-center-client/internal/checkout"
	"pet-center-client/internal/cli"
	"pet-center-client/internal/session"
)

var flags struct {
	APIURL    string        `help:"Base URL of the pet center API (overrides PET_CENTER_API_URL)."`
	Timeout   time.Duration `help:"HTTP request timeout (overrides PET_CENTER_API_TIMEOUT)."`
	TokenFile string        `help:"Path of the persisted session token." type:"path"`
}

func main() {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	config := configs.LoadConfig()

	kong.Parse(&flags,
		kong.Name("petcenter"),
		kong.Description("Storefront and admin console for the pet center marketplace."),
	)

	if flags.APIURL != "" {
		config.API.BaseURL = flags.APIURL
	}
	if flags.Timeout > 0 {
		config.API.Timeout = flags.Timeout
	}

	tokenPath := flags.TokenFile
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal("Failed to resolve home directory:", err)
		}
		tokenPath = filepath.Join(home, ".pet-center", "token")
	}

	// One session, one cart: the shell process is the page session.
	sess := session.New()
	tokenStore := session.NewFileStore(tokenPath)
	if token := tokenStore.Load(); token != "" {
		sess.SetToken(token)
	}

	client := api.NewClient(config.API.BaseURL, config.API.Timeout, sess)
	shoppingCart := cart.New(sess)

	orchestrator := checkout.NewOrchestrator(shoppingCart, client, sess)
	orchestrator.OnSuccess(func(totalCharged float64) {
		// Follow-up query, not part of checkout correctness: show the
		// post-charge wallet. Catalog stock is re-queried on the next
		// listing anyway.
		balance, err := client.WalletBalance(context.Background())
		if err != nil {
			log.Printf("wallet refresh after checkout failed: %v", err)
			return
		}
		fmt.Printf("Wallet balance: $%.2f\n", balance)
	})

	console := admin.NewConsole(client, sess)

	shell := cli.NewShell(client, sess, shoppingCart, orchestrator, console,
		config.CLI.Prompt, os.Stdin, os.Stdout)
	shell.UseTokenStore(tokenStore)

	fmt.Printf("Pet Center storefront - %s (help for commands)\n", config.API.BaseURL)
	if err := shell.Run(context.Background()); err != nil {
		log.Fatal("Shell terminated:", err)
	}
}
