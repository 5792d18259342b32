// Package cli is the interactive storefront: one process is one
// shopping session, and the cart lives exactly as long as the shell.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pet-center-client/internal/admin"
	"pet-center-client/internal/api"
	"pet-center-client/internal/cart"
	"pet-center-client/internal/checkout"
	"pet-center-client/internal/session"
)

// TokenStore persists the bearer token across shell runs.
type TokenStore interface {
	Save(token string) error
	Clear() error
}

type Shell struct {
	client   *api.Client
	session  *session.Session
	cart     *cart.Cart
	checkout *checkout.Orchestrator
	console  *admin.Console
	tokens   TokenStore

	prompt string
	in     io.Reader
	out    io.Writer
}

func NewShell(client *api.Client, sess *session.Session, c *cart.Cart, orch *checkout.Orchestrator, console *admin.Console, prompt string, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		client:   client,
		session:  sess,
		cart:     c,
		checkout: orch,
		console:  console,
		prompt:   prompt,
		in:       in,
		out:      out,
	}
}

// UseTokenStore makes login/logout persist the token across runs.
func (s *Shell) UseTokenStore(store TokenStore) {
	s.tokens = store
}

// Run probes the session, then reads commands until EOF or "quit".
func (s *Shell) Run(ctx context.Context) error {
	s.probeSession(ctx)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, s.prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if err := s.dispatch(ctx, fields); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// probeSession asks the service who the stored token belongs to. Any
// rejection means logged out; the shell stays usable for browsing.
func (s *Shell) probeSession(ctx context.Context) {
	if s.session.Token() == "" {
		return
	}
	user, err := s.client.Me(ctx)
	if err != nil || user == nil {
		s.session.Clear()
		return
	}
	s.session.UpdateUser(user)
	renderUser(s.out, user)
}

func (s *Shell) dispatch(ctx context.Context, fields []string) error {
	switch fields[0] {
	case "help":
		s.printHelp()
		return nil
	case "register":
		return s.cmdRegister(ctx, fields[1:])
	case "login":
		return s.cmdLogin(ctx, fields[1:])
	case "logout":
		return s.cmdLogout(ctx)
	case "whoami":
		return s.cmdWhoami()
	case "shelters":
		return s.cmdShelters(ctx)
	case "pets":
		return s.cmdPets(ctx, fields[1:])
	case "pet":
		return s.cmdPetDetail(ctx, fields[1:])
	case "shop":
		return s.cmdShop(ctx, fields[1:])
	case "cart":
		return s.cmdCart(ctx, fields[1:])
	case "checkout":
		return s.cmdCheckout(ctx)
	case "wallet":
		return s.cmdWallet(ctx)
	case "fund":
		return s.cmdFund(ctx, fields[1:])
	case "orders":
		return s.cmdOrders(ctx)
	case "adopt":
		return s.cmdAdopt(ctx, fields[1:])
	case "applications":
		return s.cmdApplications(ctx)
	case "donate":
		return s.cmdDonate(ctx, fields[1:])
	case "admin":
		return s.cmdAdmin(ctx, fields[1:])
	default:
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `Commands:
  register <username> <password> <name> <contact>
  login <username> <password>          logout | whoami
  shelters | pets [shelter] | pet <id> | shop [shelter]
  cart | cart add <item> [qty] | cart set <item> <qty>
  cart remove <item> | cart clear
  checkout
  wallet | fund <amount> | orders
  adopt <pet> | applications
  donate <species> <age> <name...>
  admin <subcommand>                   (admin help for details)
  quit
`)
}

// Account commands

func (s *Shell) cmdRegister(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return errors.New("usage: register <username> <password> <name> <contact>")
	}
	resp, err := s.client.Register(ctx, &api.RegisterRequest{
		Username: args[0],
		Password: args[1],
		Name:     args[2],
		Contact:  args[3],
		Address:  joinRest(args, 4),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s (user #%d). You can log in now.\n", resp.Message, resp.UserID)
	return nil
}

func (s *Shell) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <username> <password>")
	}
	resp, err := s.client.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	s.session.Set(resp.User, resp.Token)
	if s.tokens != nil {
		if err := s.tokens.Save(resp.Token); err != nil {
			fmt.Fprintf(s.out, "warning: could not persist session: %v\n", err)
		}
	}
	renderUser(s.out, resp.User)
	return nil
}

func (s *Shell) cmdLogout(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return errors.New("not logged in")
	}
	// Best-effort server-side invalidation; the local session is
	// dropped either way.
	if err := s.client.Logout(ctx); err != nil {
		fmt.Fprintf(s.out, "warning: %v\n", err)
	}
	s.session.Clear()
	s.cart.Clear()
	if s.tokens != nil {
		_ = s.tokens.Clear()
	}
	fmt.Fprintln(s.out, "Logged out.")
	return nil
}

func (s *Shell) cmdWhoami() error {
	user, ok := s.session.Current()
	if !ok {
		fmt.Fprintln(s.out, "Not logged in.")
		return nil
	}
	renderUser(s.out, user)
	return nil
}

// Catalog commands

func (s *Shell) cmdShelters(ctx context.Context) error {
	shelters, err := s.client.ListShelters(ctx)
	if err != nil {
		return err
	}
	renderShelters(s.out, shelters)
	return nil
}

func (s *Shell) cmdPets(ctx context.Context, args []string) error {
	shelterID, err := optionalID(args)
	if err != nil {
		return err
	}
	pets, err := s.client.ListPets(ctx, shelterID)
	if err != nil {
		return err
	}
	renderPets(s.out, pets)
	return nil
}

func (s *Shell) cmdPetDetail(ctx context.Context, args []string) error {
	id, err := requiredID(args, "usage: pet <id>")
	if err != nil {
		return err
	}
	pet, err := s.client.GetPet(ctx, id)
	if err != nil {
		return err
	}
	renderPetDetail(s.out, pet)
	return nil
}

func (s *Shell) cmdShop(ctx context.Context, args []string) error {
	shelterID, err := optionalID(args)
	if err != nil {
		return err
	}
	items, err := s.client.ListShopItems(ctx, shelterID)
	if err != nil {
		return err
	}
	renderShopItems(s.out, items)
	return nil
}

// Cart commands

func (s *Shell) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		renderCart(s.out, s.cart)
		return nil
	}

	switch args[0] {
	case "add":
		return s.cmdCartAdd(ctx, args[1:])
	case "set":
		id, err := requiredID(args[1:], "usage: cart set <item> <qty>")
		if err != nil {
			return err
		}
		qty, err := requiredInt(args[1:], 1, "usage: cart set <item> <qty>")
		if err != nil {
			return err
		}
		s.cart.SetQuantity(id, qty)
		renderCart(s.out, s.cart)
		return nil
	case "remove":
		id, err := requiredID(args[1:], "usage: cart remove <item>")
		if err != nil {
			return err
		}
		s.cart.Remove(id)
		renderCart(s.out, s.cart)
		return nil
	case "clear":
		s.cart.Clear()
		fmt.Fprintln(s.out, "Cart cleared.")
		return nil
	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

// cmdCartAdd looks the item up in the shop catalog so the cart line
// carries a name/price/shelter snapshot from add time.
func (s *Shell) cmdCartAdd(ctx context.Context, args []string) error {
	id, err := requiredID(args, "usage: cart add <item> [qty]")
	if err != nil {
		return err
	}
	qty := 1
	if len(args) > 1 {
		if qty, err = strconv.Atoi(args[1]); err != nil {
			return errors.New("usage: cart add <item> [qty]")
		}
	}

	items, err := s.client.ListShopItems(ctx, 0)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == id {
			if err := s.cart.Add(item.ID, item.Name, item.Price, item.ShelterID, qty); err != nil {
				return err
			}
			renderCart(s.out, s.cart)
			return nil
		}
	}
	return fmt.Errorf("item %d is not in stock", id)
}

func (s *Shell) cmdCheckout(ctx context.Context) error {
	result, err := s.checkout.Checkout(ctx)
	if err != nil {
		var funds *checkout.InsufficientFundsError
		var rejected *checkout.RejectedError
		var transport *checkout.TransportError
		switch {
		case errors.As(err, &funds):
			fmt.Fprintf(s.out, "Insufficient funds: order needs $%.2f, wallet has $%.2f. Cart kept.\n",
				funds.Required, funds.Balance)
		case errors.As(err, &rejected):
			fmt.Fprintf(s.out, "Order rejected: %s. Cart kept.\n", rejected.Reason)
		case errors.As(err, &transport):
			fmt.Fprintf(s.out, "Could not reach the shop: %v. Cart kept.\n", transport.Err)
		default:
			return err
		}
		return nil
	}
	fmt.Fprintf(s.out, "Order placed. Charged $%.2f.\n", result.TotalCharged)
	return nil
}

// Wallet and history

func (s *Shell) cmdWallet(ctx context.Context) error {
	balance, err := s.client.WalletBalance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Wallet balance: $%.2f\n", balance)
	return nil
}

func (s *Shell) cmdFund(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fund <amount>")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil || amount <= 0 {
		return errors.New("amount must be a positive number")
	}
	if err := s.client.AddFunds(ctx, amount); err != nil {
		return err
	}
	return s.cmdWallet(ctx)
}

func (s *Shell) cmdOrders(ctx context.Context) error {
	orders, err := s.client.MyOrders(ctx)
	if err != nil {
		return err
	}
	renderOrders(s.out, orders)
	return nil
}

// Adoption and donor flows

func (s *Shell) cmdAdopt(ctx context.Context, args []string) error {
	id, err := requiredID(args, "usage: adopt <pet>")
	if err != nil {
		return err
	}
	if err := s.client.ApplyForAdoption(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Application submitted.")
	return nil
}

func (s *Shell) cmdApplications(ctx context.Context) error {
	apps, err := s.client.MyApplications(ctx)
	if err != nil {
		return err
	}
	renderApplications(s.out, apps)
	return nil
}

func (s *Shell) cmdDonate(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: donate <species> <age> <name...>")
	}
	age, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.New("usage: donate <species> <age> <name...>")
	}
	if err := s.client.SubmitDonorApplication(ctx, &api.DonorApplicationRequest{
		Species: args[0],
		Age:     age,
		PetName: joinRest(args, 2),
	}); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Donor application submitted.")
	return nil
}

// Parsing helpers

func optionalID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a numeric id", args[0])
	}
	return id, nil
}

func requiredID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, errors.New(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errors.New(usage)
	}
	return id, nil
}

func requiredInt(args []string, pos int, usage string) (int, error) {
	if len(args) <= pos {
		return 0, errors.New(usage)
	}
	n, err := strconv.Atoi(args[pos])
	if err != nil {
		return 0, errors.New(usage)
	}
	return n, nil
}
