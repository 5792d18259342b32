// Package checkout converts the cart into exactly one batch order and
// reconciles the cart against the outcome: cleared as a whole on
// success, left fully intact on any failure.
//
// The outbound request is built from a snapshot taken before the call
// suspends, so cart edits made while a checkout is in flight never leak
// into the request. Such late edits survive a failed checkout and are
// discarded by the unconditional clear after a successful one; that
// loss is a documented property of the design, matching the page-session
// behavior of the storefront.
package checkout

import (
	"context"
	"errors"
	"sync"

	"pet-center-client/internal/api"
	"pet-center-client/internal/cart"
	"pet-center-client/internal/models"
)

var (
	// ErrNotAuthenticated mirrors the cart's add guard: checkout is
	// only available to a logged-in, non-admin shopper.
	ErrNotAuthenticated = cart.ErrNotAuthenticated

	ErrEmptyCart = errors.New("cart is empty")

	// ErrCheckoutInProgress fences double submission while a batch
	// order is awaiting its response.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// InsufficientFundsError is the structured insufficient-funds rejection.
// The cart is untouched; the user can top up and retry as-is.
type InsufficientFundsError struct {
	Required float64
	Balance  float64
}

func (e *InsufficientFundsError) Error() string {
	return "insufficient funds"
}

// RejectedError is any other structured rejection from the order
// endpoint (out of stock, validation failure). Carries the server's
// message verbatim.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "order rejected: " + e.Reason
}

// TransportError means no usable response was received; whether the
// order settled server-side is unknown and no retry is attempted
// automatically.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "order request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Result reports a settled checkout. TotalCharged is the server's
// amount, which wins over the client-side estimate.
type Result struct {
	TotalCharged float64
}

// OrderPlacer is the slice of the API client the orchestrator needs.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, items []models.OrderItem) (*api.OrderResult, error)
}

// SessionInfo is the read-only view of session state used by the
// precondition checks.
type SessionInfo interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

type Orchestrator struct {
	cart    *cart.Cart
	orders  OrderPlacer
	session SessionInfo

	mu       sync.Mutex
	inFlight bool

	onSuccess []func(totalCharged float64)
}

func NewOrchestrator(c *cart.Cart, orders OrderPlacer, session SessionInfo) *Orchestrator {
	return &Orchestrator{
		cart:    c,
		orders:  orders,
		session: session,
	}
}

// OnSuccess registers a hook run after a successful checkout, once the
// cart is cleared. Used for the wallet-balance and catalog refreshes;
// hooks are follow-up queries, not part of checkout correctness.
func (o *Orchestrator) OnSuccess(hook func(totalCharged float64)) {
	o.onSuccess = append(o.onSuccess, hook)
}

// InFlight reports whether a checkout is currently awaiting a response.
func (o *Orchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// Checkout drains the cart into one batch order. Preconditions are
// checked in order and short-circuit before any network activity:
// authenticated non-admin session, non-empty cart, no checkout already
// pending. Exactly one request is issued per successful precondition
// pass; there is no automatic retry.
func (o *Orchestrator) Checkout(ctx context.Context) (*Result, error) {
	if !o.session.IsAuthenticated() || o.session.IsAdmin() {
		return nil, ErrNotAuthenticated
	}
	if o.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	o.inFlight = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	// Snapshot before suspending: the request is immune to edits made
	// while it is in flight.
	items := o.cart.Snapshot()

	result, err := o.orders.PlaceOrder(ctx, items)
	if err != nil {
		return nil, classify(err)
	}

	// Server accepted the whole batch; its amount is authoritative even
	// when it diverges from the client-side estimate.
	o.cart.Clear()

	for _, hook := range o.onSuccess {
		hook(result.TotalCharged)
	}

	return &Result{TotalCharged: result.TotalCharged}, nil
}

// classify folds an order-endpoint error into the checkout taxonomy.
// The cart is untouched on every branch.
func classify(err error) error {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsInsufficientFunds() {
			return &InsufficientFundsError{
				Required: *apiErr.Required,
				Balance:  *apiErr.Balance,
			}
		}
		return &RejectedError{Reason: apiErr.Message}
	}
	return &TransportError{Err: err}
}
