package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-center-client/internal/api"
	"pet-center-client/internal/cart"
	"pet-center-client/internal/models"
)

type fakeSession struct {
	authed bool
	admin  bool
}

func (s *fakeSession) IsAuthenticated() bool { return s.authed }
func (s *fakeSession) IsAdmin() bool         { return s.admin }

type fakePlacer struct {
	mu      sync.Mutex
	calls   int
	gotItem [][]models.OrderItem
	result  *api.OrderResult
	err     error

	// when set, PlaceOrder blocks until released
	entered  chan struct{}
	released chan struct{}
}

func (p *fakePlacer) PlaceOrder(ctx context.Context, items []models.OrderItem) (*api.OrderResult, error) {
	p.mu.Lock()
	p.calls++
	p.gotItem = append(p.gotItem, items)
	p.mu.Unlock()

	if p.entered != nil {
		close(p.entered)
		<-p.released
	}
	return p.result, p.err
}

func (p *fakePlacer) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func newLoadedCart(t *testing.T, sess *fakeSession) *cart.Cart {
	t.Helper()
	c := cart.New(sess)
	require.NoError(t, c.Add(1, "Dog Food", 5.00, 1, 2))
	require.NoError(t, c.Add(2, "Leash", 10.00, 2, 1))
	return c
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	sess := &fakeSession{authed: false}
	placer := &fakePlacer{}
	o := NewOrchestrator(cart.New(sess), placer, sess)

	_, err := o.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, placer.callCount())
}

func TestCheckoutRejectsAdmin(t *testing.T) {
	sess := &fakeSession{authed: true, admin: true}
	c := cart.New(sess)
	require.NoError(t, c.Add(1, "Dog Food", 5.00, 1, 1))
	placer := &fakePlacer{}
	o := NewOrchestrator(c, placer, sess)

	_, err := o.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, placer.callCount())
}

func TestCheckoutEmptyCart(t *testing.T) {
	sess := &fakeSession{authed: true}
	placer := &fakePlacer{}
	o := NewOrchestrator(cart.New(sess), placer, sess)

	_, err := o.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, placer.callCount())
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	sess := &fakeSession{authed: true}
	c := newLoadedCart(t, sess)
	placer := &fakePlacer{result: &api.OrderResult{Message: "Order placed successfully", TotalCharged: 42.50}}
	o := NewOrchestrator(c, placer, sess)

	var hookTotal float64
	o.OnSuccess(func(total float64) { hookTotal = total })

	result, err := o.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.50, result.TotalCharged)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 42.50, hookTotal)
	assert.Equal(t, 1, placer.callCount())

	require.Len(t, placer.gotItem, 1)
	assert.Equal(t, []models.OrderItem{
		{ItemID: 1, Quantity: 2},
		{ItemID: 2, Quantity: 1},
	}, placer.gotItem[0])
}

func TestCheckoutServerTotalWins(t *testing.T) {
	sess := &fakeSession{authed: true}
	c := newLoadedCart(t, sess) // client-side estimate is 20.00
	placer := &fakePlacer{result: &api.OrderResult{TotalCharged: 19.00}}
	o := NewOrchestrator(c, placer, sess)

	result, err := o.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 19.00, result.TotalCharged)
	assert.True(t, c.IsEmpty())
}

func TestCheckoutInsufficientFundsKeepsCart(t *testing.T) {
	sess := &fakeSession{authed: true}
	c := newLoadedCart(t, sess)
	required, balance := 50.0, 10.0
	placer := &fakePlacer{err: &api.APIError{
		StatusCode: 400,
		Message:    "Insufficient funds",
		Required:   &required,
		Balance:    &balance,
	}}
	o := NewOrchestrator(c, placer, sess)

	_, err := o.Checkout(context.Background())

	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, 50.0, fundsErr.Required)
	assert.Equal(t, 10.0, fundsErr.Balance)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 20.00, c.Total())
}

func TestCheckoutRejectionKeepsCart(t *testing.T) {
	sess := &fakeSession{authed: true}
	c := newLoadedCart(t, sess)
	placer := &fakePlacer{err: &api.APIError{StatusCode: 400, Message: "Insufficient stock for Dog Food"}}
	o := NewOrchestrator(c, placer, sess)

	_, err := o.Checkout(context.Background())

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Insufficient stock for Dog Food", rejected.Reason)
	assert.Equal(t, 2, c.Len())
}

func TestCheckoutTransportFailureKeepsCart(t *testing.T) {
	sess := &fakeSession{authed: true}
	c := newLoadedCart(t, sess)
	cause := errors.New("connection refused")
	placer := &fakePlacer{err: cause}
	o := NewOrchestrator(c, placer, sess)

	_, err := o.Checkout(context.Background())

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, placer.callCount())
}

func TestCheckoutDoubleSubmissionFenced(t *testing.T) {
	sess := &fakeSession{authed: true}
	c := newLoadedCart(t, sess)
	placer := &fakePlacer{
		result:   &api.OrderResult{TotalCharged: 20.00},
		entered:  make(chan struct{}),
		released: make(chan struct{}),
	}
	o := NewOrchestrator(c, placer, sess)

	done := make(chan error, 1)
	go func() {
		_, err := o.Checkout(context.Background())
		done <- err
	}()

	<-placer.entered
	assert.True(t, o.InFlight())

	_, err := o.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(placer.released)
	require.NoError(t, <-done)
	assert.Equal(t, 1, placer.callCount())
	assert.False(t, o.InFlight())
}

func TestCheckoutSnapshotImmuneToLateEdits(t *testing.T) {
	sess := &fakeSession{authed: true}
	c := newLoadedCart(t, sess)
	placer := &fakePlacer{
		result:   &api.OrderResult{TotalCharged: 20.00},
		entered:  make(chan struct{}),
		released: make(chan struct{}),
	}
	o := NewOrchestrator(c, placer, sess)

	done := make(chan error, 1)
	go func() {
		_, err := o.Checkout(context.Background())
		done <- err
	}()

	<-placer.entered
	// Edits made while the request is in flight.
	require.NoError(t, c.Add(3, "Treats", 2.00, 1, 5))
	c.SetQuantity(1, 99)
	close(placer.released)

	require.NoError(t, <-done)

	require.Len(t, placer.gotItem, 1)
	assert.Equal(t, []models.OrderItem{
		{ItemID: 1, Quantity: 2},
		{ItemID: 2, Quantity: 1},
	}, placer.gotItem[0])

	// The unconditional clear discards late edits too.
	assert.True(t, c.IsEmpty())
}

func TestCheckoutRetryAfterFailure(t *testing.T) {
	sess := &fakeSession{authed: true}
	c := newLoadedCart(t, sess)
	placer := &fakePlacer{err: errors.New("timeout")}
	o := NewOrchestrator(c, placer, sess)

	_, err := o.Checkout(context.Background())
	require.Error(t, err)

	placer.err = nil
	placer.result = &api.OrderResult{TotalCharged: 20.00}

	result, err := o.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20.00, result.TotalCharged)
	assert.Equal(t, 2, placer.callCount())
	assert.True(t, c.IsEmpty())
}
