//go:build unit || e2e

package sagafake

import (
	"context"
	"fmt"
	"sync"

	"grillbox/internal/domain/user"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/commands"
	"grillbox/internal/usecase/saga"

	"github.com/google/uuid"
)

type Users struct {
	users map[uuid.UUID]*user.User
	Err   error
}

func NewUsers(users ...*user.User) *Users {
	f := &Users{users: make(map[uuid.UUID]*user.User)}
	for _, u := range users {
		f.users[u.ID()] = u
	}
	return f
}

func (f *Users) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, errs.Mark(errs.Newf("user %s", id), errs.ErrNotFound)
	}
	return u, nil
}

// Payments authorizes every request unless Authorize is replaced.
type Payments struct {
	mu       sync.Mutex
	requests []saga.AuthorizationRequest

	AuthorizeFunc func(ctx context.Context, req saga.AuthorizationRequest) (*saga.Authorization, error)
}

func NewPayments() *Payments {
	return &Payments{}
}

func (f *Payments) Authorize(ctx context.Context, req saga.AuthorizationRequest) (*saga.Authorization, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	fn := f.AuthorizeFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return Approve(req), nil
}

func (f *Payments) Requests() []saga.AuthorizationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]saga.AuthorizationRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Approve derives a deterministic payment reference from the attempt id.
func Approve(req saga.AuthorizationRequest) *saga.Authorization {
	return &saga.Authorization{
		PaymentRef:       "pi_" + req.AttemptID.String(),
		AmountCents:      req.AmountCents,
		Currency:         req.Currency,
		PaymentMethodRef: req.PaymentMethodRef,
	}
}

type Commands struct {
	mu   sync.Mutex
	sent []string
	Err  error
	// OnSend runs after a command is accepted, e.g. to make the device unlock.
	OnSend func(externalID string)
}

func (f *Commands) SendUnlock(_ context.Context, externalDeviceID string) error {
	f.mu.Lock()
	if f.Err != nil {
		f.mu.Unlock()
		return f.Err
	}
	f.sent = append(f.sent, externalDeviceID)
	onSend := f.OnSend
	f.mu.Unlock()

	if onSend != nil {
		onSend(externalDeviceID)
	}
	return nil
}

func (f *Commands) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *Commands) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
	f.Err = nil
	f.OnSend = nil
}

type Alerts struct {
	mu     sync.Mutex
	alerts []saga.Alert
}

func (f *Alerts) Raise(_ context.Context, alert saga.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
}

func (f *Alerts) Raised() []saga.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]saga.Alert, len(f.alerts))
	copy(out, f.alerts)
	return out
}

func (f *Alerts) Kinds() []saga.AlertKind {
	raised := f.Raised()
	out := make([]saga.AlertKind, 0, len(raised))
	for _, a := range raised {
		out = append(out, a.Kind)
	}
	return out
}

// Cards keeps saved cards per payment customer in memory.
type Cards struct {
	mu    sync.Mutex
	cards map[string][]commands.Card
	setup int
}

func NewCards() *Cards {
	return &Cards{cards: make(map[string][]commands.Card)}
}

func (f *Cards) Add(customerRef string, card commands.Card) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards[customerRef] = append(f.cards[customerRef], card)
}

func (f *Cards) ListCards(_ context.Context, customerRef string) ([]commands.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]commands.Card(nil), f.cards[customerRef]...), nil
}

func (f *Cards) CreateSetup(_ context.Context, customerRef string) (*commands.CardSetup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setup++
	ref := fmt.Sprintf("seti_%s_%d", customerRef, f.setup)
	return &commands.CardSetup{SetupRef: ref, ClientSecret: ref + "_secret"}, nil
}

func (f *Cards) DetachCard(_ context.Context, customerRef, cardID string) (*commands.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := f.cards[customerRef]
	for i, c := range saved {
		if c.ID == cardID {
			f.cards[customerRef] = append(saved[:i:i], saved[i+1:]...)
			return &c, nil
		}
	}
	return nil, errs.Mark(errs.Newf("payment method %s", cardID), errs.ErrNotFound)
}
