//go:build unit

package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"grillbox/internal/domain/user"
	"grillbox/internal/infra"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/commands"
	"grillbox/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCardOwnerDirectory struct {
	mock.Mock
}

func (m *MockCardOwnerDirectory) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockCardVault struct {
	mock.Mock
}

func (m *MockCardVault) ListCards(ctx context.Context, customerRef string) ([]commands.Card, error) {
	args := m.Called(ctx, customerRef)
	cards, _ := args.Get(0).([]commands.Card)
	return cards, args.Error(1)
}

func (m *MockCardVault) CreateSetup(ctx context.Context, customerRef string) (*commands.CardSetup, error) {
	args := m.Called(ctx, customerRef)
	setup, _ := args.Get(0).(*commands.CardSetup)
	return setup, args.Error(1)
}

func (m *MockCardVault) DetachCard(ctx context.Context, customerRef, cardID string) (*commands.Card, error) {
	args := m.Called(ctx, customerRef, cardID)
	card, _ := args.Get(0).(*commands.Card)
	return card, args.Error(1)
}

func TestCardCommands(t *testing.T) {
	ctx := context.Background()
	owner, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)
	visa := commands.Card{ID: "pm_1", Brand: "visa", Last4: "4242", ExpMonth: 12, ExpYear: 2030}

	setup := func() (*MockCardOwnerDirectory, *MockCardVault, commands.CardCommands) {
		users := new(MockCardOwnerDirectory)
		vault := new(MockCardVault)
		return users, vault, commands.NewCardUseCase(users, vault, slog.New(slog.DiscardHandler))
	}

	t.Run("lists cards of the caller's customer", func(t *testing.T) {
		users, vault, uc := setup()
		users.On("FindByID", ctx, owner.ID()).Return(owner, nil).Once()
		vault.On("ListCards", ctx, "cus_test123").Return([]commands.Card{visa}, nil).Once()

		cards, err := uc.ListCards(ctx, owner.ID())

		require.NoError(t, err)
		require.Equal(t, []commands.Card{visa}, cards)
		vault.AssertExpectations(t)
	})

	t.Run("setup session is opened for the caller's customer", func(t *testing.T) {
		users, vault, uc := setup()
		users.On("FindByID", ctx, owner.ID()).Return(owner, nil).Once()
		want := &commands.CardSetup{SetupRef: "seti_1", ClientSecret: "seti_1_secret"}
		vault.On("CreateSetup", ctx, "cus_test123").Return(want, nil).Once()

		got, err := uc.StartCardSetup(ctx, owner.ID())

		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("removes a card", func(t *testing.T) {
		users, vault, uc := setup()
		users.On("FindByID", ctx, owner.ID()).Return(owner, nil).Once()
		vault.On("DetachCard", ctx, "cus_test123", "pm_1").Return(&visa, nil).Once()

		removed, err := uc.RemoveCard(ctx, owner.ID(), " pm_1 ")

		require.NoError(t, err)
		require.Equal(t, "pm_1", removed.ID)
	})

	t.Run("card of someone else is not found", func(t *testing.T) {
		users, vault, uc := setup()
		users.On("FindByID", ctx, owner.ID()).Return(owner, nil).Once()
		vault.On("DetachCard", ctx, "cus_test123", "pm_other").
			Return(nil, errs.Mark(errs.New("not saved to customer"), errs.ErrNotFound)).Once()

		_, err := uc.RemoveCard(ctx, owner.ID(), "pm_other")

		require.True(t, errs.Is(err, commands.ErrCardNotFound))
		require.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("blank card id never reaches the processor", func(t *testing.T) {
		users, vault, uc := setup()

		_, err := uc.RemoveCard(ctx, owner.ID(), "  ")

		require.True(t, errs.Is(err, commands.ErrInvalidCardID))
		require.True(t, errs.Is(err, errs.ErrDomainValidation))
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		vault.AssertNotCalled(t, "DetachCard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		users, vault, uc := setup()
		id := uuid.New()
		users.On("FindByID", ctx, id).Return(nil, infra.WrapRepoErr("no rows", nil, infra.KindNotFound)).Once()

		_, err := uc.ListCards(ctx, id)

		require.True(t, errs.Is(err, commands.ErrCardOwnerNotFound))
		vault.AssertNotCalled(t, "ListCards", mock.Anything, mock.Anything)
	})

	t.Run("user without a processor customer", func(t *testing.T) {
		users, vault, uc := setup()
		bare, err := builder.NewUserBuilder().WithoutCustomer().BuildDomain()
		require.NoError(t, err)
		users.On("FindByID", ctx, bare.ID()).Return(bare, nil).Once()

		_, err = uc.StartCardSetup(ctx, bare.ID())

		require.True(t, errs.Is(err, errs.ErrDomainValidation))
		vault.AssertNotCalled(t, "CreateSetup", mock.Anything, mock.Anything)
	})

	t.Run("processor failure is wrapped", func(t *testing.T) {
		users, vault, uc := setup()
		stripeErr := errors.New("api unavailable")
		users.On("FindByID", ctx, owner.ID()).Return(owner, nil).Once()
		vault.On("ListCards", ctx, "cus_test123").Return(nil, stripeErr).Once()

		_, err := uc.ListCards(ctx, owner.ID())

		require.True(t, errs.Is(err, stripeErr))
		require.False(t, errs.Is(err, errs.ErrNotFound))
	})
}
