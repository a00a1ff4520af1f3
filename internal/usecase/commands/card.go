package commands

import (
	"context"
	"log/slog"
	"strings"

	"grillbox/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCardOwnerNotFound = errs.Mark(errs.New("card owner not found"), errs.ErrNotFound)
	ErrCardNotFound      = errs.Mark(errs.New("card not found"), errs.ErrNotFound)
	ErrInvalidCardID     = errs.Mark(errs.New("invalid card id"), errs.ErrDomainValidation)
)

// Card is a saved card as shown to its owner. Only the last four digits are
// ever known to this service.
type Card struct {
	ID       string
	Brand    string
	Last4    string
	ExpMonth int64
	ExpYear  int64
}

// CardSetup is what a client needs to collect card details directly with the
// processor.
type CardSetup struct {
	SetupRef     string
	ClientSecret string
}

type CardCommands interface {
	ListCards(ctx context.Context, userID uuid.UUID) ([]Card, error)
	StartCardSetup(ctx context.Context, userID uuid.UUID) (*CardSetup, error)
	RemoveCard(ctx context.Context, userID uuid.UUID, cardID string) (*Card, error)
}

type cardUseCaseImpl struct {
	users  CardOwnerDirectory
	vault  CardVault
	logger *slog.Logger
}

func NewCardUseCase(users CardOwnerDirectory, vault CardVault, logger *slog.Logger) CardCommands {
	return &cardUseCaseImpl{users: users, vault: vault, logger: logger}
}

func (uc *cardUseCaseImpl) ListCards(ctx context.Context, userID uuid.UUID) ([]Card, error) {
	customerRef, err := uc.customerOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	cards, err := uc.vault.ListCards(ctx, customerRef)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list cards")
	}
	return cards, nil
}

// StartCardSetup opens a setup session at the processor. The card itself is
// attached to the customer when the client completes it.
func (uc *cardUseCaseImpl) StartCardSetup(ctx context.Context, userID uuid.UUID) (*CardSetup, error) {
	customerRef, err := uc.customerOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	setup, err := uc.vault.CreateSetup(ctx, customerRef)
	if err != nil {
		return nil, errs.Wrap(err, "failed to start card setup")
	}
	uc.logger.Info("Card setup started",
		slog.String("user_id", userID.String()),
		slog.String("setup_ref", setup.SetupRef))
	return setup, nil
}

// RemoveCard detaches one of the caller's cards. A card saved to another
// customer is reported as not found.
func (uc *cardUseCaseImpl) RemoveCard(ctx context.Context, userID uuid.UUID, cardID string) (*Card, error) {
	cardID = strings.TrimSpace(cardID)
	if cardID == "" {
		return nil, ErrInvalidCardID
	}
	customerRef, err := uc.customerOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	card, err := uc.vault.DetachCard(ctx, customerRef, cardID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, errs.Wrapf(ErrCardNotFound, "card %q", cardID)
		}
		return nil, errs.Wrap(err, "failed to remove card")
	}
	uc.logger.Info("Card removed",
		slog.String("user_id", userID.String()),
		slog.String("card_id", card.ID))
	return card, nil
}

func (uc *cardUseCaseImpl) customerOf(ctx context.Context, userID uuid.UUID) (string, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return "", errs.Wrapf(ErrCardOwnerNotFound, "user %s", userID)
		}
		return "", errs.Wrap(err, "failed to resolve user")
	}
	if err := u.CanPay(); err != nil {
		return "", errs.Mark(err, errs.ErrDomainValidation)
	}
	return u.CustomerRef(), nil
}
