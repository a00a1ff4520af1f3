//go:build unit || e2e

package builder

import (
	"time"

	"grillbox/internal/domain/user"
	sqlc "grillbox/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID          uuid.UUID
	CustomerRef string
	FirstName   string
	LastName    string
	Email       string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:          uuid.New(),
		CustomerRef: "cus_test123",
		FirstName:   "Erika",
		LastName:    "Mustermann",
		Email:       "test@example.com",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(u.ID, u.CustomerRef, u.FirstName, u.LastName, email), nil
}

func (u *UserBuilder) BuildInfra() sqlc.Users {
	return sqlc.Users{
		ID:          u.ID,
		CustomerRef: u.CustomerRef,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		CreatedAt:   pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
}

func (u *UserBuilder) BuildGetRow() sqlc.GetUserRow {
	return sqlc.GetUserRow{
		ID:          u.ID,
		CustomerRef: u.CustomerRef,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithCustomerRef(ref string) *UserBuilder {
	u.CustomerRef = ref
	return u
}

func (u *UserBuilder) WithoutCustomer() *UserBuilder {
	u.CustomerRef = ""
	return u
}
