package user

import (
	"strings"

	"github.com/google/uuid"
)

// User is read-only for the booking workflow; accounts are managed elsewhere.
type User struct {
	id          uuid.UUID
	customerRef string
	firstName   string
	lastName    string
	email       Email
}

func ReconstructUser(id uuid.UUID, customerRef, firstName, lastName string, email Email) *User {
	return &User{
		id:          id,
		customerRef: customerRef,
		firstName:   firstName,
		lastName:    lastName,
		email:       email,
	}
}

// CanPay reports whether the user has a payment customer at the processor.
func (u *User) CanPay() error {
	if strings.TrimSpace(u.customerRef) == "" {
		return ErrMissingCustomerRef
	}
	return nil
}

func (u *User) DisplayName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

func (u *User) ID() uuid.UUID       { return u.id }
func (u *User) CustomerRef() string { return u.customerRef }
func (u *User) FirstName() string   { return u.firstName }
func (u *User) LastName() string    { return u.lastName }
func (u *User) Email() Email        { return u.email }
