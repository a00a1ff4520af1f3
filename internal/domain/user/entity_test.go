//go:build unit

package user_test

import (
	"testing"

	"grillbox/internal/domain/user"
	"grillbox/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success", func(t *testing.T) {
		b := builder.NewUserBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		email, _ := user.NewEmail("test@example.com")
		expected := user.ReconstructUser(b.ID, "cus_test123", "Erika", "Mustermann", email)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.Equal(t, b.ID, actual.ID())
		assert.Equal(t, "Erika Mustermann", actual.DisplayName())
		assert.Equal(t, "test@example.com", actual.Email().Value())
		assert.NoError(t, actual.CanPay())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email OK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "surrounding spaces trimmed OK",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("  valid@example.com ") },
			},
			{
				name:   "empty email NG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "invalid format NG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing @ NG",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("payment customer", func(t *testing.T) {
		u, err := builder.NewUserBuilder().WithoutCustomer().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, u.CanPay(), user.ErrMissingCustomerRef)

		u, err = builder.NewUserBuilder().WithCustomerRef("   ").BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, u.CanPay(), user.ErrMissingCustomerRef)
	})

	t.Run("display name without last name", func(t *testing.T) {
		u, err := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.LastName = "" }).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Erika", u.DisplayName())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {

			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
