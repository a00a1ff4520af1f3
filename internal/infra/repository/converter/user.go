package converter

import (
	"grillbox/internal/domain/user"
	sqlc "grillbox/internal/infra/sqlc/generated"
)

func UserToDomain(row sqlc.GetUserRow) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(row.ID, row.CustomerRef, row.FirstName, row.LastName, email), nil
}
