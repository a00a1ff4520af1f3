package repository

import (
	"context"

	"grillbox/internal/domain/user"
	"grillbox/internal/infra"
	"grillbox/internal/infra/repository/converter"
	sqlc "grillbox/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetUser(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetUserRow, error)
}

// UserRepository is read-only: accounts are managed by another service.
type UserRepository struct {
	queries UserQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries *sqlc.Queries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row, err := r.queries.GetUser(ctx, r.db, id)
	if err != nil {
		return nil, infra.NotFoundOr("failed to find user by ID", err)
	}

	u, err := converter.UserToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid stored user", err)
	}
	return u, nil
}
