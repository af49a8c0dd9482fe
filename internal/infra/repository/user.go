package repository

import (
	"context"
	"errors"

	"drive-booking/internal/domain/user"
	"drive-booking/internal/infra"
	"drive-booking/internal/infra/db"
	"drive-booking/internal/pkg/pgconv"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error) {
	const q = `
		INSERT INTO users (id, email, password_hash, name, phone, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, q,
		u.ID(),
		u.Email(),
		u.PasswordHash(),
		u.Name(),
		u.Phone(),
		u.Role().String(),
		pgconv.TimeToPgtype(u.CreatedAt()),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, dbtx db.DBTX, email string) (*shared.UserSnapshot, error) {
	const q = `
		SELECT id, email, password_hash, name, phone, role, created_at
		FROM users
		WHERE email = $1`

	var snap shared.UserSnapshot
	err := dbtx.QueryRow(ctx, q, email).Scan(
		&snap.ID,
		&snap.Email,
		&snap.PasswordHash,
		&snap.Name,
		&snap.Phone,
		&snap.Role,
		&snap.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &snap, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
