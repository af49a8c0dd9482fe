package commands

import (
	"context"

	"drive-booking/internal/domain/user"
	"drive-booking/internal/infra"
	"drive-booking/internal/pkg/errs"
	"drive-booking/internal/pkg/jwt"
	"drive-booking/internal/pkg/password"
	"drive-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errs.New("invalid email or password")

type LoginResult struct {
	Token  string
	UserID uuid.UUID
	Email  string
	Name   string
	Role   user.Role
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authUseCaseImpl struct {
	uow shared.UnitOfWork
	jwt *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AuthCommands {
	return &authUseCaseImpl{uow: uow, jwt: jwtService}
}

func (uc *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	snap, err := uc.uow.CommandReads().UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseFailed)
	}

	if err := password.Compare(snap.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role := user.Role(snap.Role)
	token, err := uc.jwt.GenerateToken(snap.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{
		Token:  token,
		UserID: snap.ID,
		Email:  snap.Email,
		Name:   snap.Name,
		Role:   role,
	}, nil
}
