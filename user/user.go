package user

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/srvcerror"
)

// User is the identity a submission belongs to. Accounts are managed
// elsewhere, this service only reads them.
type User struct {
	UUID     uuid.UUID
	Username string
	Email    string
	IsStaff  bool
}

type UserRepo interface {
	GetUserByUUID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

type UserSrvc struct {
	repo UserRepo
}

func NewUserSrvc(repo UserRepo) *UserSrvc {
	return &UserSrvc{repo: repo}
}

func (s *UserSrvc) GetUserByUUID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetUserByUUID(ctx, id)
}

func (s *UserSrvc) GetUserByUsername(ctx context.Context, username string) (User, error) {
	if username == "" {
		return User{}, ErrUserNotFound()
	}
	return s.repo.GetUserByUsername(ctx, username)
}

const ErrCodeUserNotFound = "user_not_found"

func ErrUserNotFound() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUserNotFound,
		"user not found",
	).SetHttpStatusCode(http.StatusNotFound)
}
