package http

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/user"
	"github.com/speedrun-coding/backend/user/auth"
)

type UserGetter interface {
	GetUserByUUID(ctx context.Context, id uuid.UUID) (user.User, error)
}

type UserHttpHandler struct {
	userSrvc UserGetter
}

func NewUserHttpHandler(userSrvc UserGetter) *UserHttpHandler {
	return &UserHttpHandler{userSrvc: userSrvc}
}

func (h *UserHttpHandler) RegisterRoutes(r chi.Router) {
	r.With(auth.RequireAuth).Get("/users/me", h.WhoAmI)
}

type User struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}
