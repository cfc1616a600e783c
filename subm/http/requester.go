package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/speedrun-coding/backend/srvcerror"
	"github.com/speedrun-coding/backend/user/auth"
)

type requester struct {
	UUID     uuid.UUID
	Username string
	IsStaff  bool
}

func getRequester(r *http.Request) (requester, error) {
	claims := auth.ClaimsFromCtx(r.Context())
	if claims == nil {
		return requester{}, srvcerror.ErrUnauthorized()
	}
	id, err := claims.UserUUID()
	if err != nil {
		return requester{}, srvcerror.ErrUnauthorized().SetDebug(err)
	}
	return requester{UUID: id, Username: claims.Username, IsStaff: claims.IsStaff}, nil
}
