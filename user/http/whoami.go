package http

import (
	"net/http"

	"github.com/speedrun-coding/backend/httpjson"
	"github.com/speedrun-coding/backend/logger"
	"github.com/speedrun-coding/backend/srvcerror"
	"github.com/speedrun-coding/backend/user/auth"
)

func (h *UserHttpHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	claims := auth.ClaimsFromCtx(r.Context())
	if claims == nil {
		httpjson.HandleError(log, w, srvcerror.ErrUnauthorized())
		return
	}

	id, err := claims.UserUUID()
	if err != nil {
		httpjson.HandleError(log, w, srvcerror.ErrUnauthorized().SetDebug(err))
		return
	}

	u, err := h.userSrvc.GetUserByUUID(r.Context(), id)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, User{
		UUID:     u.UUID.String(),
		Username: u.Username,
		Email:    u.Email,
		IsStaff:  u.IsStaff,
	})
}
