package bookstore

import (
	"errors"
	"net/http"

	"github.com/kmarval/bookstore-inventory/core"
	"github.com/kmarval/bookstore-inventory/pkg/router"
)

type AuthHandler struct {
	auth *core.Authenticator
}

func NewAuthHandler(auth *core.Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Jwt string `json:"jwt"`
}

// LoginHandler is the only operation that accepts raw passwords. A missing
// user and a wrong password produce the same response so usernames cannot be
// enumerated.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) error {
	var payload LoginPayload
	if err := decodeJson(r.Body, &payload); err != nil {
		return err
	}
	defer r.Body.Close()

	if err := validateBody(payload); err != nil {
		return err
	}

	session, err := h.auth.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, core.ErrBadCredentials) {
			return router.NewJsonError(http.StatusUnauthorized, "Incorrect username or password")
		}
		return err
	}

	return writeJson(w, LoginResponse{Jwt: session.Token})
}
