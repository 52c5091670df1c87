package handler

import (
	"errors"
	"net/http"

	"github.com/stockroom/stockroom-go/internal/model"
	"github.com/stockroom/stockroom-go/internal/service"
)

// AuthHandler handles sign-in requests.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignIn handles POST /auth requests.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	resp, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
