package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/internal/service"
	"github.com/mediamz/accounts/internal/store"
	"github.com/mediamz/accounts/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.fail(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			h.fail(w, http.StatusBadRequest, "name and password are required")
			return
		case errors.Is(err, store.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("no user was found/wrong password")
			h.fail(w, http.StatusUnauthorized, "invalid name/password")
			return
		case errors.Is(err, service.ErrUserLocked):
			log.Err(err).Msg("locked account login attempt")
			h.fail(w, http.StatusUnauthorized, "account is locked, contact the administrator")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			h.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
	}

	log.Debug().Int64("id", foundUser.ID).Str("name", foundUser.Name).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	h.success(w, models.LoginResponse{
		AccessToken: token.SignedString,
		ID:          foundUser.ID,
		Name:        foundUser.Name,
		Email:       foundUser.Email,
		Phone:       foundUser.Phone,
	})
}
