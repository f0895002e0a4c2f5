package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/internal/service"
	"github.com/mediamz/accounts/internal/store"
	"github.com/mediamz/accounts/models"
)

// listUsers returns the stored user collection in the success envelope.
//
// Pagination is opt-in: without query parameters the full collection is
// returned; with "page" and "page_size" the matching page is returned
// together with the total record count.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	page, err := queryInt(r, "page", 0)
	if err != nil {
		h.fail(w, http.StatusBadRequest, "invalid `page` parameter")
		return
	}
	pageSize, err := queryInt(r, "page_size", 10)
	if err != nil {
		h.fail(w, http.StatusBadRequest, "invalid `page_size` parameter")
		return
	}

	userPage, err := h.services.UserService.ListUsers(ctx, page, pageSize)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during listing users")
		h.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.success(w, userPage)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.fail(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	createdUser, err := h.services.UserService.CreateUser(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			h.fail(w, http.StatusBadRequest, "name and email are required")
			return
		case errors.Is(err, store.ErrUserAlreadyExists):
			log.Err(err).Msg("user name already exists")
			h.fail(w, http.StatusConflict, "user name already exists")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user creation")
			h.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
	}

	log.Debug().Int64("id", createdUser.ID).Str("name", createdUser.Name).Msg("user created")

	h.successStatus(w, createdUser, http.StatusCreated)
}

func (h *Handler) editUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.fail(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.fail(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	updatedUser, err := h.services.UserService.UpdateUser(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			h.fail(w, http.StatusBadRequest, "no valid fields to update")
			return
		case errors.Is(err, store.ErrUserNotFound):
			log.Err(err).Int64("id", userID).Msg("user not found")
			h.fail(w, http.StatusNotFound, "user not found")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user update")
			h.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
	}

	h.success(w, updatedUser)
}

// queryInt reads an optional integer query parameter, returning def when
// the parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
