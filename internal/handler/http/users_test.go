package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/internal/service"
	"github.com/mediamz/accounts/internal/store"
	"github.com/mediamz/accounts/models"
)

// fakeUserService is a function-field implementation of service.UserService.
type fakeUserService struct {
	createUserFn func(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	listUsersFn  func(ctx context.Context, page, pageSize int) (models.UserPage, error)
	updateUserFn func(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
}

func (f *fakeUserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	return f.createUserFn(ctx, req)
}

func (f *fakeUserService) ListUsers(ctx context.Context, page, pageSize int) (models.UserPage, error) {
	return f.listUsersFn(ctx, page, pageSize)
}

func (f *fakeUserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	return f.updateUserFn(ctx, id, patch)
}

func newHandlerWithUserService(userSvc service.UserService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			UserService: userSvc,
		},
	}
}

// resp payloads come back as map[string]any after the envelope round-trip
func respAsMap(t *testing.T, envelope models.Response) map[string]any {
	t.Helper()
	m, ok := envelope.Resp.(map[string]any)
	require.True(t, ok, "expected object resp, got %T", envelope.Resp)
	return m
}

// ---- listUsers ----

func TestListUsers_Success(t *testing.T) {
	userSvc := &fakeUserService{
		listUsersFn: func(_ context.Context, page, pageSize int) (models.UserPage, error) {
			assert.Zero(t, page)
			assert.Equal(t, 10, pageSize)
			return models.UserPage{
				List: []models.User{
					{ID: 1, Name: "alice", Email: "alice@example.com", CreatedAt: time.Now()},
					{ID: 2, Name: "bob", Email: "bob@example.com", CreatedAt: time.Now()},
				},
				Page:       1,
				TotalCount: 2,
			}, nil
		},
	}
	h := newHandlerWithUserService(userSvc)

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	rr := httptest.NewRecorder()
	h.listUsers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	envelope := decodeEnvelope(t, rr)
	assert.Equal(t, models.CodeSuccess, envelope.Code)
	assert.Equal(t, "success", envelope.Msg)

	page := respAsMap(t, envelope)
	assert.Equal(t, float64(2), page["total_count"])
	list, ok := page["list"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestListUsers_QueryParamsForwarded(t *testing.T) {
	userSvc := &fakeUserService{
		listUsersFn: func(_ context.Context, page, pageSize int) (models.UserPage, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, pageSize)
			return models.UserPage{Page: 2, TotalCount: 11}, nil
		},
	}
	h := newHandlerWithUserService(userSvc)

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/users?page=2&page_size=5", nil))
	rr := httptest.NewRecorder()
	h.listUsers(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListUsers_InvalidQueryParams(t *testing.T) {
	h := newHandlerWithUserService(&fakeUserService{})

	tests := []struct {
		name   string
		target string
	}{
		{name: "bad page", target: "/api/users?page=abc"},
		{name: "bad page_size", target: "/api/users?page=1&page_size=xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := injectNopLogger(httptest.NewRequest(http.MethodGet, tt.target, nil))
			rr := httptest.NewRecorder()
			h.listUsers(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, models.CodeFail, decodeEnvelope(t, rr).Code)
		})
	}
}

func TestListUsers_ServiceFailure(t *testing.T) {
	userSvc := &fakeUserService{
		listUsersFn: func(_ context.Context, _, _ int) (models.UserPage, error) {
			return models.UserPage{}, assert.AnError
		},
	}
	h := newHandlerWithUserService(userSvc)

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/api/users", nil))
	rr := httptest.NewRecorder()
	h.listUsers(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, models.CodeFail, decodeEnvelope(t, rr).Code)
}

// ---- createUser ----

func TestCreateUser_Created(t *testing.T) {
	userSvc := &fakeUserService{
		createUserFn: func(_ context.Context, req models.CreateUserRequest) (models.User, error) {
			assert.Equal(t, "alice", req.Name)
			assert.Equal(t, "alice@example.com", req.Email)
			return models.User{ID: 1, Name: req.Name, Email: req.Email, CreatedAt: time.Now()}, nil
		},
	}
	h := newHandlerWithUserService(userSvc)

	body := `{"name":"alice","email":"alice@example.com"}`
	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body)))
	rr := httptest.NewRecorder()
	h.createUser(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	envelope := decodeEnvelope(t, rr)
	assert.Equal(t, models.CodeSuccess, envelope.Code)

	user := respAsMap(t, envelope)
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "alice", user["name"])
	assert.NotContains(t, rr.Body.String(), "password_hash")
}

func TestCreateUser_InvalidJSON(t *testing.T) {
	h := newHandlerWithUserService(&fakeUserService{})

	req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{not json")))
	rr := httptest.NewRecorder()
	h.createUser(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid JSON was passed", decodeEnvelope(t, rr).Msg)
}

func TestCreateUser_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation failure, 400",
			serviceErr: service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "name and email are required",
		},
		{
			name:       "duplicate name, 409",
			serviceErr: store.ErrUserAlreadyExists,
			wantStatus: http.StatusConflict,
			wantMsg:    "user name already exists",
		},
		{
			name:       "unexpected error, 500",
			serviceErr: assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userSvc := &fakeUserService{
				createUserFn: func(_ context.Context, _ models.CreateUserRequest) (models.User, error) {
					return models.User{}, tt.serviceErr
				},
			}
			h := newHandlerWithUserService(userSvc)

			body := `{"name":"alice","email":"alice@example.com"}`
			req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body)))
			rr := httptest.NewRecorder()
			h.createUser(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)

			envelope := decodeEnvelope(t, rr)
			assert.Equal(t, models.CodeFail, envelope.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, envelope.Msg)
			}
		})
	}
}

// ---- editUser ----

func editUserRequest(t *testing.T, userID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID, strings.NewReader(body))
	req = injectNopLogger(req)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", userID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestEditUser_Success(t *testing.T) {
	userSvc := &fakeUserService{
		updateUserFn: func(_ context.Context, id int64, patch models.UserPatch) (models.User, error) {
			assert.Equal(t, int64(5), id)
			require.NotNil(t, patch.Email)
			return models.User{ID: id, Name: "carol", Email: *patch.Email, CreatedAt: time.Now()}, nil
		},
	}
	h := newHandlerWithUserService(userSvc)

	rr := httptest.NewRecorder()
	h.editUser(rr, editUserRequest(t, "5", `{"email":"new@example.com"}`))

	require.Equal(t, http.StatusOK, rr.Code)

	user := respAsMap(t, decodeEnvelope(t, rr))
	assert.Equal(t, "new@example.com", user["email"])
}

func TestEditUser_InvalidID(t *testing.T) {
	h := newHandlerWithUserService(&fakeUserService{})

	rr := httptest.NewRecorder()
	h.editUser(rr, editUserRequest(t, "abc", `{"email":"new@example.com"}`))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid user id", decodeEnvelope(t, rr).Msg)
}

func TestEditUser_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "empty patch, 400", serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "unknown user, 404", serviceErr: store.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "unexpected error, 500", serviceErr: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userSvc := &fakeUserService{
				updateUserFn: func(_ context.Context, _ int64, _ models.UserPatch) (models.User, error) {
					return models.User{}, tt.serviceErr
				},
			}
			h := newHandlerWithUserService(userSvc)

			rr := httptest.NewRecorder()
			h.editUser(rr, editUserRequest(t, "5", `{"email":"new@example.com"}`))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ---- envelope JSON round-trip sanity ----

func TestSuccessEnvelope_Shape(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	rr := httptest.NewRecorder()
	h.success(rr, map[string]string{"status": "ok"})

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Contains(t, raw, "code")
	assert.Contains(t, raw, "msg")
	assert.Contains(t, raw, "resp")
}

func TestFailEnvelope_OmitsResp(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	rr := httptest.NewRecorder()
	h.fail(rr, http.StatusBadRequest, "bad input")

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "resp")
}
