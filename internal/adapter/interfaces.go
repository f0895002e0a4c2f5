// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating with
// the accounts server.
//
// The primary abstraction is [ServerAdapter], which decouples callers from the
// underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/mediamz/accounts/models"
)

// ServerAdapter defines transport-agnostic communication with the accounts
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called after a successful Login,
	// or with an externally issued token.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Health checks service liveness via the unauthenticated health endpoint.
	Health(ctx context.Context) error

	// Version fetches the server build version string.
	Version(ctx context.Context) (string, error)

	// Login authenticates with name and password. On success it stores the
	// returned bearer token via SetToken and returns the login response.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// ListUsers fetches a page of stored users. page=0 requests the whole
	// collection.
	ListUsers(ctx context.Context, page, pageSize int) (models.UserPage, error)

	// CreateUser registers a new user record and returns it as stored by the
	// server. Returns [ErrConflict] (wrapped) if the name is already taken.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)

	// UpdateUser applies a partial update to the user identified by id.
	// Returns [ErrNotFound] (wrapped) if no such user exists.
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
}
