package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/mediamz/accounts/internal/config"
	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/internal/store"
	"github.com/mediamz/accounts/internal/utils"
	"github.com/mediamz/accounts/models"
)

// authService is the concrete implementation of AuthService.
// It handles credential verification and the JWT token lifecycle using a
// UserRepository for persistence and PBKDF2-SHA256 for password checks.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// skipAuthToken is the configured development bypass value; the empty
	// string disables the bypass entirely.
	skipAuthToken string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		skipAuthToken:  cfg.SkipAuthToken,
		logger:         logger,
	}
}

// Login authenticates an existing user by name and password.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Name or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrUserNotFound).
//   - ErrUserLocked if the account is locked.
//   - ErrWrongPassword if the account has no password set or the password
//     does not verify.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" || req.Password == "" {
		log.Error().Str("name", req.Name).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByName(ctx, req.Name)
	if err != nil {
		log.Err(err).Str("name", req.Name).Msg("user search by name failed")
		return models.User{}, fmt.Errorf("user search by name failed: %w", err)
	}

	if foundUser.Locked {
		log.Warn().Int64("id", foundUser.ID).Str("name", foundUser.Name).Msg("locked account login attempt")
		return models.User{}, ErrUserLocked
	}

	if foundUser.PasswordHash == "" {
		// account was created without credentials
		return models.User{}, ErrWrongPassword
	}

	ok, err := utils.VerifyPassword(req.Password, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Int64("id", foundUser.ID).Msg("stored password hash is unreadable")
		return models.User{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		log.Warn().Int64("id", foundUser.ID).Str("name", foundUser.Name).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// VerifySkipAuth implements the development bypass: it returns true only
// when a bypass token is configured and headerValue matches it exactly.
// The comparison is constant-time.
func (a *authService) VerifySkipAuth(headerValue string) bool {
	if a.skipAuthToken == "" || headerValue == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(a.skipAuthToken), []byte(headerValue)) == 1
}
