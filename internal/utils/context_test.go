package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(42))

	userID, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), userID)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Zero(t, userID)
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "42")

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
}

func TestIsSkipAuthRequest(t *testing.T) {
	assert.False(t, IsSkipAuthRequest(context.Background()))

	ctx := context.WithValue(context.Background(), SkipAuthCtxKey, true)
	assert.True(t, IsSkipAuthRequest(ctx))

	ctx = context.WithValue(context.Background(), SkipAuthCtxKey, false)
	assert.False(t, IsSkipAuthRequest(ctx))
}
