package mocks

import (
	"context"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, username string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default response values
	Token         string
	Claims        *auth.Claims
	GenerateError error
	ValidateError error
}

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, username string) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, username)
	}

	if m.GenerateError != nil {
		return "", m.GenerateError
	}

	if m.Token != "" {
		return m.Token, nil
	}
	return "test-token-" + username, nil
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}

	if m.ValidateError != nil {
		return nil, m.ValidateError
	}

	if m.Claims != nil {
		return m.Claims, nil
	}

	// Tokens issued by the default GenerateToken round-trip.
	const prefix = "test-token-"
	if len(tokenString) > len(prefix) && tokenString[:len(prefix)] == prefix {
		now := time.Now().UTC()
		return &auth.Claims{
			Username:  tokenString[len(prefix):],
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
		}, nil
	}

	return nil, auth.ErrInvalidToken
}
