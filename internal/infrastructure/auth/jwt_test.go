package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/shared/authorization"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	service := NewJWTService("test-secret", 15)

	t.Run("round trip preserves identity claims", func(t *testing.T) {
		token, err := service.Generate(7, authorization.RoleOperator)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, authorization.RoleOperator, claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("wrong secret fails verification", func(t *testing.T) {
		token, err := NewJWTService("other-secret", 15).Generate(7, authorization.RoleUser)
		require.NoError(t, err)

		_, err = service.Verify(token)
		require.Error(t, err)
	})

	t.Run("expired token fails verification", func(t *testing.T) {
		token, err := NewJWTService("test-secret", -1).Generate(7, authorization.RoleUser)
		require.NoError(t, err)

		_, err = service.Verify(token)
		require.Error(t, err)
	})

	t.Run("garbage token fails verification", func(t *testing.T) {
		_, err := service.Verify("not.a.token")
		require.Error(t, err)
	})
}
