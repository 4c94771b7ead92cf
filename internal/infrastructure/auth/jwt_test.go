package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantgate/tenantgate/internal/shared/authorization"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 30)

	actor := authorization.Actor{UserID: "u-1", TenantID: 7, Role: authorization.RoleAdminTenant}
	tok, err := svc.Generate(actor)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), tok.ExpiresIn)

	claims, err := svc.Verify(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, actor, claims.Actor())
}

func TestJWTService_OperatorHasNoTenant(t *testing.T) {
	svc := NewJWTService("test-secret", 0)
	assert.Equal(t, 60, svc.AccessExpMinutes())

	tok, err := svc.Generate(authorization.Actor{UserID: "root", Role: authorization.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.Verify(tok.Token)
	require.NoError(t, err)
	assert.Zero(t, claims.TenantID)
	assert.True(t, claims.Actor().IsOperator())
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", 30)

	other, err := NewJWTService("other-secret", 30).Generate(authorization.Actor{UserID: "u-1"})
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredStr, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: authorization.RoleAdmin})
	anonymousStr, err := anonymous.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", other.Token},
		{"expired", expiredStr},
		{"no user", anonymousStr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}
