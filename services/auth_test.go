package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"xostore-backend/models"
	"xostore-backend/services"
	"xostore-backend/store/memory"
)

var testSecretKey = []byte("0123456789abcdef0123456789abcdef")

func seedUser(t *testing.T, stores *memory.Stores, email, password, role string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Email: email, Name: "Test User", Role: role, Password: string(hashed)}
	require.NoError(t, stores.Users.Create(context.Background(), user))
	return user
}

func TestSignIn_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	stores := memory.New()
	svc := services.NewAuthService(stores.Users, testSecretKey)

	seedUser(t, stores, "manager@xo.com", "secret123", models.RoleAdmin)

	user, token, err := svc.SignIn(ctx, "manager@xo.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestSignIn_WrongPassword(t *testing.T) {
	stores := memory.New()
	svc := services.NewAuthService(stores.Users, testSecretKey)

	seedUser(t, stores, "manager@xo.com", "secret123", models.RoleAdmin)

	_, _, err := svc.SignIn(context.Background(), "manager@xo.com", "wrong")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	stores := memory.New()
	svc := services.NewAuthService(stores.Users, testSecretKey)

	_, _, err := svc.SignIn(context.Background(), "nobody@xo.com", "secret123")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestVerifyToken_Garbage(t *testing.T) {
	stores := memory.New()
	svc := services.NewAuthService(stores.Users, testSecretKey)

	_, err := svc.VerifyToken("not-a-token")
	require.Error(t, err)
}
