package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"golang.org/x/crypto/bcrypt"

	"xostore-backend/models"
	"xostore-backend/store"
)

const (
	tokenFooter   = "xostore"
	tokenLifetime = 24 * time.Hour
)

// TokenClaims berisi identitas yang dibawa token sesi.
type TokenClaims struct {
	UserID string
	Role   string
}

// AuthService menangani login dan token sesi PASETO.
// Token bersifat stateless; sign-out cukup membuang token di sisi klien.
type AuthService struct {
	users     store.UserStore
	secretKey []byte
	now       func() time.Time
}

// NewAuthService membuat AuthService baru. secretKey harus 32 byte.
func NewAuthService(users store.UserStore, secretKey []byte) *AuthService {
	return &AuthService{users: users, secretKey: secretKey, now: time.Now}
}

// SignIn memverifikasi kredensial dan mengembalikan pengguna beserta token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken menerbitkan token sesi 24 jam untuk pengguna.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	jsonToken := paseto.JSONToken{
		Subject:    user.ID.Hex(),
		IssuedAt:   now,
		Expiration: now.Add(tokenLifetime),
	}
	jsonToken.Set("role", user.Role)

	token, err := paseto.NewV2().Encrypt(s.secretKey, jsonToken, tokenFooter)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}

// VerifyToken mendekripsi dan memvalidasi token sesi.
func (s *AuthService) VerifyToken(token string) (*TokenClaims, error) {
	var jsonToken paseto.JSONToken
	var footer string
	if err := paseto.NewV2().Decrypt(token, s.secretKey, &jsonToken, &footer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if err := jsonToken.Validate(paseto.ValidAt(s.now())); err != nil {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidCredentials)
	}

	return &TokenClaims{
		UserID: jsonToken.Subject,
		Role:   jsonToken.Get("role"),
	}, nil
}

// CurrentUser mengembalikan pengguna untuk subject token yang sudah terverifikasi.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.Get(ctx, userID)
}
