package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"xostore-backend/models"
	"xostore-backend/store"
)

// UserService mengelola pengguna aplikasi.
type UserService struct {
	users store.UserStore
}

// NewUserService membuat UserService baru.
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// List mengembalikan semua pengguna.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// RegisterFirstAdmin membuat admin pertama. Hanya berlaku selama koleksi
// pengguna masih kosong; setelah itu pembuatan pengguna lewat admin.
func (s *UserService) RegisterFirstAdmin(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyInitialized
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Role:     models.RoleAdmin,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Create membuat pengguna baru. Password wajib diisi.
func (s *UserService) Create(ctx context.Context, input models.UserInput) (*models.User, error) {
	if input.Role != models.RoleAdmin && input.Role != models.RoleSalesStaff {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:    input.Email,
		Name:     input.Name,
		Role:     input.Role,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update memperbarui pengguna. Password kosong mempertahankan password lama.
func (s *UserService) Update(ctx context.Context, id string, input models.UserInput) (*models.User, error) {
	if input.Role != models.RoleAdmin && input.Role != models.RoleSalesStaff {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}

	existing, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	password := existing.Password
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		password = string(hashed)
	}

	updated := &models.User{
		Email:    input.Email,
		Name:     input.Name,
		Role:     input.Role,
		Password: password,
	}
	if err := s.users.Update(ctx, id, updated); err != nil {
		return nil, err
	}
	return s.users.Get(ctx, id)
}

// Delete menghapus pengguna. Pengguna tidak boleh menghapus dirinya sendiri.
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return fmt.Errorf("%w: cannot delete your own account", ErrValidation)
	}
	return s.users.Delete(ctx, id)
}
