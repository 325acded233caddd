package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation menandakan input permintaan tidak valid.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials menandakan kombinasi email/password salah.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyInitialized menandakan admin pertama sudah terdaftar.
	ErrAlreadyInitialized = errors.New("initial admin already registered")
)

// ConsistencyError menandakan protokol multi-langkah selesai sebagian: satu
// sisi mutasi sudah diterapkan tetapi sisi lainnya gagal. Keadaan ini butuh
// rekonsiliasi manual dan tidak boleh ditelan diam-diam.
type ConsistencyError struct {
	Op      string
	Applied string
	Err     error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s left inconsistent state (%s): %v", e.Op, e.Applied, e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }
