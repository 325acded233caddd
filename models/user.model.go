package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role untuk pengguna aplikasi.
const (
	RoleAdmin      = "admin"
	RoleSalesStaff = "sales_staff"
)

// User mendefinisikan struktur untuk pengguna aplikasi.
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Name      string             `json:"name" bson:"name"`
	Role      string             `json:"role" bson:"role"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// LoginRequest mendefinisikan struktur untuk permintaan login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest mendefinisikan struktur untuk registrasi admin pertama.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserInput mendefinisikan struktur untuk membuat atau memperbarui pengguna.
// Password boleh kosong saat update; password lama dipertahankan.
type UserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin sales_staff"`
	Password string `json:"password"`
}
