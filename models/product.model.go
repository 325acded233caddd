package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product mendefinisikan struktur untuk produk di inventaris.
// Stock tidak boleh negatif setelah operasi apa pun berhasil.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Cost        float64            `json:"cost" bson:"cost"`
	Stock       int                `json:"stock" bson:"stock"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
	ImageBase64 string             `json:"image_base64,omitempty" bson:"-"`
}

// ProductInput mendefinisikan struktur untuk membuat atau memperbarui produk.
type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Cost        *float64 `json:"cost" binding:"required"`
	Stock       *int     `json:"stock" binding:"required"`
	ImageBase64 string   `json:"image_base64,omitempty"`
}
