package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale mendefinisikan struktur untuk catatan penjualan.
// ProductName dan TotalPrice adalah snapshot historis saat penjualan terjadi;
// perubahan harga produk di kemudian hari tidak mengubah penjualan lama.
type Sale struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Reference      string             `json:"reference" bson:"reference"`
	ProductID      primitive.ObjectID `json:"product_id" bson:"product_id"`
	ProductName    string             `json:"product_name" bson:"product_name"`
	Quantity       int                `json:"quantity" bson:"quantity"`
	TotalPrice     float64            `json:"total_price" bson:"total_price"`
	Date           time.Time          `json:"date" bson:"date"`
	UserID         string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	IdempotencyKey string             `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
}

// RecordSaleRequest mendefinisikan struktur untuk permintaan pencatatan penjualan.
// IdempotencyKey opsional; kunci yang sama tidak akan dicatat dua kali.
type RecordSaleRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,gt=0"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// UpdateSaleRequest mendefinisikan struktur untuk permintaan perubahan penjualan.
type UpdateSaleRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}
