// Package mongodb mengimplementasikan kontrak store di atas MongoDB.
// Setiap operasi adalah satu panggilan per dokumen; driver menjamin atomisitas
// per dokumen, tidak ada transaksi multi-dokumen yang dipakai di sini.
package mongodb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"xostore-backend/store"
)

const (
	productsCollection = "products"
	salesCollection    = "sales"
	usersCollection    = "users"
)

// Stores menampung semua implementasi store berbasis MongoDB.
type Stores struct {
	Products *ProductStore
	Sales    *SaleStore
	Users    *UserStore
}

// New membuat Stores dari database yang sudah terhubung.
func New(db *mongo.Database) *Stores {
	return &Stores{
		Products: &ProductStore{col: db.Collection(productsCollection)},
		Sales:    &SaleStore{col: db.Collection(salesCollection)},
		Users:    &UserStore{col: db.Collection(usersCollection)},
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", store.ErrNotFound, id)
	}
	return objectID, nil
}
