package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"xostore-backend/models"
	"xostore-backend/store"
)

// ProductStore mengimplementasikan store.ProductStore di atas koleksi products.
type ProductStore struct {
	col *mongo.Collection
}

func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: product %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetching product %s: %w", id, err)
	}
	return &product, nil
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	result, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	p.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *ProductStore) Update(ctx context.Context, id string, p *models.Product) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":       p.Name,
		"price":      p.Price,
		"cost":       p.Cost,
		"stock":      p.Stock,
		"image":      p.Image,
		"image_url":  p.ImageURL,
		"updated_at": time.Now(),
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("updating product %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: product %s", store.ErrNotFound, id)
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: product %s", store.ErrNotFound, id)
	}
	return nil
}

// AdjustStock menerapkan delta stok dalam satu update atomik. Untuk delta
// negatif, filter stok >= -delta memastikan stok tidak pernah turun di bawah
// nol bahkan saat dua permintaan berlomba pada produk yang sama.
func (s *ProductStore) AdjustStock(ctx context.Context, id string, delta int) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": objectID}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("adjusting stock of product %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Bedakan produk hilang dari stok kurang.
		count, err := s.col.CountDocuments(ctx, bson.M{"_id": objectID})
		if err != nil {
			return fmt.Errorf("adjusting stock of product %s: %w", id, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: product %s", store.ErrNotFound, id)
		}
		return fmt.Errorf("%w: product %s", store.ErrInsufficientStock, id)
	}
	return nil
}
