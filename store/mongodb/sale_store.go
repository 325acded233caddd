package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"xostore-backend/models"
	"xostore-backend/store"
)

// SaleStore mengimplementasikan store.SaleStore di atas koleksi sales.
type SaleStore struct {
	col *mongo.Collection
}

func (s *SaleStore) List(ctx context.Context, limit int64) ([]models.Sale, error) {
	opts := options.Find().SetSort(bson.M{"date": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("fetching sales: %w", err)
	}
	defer cursor.Close(ctx)

	var sales []models.Sale
	if err = cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decoding sales: %w", err)
	}
	return sales, nil
}

func (s *SaleStore) Get(ctx context.Context, id string) (*models.Sale, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var sale models.Sale
	err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sale)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: sale %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetching sale %s: %w", id, err)
	}
	return &sale, nil
}

func (s *SaleStore) GetByIdempotencyKey(ctx context.Context, key string) (*models.Sale, error) {
	var sale models.Sale
	err := s.col.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&sale)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: sale with idempotency key %s", store.ErrNotFound, key)
		}
		return nil, fmt.Errorf("fetching sale by idempotency key: %w", err)
	}
	return &sale, nil
}

func (s *SaleStore) Create(ctx context.Context, sale *models.Sale) error {
	result, err := s.col.InsertOne(ctx, sale)
	if err != nil {
		return fmt.Errorf("creating sale: %w", err)
	}
	sale.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *SaleStore) Update(ctx context.Context, id string, sale *models.Sale) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"product_id":   sale.ProductID,
		"product_name": sale.ProductName,
		"quantity":     sale.Quantity,
		"total_price":  sale.TotalPrice,
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("updating sale %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: sale %s", store.ErrNotFound, id)
	}
	return nil
}

func (s *SaleStore) Delete(ctx context.Context, id string) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("deleting sale %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: sale %s", store.ErrNotFound, id)
	}
	return nil
}
