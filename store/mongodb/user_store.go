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

// UserStore mengimplementasikan store.UserStore di atas koleksi users.
type UserStore struct {
	col *mongo.Collection
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: user %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("fetching user %s: %w", id, err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: user %s", store.ErrNotFound, email)
		}
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	// Cek email sudah terpakai, seperti pemeriksaan registrasi admin.
	err := s.col.FindOne(ctx, bson.M{"email": u.Email}).Err()
	if err == nil {
		return fmt.Errorf("%w: email %s", store.ErrDuplicate, u.Email)
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("checking existing user: %w", err)
	}

	u.CreatedAt = time.Now()
	result, err := s.col.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	u.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *UserStore) Update(ctx context.Context, id string, u *models.User) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	// Cek email tidak dipakai pengguna lain, seperti pemeriksaan di Create.
	err = s.col.FindOne(ctx, bson.M{"email": u.Email, "_id": bson.M{"$ne": objectID}}).Err()
	if err == nil {
		return fmt.Errorf("%w: email %s", store.ErrDuplicate, u.Email)
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("checking existing user: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"email":    u.Email,
		"name":     u.Name,
		"role":     u.Role,
		"password": u.Password,
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", store.ErrNotFound, id)
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: user %s", store.ErrNotFound, id)
	}
	return nil
}
