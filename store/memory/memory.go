// Package memory adalah implementasi store di dalam memori, dipakai untuk
// pengujian services tanpa MongoDB. Semantik error mengikuti store/mongodb.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"xostore-backend/models"
	"xostore-backend/store"
)

// Stores menampung semua store in-memory yang berbagi satu mutex.
type Stores struct {
	mu       sync.Mutex
	products map[string]models.Product
	sales    map[string]models.Sale
	users    map[string]models.User

	Products *ProductStore
	Sales    *SaleStore
	Users    *UserStore
}

// New membuat Stores kosong.
func New() *Stores {
	s := &Stores{
		products: make(map[string]models.Product),
		sales:    make(map[string]models.Sale),
		users:    make(map[string]models.User),
	}
	s.Products = &ProductStore{root: s}
	s.Sales = &SaleStore{root: s}
	s.Users = &UserStore{root: s}
	return s
}

// ProductStore mengimplementasikan store.ProductStore.
type ProductStore struct{ root *Stores }

func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	products := make([]models.Product, 0, len(s.root.products))
	for _, p := range s.root.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (s *ProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	p, ok := s.root.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", store.ErrNotFound, id)
	}
	return &p, nil
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.root.products[p.ID.Hex()] = *p
	return nil
}

func (s *ProductStore) Update(ctx context.Context, id string, p *models.Product) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	existing, ok := s.root.products[id]
	if !ok {
		return fmt.Errorf("%w: product %s", store.ErrNotFound, id)
	}
	existing.Name = p.Name
	existing.Price = p.Price
	existing.Cost = p.Cost
	existing.Stock = p.Stock
	existing.Image = p.Image
	existing.ImageURL = p.ImageURL
	existing.UpdatedAt = time.Now()
	s.root.products[id] = existing
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	if _, ok := s.root.products[id]; !ok {
		return fmt.Errorf("%w: product %s", store.ErrNotFound, id)
	}
	delete(s.root.products, id)
	return nil
}

func (s *ProductStore) AdjustStock(ctx context.Context, id string, delta int) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	p, ok := s.root.products[id]
	if !ok {
		return fmt.Errorf("%w: product %s", store.ErrNotFound, id)
	}
	if p.Stock+delta < 0 {
		return fmt.Errorf("%w: product %s", store.ErrInsufficientStock, id)
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	s.root.products[id] = p
	return nil
}

// SaleStore mengimplementasikan store.SaleStore.
type SaleStore struct{ root *Stores }

func (s *SaleStore) List(ctx context.Context, limit int64) ([]models.Sale, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	sales := make([]models.Sale, 0, len(s.root.sales))
	for _, sale := range s.root.sales {
		sales = append(sales, sale)
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].Date.After(sales[j].Date)
	})
	if limit > 0 && int64(len(sales)) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (s *SaleStore) Get(ctx context.Context, id string) (*models.Sale, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	sale, ok := s.root.sales[id]
	if !ok {
		return nil, fmt.Errorf("%w: sale %s", store.ErrNotFound, id)
	}
	return &sale, nil
}

func (s *SaleStore) GetByIdempotencyKey(ctx context.Context, key string) (*models.Sale, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	for _, sale := range s.root.sales {
		if sale.IdempotencyKey == key {
			return &sale, nil
		}
	}
	return nil, fmt.Errorf("%w: sale with idempotency key %s", store.ErrNotFound, key)
}

func (s *SaleStore) Create(ctx context.Context, sale *models.Sale) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	sale.ID = primitive.NewObjectID()
	s.root.sales[sale.ID.Hex()] = *sale
	return nil
}

func (s *SaleStore) Update(ctx context.Context, id string, sale *models.Sale) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	existing, ok := s.root.sales[id]
	if !ok {
		return fmt.Errorf("%w: sale %s", store.ErrNotFound, id)
	}
	existing.ProductID = sale.ProductID
	existing.ProductName = sale.ProductName
	existing.Quantity = sale.Quantity
	existing.TotalPrice = sale.TotalPrice
	s.root.sales[id] = existing
	return nil
}

func (s *SaleStore) Delete(ctx context.Context, id string) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	if _, ok := s.root.sales[id]; !ok {
		return fmt.Errorf("%w: sale %s", store.ErrNotFound, id)
	}
	delete(s.root.sales, id)
	return nil
}

// UserStore mengimplementasikan store.UserStore.
type UserStore struct{ root *Stores }

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	users := make([]models.User, 0, len(s.root.users))
	for _, u := range s.root.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	u, ok := s.root.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", store.ErrNotFound, id)
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	for _, u := range s.root.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", store.ErrNotFound, email)
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return int64(len(s.root.users)), nil
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	for _, existing := range s.root.users {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: email %s", store.ErrDuplicate, u.Email)
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	s.root.users[u.ID.Hex()] = *u
	return nil
}

func (s *UserStore) Update(ctx context.Context, id string, u *models.User) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	existing, ok := s.root.users[id]
	if !ok {
		return fmt.Errorf("%w: user %s", store.ErrNotFound, id)
	}
	for otherID, other := range s.root.users {
		if otherID != id && other.Email == u.Email {
			return fmt.Errorf("%w: email %s", store.ErrDuplicate, u.Email)
		}
	}
	existing.Email = u.Email
	existing.Name = u.Name
	existing.Role = u.Role
	existing.Password = u.Password
	s.root.users[id] = existing
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	if _, ok := s.root.users[id]; !ok {
		return fmt.Errorf("%w: user %s", store.ErrNotFound, id)
	}
	delete(s.root.users, id)
	return nil
}
