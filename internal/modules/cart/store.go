package cart

import (
	"context"
	"encoding/json"
	"time"

	"beachride/internal/domain"
)

// KV is the persistence port the store writes carts through. Production
// wires the cart_sessions table; tests use an in-memory map.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the cart for a token, or an empty cart when none exists.
func (s *Store) Load(ctx context.Context, token string) (*domain.Cart, error) {
	cart := &domain.Cart{Token: token, Items: []domain.CartItem{}}
	if token == "" {
		return cart, nil
	}

	raw, ok, err := s.kv.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return cart, nil
	}

	if err := json.Unmarshal(raw, cart); err != nil {
		// A corrupt payload is unrecoverable; start the cart over.
		return &domain.Cart{Token: token, Items: []domain.CartItem{}}, nil
	}
	cart.Token = token
	return cart, nil
}

func (s *Store) Save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now()
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, cart.Token, raw)
}

func (s *Store) Clear(ctx context.Context, token string) error {
	return s.kv.Delete(ctx, token)
}

// MemoryKV is the in-memory KV used by tests and local tooling.
type MemoryKV struct {
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
