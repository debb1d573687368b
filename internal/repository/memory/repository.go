package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
)

// Repository is a process-local store used for development and tests.
type Repository struct {
	mu           sync.RWMutex
	inventory    []models.InventoryItem
	users        []models.User
	certificates []models.Certificate
}

// NewRepository builds an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// NewSeededRepository builds a repository pre-filled with the demo dataset.
func NewSeededRepository() *Repository {
	r := NewRepository()
	r.inventory = append(r.inventory, DemoInventory()...)
	r.users = append(r.users, DemoUsers()...)
	return r
}

// AddInventory appends items to the store.
func (r *Repository) AddInventory(items ...models.InventoryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inventory = append(r.inventory, items...)
}

// ListInventory returns the items matching the filter in insertion order.
func (r *Repository) ListInventory(_ context.Context, filter models.InventoryFilter) ([]models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.InventoryItem, 0, len(r.inventory))
	for _, item := range r.inventory {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// ListUsers returns the users matching the filter in insertion order.
func (r *Repository) ListUsers(_ context.Context, filter models.UserFilter) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if filter.Matches(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

// CreateUser stores a new user. IDs must be unique.
func (r *Repository) CreateUser(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID == user.ID {
			return fmt.Errorf("user %s already exists", user.ID)
		}
	}
	r.users = append(r.users, user)
	return nil
}

// DeleteUser removes the user with the given id.
func (r *Repository) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// SaveCertificate appends an entry to the register.
func (r *Repository) SaveCertificate(_ context.Context, cert models.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.certificates = append(r.certificates, cert)
	return nil
}

// ListCertificates returns up to limit entries, newest first. A non-positive limit returns all.
func (r *Repository) ListCertificates(_ context.Context, limit int) ([]models.Certificate, error) {
	r.mu.RLock()
	out := make([]models.Certificate, len(r.certificates))
	copy(out, r.certificates)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].DocumentID > out[j].DocumentID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
