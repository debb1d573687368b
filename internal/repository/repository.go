package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/railfit/internal/domain/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// InventoryRepository reads registered track fittings.
type InventoryRepository interface {
	ListInventory(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, error)
}

// UserRepository manages dashboard users.
type UserRepository interface {
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// CertificateRepository keeps the register of issued certificates.
type CertificateRepository interface {
	SaveCertificate(ctx context.Context, cert models.Certificate) error
	ListCertificates(ctx context.Context, limit int) ([]models.Certificate, error)
}
