package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
)

var (
	_ repository.InventoryRepository   = (*Repository)(nil)
	_ repository.UserRepository        = (*Repository)(nil)
	_ repository.CertificateRepository = (*Repository)(nil)
)

func TestListInventoryFilters(t *testing.T) {
	repo := NewSeededRepository()
	ctx := context.Background()

	all, err := repo.ListInventory(ctx, models.InventoryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("len(all) = %d, want 5", len(all))
	}

	clips, err := repo.ListInventory(ctx, models.InventoryFilter{ItemType: "Elastic Rail Clip", Status: models.InspectionPassed})
	if err != nil {
		t.Fatal(err)
	}
	if len(clips) != 2 {
		t.Fatalf("len(clips) = %d, want 2", len(clips))
	}
}

func TestUserLifecycle(t *testing.T) {
	repo := NewSeededRepository()
	ctx := context.Background()

	if err := repo.CreateUser(ctx, models.User{ID: "6", Name: "Ana Ruiz", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := repo.CreateUser(ctx, models.User{ID: "6"}); err == nil {
		t.Fatal("expected duplicate id to fail")
	}

	admins, _ := repo.ListUsers(ctx, models.UserFilter{Role: models.RoleAdmin})
	if len(admins) != 1 || admins[0].Name != "Ana Ruiz" {
		t.Fatalf("admins = %+v", admins)
	}

	if err := repo.DeleteUser(ctx, "6"); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if err := repo.DeleteUser(ctx, "6"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("DeleteUser() error = %v, want ErrNotFound", err)
	}
}

func TestListCertificatesNewestFirst(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, id := range []int64{100, 300, 200} {
		if err := repo.SaveCertificate(ctx, models.Certificate{DocumentID: id}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListCertificates(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].DocumentID != 300 || got[1].DocumentID != 200 {
		t.Fatalf("ListCertificates() = %+v", got)
	}
}
