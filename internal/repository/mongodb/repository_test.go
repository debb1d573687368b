package mongodb

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
)

var (
	_ repository.InventoryRepository   = (*MongoDBRepository)(nil)
	_ repository.UserRepository        = (*MongoDBRepository)(nil)
	_ repository.CertificateRepository = (*MongoDBRepository)(nil)
)

func TestInventoryQuery(t *testing.T) {
	q := inventoryQuery(models.InventoryFilter{Search: "lot.1", Vendor: "SteelRail Corp", Status: models.InspectionFailed})

	if q["vendor"] != "SteelRail Corp" {
		t.Fatalf("vendor = %v", q["vendor"])
	}
	if q["inspection_status"] != "failed" {
		t.Fatalf("inspection_status = %v", q["inspection_status"])
	}
	if _, ok := q["item_type"]; ok {
		t.Fatal("item_type should be absent for an empty filter")
	}

	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("$or = %#v", q["$or"])
	}
	clause := or[0].(bson.M)["qr_id"].(bson.M)
	if clause["$regex"] != `lot\.1` {
		t.Fatalf("$regex = %v, want escaped term", clause["$regex"])
	}
	if clause["$options"] != "i" {
		t.Fatalf("$options = %v, want i", clause["$options"])
	}
}

func TestUserQueryEmpty(t *testing.T) {
	if q := userQuery(models.UserFilter{}); len(q) != 0 {
		t.Fatalf("userQuery() = %v, want empty", q)
	}
	if q := userQuery(models.UserFilter{Role: models.RoleAdmin}); q["role"] != "admin" {
		t.Fatalf("role = %v, want admin", q["role"])
	}
}
