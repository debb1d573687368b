package mongodb

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
)

const (
	inventoryCollection   = "inventory"
	usersCollection       = "users"
	certificateCollection = "certificates"
)

// MongoDBRepository implements the repository interfaces for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Seed inserts the given records into empty collections only.
func (r *MongoDBRepository) Seed(ctx context.Context, items []models.InventoryItem, users []models.User) error {
	inv := r.db.Collection(inventoryCollection)
	count, err := inv.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("count inventory: %w", err)
	}
	if count == 0 && len(items) > 0 {
		docs := make([]interface{}, 0, len(items))
		for _, item := range items {
			docs = append(docs, item)
		}
		if _, err := inv.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
	}

	usersColl := r.db.Collection(usersCollection)
	count, err = usersColl.EstimatedDocumentCount(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count == 0 && len(users) > 0 {
		docs := make([]interface{}, 0, len(users))
		for _, u := range users {
			docs = append(docs, u)
		}
		if _, err := usersColl.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	return nil
}

// ListInventory returns the items matching the filter.
func (r *MongoDBRepository) ListInventory(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, error) {
	cursor, err := r.db.Collection(inventoryCollection).Find(ctx, inventoryQuery(filter),
		options.Find().SetSort(bson.D{{Key: "qr_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find inventory: %w", err)
	}

	items := []models.InventoryItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return items, nil
}

// ListUsers returns the users matching the filter.
func (r *MongoDBRepository) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	cursor, err := r.db.Collection(usersCollection).Find(ctx, userQuery(filter),
		options.Find().SetSort(bson.D{{Key: "join_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a new user document.
func (r *MongoDBRepository) CreateUser(ctx context.Context, user models.User) error {
	if _, err := r.db.Collection(usersCollection).InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// DeleteUser removes a user document by id.
func (r *MongoDBRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SaveCertificate saves a register entry to the database.
func (r *MongoDBRepository) SaveCertificate(ctx context.Context, cert models.Certificate) error {
	if _, err := r.db.Collection(certificateCollection).InsertOne(ctx, cert); err != nil {
		return fmt.Errorf("failed to insert certificate: %w", err)
	}
	return nil
}

// ListCertificates returns up to limit entries, newest first.
func (r *MongoDBRepository) ListCertificates(ctx context.Context, limit int) ([]models.Certificate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.db.Collection(certificateCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find certificates: %w", err)
	}

	certs := []models.Certificate{}
	if err := cursor.All(ctx, &certs); err != nil {
		return nil, fmt.Errorf("decode certificates: %w", err)
	}
	return certs, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func inventoryQuery(filter models.InventoryFilter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query["$or"] = bson.A{
			bson.M{"qr_id": pattern},
			bson.M{"vendor": pattern},
			bson.M{"lot_number": pattern},
		}
	}
	if filter.Vendor != "" {
		query["vendor"] = filter.Vendor
	}
	if filter.ItemType != "" {
		query["item_type"] = filter.ItemType
	}
	if filter.Status != "" {
		query["inspection_status"] = string(filter.Status)
	}
	return query
}

func userQuery(filter models.UserFilter) bson.M {
	query := bson.M{}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"company": pattern},
		}
	}
	if filter.Role != "" {
		query["role"] = string(filter.Role)
	}
	return query
}

func containsPattern(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
}
