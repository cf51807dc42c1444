package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "hotel_management_test"
	ConnectionTimeout   = 10 * time.Second
)

// MongoHelper reads and resets the server's database directly.
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// CleanDatabase deletes every document but keeps the collections, so the
// validators and unique indexes created at server start survive.
func (m *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.Database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("failed to list collections: %v", err)
	}

	for _, name := range collections {
		if strings.HasPrefix(name, "system.") {
			continue
		}
		if _, err := m.Database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			t.Fatalf("failed to clean collection %s: %v", name, err)
		}
	}
}

func (m *MongoHelper) CountDocuments(t *testing.T, collection string, filter bson.M) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := m.Database.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		t.Fatalf("failed to count documents in %s: %v", collection, err)
	}
	return count
}

// FindByID decodes the stored document with the given hex id into dest.
func (m *MongoHelper) FindByID(t *testing.T, collection, id string, dest any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		t.Fatalf("invalid id %q: %v", id, err)
	}
	if err := m.Database.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(dest); err != nil {
		t.Fatalf("failed to load %s/%s: %v", collection, id, err)
	}
}
