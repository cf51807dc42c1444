package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	authrepo "hotelms/internal/auth/repository"
	bookingsrepo "hotelms/internal/bookings/repository"
	"hotelms/internal/migrations/mongo/validators"
	notificationsrepo "hotelms/internal/notifications/repository"
	roomsrepo "hotelms/internal/rooms/repository"
	roomtypesrepo "hotelms/internal/roomtypes/repository"
	"hotelms/pkg/logger"
)

var (
	UsersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	RoomTypesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	RoomsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "roomNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "room", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "checkIn", Value: 1}}},
		{Keys: bson.D{{Key: "checkOut", Value: 1}}},
		{Keys: bson.D{{Key: "customerName", Value: 1}}},
	}

	// eventId is sparse so notifications written before events carried an
	// id do not collide on the missing field.
	NotificationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "eventId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	}
)

type CollectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func Collections() map[string]CollectionDef {
	return map[string]CollectionDef{
		authrepo.CollectionName: {
			Indexes:   UsersIndexes,
			Validator: validators.UserValidator,
		},
		roomtypesrepo.CollectionName: {
			Indexes:   RoomTypesIndexes,
			Validator: validators.RoomTypeValidator,
		},
		roomsrepo.CollectionName: {
			Indexes:   RoomsIndexes,
			Validator: validators.RoomValidator,
		},
		bookingsrepo.CollectionName: {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		notificationsrepo.CollectionName: {
			Indexes:   NotificationsIndexes,
			Validator: validators.NotificationValidator,
		},
	}
}

// RunMigration creates every collection with its validator and indexes. It is
// safe to run repeatedly.
func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for name, def := range Collections() {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
