package repository

import (
	"context"
	"fmt"
	"time"

	roomtypeserrors "hotelms/internal/roomtypes/errors"
	"hotelms/pkg/config"
	mongotx "hotelms/pkg/db/mongo"
	"hotelms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "roomtypes"
)

type RoomTypeRepository interface {
	Create(ctx context.Context, roomType *model.RoomType) error
	FindAll(ctx context.Context) ([]*model.RoomType, error)
	Delete(ctx context.Context, id string) error
}

type mongoRoomTypeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomTypeRepository(cfg *config.Config) RoomTypeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomTypeRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRoomTypeRepository) Create(ctx context.Context, roomType *model.RoomType) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	roomType.CreatedAt = now
	roomType.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, roomType)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return roomtypeserrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create room type: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		roomType.ID = oid
	}
	return nil
}

func (r *mongoRoomTypeRepository) FindAll(ctx context.Context) ([]*model.RoomType, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find room types: %w", err)
	}
	defer cursor.Close(ctx)

	roomTypes := make([]*model.RoomType, 0)
	if err = cursor.All(ctx, &roomTypes); err != nil {
		return nil, fmt.Errorf("failed to decode room types: %w", err)
	}

	for _, rt := range roomTypes {
		if rt.Features == nil {
			rt.Features = []string{}
		}
	}
	return roomTypes, nil
}

// Delete removes the type only. Rooms referencing it keep the dangling id.
func (r *mongoRoomTypeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", roomtypeserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete room type: %w", err)
	}

	if result.DeletedCount == 0 {
		return roomtypeserrors.ErrNotFound
	}
	return nil
}
