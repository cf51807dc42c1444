package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	roomserrors "hotelms/internal/rooms/errors"
	roomtypesrepo "hotelms/internal/roomtypes/repository"
	"hotelms/pkg/config"
	mongotx "hotelms/pkg/db/mongo"
	"hotelms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "rooms"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id string) (*model.Room, error)
	FindAll(ctx context.Context) ([]*model.RoomView, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Room, error)
	Delete(ctx context.Context, id string) error
	ClaimAvailable(ctx context.Context, id primitive.ObjectID) (*model.Room, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Room, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type mongoRoomRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomRepository(cfg *config.Config) RoomRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRoomRepository) Create(ctx context.Context, room *model.Room) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	room.CreatedAt = now
	room.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, room)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return roomserrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		room.ID = oid
	}
	return nil
}

func (r *mongoRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	var room model.Room
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, roomserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return &room, nil
}

// FindAll returns every room with its type resolved. A room whose type was
// deleted comes back with a nil type.
func (r *mongoRoomRepository) FindAll(ctx context.Context) ([]*model.RoomView, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "roomNumber", Value: 1}}}},
	}
	pipeline = append(pipeline, LookupType("type")...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := make([]*model.RoomView, 0)
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

func (r *mongoRoomRepository) UpdateStatus(ctx context.Context, id string, status string) (*model.Room, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}
	return r.SetStatus(ctx, objectID, status)
}

func (r *mongoRoomRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", roomserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	if result.DeletedCount == 0 {
		return roomserrors.ErrNotFound
	}
	return nil
}

// ClaimAvailable flips an available room to occupied in one conditional
// write, so two bookings cannot claim the same room.
func (r *mongoRoomRepository) ClaimAvailable(ctx context.Context, id primitive.ObjectID) (*model.Room, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": model.RoomStatusAvailable}
	room, err := r.setStatus(ctx, filter, model.RoomStatusOccupied)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, roomserrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to claim room: %w", err)
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to look up room: %w", err)
	}
	if count == 0 {
		return nil, roomserrors.ErrNotFound
	}
	return nil, roomserrors.ErrNotAvailable
}

func (r *mongoRoomRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Room, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	room, err := r.setStatus(ctx, bson.M{"_id": id}, status)
	if err != nil && !errors.Is(err, roomserrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to set room status: %w", err)
	}
	return room, err
}

func (r *mongoRoomRepository) setStatus(ctx context.Context, filter bson.M, status string) (*model.Room, error) {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var room model.Room
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, roomserrors.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// CountByStatus counts rooms in status, or all rooms when status is empty.
func (r *mongoRoomRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

// LookupType resolves the room type id stored at field into the full
// document, keeping rows whose type no longer exists.
func LookupType(field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: roomtypesrepo.CollectionName},
			{Key: "localField", Value: field},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: field},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + field},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// LookupRoom resolves the room id stored at field into the room document.
func LookupRoom(field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: CollectionName},
			{Key: "localField", Value: field},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: field},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + field},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
