package repository

import (
	"context"
	"fmt"
	"time"

	"hotelms/pkg/config"
	mongotx "hotelms/pkg/db/mongo"
	"hotelms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "notifications"
)

type NotificationRepository interface {
	Insert(ctx context.Context, n *model.Notification) error
	FindAll(ctx context.Context) ([]*model.Notification, error)
}

type mongoNotificationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoNotificationRepository(cfg *config.Config) NotificationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoNotificationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// Insert stores n. A repeated event id violates the unique eventId index and
// surfaces as a duplicate key error.
func (r *mongoNotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if n.Date.IsZero() {
		n.Date = time.Now().UTC()
	}
	n.Date = n.Date.Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return nil
}

func (r *mongoNotificationRepository) FindAll(ctx context.Context) ([]*model.Notification, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := make([]*model.Notification, 0)
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}
