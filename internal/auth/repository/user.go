package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	autherrors "hotelms/internal/auth/errors"
	"hotelms/pkg/config"
	mongotx "hotelms/pkg/db/mongo"
	"hotelms/pkg/model"
	"hotelms/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "users"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	user.Email = sanitizer.NormalizeEmail(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return autherrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindByEmail returns the user including the password hash.
func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": sanitizer.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, autherrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// FindByID returns the user without the password hash.
func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", autherrors.ErrInvalidID, id)
	}

	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var user model.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, autherrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
