package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	bookingserrors "hotelms/internal/bookings/errors"
	roomsrepo "hotelms/internal/rooms/repository"
	"hotelms/pkg/config"
	mongotx "hotelms/pkg/db/mongo"
	"hotelms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "bookings"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindViewByID(ctx context.Context, id primitive.ObjectID) (*model.BookingView, error)
	FindAll(ctx context.Context) ([]*model.BookingView, error)
	SetStatus(ctx context.Context, id string, status string) (*model.Booking, error)
	UpdatePayment(ctx context.Context, id string, change PaymentChange) (*model.Booking, error)
	Search(ctx context.Context, query string) ([]*model.BookingView, error)
	FindInvoice(ctx context.Context, id string) (*model.InvoiceBooking, error)
	CountCheckInBetween(ctx context.Context, from, to time.Time) (int64, error)
	FindAfter(ctx context.Context, field string, after time.Time) ([]*model.BookingView, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.MongoTransactions),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindViewByID(ctx context.Context, id primitive.ObjectID) (*model.BookingView, error) {
	views, err := r.aggregateViews(ctx, bson.M{"_id": id}, nil)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, bookingserrors.ErrNotFound
	}
	return views[0], nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.BookingView, error) {
	return r.aggregateViews(ctx, bson.M{}, bson.D{{Key: "_id", Value: 1}})
}

// SetStatus overwrites the booking status whatever it was before and
// returns the updated document.
func (r *mongoBookingRepository) SetStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &booking, nil
}

// PaymentChange is the set of payment fields one update writes. A nil
// PaidAmount leaves the stored amount untouched.
type PaymentChange struct {
	PaymentStatus string
	PaymentMethod *string
	PaidAmount    *float64
	PaymentDate   *time.Time
}

func paymentSet(change PaymentChange, now time.Time) bson.M {
	set := bson.M{
		"paymentStatus": change.PaymentStatus,
		"paymentMethod": change.PaymentMethod,
		"paymentDate":   change.PaymentDate,
		"updatedAt":     now,
	}
	if change.PaidAmount != nil {
		set["paidAmount"] = *change.PaidAmount
	}
	return set
}

func (r *mongoBookingRepository) UpdatePayment(ctx context.Context, id string, change PaymentChange) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": paymentSet(change, time.Now().UTC().Truncate(time.Millisecond))}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return &booking, nil
}

// Search matches query as a literal, case-insensitive substring of the
// customer name or phone. An empty query matches every booking.
func (r *mongoBookingRepository) Search(ctx context.Context, query string) ([]*model.BookingView, error) {
	return r.aggregateViews(ctx, SearchFilter(query), bson.D{{Key: "_id", Value: 1}})
}

func SearchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"customerName": pattern},
		bson.M{"customerPhone": pattern},
	}}
}

// FindInvoice loads the booking with its room and the room's type. A missing
// room comes back as a nil Room.
func (r *mongoBookingRepository) FindInvoice(ctx context.Context, id string) (*model.InvoiceBooking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": objectID}}},
	}
	pipeline = append(pipeline, roomsrepo.LookupRoom("room")...)
	pipeline = append(pipeline, roomsrepo.LookupType("room.type")...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice booking: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.InvoiceBooking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode invoice booking: %w", err)
	}
	if len(bookings) == 0 {
		return nil, bookingserrors.ErrNotFound
	}

	booking := bookings[0]
	// The nested lookup leaves an empty room document behind when the room
	// itself is gone.
	if booking.Room != nil && booking.Room.ID.IsZero() {
		booking.Room = nil
	}
	return booking, nil
}

// CountCheckInBetween counts bookings whose check-in lies in [from, to).
func (r *mongoBookingRepository) CountCheckInBetween(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"checkIn": bson.M{"$gte": from, "$lt": to}}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// FindAfter lists bookings whose date field is strictly after the given
// instant, earliest first.
func (r *mongoBookingRepository) FindAfter(ctx context.Context, field string, after time.Time) ([]*model.BookingView, error) {
	filter := bson.M{field: bson.M{"$gt": after}}
	return r.aggregateViews(ctx, filter, bson.D{{Key: field, Value: 1}})
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoBookingRepository) aggregateViews(ctx context.Context, filter bson.M, sort bson.D) ([]*model.BookingView, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
	}
	if len(sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	pipeline = append(pipeline, roomsrepo.LookupRoom("room")...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*model.BookingView, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
