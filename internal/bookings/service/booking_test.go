package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	bookingserrors "hotelms/internal/bookings/errors"
	"hotelms/internal/bookings/repository"
	"hotelms/internal/bookings/validator"
	"hotelms/internal/events"
	roomserrors "hotelms/internal/rooms/errors"
	"hotelms/pkg/config"
	mongotx "hotelms/pkg/db/mongo"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/logger"
	"hotelms/pkg/model"
	"hotelms/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// In-memory stores
// ────────────────────────────────────────────────

type memoryRoomRepository struct {
	mu    sync.Mutex
	rooms map[primitive.ObjectID]*model.Room
}

func newMemoryRoomRepository(rooms ...*model.Room) *memoryRoomRepository {
	m := &memoryRoomRepository{rooms: map[primitive.ObjectID]*model.Room{}}
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	return m
}

func (m *memoryRoomRepository) status(id primitive.ObjectID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[id].Status
}

func (m *memoryRoomRepository) Create(ctx context.Context, room *model.Room) error { return nil }

func (m *memoryRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	return nil, roomserrors.ErrNotFound
}

func (m *memoryRoomRepository) FindAll(ctx context.Context) ([]*model.RoomView, error) {
	return nil, nil
}

func (m *memoryRoomRepository) UpdateStatus(ctx context.Context, id string, status string) (*model.Room, error) {
	return nil, nil
}

func (m *memoryRoomRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *memoryRoomRepository) ClaimAvailable(ctx context.Context, id primitive.ObjectID) (*model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, roomserrors.ErrNotFound
	}
	if room.Status != model.RoomStatusAvailable {
		return nil, roomserrors.ErrNotAvailable
	}
	room.Status = model.RoomStatusOccupied
	copied := *room
	return &copied, nil
}

func (m *memoryRoomRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, roomserrors.ErrNotFound
	}
	room.Status = status
	copied := *room
	return &copied, nil
}

func (m *memoryRoomRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return 0, nil
}

type memoryBookingRepository struct {
	mu        sync.Mutex
	bookings  map[primitive.ObjectID]*model.Booking
	createErr error
	txCalls   int
}

func newMemoryBookingRepository() *memoryBookingRepository {
	return &memoryBookingRepository{bookings: map[primitive.ObjectID]*model.Booking{}}
}

func (m *memoryBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func (m *memoryBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, bookingserrors.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[oid]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memoryBookingRepository) FindViewByID(ctx context.Context, id primitive.ObjectID) (*model.BookingView, error) {
	return nil, bookingserrors.ErrNotFound
}

func (m *memoryBookingRepository) FindAll(ctx context.Context) ([]*model.BookingView, error) {
	return []*model.BookingView{}, nil
}

func (m *memoryBookingRepository) SetStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, bookingserrors.ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[oid]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	b.Status = status
	copied := *b
	return &copied, nil
}

func (m *memoryBookingRepository) UpdatePayment(ctx context.Context, id string, change repository.PaymentChange) (*model.Booking, error) {
	return nil, nil
}

func (m *memoryBookingRepository) Search(ctx context.Context, query string) ([]*model.BookingView, error) {
	return nil, nil
}

func (m *memoryBookingRepository) FindInvoice(ctx context.Context, id string) (*model.InvoiceBooking, error) {
	return nil, nil
}

func (m *memoryBookingRepository) CountCheckInBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return 0, nil
}

func (m *memoryBookingRepository) FindAfter(ctx context.Context, field string, after time.Time) ([]*model.BookingView, error) {
	return nil, nil
}

func (m *memoryBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	m.txCalls++
	return fn(mongo.NewSessionContext(ctx, nil))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// ────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────

type fixture struct {
	svc       BookingService
	bookings  *memoryBookingRepository
	rooms     *memoryRoomRepository
	publisher *recordingPublisher
	room      *model.Room
}

func newFixture(roomStatus string) *fixture {
	log := logger.Discard()
	room := &model.Room{ID: primitive.NewObjectID(), RoomNumber: 101, Status: roomStatus}
	f := &fixture{
		bookings:  newMemoryBookingRepository(),
		rooms:     newMemoryRoomRepository(room),
		publisher: &recordingPublisher{},
		room:      room,
	}
	bv := validator.NewBookingValidator(validation.New(log), log)
	f.svc = NewBookingService(f.bookings, f.rooms, bv, f.publisher, &config.Config{Log: log})
	return f
}

func (f *fixture) request(roomID string) *model.BookingRequest {
	return &model.BookingRequest{
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		Room:          roomID,
		CheckIn:       &model.FlexTime{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		CheckOut:      &model.FlexTime{Time: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		Guests:        model.NewFlexInt(2),
	}
}

func assertAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, status, appErr.StatusCode())
	assert.Equal(t, message, appErr.Message)
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_ClaimsRoom(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)

	booking, err := f.svc.Create(context.Background(), f.request(f.room.ID.Hex()))
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusBooked, booking.Status)
	assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
	assert.Nil(t, booking.PaymentMethod)
	assert.Zero(t, booking.PaidAmount)
	require.NotNil(t, booking.Room)
	assert.Equal(t, f.room.ID, booking.Room.ID)
	assert.Equal(t, model.RoomStatusOccupied, f.rooms.status(f.room.ID))
	assert.Equal(t, 1, f.bookings.txCalls)
	assert.Equal(t, []string{events.TypeBookingCreated}, f.publisher.types())
}

func TestCreate_RoomNotClaimable(t *testing.T) {
	tests := []struct {
		name       string
		roomStatus string
		roomID     func(f *fixture) string
		status     int
		message    string
	}{
		{
			name:       "occupied room",
			roomStatus: model.RoomStatusOccupied,
			roomID:     func(f *fixture) string { return f.room.ID.Hex() },
			status:     http.StatusBadRequest,
			message:    MsgRoomNotAvailable,
		},
		{
			name:       "room under maintenance",
			roomStatus: model.RoomStatusMaintenance,
			roomID:     func(f *fixture) string { return f.room.ID.Hex() },
			status:     http.StatusBadRequest,
			message:    MsgRoomNotAvailable,
		},
		{
			name:       "unknown room",
			roomStatus: model.RoomStatusAvailable,
			roomID:     func(f *fixture) string { return primitive.NewObjectID().Hex() },
			status:     http.StatusNotFound,
			message:    "Room not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.roomStatus)

			_, err := f.svc.Create(context.Background(), f.request(tt.roomID(f)))
			assertAppError(t, err, tt.status, tt.message)
			assert.Empty(t, f.bookings.bookings)
			assert.Empty(t, f.publisher.types())
			assert.Equal(t, tt.roomStatus, f.rooms.status(f.room.ID))
		})
	}
}

func TestCreate_SecondBookingForSameRoomIsRejected(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.request(f.room.ID.Hex()))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.request(f.room.ID.Hex()))
	assertAppError(t, err, http.StatusBadRequest, MsgRoomNotAvailable)
	assert.Len(t, f.bookings.bookings, 1)
}

func TestCreate_ValidationRejectsBeforeTransaction(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	req := f.request(f.room.ID.Hex())
	req.CustomerName = "   "

	_, err := f.svc.Create(context.Background(), req)
	assertAppError(t, err, http.StatusBadRequest, "customerName is required")
	assert.Zero(t, f.bookings.txCalls)
	assert.Equal(t, model.RoomStatusAvailable, f.rooms.status(f.room.ID))
}

func TestCreate_BlankRequiredFieldsAreRejected(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *model.BookingRequest)
		message string
	}{
		{
			name:    "blank check-in",
			mutate:  func(req *model.BookingRequest) { req.CheckIn = &model.FlexTime{} },
			message: "checkIn is required",
		},
		{
			name:    "blank check-out",
			mutate:  func(req *model.BookingRequest) { req.CheckOut = &model.FlexTime{} },
			message: "checkOut is required",
		},
		{
			name:    "blank guests",
			mutate:  func(req *model.BookingRequest) { req.Guests = &model.FlexInt{} },
			message: "guests is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(model.RoomStatusAvailable)
			req := f.request(f.room.ID.Hex())
			tt.mutate(req)

			_, err := f.svc.Create(context.Background(), req)
			assertAppError(t, err, http.StatusBadRequest, tt.message)
			assert.Empty(t, f.bookings.bookings)
			assert.Equal(t, model.RoomStatusAvailable, f.rooms.status(f.room.ID))
		})
	}
}

func TestCreate_StoreFailureIsServerError(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	f.bookings.createErr = errors.New("write concern timeout")

	_, err := f.svc.Create(context.Background(), f.request(f.room.ID.Hex()))
	assertAppError(t, err, http.StatusInternalServerError, apperrors.ServerErrorMessage)
	assert.Empty(t, f.publisher.types())
	// Without transactions the claim has already committed and must be undone.
	assert.Equal(t, model.RoomStatusAvailable, f.rooms.status(f.room.ID))
}

func TestCreate_PublishFailureIsNotSurfaced(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	f.publisher.err = errors.New("broker down")

	booking, err := f.svc.Create(context.Background(), f.request(f.room.ID.Hex()))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusBooked, booking.Status)
}

// ────────────────────────────────────────────────
// Check-in / check-out
// ────────────────────────────────────────────────

func TestLifecycle_CheckInThenCheckOut(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.request(f.room.ID.Hex()))
	require.NoError(t, err)
	id := created.ID.Hex()

	checkedIn, err := f.svc.CheckIn(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedIn, checkedIn.Status)
	assert.Equal(t, model.RoomStatusOccupied, f.rooms.status(f.room.ID))

	checkedOut, err := f.svc.CheckOut(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedOut, checkedOut.Status)
	assert.Equal(t, model.RoomStatusAvailable, f.rooms.status(f.room.ID))
	require.NotNil(t, checkedOut.Room)
	assert.Equal(t, model.RoomStatusAvailable, checkedOut.Room.Status)

	assert.Equal(t, []string{
		events.TypeBookingCreated,
		events.TypeBookingCheckedIn,
		events.TypeBookingCheckedOut,
	}, f.publisher.types())
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.request(f.room.ID.Hex()))
	require.NoError(t, err)

	checkedOut, err := f.svc.CheckOut(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedOut, checkedOut.Status)
	assert.Equal(t, model.RoomStatusAvailable, f.rooms.status(f.room.ID))
}

func TestTransitions_RepeatAndReorderAreAccepted(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.request(f.room.ID.Hex()))
	require.NoError(t, err)
	id := created.ID.Hex()

	steps := []struct {
		name       string
		run        func(context.Context, string) (*model.BookingView, error)
		wantStatus string
		wantRoom   string
	}{
		{name: "check-in", run: f.svc.CheckIn, wantStatus: model.BookingStatusCheckedIn, wantRoom: model.RoomStatusOccupied},
		{name: "second check-in", run: f.svc.CheckIn, wantStatus: model.BookingStatusCheckedIn, wantRoom: model.RoomStatusOccupied},
		{name: "check-out", run: f.svc.CheckOut, wantStatus: model.BookingStatusCheckedOut, wantRoom: model.RoomStatusAvailable},
		{name: "second check-out", run: f.svc.CheckOut, wantStatus: model.BookingStatusCheckedOut, wantRoom: model.RoomStatusAvailable},
		{name: "check-in after check-out", run: f.svc.CheckIn, wantStatus: model.BookingStatusCheckedIn, wantRoom: model.RoomStatusOccupied},
	}

	for _, step := range steps {
		booking, err := step.run(ctx, id)
		require.NoError(t, err, step.name)
		assert.Equal(t, step.wantStatus, booking.Status, step.name)
		assert.Equal(t, step.wantRoom, f.rooms.status(f.room.ID), step.name)
	}
	assert.Len(t, f.publisher.types(), 1+len(steps))
}

func TestTransitions_UnknownAndMalformedIDs(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, primitive.NewObjectID().Hex())
	assertAppError(t, err, http.StatusNotFound, "Booking not found")

	_, err = f.svc.CheckOut(ctx, "not-an-id")
	assertAppError(t, err, http.StatusBadRequest, MsgInvalidID)

	assert.Empty(t, f.publisher.types())
}

func TestCheckOut_RoomDeleted(t *testing.T) {
	f := newFixture(model.RoomStatusAvailable)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.request(f.room.ID.Hex()))
	require.NoError(t, err)
	delete(f.rooms.rooms, f.room.ID)

	checkedOut, err := f.svc.CheckOut(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCheckedOut, checkedOut.Status)
	assert.Nil(t, checkedOut.Room)
}
