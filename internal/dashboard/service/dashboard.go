package service

import (
	"context"
	"sync"
	"time"

	bookingsrepo "hotelms/internal/bookings/repository"
	roomsrepo "hotelms/internal/rooms/repository"
	"hotelms/pkg/config"
	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/model"
)

type DashboardService interface {
	Summary(ctx context.Context) (*model.Dashboard, error)
}

type dashboardService struct {
	rooms    roomsrepo.RoomRepository
	bookings bookingsrepo.BookingRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewDashboardService(rooms roomsrepo.RoomRepository, bookings bookingsrepo.BookingRepository, cfg *config.Config) DashboardService {
	return &dashboardService{
		rooms:    rooms,
		bookings: bookings,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Summary runs every count and list concurrently. "Today" is the calendar
// day in the hotel time zone.
func (s *dashboardService) Summary(ctx context.Context) (*model.Dashboard, error) {
	now := s.now()
	dayStart, dayEnd := dayBounds(now, s.location())

	var d model.Dashboard
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.cfg.Log.Error("Failed to compute dashboard figure", "figure", name, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}

	countRooms := func(status string, dest *int64) func() error {
		return func() (err error) {
			*dest, err = s.rooms.CountByStatus(ctx, status)
			return err
		}
	}

	run("totalRooms", countRooms("", &d.TotalRooms))
	run("availableRooms", countRooms(model.RoomStatusAvailable, &d.AvailableRooms))
	run("occupiedRooms", countRooms(model.RoomStatusOccupied, &d.OccupiedRooms))
	run("cleaningRooms", countRooms(model.RoomStatusCleaning, &d.CleaningRooms))
	run("maintenanceRooms", countRooms(model.RoomStatusMaintenance, &d.MaintenanceRooms))
	run("todaysBookings", func() (err error) {
		d.TodaysBookings, err = s.bookings.CountCheckInBetween(ctx, dayStart, dayEnd)
		return err
	})
	run("upcomingCheckIns", func() (err error) {
		d.UpcomingCheckIns, err = s.bookings.FindAfter(ctx, "checkIn", now)
		return err
	})
	run("upcomingCheckOuts", func() (err error) {
		d.UpcomingCheckOuts, err = s.bookings.FindAfter(ctx, "checkOut", now)
		return err
	})

	wg.Wait()
	if firstErr != nil {
		return nil, apperrors.Internal("Failed to load dashboard", firstErr)
	}

	if d.UpcomingCheckIns == nil {
		d.UpcomingCheckIns = []*model.BookingView{}
	}
	if d.UpcomingCheckOuts == nil {
		d.UpcomingCheckOuts = []*model.BookingView{}
	}
	return &d, nil
}

func (s *dashboardService) location() *time.Location {
	if s.cfg.Location != nil {
		return s.cfg.Location
	}
	return time.UTC
}

// dayBounds returns [start of the day containing t, start of the next day)
// in loc.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
