package testutil

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"hotelms/pkg/model"
)

var seq atomic.Int64

// Unique returns prefix with a process-wide counter appended.
func Unique(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

// Register creates an account with role and returns its token.
func Register(t *testing.T, c *Client, role string) string {
	t.Helper()
	resp := c.POST(t, "/api/auth/register", map[string]any{
		"name":     "Test " + role,
		"email":    Unique(role) + "@example.com",
		"password": "secret123",
		"role":     role,
	})
	AssertStatusCode(t, resp, http.StatusCreated)

	var auth model.AuthResponse
	if err := resp.DecodeJSON(&auth); err != nil {
		t.Fatalf("failed to unmarshal auth response: %v", err)
	}
	if auth.Token == "" {
		t.Fatalf("register returned no token. Body: %s", string(resp.Body))
	}
	return auth.Token
}

// CreateRoomType creates a room type as admin and returns it.
func CreateRoomType(t *testing.T, admin *Client, price float64) *model.RoomType {
	t.Helper()
	resp := admin.POST(t, "/api/rooms/type", map[string]any{
		"name":      Unique("Deluxe"),
		"price":     price,
		"maxGuests": 2,
		"features":  []string{"AC", "WiFi"},
	})
	AssertStatusCode(t, resp, http.StatusCreated)

	var created model.RoomTypeCreatedResponse
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to unmarshal room type: %v", err)
	}
	return created.Type
}

// CreateRoom creates an available room of roomType and returns it.
func CreateRoom(t *testing.T, staff *Client, number int, roomType string) *model.Room {
	t.Helper()
	resp := staff.POST(t, "/api/rooms", map[string]any{
		"roomNumber": number,
		"type":       roomType,
	})
	AssertStatusCode(t, resp, http.StatusCreated)

	var created model.RoomCreatedResponse
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to unmarshal room: %v", err)
	}
	return created.Room
}

// BookingRequest is a two-night stay starting on 2024-01-01.
func BookingRequest(roomID string) map[string]any {
	return map[string]any{
		"customerName":  "Asha Rao",
		"customerPhone": "9876543210",
		"room":          roomID,
		"checkIn":       "2024-01-01",
		"checkOut":      "2024-01-03",
		"guests":        2,
	}
}
