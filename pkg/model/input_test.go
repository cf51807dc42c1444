package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexInt
		wantErr bool
	}{
		{name: "number", input: `3`, want: FlexInt{Int: 3, Valid: true}},
		{name: "numeric string", input: `"12"`, want: FlexInt{Int: 12, Valid: true}},
		{name: "padded string", input: `" 7 "`, want: FlexInt{Int: 7, Valid: true}},
		{name: "zero is a value", input: `0`, want: FlexInt{Int: 0, Valid: true}},
		{name: "null", input: `null`, want: FlexInt{}},
		{name: "empty string is blank", input: `""`, want: FlexInt{}},
		{name: "word", input: `"two"`, wantErr: true},
		{name: "fraction", input: `"2.5"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexInt
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFlexFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexFloat
		wantErr bool
	}{
		{name: "number", input: `1000`, want: FlexFloat{Float: 1000, Valid: true}},
		{name: "decimal string", input: `"1499.50"`, want: FlexFloat{Float: 1499.5, Valid: true}},
		{name: "null", input: `null`, want: FlexFloat{}},
		{name: "empty string is blank", input: `""`, want: FlexFloat{}},
		{name: "garbage", input: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexFloat
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFlexTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "calendar day", input: `"2024-01-03"`, want: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339 with offset", input: `"2024-01-03T12:00:00+02:00"`, want: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)},
		{name: "datetime-local", input: `"2024-01-03T14:30"`, want: time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC)},
		{name: "empty", input: `""`},
		{name: "number", input: `20240103`, wantErr: true},
		{name: "bad layout", input: `"03/01/2024"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexTime
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Time.Equal(tt.want) {
				t.Errorf("got %v, want %v", got.Time, tt.want)
			}
		})
	}
}

func TestBookingRequest_DecodesFormPayload(t *testing.T) {
	payload := `{"customerName":"Asha","customerPhone":"98450","room":"65a000000000000000000001","checkIn":"2024-01-01","checkOut":"2024-01-03","guests":"2"}`

	var req BookingRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.Guests.Present() || req.Guests.Int != 2 {
		t.Errorf("guests = %v, want 2", req.Guests)
	}
	if req.CheckOut == nil || req.CheckOut.Sub(req.CheckIn.Time) != 48*time.Hour {
		t.Errorf("expected a two day stay, got %v -> %v", req.CheckIn, req.CheckOut)
	}
}

func TestBookingRequest_BlankFieldsAreNotPresent(t *testing.T) {
	payload := `{"customerName":"A","customerPhone":"1","room":"65a000000000000000000001","checkIn":"","checkOut":" ","guests":""}`

	var req BookingRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.CheckIn.Present() || req.CheckOut.Present() {
		t.Errorf("blank dates reported present: %v -> %v", req.CheckIn, req.CheckOut)
	}
	if req.Guests.Present() {
		t.Errorf("blank guests reported present: %+v", req.Guests)
	}
}

func TestBooking_JSONShape(t *testing.T) {
	method := PaymentMethodUPI
	b := Booking{
		BookingCore: BookingCore{
			CustomerName: "Asha",
			Status:       BookingStatusBooked,
			Payment: Payment{
				PaymentStatus: PaymentStatusPending,
				PaymentMethod: &method,
			},
		},
	}

	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"_id", "room", "customerName", "status", "paymentStatus", "paymentMethod", "paidAmount", "paymentDate"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing key %q in %s", key, raw)
		}
	}
	if fields["paymentDate"] != nil {
		t.Errorf("paymentDate = %v, want null", fields["paymentDate"])
	}
}
