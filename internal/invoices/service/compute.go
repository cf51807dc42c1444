package service

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"hotelms/pkg/model"
)

const (
	TaxRate = 0.12

	qrSize = "250x250"

	millisPerDay = 24 * 60 * 60 * 1000
)

// PayeeSettings carries the payee details printed into the UPI link.
type PayeeSettings struct {
	UPIID        string
	ReceiverName string
	QRBaseURL    string
}

// Compute prices the stay. Nights are whole days rounded up and tax is
// rounded to two decimals. The booking must have its room and room type
// resolved.
func Compute(booking *model.InvoiceBooking, payee PayeeSettings) *model.Invoice {
	price := booking.Room.Type.Price

	elapsed := booking.CheckOut.Sub(booking.CheckIn).Milliseconds()
	nights := int(math.Ceil(float64(elapsed) / millisPerDay))

	amount := float64(nights) * price
	tax := round2(amount * TaxRate)
	total := round2(amount + tax)

	upi := UPIString(payee, total)
	return &model.Invoice{
		Booking:   booking,
		Price:     price,
		Nights:    nights,
		Amount:    amount,
		Tax:       tax,
		Total:     total,
		UPIString: upi,
		QR:        QRURL(payee.QRBaseURL, upi),
	}
}

func UPIString(payee PayeeSettings, total float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR",
		payee.UPIID,
		encodeComponent(payee.ReceiverName),
		strconv.FormatFloat(total, 'f', -1, 64),
	)
}

func QRURL(base, data string) string {
	return fmt.Sprintf("%s?size=%s&data=%s", base, qrSize, encodeComponent(data))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// encodeComponent escapes s for use as a single query value, with spaces
// as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
