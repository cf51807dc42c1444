package validator

import (
	"strings"

	"hotelms/pkg/logger"
	"hotelms/pkg/model"
	"hotelms/pkg/sanitizer"
	"hotelms/pkg/validation"
)

// BookingValidator normalizes and validates booking and payment requests.
type BookingValidator struct {
	validator *validation.Validator
	log       *logger.Logger
}

func NewBookingValidator(validator *validation.Validator, log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validator: validator,
		log:       log,
	}
}

// ValidateCreate checks required presence only. Date order and guest
// capacity are not enforced.
func (v *BookingValidator) ValidateCreate(req *model.BookingRequest) error {
	req.CustomerName = sanitizer.NormalizeName(req.CustomerName)
	req.CustomerPhone = sanitizer.TrimAndNormalize(req.CustomerPhone)
	req.Room = strings.TrimSpace(req.Room)

	if err := v.validator.Struct(req); err != nil {
		v.log.Warn("Booking validation failed", "error", err)
		return validation.AppError(err)
	}
	return nil
}

// ValidatePaymentUpdate lower-cases the payment method. An empty method is
// stored as null.
func (v *BookingValidator) ValidatePaymentUpdate(req *model.PaymentUpdateRequest) error {
	req.PaymentStatus = sanitizer.NormalizeKeyword(req.PaymentStatus)
	if req.PaymentMethod != nil {
		method := strings.TrimSpace(*req.PaymentMethod)
		if method == "" {
			req.PaymentMethod = nil
		} else {
			req.PaymentMethod = &method
		}
	}

	if err := v.validator.Struct(req); err != nil {
		v.log.Warn("Payment update validation failed", "error", err)
		return validation.AppError(err)
	}

	if req.PaymentMethod != nil {
		method, _ := validation.NormalizePaymentMethod(*req.PaymentMethod)
		req.PaymentMethod = &method
	}
	return nil
}

func (v *BookingValidator) ValidatePay(req *model.PayRequest) error {
	if err := v.validator.Struct(req); err != nil {
		v.log.Warn("Payment validation failed", "error", err)
		return validation.AppError(err)
	}

	req.Method, _ = validation.NormalizePaymentMethod(req.Method)
	return nil
}
