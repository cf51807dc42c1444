package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "hotelms/pkg/errors"
	"hotelms/pkg/logger"
	"hotelms/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Validator wraps go-playground/validator with the custom rules shared by all
// request types. Field names in messages are the JSON names.
type Validator struct {
	validate *validator.Validate
}

func New(log *logger.Logger) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(flexValue, model.FlexInt{}, model.FlexFloat{}, model.FlexTime{})

	if err := v.RegisterValidation("payment_method", validatePaymentMethod); err != nil {
		log.Fatal("Failed to register 'payment_method' validator", "error", err)
	}

	return &Validator{validate: v}
}

// flexValue unwraps the Flex* input types for rule checks. Blank values come
// back as nil so "required" fails on them and "omitempty" skips them.
func flexValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case model.FlexInt:
		if v.Valid {
			return v.Int
		}
	case model.FlexFloat:
		if v.Valid {
			return v.Float
		}
	case model.FlexTime:
		if !v.IsZero() {
			return v.Time
		}
	}
	return nil
}

// validatePaymentMethod accepts the closed payment method set, ignoring
// case and surrounding blanks.
func validatePaymentMethod(fl validator.FieldLevel) bool {
	_, ok := NormalizePaymentMethod(fl.Field().String())
	return ok
}

func NormalizePaymentMethod(raw string) (string, bool) {
	method := strings.ToLower(strings.TrimSpace(raw))
	switch method {
	case model.PaymentMethodCash, model.PaymentMethodUPI, model.PaymentMethodCard, model.PaymentMethodNetBanking:
		return method, true
	}
	return "", false
}

// Struct validates s and returns ValidationErrors on failure.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// AppError converts the result of Struct into a 400 carrying the first
// problem as its message.
func AppError(err error) error {
	if err == nil {
		return nil
	}
	var errs ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return apperrors.Validation(errs[0].Message, map[string]any{"errors": errs})
	}
	return apperrors.Validation("Invalid input", map[string]any{"error": err.Error()})
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			if err.Kind() == reflect.Slice || err.Kind() == reflect.String {
				message = fmt.Sprintf("%s must have at least %s characters", err.Field(), err.Param())
			} else {
				message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
			}
		case "max":
			if err.Kind() == reflect.Slice || err.Kind() == reflect.String {
				message = fmt.Sprintf("%s must have at most %s characters", err.Field(), err.Param())
			} else {
				message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
			}
		case "gte":
			message = fmt.Sprintf("%s must be %s or more", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid id", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "payment_method":
			message = fmt.Sprintf("%s must be one of: cash upi card netbanking", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
