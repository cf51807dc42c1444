package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "hotelms/pkg/errors"
)

const invalidBodyMessage = "Invalid request body"

// DecodeJSON reads a single JSON document from the request body into v.
// An empty body decodes to the zero value so body-less PUTs stay valid.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.InvalidInput("Request body too large")
	}
	return apperrors.InvalidInput(invalidBodyMessage)
}
