package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Form posts from the front end send numbers as strings ("2") and dates as
// plain calendar days ("2024-01-03"). The Flex* types accept both shapes.
// A blank string decodes to a value that is not Valid, which the validator
// reports the same way as a missing field.

type FlexInt struct {
	Int   int
	Valid bool
}

func NewFlexInt(v int) *FlexInt {
	return &FlexInt{Int: v, Valid: true}
}

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil {
		return err
	}
	*n = FlexInt{}
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	*n = FlexInt{Int: v, Valid: true}
	return nil
}

// Present reports whether the request carried a usable value.
func (n *FlexInt) Present() bool {
	return n != nil && n.Valid
}

type FlexFloat struct {
	Float float64
	Valid bool
}

func NewFlexFloat(v float64) *FlexFloat {
	return &FlexFloat{Float: v, Valid: true}
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	raw, err := unquoteNumber(data)
	if err != nil {
		return err
	}
	*f = FlexFloat{}
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", raw)
	}
	*f = FlexFloat{Float: v, Valid: true}
	return nil
}

func (f *FlexFloat) Present() bool {
	return f != nil && f.Valid
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FlexTime parses RFC 3339 timestamps and calendar days. Values without a
// zone are read as UTC, which is how browsers serialize date inputs. A blank
// string leaves the zero time.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) Present() bool {
	return t != nil && !t.IsZero()
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	raw = strings.TrimSpace(raw)
	t.Time = time.Time{}
	if raw == "" {
		return nil
	}
	parsed, err := ParseFlexTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func ParseFlexTime(raw string) (time.Time, error) {
	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func unquoteNumber(data []byte) (string, error) {
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(data), nil
}
