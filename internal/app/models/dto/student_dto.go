package dto

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexInt is an integer that accepts both JSON numbers and numeric strings.
// Browser form handling often submits numeric fields as strings; anything that
// does not parse as an integer is a binding error.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || s == "null" {
		return fmt.Errorf("value must be a number")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("value %q is not a valid number", s)
	}

	*f = FlexInt(n)
	return nil
}

// Int returns the plain integer value
func (f FlexInt) Int() int {
	return int(f)
}

// StudentRequest carries the full field set for creating or updating a
// student record. Presence is validated in the service layer so every missing
// field maps to the same validation error.
type StudentRequest struct {
	Name   string   `json:"name"`
	Age    *FlexInt `json:"age"`
	Course string   `json:"course"`
	Year   *FlexInt `json:"year"`
	Gender string   `json:"gender"`
}
