package entities

import "strings"

// TextOrNil trims free text and maps the empty result to nil, so optional
// columns store NULL rather than "".
func TextOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// IntOrNil maps zero to nil ("absent"), matching the truthy
// coercion the API has always applied to optional numeric form fields.
func IntOrNil(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

// FloatOrNil is IntOrNil for fractional values such as series positions.
func FloatOrNil(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
