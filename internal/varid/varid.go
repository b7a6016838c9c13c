package varid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalid wraps every parse failure.
var ErrInvalid = errors.New("invalid variable address")

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Address names one variable of one component.
type Address struct {
	Component string
	Variable  string
}

// New returns the address of variable in component.
func New(component, variable string) Address {
	return Address{Component: component, Variable: variable}
}

// Parse reads `component.variable`.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("%w: address cannot be empty", ErrInvalid)
	}
	component, variable, ok := strings.Cut(raw, ".")
	if !ok {
		return Address{}, fmt.Errorf("%w: %q has no component part", ErrInvalid, raw)
	}
	for _, part := range []string{component, variable} {
		if !identRegex.MatchString(part) {
			return Address{}, fmt.Errorf("%w: %q is not an identifier in %q", ErrInvalid, part, raw)
		}
	}
	return New(component, variable), nil
}

// String returns the canonical `component.variable` form.
func (a Address) String() string {
	return a.Component + "." + a.Variable
}

// IsIdentifier reports whether name can be used as either part of an address.
func IsIdentifier(name string) bool {
	return identRegex.MatchString(name)
}
