// Package units resolves unit names into a base-unit dimension and a
// multiplier, and computes the factor that converts a value between two
// compatible units.
package units

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownUnit is returned when a name is neither built in nor defined.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrIncompatible is returned when two units have different dimensions.
	ErrIncompatible = errors.New("incompatible units")
	// ErrCircular is returned when definitions refer to each other.
	ErrCircular = errors.New("circular unit definition")
)

// Dimension maps base unit names to exponents. Zero exponents are omitted.
type Dimension map[string]float64

// Equal reports whether both dimensions have the same exponents.
func (d Dimension) Equal(o Dimension) bool {
	if len(d) != len(o) {
		return false
	}
	for k, v := range d {
		if math.Abs(o[k]-v) > 1e-12 {
			return false
		}
	}
	return true
}

// String renders the dimension as `metre^2.second^-1`, sorted by base name.
func (d Dimension) String() string {
	if len(d) == 0 {
		return "dimensionless"
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if d[k] == 1 {
			parts = append(parts, k)
			continue
		}
		parts = append(parts, k+"^"+strconv.FormatFloat(d[k], 'g', -1, 64))
	}
	return strings.Join(parts, ".")
}

func (d Dimension) add(o Dimension, exponent float64) {
	for k, v := range o {
		d[k] += v * exponent
		if math.Abs(d[k]) < 1e-12 {
			delete(d, k)
		}
	}
}

// Unit is a resolved unit: multiplying a value by Multiplier expresses it in
// the base units of Dimension.
type Unit struct {
	Name       string
	Dimension  Dimension
	Multiplier float64
}

// Part is one factor of a custom unit definition:
// Multiplier * (10^Prefix * Units)^Exponent.
type Part struct {
	Units      string
	Prefix     string
	Exponent   float64
	Multiplier float64
}

// Definition is a named custom unit built from parts.
type Definition struct {
	Name  string
	Parts []Part
}

// Catalogue holds the built-in units and any custom definitions.
type Catalogue struct {
	defs     map[string]Definition
	resolved map[string]Unit
}

// New returns a catalogue with the built-in units.
func New() *Catalogue {
	c := &Catalogue{
		defs:     make(map[string]Definition),
		resolved: make(map[string]Unit, len(builtins)),
	}
	for name, u := range builtins {
		u.Name = name
		c.resolved[name] = u
	}
	return c
}

// Define adds custom definitions. A definition may refer to units defined
// later; references are resolved on lookup.
func (c *Catalogue) Define(defs ...Definition) error {
	for _, d := range defs {
		if d.Name == "" {
			return errors.New("unit definition without a name")
		}
		if _, ok := builtins[d.Name]; ok {
			return fmt.Errorf("unit '%s' redefines a built-in unit", d.Name)
		}
		if _, ok := c.defs[d.Name]; ok {
			return fmt.Errorf("unit '%s' is defined more than once", d.Name)
		}
		c.defs[d.Name] = d
	}
	return nil
}

// Lookup resolves a unit name. An empty name is dimensionless.
func (c *Catalogue) Lookup(name string) (Unit, error) {
	if name == "" {
		name = "dimensionless"
	}
	return c.resolve(name, map[string]bool{})
}

func (c *Catalogue) resolve(name string, visiting map[string]bool) (Unit, error) {
	if u, ok := c.resolved[name]; ok {
		return u, nil
	}
	def, ok := c.defs[name]
	if !ok {
		return Unit{}, fmt.Errorf("%w: '%s'", ErrUnknownUnit, name)
	}
	if visiting[name] {
		return Unit{}, fmt.Errorf("%w: '%s'", ErrCircular, name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	u := Unit{Name: name, Dimension: Dimension{}, Multiplier: 1}
	for _, p := range def.Parts {
		base, err := c.resolve(p.Units, visiting)
		if err != nil {
			return Unit{}, fmt.Errorf("unit '%s': %w", name, err)
		}
		prefix, err := prefixExponent(p.Prefix)
		if err != nil {
			return Unit{}, fmt.Errorf("unit '%s': %w", name, err)
		}
		exponent := p.Exponent
		if exponent == 0 {
			exponent = 1
		}
		multiplier := p.Multiplier
		if multiplier == 0 {
			multiplier = 1
		}
		u.Dimension.add(base.Dimension, exponent)
		u.Multiplier *= multiplier * math.Pow(math.Pow(10, float64(prefix))*base.Multiplier, exponent)
	}
	c.resolved[name] = u
	return u, nil
}

// Factor returns the number a value expressed in `from` units is multiplied
// by to express it in `to` units.
func (c *Catalogue) Factor(from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}
	fu, err := c.Lookup(from)
	if err != nil {
		return 0, err
	}
	tu, err := c.Lookup(to)
	if err != nil {
		return 0, err
	}
	if !fu.Dimension.Equal(tu.Dimension) {
		return 0, fmt.Errorf("%w: '%s' (%s) and '%s' (%s)", ErrIncompatible, from, fu.Dimension, to, tu.Dimension)
	}
	return Round(fu.Multiplier / tu.Multiplier), nil
}

// Round snaps f to the nearest power of ten when it is within floating point
// noise of one.
func Round(f float64) float64 {
	if n, ok := PowerOfTen(f); ok {
		return math.Pow10(n)
	}
	return f
}

// PowerOfTen reports whether f is 10^n (within a relative 1e-9) and returns n.
func PowerOfTen(f float64) (int, bool) {
	if f <= 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	n := math.Round(math.Log10(f))
	if math.Abs(f-math.Pow(10, n)) > 1e-9*f {
		return 0, false
	}
	return int(n), true
}

// IsUnity reports whether f is one.
func IsUnity(f float64) bool {
	return f == 1
}
