package units

import (
	"fmt"
	"strconv"
)

func dim(pairs ...any) Dimension {
	d := Dimension{}
	for i := 0; i < len(pairs); i += 2 {
		d[pairs[i].(string)] = float64(pairs[i+1].(int))
	}
	return d
}

var builtins = map[string]Unit{
	"dimensionless": {Dimension: Dimension{}, Multiplier: 1},
	"ampere":        {Dimension: dim("ampere", 1), Multiplier: 1},
	"candela":       {Dimension: dim("candela", 1), Multiplier: 1},
	"kelvin":        {Dimension: dim("kelvin", 1), Multiplier: 1},
	"kilogram":      {Dimension: dim("kilogram", 1), Multiplier: 1},
	"metre":         {Dimension: dim("metre", 1), Multiplier: 1},
	"meter":         {Dimension: dim("metre", 1), Multiplier: 1},
	"mole":          {Dimension: dim("mole", 1), Multiplier: 1},
	"second":        {Dimension: dim("second", 1), Multiplier: 1},

	"becquerel": {Dimension: dim("second", -1), Multiplier: 1},
	"celsius":   {Dimension: dim("kelvin", 1), Multiplier: 1},
	"coulomb":   {Dimension: dim("second", 1, "ampere", 1), Multiplier: 1},
	"farad":     {Dimension: dim("kilogram", -1, "metre", -2, "second", 4, "ampere", 2), Multiplier: 1},
	"gram":      {Dimension: dim("kilogram", 1), Multiplier: 1e-3},
	"gray":      {Dimension: dim("metre", 2, "second", -2), Multiplier: 1},
	"henry":     {Dimension: dim("kilogram", 1, "metre", 2, "second", -2, "ampere", -2), Multiplier: 1},
	"hertz":     {Dimension: dim("second", -1), Multiplier: 1},
	"joule":     {Dimension: dim("kilogram", 1, "metre", 2, "second", -2), Multiplier: 1},
	"katal":     {Dimension: dim("mole", 1, "second", -1), Multiplier: 1},
	"litre":     {Dimension: dim("metre", 3), Multiplier: 1e-3},
	"liter":     {Dimension: dim("metre", 3), Multiplier: 1e-3},
	"lumen":     {Dimension: dim("candela", 1), Multiplier: 1},
	"lux":       {Dimension: dim("candela", 1, "metre", -2), Multiplier: 1},
	"newton":    {Dimension: dim("kilogram", 1, "metre", 1, "second", -2), Multiplier: 1},
	"ohm":       {Dimension: dim("kilogram", 1, "metre", 2, "second", -3, "ampere", -2), Multiplier: 1},
	"pascal":    {Dimension: dim("kilogram", 1, "metre", -1, "second", -2), Multiplier: 1},
	"radian":    {Dimension: Dimension{}, Multiplier: 1},
	"siemens":   {Dimension: dim("kilogram", -1, "metre", -2, "second", 3, "ampere", 2), Multiplier: 1},
	"sievert":   {Dimension: dim("metre", 2, "second", -2), Multiplier: 1},
	"steradian": {Dimension: Dimension{}, Multiplier: 1},
	"tesla":     {Dimension: dim("kilogram", 1, "second", -2, "ampere", -1), Multiplier: 1},
	"volt":      {Dimension: dim("kilogram", 1, "metre", 2, "second", -3, "ampere", -1), Multiplier: 1},
	"watt":      {Dimension: dim("kilogram", 1, "metre", 2, "second", -3), Multiplier: 1},
	"weber":     {Dimension: dim("kilogram", 1, "metre", 2, "second", -2, "ampere", -1), Multiplier: 1},
}

var prefixes = map[string]int{
	"yotta": 24, "zetta": 21, "exa": 18, "peta": 15, "tera": 12, "giga": 9,
	"mega": 6, "kilo": 3, "hecto": 2, "deca": 1, "deka": 1,
	"deci": -1, "centi": -2, "milli": -3, "micro": -6, "nano": -9,
	"pico": -12, "femto": -15, "atto": -18, "zepto": -21, "yocto": -24,
}

// prefixExponent accepts a named SI prefix or an integer power of ten.
func prefixExponent(prefix string) (int, error) {
	if prefix == "" {
		return 0, nil
	}
	if n, ok := prefixes[prefix]; ok {
		return n, nil
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("invalid prefix '%s'", prefix)
	}
	return n, nil
}

// IsBuiltin reports whether name is a built-in unit.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}
