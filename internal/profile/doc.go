// Package profile describes how generated code is spelled.
//
// A Profile is a flat value of tokens (" + ", "&&") and templates with
// bracketed placeholders ("void [NAME]([PARAMETERS])"). The generator never
// hard-codes target syntax: everything it writes comes from a profile, so a
// new target is a new profile rather than new generator code.
//
// Two profiles are built in, C and Python. Others are declared in HCL and
// derived from an already registered profile:
//
//	profile "c_float" {
//	  base            = "c"
//	  array_parameter = "float *[NAME]"
//	}
//
// Only the attributes present in the block replace the base values. A
// Registry holds the built-ins and everything loaded into it, keyed by name.
package profile
