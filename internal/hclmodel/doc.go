// Package hclmodel loads models written in HCL into a model.Model.
//
// A model is a set of .hcl files. Every file may declare custom units,
// components with their variables and equations, and connections between
// variables of two components:
//
//	name = "membrane"
//
//	units "millivolt" {
//	  unit "volt" {
//	    prefix = "milli"
//	  }
//	}
//
//	component "membrane" {
//	  variable "t" { units = "second" }
//	  variable "V" {
//	    units         = "volt"
//	    initial_value = -0.075
//	  }
//	  equation {
//	    lhs = ode(V, t)
//	    rhs = -(i_Stim + i_L) / Cm
//	  }
//	}
//
//	connection "membrane" "gate" {
//	  variables = { V = "V", t = "t" }
//	}
//
// Equation sides are ordinary HCL expressions. They are never evaluated:
// Load lowers their syntax trees into ast trees, keeping numeric literals
// exactly as written. Names resolve to the variables of the enclosing
// component first, then to the constants pi, e, inf and nan.
//
// Files are read in path order and every problem is reported as an
// hcl.Diagnostic carrying its source range.
package hclmodel
