// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Variable structure.
//
// Why accessors instead of exported fields?
//
// Equation trees hold variables through the ast.Variable interface, which
// asks for Name and Units. Keeping the fields unexported lets *Variable
// satisfy that interface directly and keeps the component back-reference
// consistent with the component's Variables slice.
package model

// Variable is a named quantity declared in a component.
type Variable struct {
	name      string
	units     string
	component *Component

	initialLiteral string
	initialRef     *Variable
	external       bool
}

// Name returns the variable name, unique within its component.
func (v *Variable) Name() string { return v.name }

// Units returns the declared unit name.
func (v *Variable) Units() string { return v.units }

// Component returns the declaring component.
func (v *Variable) Component() *Component { return v.component }

// QualifiedName returns `component.variable`.
func (v *Variable) QualifiedName() string {
	if v.component == nil {
		return v.name
	}
	return v.component.Name + "." + v.name
}

// SetInitialLiteral sets a numeric initial value. The text is kept verbatim.
func (v *Variable) SetInitialLiteral(text string) *Variable {
	v.initialLiteral = text
	v.initialRef = nil
	return v
}

// SetInitialVariable initialises v from another variable of its component.
func (v *Variable) SetInitialVariable(ref *Variable) *Variable {
	v.initialRef = ref
	v.initialLiteral = ""
	return v
}

// SetExternal marks v as supplied by the host application.
func (v *Variable) SetExternal(external bool) *Variable {
	v.external = external
	return v
}

// HasInitialValue reports whether v has a literal or variable initial value.
func (v *Variable) HasInitialValue() bool {
	return v.initialLiteral != "" || v.initialRef != nil
}

// InitialLiteral returns the literal initial value, if any.
func (v *Variable) InitialLiteral() (string, bool) {
	return v.initialLiteral, v.initialLiteral != ""
}

// InitialVariable returns the variable v is initialised from, or nil.
func (v *Variable) InitialVariable() *Variable {
	return v.initialRef
}

// InitialValue returns the initial value as written: a literal or the name
// of a variable.
func (v *Variable) InitialValue() string {
	if v.initialRef != nil {
		return v.initialRef.name
	}
	return v.initialLiteral
}

// External reports whether the host application supplies the value.
func (v *Variable) External() bool { return v.external }

// String returns the qualified name.
func (v *Variable) String() string { return v.QualifiedName() }
