// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Model structure, the root of the model graph.
//
// Why keep declaration order?
//
// Everything downstream is ordered by declaration: analyser variable indices,
// the tie-break of the equation ordering and therefore the generated code.
// Components, variables, equations and connections are kept in slices, never
// maps, so two loads of the same files always produce the same model.
package model

import (
	"github.com/specialistvlad/eqgen/internal/units"
)

// Model is a validated model graph.
type Model struct {
	Name        string
	Units       []units.Definition
	Components  []*Component
	Connections []*Connection
}

// New returns an empty model.
func New(name string) *Model {
	return &Model{Name: name}
}

// AddComponent appends a new component. Names are checked by Validate.
func (m *Model) AddComponent(name string) *Component {
	c := &Component{Name: name, model: m}
	m.Components = append(m.Components, c)
	return c
}

// Component returns the component called name, or nil.
func (m *Model) Component(name string) *Component {
	for _, c := range m.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddUnits appends custom unit definitions.
func (m *Model) AddUnits(defs ...units.Definition) {
	m.Units = append(m.Units, defs...)
}

// Connect declares v1 and v2 equivalent.
func (m *Model) Connect(v1, v2 *Variable) *Connection {
	c := &Connection{First: v1, Second: v2}
	m.Connections = append(m.Connections, c)
	return c
}

// Variables returns every variable in declaration order: components in order,
// then variables in order within each component.
func (m *Model) Variables() []*Variable {
	var out []*Variable
	for _, c := range m.Components {
		out = append(out, c.Variables...)
	}
	return out
}

// Equations returns every equation in declaration order.
func (m *Model) Equations() []*Equation {
	var out []*Equation
	for _, c := range m.Components {
		out = append(out, c.Equations...)
	}
	return out
}

// Merge appends the contents of other to m. Components of other are
// re-parented to m.
func (m *Model) Merge(other *Model) {
	for _, c := range other.Components {
		c.model = m
	}
	m.Units = append(m.Units, other.Units...)
	m.Components = append(m.Components, other.Components...)
	m.Connections = append(m.Connections, other.Connections...)
}
