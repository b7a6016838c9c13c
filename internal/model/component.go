// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Component structure, the naming scope of variables
// and equations.
package model

import (
	"fmt"

	"github.com/specialistvlad/eqgen/internal/ast"
)

// Component groups variables and the equations relating them.
type Component struct {
	Name          string
	Variables     []*Variable
	Equations     []*Equation
	FSInformation *FSInfo

	model *Model
}

// Model returns the model the component belongs to.
func (c *Component) Model() *Model {
	return c.model
}

// AddVariable appends a variable declared with the given units.
func (c *Component) AddVariable(name, units string) *Variable {
	v := &Variable{name: name, units: units, component: c}
	c.Variables = append(c.Variables, v)
	return v
}

// Variable returns the variable called name, or nil.
func (c *Component) Variable(name string) *Variable {
	for _, v := range c.Variables {
		if v.name == name {
			return v
		}
	}
	return nil
}

// MustVariable is like Variable but panics when the variable is missing.
func (c *Component) MustVariable(name string) *Variable {
	v := c.Variable(name)
	if v == nil {
		panic(fmt.Sprintf("component '%s' has no variable '%s'", c.Name, name))
	}
	return v
}

// AddEquation appends an equation whose root is the tree's root.
func (c *Component) AddEquation(tree *ast.Tree) *Equation {
	eq := &Equation{Tree: tree, Root: tree.Root(), component: c, index: len(c.Equations)}
	c.Equations = append(c.Equations, eq)
	return eq
}
