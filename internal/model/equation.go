// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Equation and Connection structures.
package model

import (
	"fmt"

	"github.com/specialistvlad/eqgen/internal/ast"
)

// Equation is one assignment of a component. Root is an Assignment node in
// Tree.
type Equation struct {
	Tree *ast.Tree
	Root ast.NodeID

	component *Component
	index     int
}

// Component returns the declaring component.
func (e *Equation) Component() *Component { return e.component }

// Index returns the position of the equation within its component.
func (e *Equation) Index() int { return e.index }

// String renders the equation for messages, e.g. `main#0: x = a`.
func (e *Equation) String() string {
	return fmt.Sprintf("%s#%d: %s", e.component.Name, e.index, e.Tree.Format(e.Root))
}

// Connection declares two variables equivalent.
type Connection struct {
	First  *Variable
	Second *Variable
}
