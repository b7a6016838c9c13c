// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the structural validation of a model.
//
// Why validate separately from analysis?
//
// A broken reference is a problem with the model graph itself, not with the
// mathematics, and the analyser relies on it never happening. Validate
// collects every structural problem at once so a user can fix them together.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/eqgen/internal/ast"
)

// ErrInvalidModel wraps every structural validation failure.
var ErrInvalidModel = errors.New("invalid model")

// Validate checks names, references and connections.
func (m *Model) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	components := make(map[string]bool)
	for _, c := range m.Components {
		if c.Name == "" {
			add("component without a name")
		}
		if components[c.Name] {
			add("component '%s' is declared more than once", c.Name)
		}
		components[c.Name] = true

		names := make(map[string]bool)
		for _, v := range c.Variables {
			if v.name == "" {
				add("component '%s' has a variable without a name", c.Name)
			}
			if names[v.name] {
				add("variable '%s' is declared more than once", v.QualifiedName())
			}
			names[v.name] = true
			if v.initialRef != nil && v.initialRef.component != c {
				add("variable '%s' is initialised from '%s' of another component", v.QualifiedName(), v.initialRef.QualifiedName())
			}
			if v.initialRef == v {
				add("variable '%s' is initialised from itself", v.QualifiedName())
			}
		}

		for _, eq := range c.Equations {
			if eq.Tree == nil || eq.Root == ast.NoNode {
				add("component '%s' has an empty equation #%d", c.Name, eq.index)
				continue
			}
			if eq.Tree.Kind(eq.Root) != ast.Assignment {
				add("equation %s is not an assignment", eq)
				continue
			}
			for _, ref := range eq.Tree.Variables(eq.Root) {
				v, ok := ref.(*Variable)
				if !ok || v.component != c {
					add("equation %s refers to '%s' outside its component", eq, ref.Name())
				}
			}
		}
	}

	for _, conn := range m.Connections {
		if conn.First == nil || conn.Second == nil {
			add("connection with a missing variable")
			continue
		}
		if conn.First == conn.Second {
			add("variable '%s' is connected to itself", conn.First.QualifiedName())
		}
		for _, v := range []*Variable{conn.First, conn.Second} {
			if v.component == nil || v.component.model != m {
				add("connection refers to '%s' outside the model", v.QualifiedName())
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: validation failed:\n- %s", ErrInvalidModel, strings.Join(problems, "\n- "))
	}
	return nil
}
