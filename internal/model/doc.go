// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory model graph that the analyser consumes:
// components holding variables and equations, unit definitions, and the
// connections that make variables of different components equivalent.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Model: The root container. It aggregates every component, custom unit
//     definition and connection, whether they came from one file or many.
//
//   - Component: A named scope. Variable names are unique inside a component
//     and equations only refer to variables of their own component.
//
//   - Variable: A named quantity with units, an optional initial value (a
//     literal or another variable of the component) and an optional external
//     flag meaning the host application supplies its value.
//
//   - Equation: An assignment tree from package ast. Its variable references
//     point at *Variable values of the same component.
//
//   - Connection: Declares two variables of different components to be the
//     same quantity. Connected variables are analysed as one.
//
// Why a separate model package?
//
// The model is format-agnostic. The HCL loader builds one, tests build them in
// code, and the analyser never needs to know which happened. Validate checks
// the structural rules (unique names, references inside the owning component,
// connections between existing variables) before any analysis runs, so the
// analyser only deals with mathematical problems.
package model
