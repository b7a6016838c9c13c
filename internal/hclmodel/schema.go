package hclmodel

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top level of one model file.
type fileRoot struct {
	Name        string             `hcl:"name,optional"`
	Units       []*unitsBlock      `hcl:"units,block"`
	Components  []*componentBlock  `hcl:"component,block"`
	Connections []*connectionBlock `hcl:"connection,block"`
}

// unitsBlock is a custom unit built from one or more parts.
type unitsBlock struct {
	Name  string       `hcl:"name,label"`
	Parts []*unitBlock `hcl:"unit,block"`
}

type unitBlock struct {
	Units      string   `hcl:"units,label"`
	Prefix     string   `hcl:"prefix,optional"`
	Exponent   *float64 `hcl:"exponent,optional"`
	Multiplier *float64 `hcl:"multiplier,optional"`
}

type componentBlock struct {
	Name      string           `hcl:"name,label"`
	Variables []*variableBlock `hcl:"variable,block"`
	Equations []*equationBlock `hcl:"equation,block"`
	DeclRange hcl.Range        `hcl:",def_range"`
}

type variableBlock struct {
	Name         string         `hcl:"name,label"`
	Units        string         `hcl:"units"`
	InitialValue hcl.Expression `hcl:"initial_value,optional"`
	External     bool           `hcl:"external,optional"`
	DeclRange    hcl.Range      `hcl:",def_range"`
}

type equationBlock struct {
	LHS hcl.Expression `hcl:"lhs"`
	RHS hcl.Expression `hcl:"rhs"`
}

// connectionBlock maps variables of the first component to variables of the
// second one.
type connectionBlock struct {
	First     string         `hcl:"first,label"`
	Second    string         `hcl:"second,label"`
	Variables hcl.Expression `hcl:"variables"`
	DeclRange hcl.Range      `hcl:",def_range"`
}
