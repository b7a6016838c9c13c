// Package report renders the result of an analysis as a JSON document: the
// variables with their roles, the equations in evaluation order, the
// orderings of the generated entry points, the nonlinear groups and every
// issue. Documents are checked against an embedded CUE schema before they
// leave the package.
package report

import (
	"context"
	"fmt"

	"github.com/specialistvlad/eqgen/internal/analyser"
	"github.com/specialistvlad/eqgen/internal/ctxlog"
	"github.com/valyala/fastjson"
)

// Build renders m. The document is compact JSON followed by a newline.
func Build(m *analyser.Model) []byte {
	var a fastjson.Arena
	doc := a.NewObject()

	name := "model"
	if m.Source != nil && m.Source.Name != "" {
		name = m.Source.Name
	}
	doc.Set("model", a.NewString(name))
	if m.HasErrors() {
		doc.Set("valid", a.NewFalse())
	} else {
		doc.Set("valid", a.NewTrue())
	}

	variables := a.NewArray()
	for i, v := range m.Variables {
		variables.SetArrayItem(i, variable(&a, v))
	}
	doc.Set("variables", variables)

	equations := a.NewArray()
	for i, e := range m.Equations {
		equations.SetArrayItem(i, equation(&a, e))
	}
	doc.Set("equations", equations)

	phases := a.NewObject()
	for _, p := range analyser.Phases {
		ids := a.NewArray()
		for i, e := range m.Ordering(p) {
			ids.SetArrayItem(i, a.NewNumberInt(e.ID))
		}
		phases.Set(p.String(), ids)
	}
	doc.Set("phases", phases)

	groups := a.NewArray()
	for i, g := range m.Groups {
		groups.SetArrayItem(i, group(&a, g))
	}
	doc.Set("groups", groups)

	issues := a.NewArray()
	for i, issue := range m.Issues {
		issues.SetArrayItem(i, issueValue(&a, issue))
	}
	doc.Set("issues", issues)

	return append(doc.MarshalTo(nil), '\n')
}

func variable(a *fastjson.Arena, v *analyser.Variable) *fastjson.Value {
	o := a.NewObject()
	o.Set("name", a.NewString(v.Name()))
	o.Set("component", a.NewString(v.Component()))
	o.Set("units", a.NewString(v.Units()))
	o.Set("kind", a.NewString(v.Kind.String()))
	o.Set("index", a.NewNumberInt(v.Index))
	if v.InitialValue != "" {
		o.Set("initial_value", a.NewString(v.InitialValue))
	}
	equivalents := a.NewArray()
	n := 0
	for _, mv := range v.Equivalents {
		if mv == v.Variable {
			continue
		}
		equivalents.SetArrayItem(n, a.NewString(mv.QualifiedName()))
		n++
	}
	o.Set("equivalents", equivalents)
	return o
}

func equation(a *fastjson.Arena, e *analyser.Equation) *fastjson.Value {
	o := a.NewObject()
	o.Set("id", a.NewNumberInt(e.ID))
	o.Set("type", a.NewString(e.Type.String()))
	o.Set("phase", a.NewString(e.Phase.String()))
	o.Set("equation", a.NewString(e.String()))
	if e.Defined != nil {
		o.Set("defines", a.NewString(e.Defined.String()))
	}
	if e.Group != nil {
		o.Set("group", a.NewNumberInt(e.Group.ID))
	}
	return o
}

func group(a *fastjson.Arena, g *analyser.Group) *fastjson.Value {
	o := a.NewObject()
	o.Set("id", a.NewNumberInt(g.ID))
	equations := a.NewArray()
	for i, e := range g.Equations {
		equations.SetArrayItem(i, a.NewNumberInt(e.ID))
	}
	o.Set("equations", equations)
	unknowns := a.NewArray()
	for i, v := range g.Unknowns {
		unknowns.SetArrayItem(i, a.NewString(v.String()))
	}
	o.Set("unknowns", unknowns)
	return o
}

func issueValue(a *fastjson.Arena, i analyser.Issue) *fastjson.Value {
	o := a.NewObject()
	o.Set("kind", a.NewString(i.Kind.String()))
	o.Set("severity", a.NewString(i.Severity.String()))
	o.Set("message", a.NewString(i.Message))
	if i.Variable != nil {
		o.Set("variable", a.NewString(i.Variable.QualifiedName()))
	}
	if i.Equation != nil {
		o.Set("equation", a.NewString(i.Equation.String()))
	}
	return o
}

// Render builds the report of m and validates it against the schema.
func Render(ctx context.Context, m *analyser.Model) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	doc := Build(m)
	if err := v.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid analysis report: %w", err)
	}
	logger.Debug("Analysis report rendered.", "bytes", len(doc), "issues", len(m.Issues))
	return doc, nil
}
