package hclmodel

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/eqgen/internal/ctxlog"
	"github.com/specialistvlad/eqgen/internal/fsutil"
	"github.com/specialistvlad/eqgen/internal/model"
	"github.com/specialistvlad/eqgen/internal/units"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodedFile is one parsed and decoded model file.
type decodedFile struct {
	path string
	src  []byte
	root fileRoot
}

// Load reads every .hcl file under paths into one validated model. A path
// may name a file or a directory, which is searched recursively. The model is
// named after the `name` attribute, or else after the first path.
func Load(ctx context.Context, paths ...string) (*model.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL model loader started.", "path_count", len(paths))

	files, err := findFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %s", strings.Join(paths, ", "))
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var decoded []*decodedFile
	for _, path := range files {
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		f := &decodedFile{path: path, src: hclFile.Bytes}
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &f.root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}
		decoded = append(decoded, f)
	}

	m, diags := build(ctx, decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load model: %w", diags)
	}
	if m.Name == "" {
		m.Name = defaultName(paths[0])
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Model loaded.", "model", m.Name, "files", len(files),
		"components", len(m.Components), "variables", len(m.Variables()), "equations", len(m.Equations()))
	return m, nil
}

// findFiles lists the .hcl files under paths in order, once each.
func findFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range files {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	return all, nil
}

func defaultName(path string) string {
	name := filepath.Base(filepath.Clean(path))
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// build turns the decoded files into a model. Declarations come first so
// that equations, initial values and connections may refer to variables
// declared further down or in another file.
func build(ctx context.Context, files []*decodedFile) (*model.Model, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	var diags hcl.Diagnostics
	m := model.New("")

	for _, f := range files {
		if f.root.Name != "" {
			if m.Name != "" && m.Name != f.root.Name {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Conflicting model name",
					Detail:   fmt.Sprintf("The model is already named %q; %s names it %q.", m.Name, f.path, f.root.Name),
				})
			}
			m.Name = f.root.Name
		}
		for _, u := range f.root.Units {
			m.AddUnits(unitDefinition(u))
		}
		for _, cb := range f.root.Components {
			c := m.AddComponent(cb.Name)
			c.FSInformation = model.NewFSInfo(f.path)
			for _, vb := range cb.Variables {
				c.AddVariable(vb.Name, vb.Units).SetExternal(vb.External)
			}
		}
	}
	logger.Debug("Declarations collected.", "components", len(m.Components), "units", len(m.Units))

	for _, f := range files {
		for _, cb := range f.root.Components {
			c := componentAt(m, f.path, cb.Name)
			for _, vb := range cb.Variables {
				diags = append(diags, initialValue(ctx, f.src, c, vb)...)
			}
			for _, eb := range cb.Equations {
				diags = append(diags, equation(f.src, c, eb)...)
			}
		}
		for _, conn := range f.root.Connections {
			diags = append(diags, connect(m, conn)...)
		}
	}
	logger.Debug("Equations lowered.", "equations", len(m.Equations()), "connections", len(m.Connections))
	return m, diags
}

// componentAt returns the component declared as name in path. Duplicate
// names are reported by model.Validate, so the first match in the file wins.
func componentAt(m *model.Model, path, name string) *model.Component {
	for _, c := range m.Components {
		if c.Name == name && c.FSInformation.String() == path {
			return c
		}
	}
	panic(fmt.Sprintf("hclmodel: component '%s' of %s was not declared", name, path))
}

func unitDefinition(u *unitsBlock) units.Definition {
	def := units.Definition{Name: u.Name}
	for _, p := range u.Parts {
		part := units.Part{Units: p.Units, Prefix: p.Prefix}
		if p.Exponent != nil {
			part.Exponent = *p.Exponent
		}
		if p.Multiplier != nil {
			part.Multiplier = *p.Multiplier
		}
		def.Parts = append(def.Parts, part)
	}
	return def
}

// initialValue applies `initial_value`, which is either a number or the name
// of another variable of the component.
func initialValue(ctx context.Context, src []byte, c *model.Component, vb *variableBlock) hcl.Diagnostics {
	if !isExprDefined(ctx, vb.InitialValue, "initial_value") {
		return nil
	}
	v := c.Variable(vb.Name)
	expr := vb.InitialValue

	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() && len(traversal) == 1 {
		name := traversal.RootName()
		ref := c.Variable(name)
		if ref == nil {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unknown variable",
				Detail:   fmt.Sprintf("Component %q has no variable %q to initialise %q from.", c.Name, name, vb.Name),
				Subject:  expr.Range().Ptr(),
			}}
		}
		v.SetInitialVariable(ref)
		return nil
	}

	text, ok := numberText(src, expr)
	if !ok {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid initial value",
			Detail:   fmt.Sprintf("The initial value of %q must be a number or the name of a variable.", vb.Name),
			Subject:  expr.Range().Ptr(),
		}}
	}
	v.SetInitialLiteral(text)
	return nil
}

// numberText returns the source text of a number literal, optionally
// negated.
func numberText(src []byte, expr hcl.Expression) (string, bool) {
	sign := ""
	if neg, ok := expr.(*hclsyntax.UnaryOpExpr); ok && neg.Op == hclsyntax.OpNegate {
		sign = "-"
		expr = neg.Val
	}
	lit, ok := expr.(*hclsyntax.LiteralValueExpr)
	if !ok || lit.Val.Type() != cty.Number {
		return "", false
	}
	return sign + sourceText(src, lit.SrcRange), true
}

func sourceText(src []byte, rng hcl.Range) string {
	return string(src[rng.Start.Byte:rng.End.Byte])
}

func equation(src []byte, c *model.Component, eb *equationBlock) hcl.Diagnostics {
	l := newLowerer(src, c)
	lhs := l.lower(eb.LHS)
	rhs := l.lower(eb.RHS)
	if l.diags.HasErrors() {
		return l.diags
	}
	l.tree.SetRoot(l.tree.Assign(lhs, rhs))
	c.AddEquation(l.tree)
	return l.diags
}

// connect declares the variables listed in a connection block equivalent.
// Pairs are connected in the order they are written.
func connect(m *model.Model, conn *connectionBlock) hcl.Diagnostics {
	var diags hcl.Diagnostics
	first, second := m.Component(conn.First), m.Component(conn.Second)
	for _, pair := range []struct {
		name string
		c    *model.Component
	}{{conn.First, first}, {conn.Second, second}} {
		if pair.c == nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown component",
				Detail:   fmt.Sprintf("The connection refers to component %q, which is not declared.", pair.name),
				Subject:  conn.DeclRange.Ptr(),
			})
		}
	}
	if diags.HasErrors() {
		return diags
	}

	items, itemDiags := hcl.ExprMap(conn.Variables)
	diags = append(diags, itemDiags...)
	for _, item := range items {
		from, keyDiags := stringValue(item.Key)
		to, valueDiags := stringValue(item.Value)
		diags = append(diags, keyDiags...)
		diags = append(diags, valueDiags...)
		if keyDiags.HasErrors() || valueDiags.HasErrors() {
			continue
		}

		v1, v2 := first.Variable(from), second.Variable(to)
		for _, missing := range []struct {
			v         *model.Variable
			component string
			name      string
			expr      hcl.Expression
		}{{v1, first.Name, from, item.Key}, {v2, second.Name, to, item.Value}} {
			if missing.v == nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unknown variable",
					Detail:   fmt.Sprintf("Component %q has no variable %q.", missing.component, missing.name),
					Subject:  missing.expr.Range().Ptr(),
				})
			}
		}
		if v1 != nil && v2 != nil {
			m.Connect(v1, v2)
		}
	}
	return diags
}

func stringValue(expr hcl.Expression) (string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	var s string
	if err := gocty.FromCtyValue(val, &s); err != nil {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid variable name",
			Detail:   fmt.Sprintf("A variable name must be a string: %s.", err),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return s, nil
}

// Loader reads models from HCL files.
type Loader struct{}

// NewLoader returns an HCL model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements app.Loader by calling Load.
func (*Loader) Load(ctx context.Context, paths ...string) (*model.Model, error) {
	return Load(ctx, paths...)
}
