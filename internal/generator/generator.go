package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/eqgen/internal/analyser"
	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/ctxlog"
	"github.com/specialistvlad/eqgen/internal/profile"
)

// Version is written into generated files unless Options.Version is set.
const Version = "0.1.0"

// ErrModelHasErrors is returned for an analysed model with error issues.
var ErrModelHasErrors = errors.New("the analysed model has errors")

// Options tune the output.
type Options struct {
	// Version replaces Version in the generated files.
	Version string
	// FileName is the base name of the generated files. It defaults to the
	// model name.
	FileName string
}

// Result is the generated code.
type Result struct {
	// Interface and InterfaceFile are empty when the profile has no
	// interface.
	Interface          string
	InterfaceFile      string
	Implementation     string
	ImplementationFile string
}

// Files returns the generated files by name.
func (r *Result) Files() map[string]string {
	files := map[string]string{r.ImplementationFile: r.Implementation}
	if r.InterfaceFile != "" {
		files[r.InterfaceFile] = r.Interface
	}
	return files
}

// generator renders one analysed model with one profile.
type generator struct {
	m       *analyser.Model
	p       profile.Profile
	version string
	name    string

	// helpers records the helper functions the rendered code calls.
	helpers map[ast.Kind]bool
}

// Generate renders m with p. It panics if m is nil.
func Generate(ctx context.Context, m *analyser.Model, p profile.Profile, opts Options) (*Result, error) {
	if m == nil {
		panic("generator: nil analysed model")
	}
	logger := ctxlog.FromContext(ctx)

	if m.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrModelHasErrors, m.Err())
	}
	if err := profile.Validate(p); err != nil {
		return nil, err
	}
	if len(m.Groups) > 0 && (p.ObjectiveFunction == "" || p.FindRoot == "" || p.FindRootCall == "" || p.NLASolveCall == "") {
		return nil, fmt.Errorf("profile '%s' cannot generate the nonlinear algebraic systems of this model", p.Name)
	}
	if m.HasExternals() && (p.ExternalVariableCallback == "" || p.CallbackParameter == "") {
		return nil, fmt.Errorf("profile '%s' cannot generate external variables", p.Name)
	}

	g := newGenerator(m, p, opts)
	logger.Debug("Generating code.", "profile", p.Name, "file", g.name, "groups", len(m.Groups))

	res := &Result{
		ImplementationFile: g.name + p.ImplementationExtension,
	}
	if p.HasInterface {
		res.InterfaceFile = g.name + p.InterfaceExtension
		res.Interface = g.interfaceCode()
	}
	res.Implementation = g.implementationCode(res.InterfaceFile)

	logger.Info("Code generated.", "profile", p.Name, "implementation", res.ImplementationFile,
		"interface", res.InterfaceFile, "bytes", len(res.Interface)+len(res.Implementation))
	return res, nil
}

func newGenerator(m *analyser.Model, p profile.Profile, opts Options) *generator {
	g := &generator{
		m:       m,
		p:       p,
		version: opts.Version,
		name:    opts.FileName,
		helpers: make(map[ast.Kind]bool),
	}
	if g.version == "" {
		g.version = Version
	}
	if g.name == "" && m.Source != nil {
		g.name = m.Source.Name
	}
	if g.name == "" {
		g.name = "model"
	}
	return g
}

// fill replaces placeholders in a template. Values are not scanned again.
func fill(tmpl string, oldnew ...string) string {
	return strings.NewReplacer(oldnew...).Replace(tmpl)
}

// sections joins non-empty blocks with a blank line between them. Every
// block ends with a newline.
func sections(blocks ...string) string {
	var kept []string
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n")
}

// statements indents and terminates every statement, one per line.
func (g *generator) statements(stmts ...string) string {
	var sb strings.Builder
	for _, s := range stmts {
		sb.WriteString(g.p.Indent + s + g.p.StatementTerminator + "\n")
	}
	return sb.String()
}

// body joins blocks of rendered statements into a function body, with a
// blank line between blocks. Empty blocks are skipped.
func (g *generator) body(blocks ...string) string {
	code := sections(blocks...)
	if code == "" {
		return g.p.EmptyFunctionBody
	}
	return code
}

func (g *generator) comment() string {
	origin := fill(g.p.OriginComment, "[PROFILE]", g.p.Name, "[VERSION]", g.version)
	if origin == "" {
		return ""
	}
	return fill(g.p.CommentTemplate, "[CODE]", origin)
}
