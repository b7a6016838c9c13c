package report

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource []byte

// Validator checks report documents against the embedded CUE schema. A
// report that fails validation is a bug in Build, never in the model.
type Validator struct {
	ctx    *cue.Context
	report cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling report schema: %w", schema.Err())
	}
	report := schema.LookupPath(cue.ParsePath("#Report"))
	if report.Err() != nil {
		return nil, fmt.Errorf("looking up #Report definition: %w", report.Err())
	}
	return &Validator{ctx: ctx, report: report}, nil
}

// Validate checks a JSON document. Every field of #Report must be present
// and concrete.
func (v *Validator) Validate(doc []byte) error {
	data := v.ctx.CompileBytes(doc)
	if data.Err() != nil {
		return fmt.Errorf("compiling report as CUE: %w", data.Err())
	}
	if err := v.report.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("report schema validation failed: %w", err)
	}
	return nil
}

// Problems lists every schema violation of doc, one message each.
func (v *Validator) Problems(doc []byte) []string {
	err := v.Validate(doc)
	if err == nil {
		return nil
	}
	var out []string
	for _, e := range errors.Errors(err) {
		out = append(out, e.Error())
	}
	return out
}
