package hclmodel

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/eqgen/internal/ctxlog"
)

// isExprDefined checks if an optional attribute was written in the source.
// gohcl fills an omitted optional hcl.Expression with a static null whose
// range has zero width, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	defined := rng.End.Byte > rng.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", rng.String(),
		"is_defined", defined,
	)
	return defined
}
