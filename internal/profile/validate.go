package profile

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks that p has every token and template the generator cannot
// do without. All problems are reported at once.
func Validate(p Profile) error {
	var errs []string
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s must not be empty", field))
		}
	}

	require("name", p.Name)
	require("implementation_extension", p.ImplementationExtension)
	require("comment_template", p.CommentTemplate)
	require("assignment", p.Assignment)
	for field, value := range map[string]string{
		"eq": p.Eq, "neq": p.Neq, "lt": p.Lt, "leq": p.Leq, "gt": p.Gt, "geq": p.Geq,
		"and": p.And, "or": p.Or, "not": p.Not, "xor": p.Xor,
		"plus": p.Plus, "minus": p.Minus, "times": p.Times, "divide": p.Divide, "power": p.Power,
		"square_root": p.SquareRoot, "ln": p.Ln, "nan": p.NaN,
	} {
		require(field, value)
	}
	require("voi", p.VOI)
	require("states_array", p.StatesArray)
	require("rates_array", p.RatesArray)
	require("constants_array", p.ConstantsArray)
	require("computed_constants_array", p.ComputedConstantsArray)
	require("algebraic_array", p.AlgebraicArray)
	require("externals_array", p.ExternalsArray)
	require("double_parameter", p.DoubleParameter)
	require("array_parameter", p.ArrayParameter)
	require("function_definition", p.FunctionDefinition)
	require("initialise_variables", p.InitialiseVariables)
	require("compute_computed_constants", p.ComputeComputedConstants)
	require("compute_rates", p.ComputeRates)
	require("compute_variables", p.ComputeVariables)

	if p.HasConditionalOperator {
		require("conditional_operator_if", p.ConditionalOperatorIf)
		require("conditional_operator_else", p.ConditionalOperatorElse)
	} else {
		require("piecewise_if", p.PiecewiseIf)
		require("piecewise_else", p.PiecewiseElse)
	}

	if p.HasInterface {
		require("interface_extension", p.InterfaceExtension)
		require("function_declaration", p.FunctionDeclaration)
		if p.InterfaceExtension != "" && p.InterfaceExtension == p.ImplementationExtension {
			errs = append(errs, fmt.Sprintf("interface and implementation share the extension '%s'", p.InterfaceExtension))
		}
	}

	for _, tmpl := range []struct{ field, value, placeholder string }{
		{"function_definition", p.FunctionDefinition, "[CODE]"},
		{"comment_template", p.CommentTemplate, "[CODE]"},
		{"double_parameter", p.DoubleParameter, "[NAME]"},
		{"array_parameter", p.ArrayParameter, "[NAME]"},
	} {
		if tmpl.value != "" && !strings.Contains(tmpl.value, tmpl.placeholder) {
			errs = append(errs, fmt.Sprintf("%s must contain %s", tmpl.field, tmpl.placeholder))
		}
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return fmt.Errorf("profile '%s' validation failed:\n- %s", p.Name, strings.Join(errs, "\n- "))
	}
	return nil
}
