package profile

// Python returns the profile generating a single Python 3 module.
func Python() Profile {
	return Profile{
		Name: "python",

		ImplementationExtension: ".py",
		CommentTemplate:         "# [CODE]\n",
		OriginComment:           "The content of this file was generated using the [PROFILE] profile of eqgen [VERSION].",
		ImplementationHeader:    "from math import *\n",
		Indent:                  "    ",

		Assignment: " = ",
		Eq:         " == ",
		Neq:        " != ",
		Lt:         " < ",
		Leq:        " <= ",
		Gt:         " > ",
		Geq:        " >= ",
		And:        " and ",
		Or:         " or ",
		Not:        "not ",
		Xor:        "xor",

		Plus:             " + ",
		Minus:            " - ",
		Times:            "*",
		Divide:           "/",
		HasPowerOperator: true,
		Power:            "**",
		SquareRoot:       "sqrt",
		Abs:              "fabs",
		Exp:              "exp",
		Ln:               "log",
		Log:              "log10",
		Ceiling:          "ceil",
		Floor:            "floor",
		Min:              "min",
		Max:              "max",
		Rem:              "fmod",

		Sin:   "sin",
		Cos:   "cos",
		Tan:   "tan",
		Sec:   "sec",
		Csc:   "csc",
		Cot:   "cot",
		Sinh:  "sinh",
		Cosh:  "cosh",
		Tanh:  "tanh",
		Sech:  "sech",
		Csch:  "csch",
		Coth:  "coth",
		Asin:  "asin",
		Acos:  "acos",
		Atan:  "atan",
		Asec:  "asec",
		Acsc:  "acsc",
		Acot:  "acot",
		Asinh: "asinh",
		Acosh: "acosh",
		Atanh: "atanh",
		Asech: "asech",
		Acsch: "acsch",
		Acoth: "acoth",

		PiecewiseIf:   "[IF_STATEMENT] if [CONDITION]",
		PiecewiseElse: " else [ELSE_STATEMENT]",

		True:  "1.0",
		False: "0.0",
		E:     "e",
		Pi:    "pi",
		Inf:   "inf",
		NaN:   "nan",

		XorFunction:   pythonHelper("xor", "x, y", "1.0 if bool(x) ^ bool(y) else 0.0"),
		SecFunction:   pythonHelper("sec", "x", "1.0/cos(x)"),
		CscFunction:   pythonHelper("csc", "x", "1.0/sin(x)"),
		CotFunction:   pythonHelper("cot", "x", "1.0/tan(x)"),
		SechFunction:  pythonHelper("sech", "x", "1.0/cosh(x)"),
		CschFunction:  pythonHelper("csch", "x", "1.0/sinh(x)"),
		CothFunction:  pythonHelper("coth", "x", "1.0/tanh(x)"),
		AsecFunction:  pythonHelper("asec", "x", "acos(1.0/x)"),
		AcscFunction:  pythonHelper("acsc", "x", "asin(1.0/x)"),
		AcotFunction:  pythonHelper("acot", "x", "atan(1.0/x)"),
		AsechFunction: pythonHelper("asech", "x", "acosh(1.0/x)"),
		AcschFunction: pythonHelper("acsch", "x", "asinh(1.0/x)"),
		AcothFunction: pythonHelper("acoth", "x", "atanh(1.0/x)"),

		VOI:                    "voi",
		StatesArray:            "states",
		RatesArray:             "rates",
		ConstantsArray:         "constants",
		ComputedConstantsArray: "computed_constants",
		AlgebraicArray:         "algebraic",
		ExternalsArray:         "externals",

		DoubleParameter:   "[NAME]",
		ArrayParameter:    "[NAME]",
		CallbackParameter: "external_variable",

		ImplementationVersion: "__version__ = \"[VERSION]\"\n",
		ImplementationCount:   "[NAME] = [VALUE]\n",

		ImplementationVoiInfo:      "VOI_INFO = [CODE]\n",
		ImplementationVariableInfo: "[NAME] = [\n[CODE]]\n",
		VariableInfoEntry:          "{\"name\": \"[NAME]\", \"units\": \"[UNITS]\", \"component\": \"[COMPONENT]\"}",
		ArrayItemSeparator:         ",",

		CreateStatesArray:            "create_states_array",
		CreateConstantsArray:         "create_constants_array",
		CreateComputedConstantsArray: "create_computed_constants_array",
		CreateAlgebraicArray:         "create_algebraic_array",
		CreateExternalsArray:         "create_externals_array",
		ImplementationCreateArray:    "def [NAME]():\n    return [nan]*[COUNT]\n",

		ExternalVariableCallback: "external_variable([ARGUMENTS], [INDEX])",

		FunctionDefinition: "def [NAME]([PARAMETERS]):\n[CODE]",
		EmptyFunctionBody:  "    pass\n",

		InitialiseVariables:      "initialise_variables",
		ComputeComputedConstants: "compute_computed_constants",
		ComputeRates:             "compute_rates",
		ComputeVariables:         "compute_variables",

		NLASolverDeclaration: "from nlasolver import nla_solve\n",
		ObjectiveFunction:    "def objective_function_[INDEX](u, f, data):\n[CODE]",
		FindRoot:             "def find_root_[INDEX]([PARAMETERS]):\n[CODE]",
		FindRootCall:         "find_root_[INDEX]([ARGUMENTS])",
		ObjectiveUnpack:      "[NAME] = data[[INDEX]]",
		FindRootUnknowns:     "u = [nan]*[SIZE]",
		NLASolveCall:         "u = nla_solve(objective_function_[INDEX], u, [SIZE], [[ARGUMENTS]])",
		UnknownsArray:        "u",
		ResidualsArray:       "f",
	}
}

func pythonHelper(name, params, body string) string {
	return "def " + name + "(" + params + "):\n    return " + body + "\n"
}
