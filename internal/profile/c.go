package profile

// C returns the profile generating a C99 header and source file.
func C() Profile {
	return Profile{
		Name: "c",

		HasInterface:            true,
		InterfaceExtension:      ".h",
		ImplementationExtension: ".c",
		CommentTemplate:         "/* [CODE] */\n",
		OriginComment:           "The content of this file was generated using the [PROFILE] profile of eqgen [VERSION].",
		InterfaceHeader:         "#pragma once\n\n#include <stddef.h>\n",
		ImplementationHeader:    "#include \"[INTERFACE_FILE_NAME]\"\n\n#include <math.h>\n#include <stdlib.h>\n",
		Indent:                  "    ",
		StatementTerminator:     ";",

		Assignment: " = ",
		Eq:         " == ",
		Neq:        " != ",
		Lt:         " < ",
		Leq:        " <= ",
		Gt:         " > ",
		Geq:        " >= ",
		And:        " && ",
		Or:         " || ",
		Not:        "!",
		Xor:        "xor",

		Plus:       " + ",
		Minus:      " - ",
		Times:      "*",
		Divide:     "/",
		Power:      "pow",
		SquareRoot: "sqrt",
		Abs:        "fabs",
		Exp:        "exp",
		Ln:         "log",
		Log:        "log10",
		Ceiling:    "ceil",
		Floor:      "floor",
		Min:        "fmin",
		Max:        "fmax",
		Rem:        "fmod",

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

		HasConditionalOperator:  true,
		ConditionalOperatorIf:   "([CONDITION])?[IF_STATEMENT]",
		ConditionalOperatorElse: ":[ELSE_STATEMENT]",

		True:  "1.0",
		False: "0.0",
		E:     "M_E",
		Pi:    "M_PI",
		Inf:   "INFINITY",
		NaN:   "NAN",

		XorFunction:   cHelper("xor", "double x, double y", "(x != 0.0) ^ (y != 0.0)"),
		SecFunction:   cHelper("sec", "double x", "1.0/cos(x)"),
		CscFunction:   cHelper("csc", "double x", "1.0/sin(x)"),
		CotFunction:   cHelper("cot", "double x", "1.0/tan(x)"),
		SechFunction:  cHelper("sech", "double x", "1.0/cosh(x)"),
		CschFunction:  cHelper("csch", "double x", "1.0/sinh(x)"),
		CothFunction:  cHelper("coth", "double x", "1.0/tanh(x)"),
		AsecFunction:  cHelper("asec", "double x", "acos(1.0/x)"),
		AcscFunction:  cHelper("acsc", "double x", "asin(1.0/x)"),
		AcotFunction:  cHelper("acot", "double x", "atan(1.0/x)"),
		AsechFunction: cHelper("asech", "double x", "acosh(1.0/x)"),
		AcschFunction: cHelper("acsch", "double x", "asinh(1.0/x)"),
		AcothFunction: cHelper("acoth", "double x", "atanh(1.0/x)"),

		VOI:                    "voi",
		StatesArray:            "states",
		RatesArray:             "rates",
		ConstantsArray:         "constants",
		ComputedConstantsArray: "computedConstants",
		AlgebraicArray:         "algebraic",
		ExternalsArray:         "externals",

		DoubleParameter:   "double [NAME]",
		ArrayParameter:    "double *[NAME]",
		CallbackParameter: "ExternalVariable externalVariable",

		InterfaceVersion:      "extern const char VERSION[];\n",
		ImplementationVersion: "const char VERSION[] = \"[VERSION]\";\n",
		InterfaceCount:        "extern const size_t [NAME];\n",
		ImplementationCount:   "const size_t [NAME] = [VALUE];\n",

		VariableInfoType: "typedef struct {\n" +
			"    char name[[NAME_SIZE]];\n" +
			"    char units[[UNITS_SIZE]];\n" +
			"    char component[[COMPONENT_SIZE]];\n" +
			"} VariableInfo;\n",
		InterfaceVoiInfo:           "extern const VariableInfo VOI_INFO;\n",
		ImplementationVoiInfo:      "const VariableInfo VOI_INFO = [CODE];\n",
		InterfaceVariableInfo:      "extern const VariableInfo [NAME][];\n",
		ImplementationVariableInfo: "const VariableInfo [NAME][] = {\n[CODE]};\n",
		VariableInfoEntry:          "{\"[NAME]\", \"[UNITS]\", \"[COMPONENT]\"}",
		ArrayItemSeparator:         ",",

		CreateStatesArray:            "createStatesArray",
		CreateConstantsArray:         "createConstantsArray",
		CreateComputedConstantsArray: "createComputedConstantsArray",
		CreateAlgebraicArray:         "createAlgebraicArray",
		CreateExternalsArray:         "createExternalsArray",
		InterfaceCreateArray:         "double * [NAME]();\n",
		ImplementationCreateArray: "double * [NAME]()\n" +
			"{\n" +
			"    double *res = (double *) malloc([COUNT]*sizeof(double));\n" +
			"\n" +
			"    for (size_t i = 0; i < [COUNT]; ++i) {\n" +
			"        res[i] = NAN;\n" +
			"    }\n" +
			"\n" +
			"    return res;\n" +
			"}\n",
		InterfaceDeleteArray: "void deleteArray(double *array);\n",
		ImplementationDeleteArray: "void deleteArray(double *array)\n" +
			"{\n" +
			"    free(array);\n" +
			"}\n",

		ExternalVariableType:     "typedef double (* ExternalVariable)([PARAMETERS], size_t index);\n",
		ExternalVariableCallback: "externalVariable([ARGUMENTS], [INDEX])",

		FunctionDeclaration: "void [NAME]([PARAMETERS]);\n",
		FunctionDefinition:  "void [NAME]([PARAMETERS])\n{\n[CODE]}\n",

		InitialiseVariables:      "initialiseVariables",
		ComputeComputedConstants: "computeComputedConstants",
		ComputeRates:             "computeRates",
		ComputeVariables:         "computeVariables",

		NLASolverDeclaration: "extern void nlaSolve(void (*objectiveFunction)(double *, double *, void *),\n" +
			"                     double *u, size_t n, void *data);\n",
		RootFindingInfoType:  "typedef struct {\n[CODE]} RootFindingInfo;\n",
		RootFindingInfoField: "    [PARAMETER];\n",
		ObjectiveFunction:    "void objectiveFunction[INDEX](double *u, double *f, void *data)\n{\n[CODE]}\n",
		FindRoot:             "void findRoot[INDEX]([PARAMETERS])\n{\n[CODE]}\n",
		FindRootCall:         "findRoot[INDEX]([ARGUMENTS])",
		ObjectiveUnpack:      "[PARAMETER] = ((RootFindingInfo *) data)->[NAME]",
		FindRootData:         "RootFindingInfo rfi = { [ARGUMENTS] }",
		FindRootUnknowns:     "double u[[SIZE]]",
		NLASolveCall:         "nlaSolve(objectiveFunction[INDEX], u, [SIZE], &rfi)",
		UnknownsArray:        "u",
		ResidualsArray:       "f",
	}
}

func cHelper(name, params, body string) string {
	return "double " + name + "(" + params + ")\n{\n    return " + body + ";\n}\n"
}
