package profile

// Profile is the set of tokens and templates the generator renders with. It
// is a plain value: copies are independent and nothing in the generator
// changes it.
//
// Templates use bracketed placeholders such as [NAME], [CODE] or [INDEX];
// the generator documents which ones each template receives. An empty
// helper template means the target has the function built in.
type Profile struct {
	// Name identifies the profile in a Registry. It comes from the block label
	// when a profile is loaded from HCL.
	Name string

	// Files.
	HasInterface            bool   `hcl:"has_interface,optional"`
	InterfaceExtension      string `hcl:"interface_extension,optional"`
	ImplementationExtension string `hcl:"implementation_extension,optional"`

	// CommentTemplate wraps one line of comment: [CODE].
	CommentTemplate string `hcl:"comment_template,optional"`

	// OriginComment: [PROFILE], [VERSION].
	OriginComment   string `hcl:"origin_comment,optional"`
	InterfaceHeader string `hcl:"interface_header,optional"`

	// ImplementationHeader: [INTERFACE_FILE_NAME].
	ImplementationHeader string `hcl:"implementation_header,optional"`
	Indent               string `hcl:"indent,optional"`
	StatementTerminator  string `hcl:"statement_terminator,optional"`

	// Relational and logical operators.
	Assignment     string `hcl:"assignment,optional"`
	Eq             string `hcl:"eq,optional"`
	Neq            string `hcl:"neq,optional"`
	Lt             string `hcl:"lt,optional"`
	Leq            string `hcl:"leq,optional"`
	Gt             string `hcl:"gt,optional"`
	Geq            string `hcl:"geq,optional"`
	And            string `hcl:"and,optional"`
	Or             string `hcl:"or,optional"`
	Not            string `hcl:"not,optional"`
	HasXorOperator bool   `hcl:"has_xor_operator,optional"`
	Xor            string `hcl:"xor,optional"`

	// Arithmetic operators and functions.
	Plus             string `hcl:"plus,optional"`
	Minus            string `hcl:"minus,optional"`
	Times            string `hcl:"times,optional"`
	Divide           string `hcl:"divide,optional"`
	HasPowerOperator bool   `hcl:"has_power_operator,optional"`
	Power            string `hcl:"power,optional"`
	SquareRoot       string `hcl:"square_root,optional"`
	Abs              string `hcl:"abs,optional"`
	Exp              string `hcl:"exp,optional"`
	Ln               string `hcl:"ln,optional"`
	Log              string `hcl:"log,optional"`
	Ceiling          string `hcl:"ceiling,optional"`
	Floor            string `hcl:"floor,optional"`
	Min              string `hcl:"min,optional"`
	Max              string `hcl:"max,optional"`
	Rem              string `hcl:"rem,optional"`

	// Trigonometric functions.
	Sin   string `hcl:"sin,optional"`
	Cos   string `hcl:"cos,optional"`
	Tan   string `hcl:"tan,optional"`
	Sec   string `hcl:"sec,optional"`
	Csc   string `hcl:"csc,optional"`
	Cot   string `hcl:"cot,optional"`
	Sinh  string `hcl:"sinh,optional"`
	Cosh  string `hcl:"cosh,optional"`
	Tanh  string `hcl:"tanh,optional"`
	Sech  string `hcl:"sech,optional"`
	Csch  string `hcl:"csch,optional"`
	Coth  string `hcl:"coth,optional"`
	Asin  string `hcl:"asin,optional"`
	Acos  string `hcl:"acos,optional"`
	Atan  string `hcl:"atan,optional"`
	Asec  string `hcl:"asec,optional"`
	Acsc  string `hcl:"acsc,optional"`
	Acot  string `hcl:"acot,optional"`
	Asinh string `hcl:"asinh,optional"`
	Acosh string `hcl:"acosh,optional"`
	Atanh string `hcl:"atanh,optional"`
	Asech string `hcl:"asech,optional"`
	Acsch string `hcl:"acsch,optional"`
	Acoth string `hcl:"acoth,optional"`

	// Piecewise statements: [CONDITION], [IF_STATEMENT], [ELSE_STATEMENT].
	HasConditionalOperator  bool   `hcl:"has_conditional_operator,optional"`
	ConditionalOperatorIf   string `hcl:"conditional_operator_if,optional"`
	ConditionalOperatorElse string `hcl:"conditional_operator_else,optional"`
	PiecewiseIf             string `hcl:"piecewise_if,optional"`
	PiecewiseElse           string `hcl:"piecewise_else,optional"`

	// Named constants.
	True  string `hcl:"true,optional"`
	False string `hcl:"false,optional"`
	E     string `hcl:"e,optional"`
	Pi    string `hcl:"pi,optional"`
	Inf   string `hcl:"inf,optional"`
	NaN   string `hcl:"nan,optional"`

	// Helper implementations, emitted once when the function is used.
	XorFunction   string `hcl:"xor_function,optional"`
	SecFunction   string `hcl:"sec_function,optional"`
	CscFunction   string `hcl:"csc_function,optional"`
	CotFunction   string `hcl:"cot_function,optional"`
	SechFunction  string `hcl:"sech_function,optional"`
	CschFunction  string `hcl:"csch_function,optional"`
	CothFunction  string `hcl:"coth_function,optional"`
	AsecFunction  string `hcl:"asec_function,optional"`
	AcscFunction  string `hcl:"acsc_function,optional"`
	AcotFunction  string `hcl:"acot_function,optional"`
	AsechFunction string `hcl:"asech_function,optional"`
	AcschFunction string `hcl:"acsch_function,optional"`
	AcothFunction string `hcl:"acoth_function,optional"`

	// Variables.
	VOI                    string `hcl:"voi,optional"`
	StatesArray            string `hcl:"states_array,optional"`
	RatesArray             string `hcl:"rates_array,optional"`
	ConstantsArray         string `hcl:"constants_array,optional"`
	ComputedConstantsArray string `hcl:"computed_constants_array,optional"`
	AlgebraicArray         string `hcl:"algebraic_array,optional"`
	ExternalsArray         string `hcl:"externals_array,optional"`

	// Parameters: [NAME]. CallbackParameter is the whole external variable
	// callback parameter.
	DoubleParameter   string `hcl:"double_parameter,optional"`
	ArrayParameter    string `hcl:"array_parameter,optional"`
	CallbackParameter string `hcl:"callback_parameter,optional"`

	// Version and counts: [VERSION], [NAME], [VALUE].
	InterfaceVersion      string `hcl:"interface_version,optional"`
	ImplementationVersion string `hcl:"implementation_version,optional"`
	InterfaceCount        string `hcl:"interface_count,optional"`
	ImplementationCount   string `hcl:"implementation_count,optional"`

	// Variable information: [NAME_SIZE], [UNITS_SIZE], [COMPONENT_SIZE] for
	// the type; [NAME], [CODE] for the tables; [NAME], [UNITS], [COMPONENT]
	// for an entry.
	VariableInfoType           string `hcl:"variable_info_type,optional"`
	InterfaceVoiInfo           string `hcl:"interface_voi_info,optional"`
	ImplementationVoiInfo      string `hcl:"implementation_voi_info,optional"`
	InterfaceVariableInfo      string `hcl:"interface_variable_info,optional"`
	ImplementationVariableInfo string `hcl:"implementation_variable_info,optional"`
	VariableInfoEntry          string `hcl:"variable_info_entry,optional"`
	ArrayItemSeparator         string `hcl:"array_item_separator,optional"`

	// Array constructors and destructor: [NAME], [COUNT].
	CreateStatesArray            string `hcl:"create_states_array,optional"`
	CreateConstantsArray         string `hcl:"create_constants_array,optional"`
	CreateComputedConstantsArray string `hcl:"create_computed_constants_array,optional"`
	CreateAlgebraicArray         string `hcl:"create_algebraic_array,optional"`
	CreateExternalsArray         string `hcl:"create_externals_array,optional"`
	InterfaceCreateArray         string `hcl:"interface_create_array,optional"`
	ImplementationCreateArray    string `hcl:"implementation_create_array,optional"`
	InterfaceDeleteArray         string `hcl:"interface_delete_array,optional"`
	ImplementationDeleteArray    string `hcl:"implementation_delete_array,optional"`

	// External variables: [PARAMETERS] for the type; [ARGUMENTS] and [INDEX]
	// for the callback invocation.
	ExternalVariableType     string `hcl:"external_variable_type,optional"`
	ExternalVariableCallback string `hcl:"external_variable_callback,optional"`

	// Functions: [NAME], [PARAMETERS], [CODE].
	FunctionDeclaration string `hcl:"function_declaration,optional"`
	FunctionDefinition  string `hcl:"function_definition,optional"`
	EmptyFunctionBody   string `hcl:"empty_function_body,optional"`

	InitialiseVariables      string `hcl:"initialise_variables,optional"`
	ComputeComputedConstants string `hcl:"compute_computed_constants,optional"`
	ComputeRates             string `hcl:"compute_rates,optional"`
	ComputeVariables         string `hcl:"compute_variables,optional"`

	// Nonlinear algebraic systems. [INDEX] numbers the group; [PARAMETER] is
	// a typed parameter and [NAME] its name; [ARGUMENTS] lists the values
	// handed to the solver; [SIZE] is the number of unknowns.
	NLASolverDeclaration string `hcl:"nla_solver_declaration,optional"`
	RootFindingInfoType  string `hcl:"root_finding_info_type,optional"`
	RootFindingInfoField string `hcl:"root_finding_info_field,optional"`
	ObjectiveFunction    string `hcl:"objective_function,optional"`
	FindRoot             string `hcl:"find_root,optional"`
	FindRootCall         string `hcl:"find_root_call,optional"`
	ObjectiveUnpack      string `hcl:"objective_unpack,optional"`
	FindRootData         string `hcl:"find_root_data,optional"`
	FindRootUnknowns     string `hcl:"find_root_unknowns,optional"`
	NLASolveCall         string `hcl:"nla_solve_call,optional"`
	UnknownsArray        string `hcl:"unknowns_array,optional"`
	ResidualsArray       string `hcl:"residuals_array,optional"`
}
