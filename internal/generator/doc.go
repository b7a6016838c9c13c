// Package generator turns an analysed model into source code.
//
// Everything the generator writes is spelled by a profile.Profile. The output
// is a pure function of the analysed model, the profile and the options: the
// same inputs always give byte-identical files.
//
// A generated implementation holds, in order, the version, the variable
// counts and metadata tables, the helper functions the equations need, the
// array constructors, one objective function and one driver per nonlinear
// algebraic group, and the four entry points:
//
//	initialiseVariables       initial values, constants and initial guesses
//	computeComputedConstants  equations depending on constants only
//	computeRates              rates of the states at a given voi
//	computeVariables          algebraic variables at a given voi
//
// Models without states have no computeRates and their entry points take no
// voi, states or rates.
package generator
