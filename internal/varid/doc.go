/*
Package varid parses and formats variable addresses of the form
`component.variable`, the way variables are named on the command line and in
analysis reports.

Both parts must be identifiers: a letter or underscore followed by letters,
digits or underscores.
*/
package varid
