// Package output renders csrftok command results.
//
// Results are printed as an aligned table (default), JSON or YAML.
// Structs render as FIELD/VALUE tables, slices of structs as one row per
// element. ProgressBar reports benchmark progress on a terminal.
package output
