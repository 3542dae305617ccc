// Package linsys loads square linear systems from delimited text files.
//
// A file holds one record per line and one field per delimiter-separated
// column. Which optional vectors are present is inferred purely from the
// shape: with n rows, n columns is the coefficient matrix alone, n+1 adds
// the result vector b and n+2 adds the start vector x⁰.
//
//	4,1,1,0      A = [[4 1] [1 3]], b = [1 2], x⁰ = [0 0]
//	1,3,2,0
//
// Loading takes two streaming passes: Dimensions measures the shape and
// validates that every record has the same width, Interpret maps the shape
// to a Schema, then the second pass tokenizes every field through
// ParseField and routes it into the matrix or the proper vector.
// Blank lines are ignored and the final record may omit its terminator.
//
// All failures are typed (*ParseError, *MalformedFileError,
// *UnsupportedShapeError, *FieldConversionError) and unwrap to package
// sentinels; no partially populated System is ever returned.
package linsys
