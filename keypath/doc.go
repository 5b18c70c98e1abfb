// Package keypath addresses nested locations inside reflected values and
// type descriptions.
//
// A path is a sequence of segments:
//
//	.name    named field access (struct or struct-variant field)
//	.N       positional field access (tuple, tuple struct, tuple variant)
//	[expr]   indexed access: integer literal for lists, any literal for maps
//	::Name   enum variant selector; narrows, does not traverse
//
// The same Path resolves against a live value (Resolve, Get, Set) or against
// a type graph (TypeAt); the two resolvers agree on every structurally valid
// path that selects enum variants explicitly.
package keypath
