// Package calc evaluates arithmetic expressions.
//
// An expression is made of decimal numbers, the operators + - * /, brackets,
// the functions sin, cos and exp, and the constants pi and e. Spaces are
// ignored and names are case-insensitive, so "  SiN ( PI/2 ) " is the same as
// "sin(pi/2)". The grammar is
//
//	Sum      = Mult { ("+" | "-") Mult }
//	Mult     = Tightest { ("*" | "/") Tightest }
//	Tightest = "(" Sum ")" | Func "(" Sum ")" | "PI" | "E" | number | "-" Mult
//	Func     = "SIN" | "COS" | "EXP"
//
// Note that negation applies to a whole product: "-2*3" is "-(2*3)", and
// "8/-2/2" is "8/-(2/2)".
//
// Expressions are evaluated while they are parsed. There is no syntax tree.
// Eval computes with float64, EvalBig with *big.Float to any precision, and
// EvalWith with any arithmetic implementing Number.
package calc
