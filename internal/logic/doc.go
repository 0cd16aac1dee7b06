// Package logic turns truth tables into boolean expressions and back.
//
// A truth table is a string of '0'/'1' characters of length 2^n. Row i assigns
// variable xj the value of bit j of i, so the least significant bit of the row
// index drives x0. This is the qubit ordering used by the quantum package: x0
// is qubit 0.
//
// FromTruthTable builds a disjunctive normal form with one minterm per true row:
//
//	"0110" => "(x0 & ~x1) | (~x0 & x1)"
//
// Parse reads the same grammar back into an Expr tree:
//
//	expr   ::= term ( "|" term )*
//	term   ::= factor ( "&" factor )*
//	factor ::= "~" factor | "(" expr ")" | ident
//	ident  ::= [A-Za-z_][A-Za-z0-9_]*
package logic
