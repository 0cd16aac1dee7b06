// Package quantum is a small gate-level circuit library: enough to synthesize a
// phase oracle from a boolean expression, expand it, serialize it as OpenQASM 2.0
// and draw it.
//
// # Qubit ordering
//
// Basis state |i> has qubit j equal to bit j of i. Variable j of a logic
// expression (in order of first appearance) is qubit j.
//
// # Gates
//
// Every Op lists its qubits with controls first and the target last. The basis
// set is x, z, h and the X-family cx, ccx, c3x, c4x, mcx. Two composite gates
// have standard one-level definitions:
//
//	cz   c,t        => h t; cx c,t; h t
//	mcz  c1..ck,t   => h t; <x-family with k controls> c1..ck,t; h t
//
// Gates built by NewPhaseOracle carry their own definition in Op.Def.
//
// # Decomposition
//
// Decompose expands every op by exactly one level. Callers choose how many
// rounds to apply; nothing here loops until only basis gates remain.
package quantum
