package quantum

import (
	"fmt"

	"github.com/pkg/errors"
)

// Gate names.
const (
	GateX           = "x"
	GateZ           = "z"
	GateH           = "h"
	GateCX          = "cx"
	GateCCX         = "ccx"
	GateC3X         = "c3x"
	GateC4X         = "c4x"
	GateMCX         = "mcx"
	GateCZ          = "cz"
	GateMCZ         = "mcz"
	GatePhaseOracle = "phase_oracle"
)

// Op is one gate application. Qubits lists controls first and the target last.
type Op struct {
	Name   string
	Qubits []int

	// Def is the gate's own definition over local qubits 0..len(Qubits)-1.
	// Only composite gates built by this package set it.
	Def *Circuit

	// Label is the text drawn for composite gates.
	Label string
}

// NumControls returns the number of control qubits for controlled gates.
func (o Op) NumControls() int {
	switch o.Name {
	case GateCX, GateCCX, GateC3X, GateC4X, GateMCX, GateCZ, GateMCZ:
		return len(o.Qubits) - 1
	}
	return 0
}

// Target returns the last qubit of the op.
func (o Op) Target() int {
	return o.Qubits[len(o.Qubits)-1]
}

// span returns the lowest and highest qubit touched by the op.
func (o Op) span() (lo, hi int) {
	lo, hi = o.Qubits[0], o.Qubits[0]
	for _, q := range o.Qubits[1:] {
		lo = min(lo, q)
		hi = max(hi, q)
	}
	return lo, hi
}

// Circuit is an ordered list of ops over NumQubits qubits.
type Circuit struct {
	NumQubits int
	Ops       []Op
}

// NewCircuit creates an empty circuit.
func NewCircuit(numQubits int) *Circuit {
	return &Circuit{NumQubits: numQubits}
}

// Append adds op to the end of the circuit. Qubits must be in range and distinct,
// and a composite op's definition must match its width.
func (c *Circuit) Append(op Op) error {
	if len(op.Qubits) == 0 {
		return errors.Errorf("append %s: no qubits", op.Name)
	}
	seen := make(map[int]bool, len(op.Qubits))
	for _, q := range op.Qubits {
		if q < 0 || q >= c.NumQubits {
			return errors.Errorf("append %s: qubit %d out of range [0,%d)", op.Name, q, c.NumQubits)
		}
		if seen[q] {
			return errors.Errorf("append %s: qubit %d used twice", op.Name, q)
		}
		seen[q] = true
	}
	if op.Def != nil && op.Def.NumQubits != len(op.Qubits) {
		return errors.Errorf("append %s: definition has %d qubits, op has %d", op.Name, op.Def.NumQubits, len(op.Qubits))
	}
	c.Ops = append(c.Ops, op)
	return nil
}

// mustAppend is Append for ops built internally from already validated qubits.
func (c *Circuit) mustAppend(op Op) {
	if err := c.Append(op); err != nil {
		panic(err)
	}
}

// Decompose returns a new circuit with every op replaced by its definition,
// one level deep. Basis gates are copied unchanged.
func (c *Circuit) Decompose() *Circuit {
	out := NewCircuit(c.NumQubits)
	for _, op := range c.Ops {
		def := definition(op)
		if def == nil {
			out.Ops = append(out.Ops, op)
			continue
		}
		for _, inner := range def.Ops {
			mapped := inner
			mapped.Qubits = make([]int, len(inner.Qubits))
			for i, q := range inner.Qubits {
				mapped.Qubits[i] = op.Qubits[q]
			}
			out.Ops = append(out.Ops, mapped)
		}
	}
	return out
}

// IsBasis reports whether every op is a basis gate.
func (c *Circuit) IsBasis() bool {
	for _, op := range c.Ops {
		if definition(op) != nil {
			return false
		}
	}
	return true
}

// CountOps returns the number of ops per gate name.
func (c *Circuit) CountOps() map[string]int {
	counts := make(map[string]int)
	for _, op := range c.Ops {
		counts[op.Name]++
	}
	return counts
}

// MaxControls returns the largest control count of any op.
func (c *Circuit) MaxControls() int {
	m := 0
	for _, op := range c.Ops {
		m = max(m, op.NumControls())
	}
	return m
}

func (c *Circuit) String() string {
	return fmt.Sprintf("Circuit(qubits=%d, ops=%d)", c.NumQubits, len(c.Ops))
}

// XGateName returns the X-family gate name for k controls.
func XGateName(k int) string {
	switch k {
	case 0:
		return GateX
	case 1:
		return GateCX
	case 2:
		return GateCCX
	case 3:
		return GateC3X
	case 4:
		return GateC4X
	}
	return GateMCX
}

// ZGateName returns the Z-family gate name for k controls.
func ZGateName(k int) string {
	switch k {
	case 0:
		return GateZ
	case 1:
		return GateCZ
	}
	return GateMCZ
}

// definition returns the one-level expansion of op over its local qubits,
// or nil for basis gates.
func definition(op Op) *Circuit {
	if op.Def != nil {
		return op.Def
	}

	n := len(op.Qubits)
	switch op.Name {
	case GateCZ, GateMCZ:
		def := NewCircuit(n)
		local := make([]int, n)
		for i := range local {
			local[i] = i
		}
		def.mustAppend(Op{Name: GateH, Qubits: []int{n - 1}})
		def.mustAppend(Op{Name: XGateName(n - 1), Qubits: local})
		def.mustAppend(Op{Name: GateH, Qubits: []int{n - 1}})
		return def
	}
	return nil
}
