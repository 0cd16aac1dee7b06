package quantum

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

// MaxSimulatedQubits bounds the statevector size.
const MaxSimulatedQubits = 16

// BasisState returns the statevector |i> over n qubits.
func BasisState(n, i int) []complex128 {
	state := make([]complex128, 1<<n)
	state[i] = 1
	return state
}

// Simulate applies c to state in place. Composite ops are expanded through their
// definitions as needed.
func Simulate(c *Circuit, state []complex128) error {
	if c.NumQubits > MaxSimulatedQubits {
		return errors.Errorf("simulate: %d qubits exceeds limit of %d", c.NumQubits, MaxSimulatedQubits)
	}
	if len(state) != 1<<c.NumQubits {
		return errors.Errorf("simulate: state has %d amplitudes, circuit needs %d", len(state), 1<<c.NumQubits)
	}
	for _, op := range c.Ops {
		if err := apply(c.NumQubits, op, state); err != nil {
			return err
		}
	}
	return nil
}

func apply(n int, op Op, state []complex128) error {
	switch op.Name {
	case GateX, GateCX, GateCCX, GateC3X, GateC4X, GateMCX:
		applyControlledX(op, state)
		return nil
	case GateZ, GateCZ, GateMCZ:
		applyControlledZ(op, state)
		return nil
	case GateH:
		applyH(op.Target(), state)
		return nil
	}

	def := definition(op)
	if def == nil {
		return errors.Errorf("simulate: unsupported gate %q", op.Name)
	}
	wrapped := NewCircuit(n)
	wrapped.Ops = append(wrapped.Ops, op)
	for _, inner := range wrapped.Decompose().Ops {
		if err := apply(n, inner, state); err != nil {
			return err
		}
	}
	return nil
}

func controlMask(op Op) int {
	mask := 0
	for _, q := range op.Qubits[:len(op.Qubits)-1] {
		mask |= 1 << q
	}
	return mask
}

func applyControlledX(op Op, state []complex128) {
	mask := controlMask(op)
	bit := 1 << op.Target()
	for i := range state {
		if i&bit == 0 && i&mask == mask {
			state[i], state[i|bit] = state[i|bit], state[i]
		}
	}
}

func applyControlledZ(op Op, state []complex128) {
	mask := controlMask(op) | 1<<op.Target()
	for i := range state {
		if i&mask == mask {
			state[i] = -state[i]
		}
	}
}

func applyH(target int, state []complex128) {
	bit := 1 << target
	s := complex(1/math.Sqrt2, 0)
	for i := range state {
		if i&bit != 0 {
			continue
		}
		a, b := state[i], state[i|bit]
		state[i] = s * (a + b)
		state[i|bit] = s * (a - b)
	}
}

// PhaseFlips simulates c on every basis state and reports, per state, whether
// the circuit acts as a phase flip (-1) or identity (+1). It fails if any basis
// state is mapped to anything other than ±itself.
func PhaseFlips(c *Circuit, tolerance float64) ([]bool, error) {
	size := 1 << c.NumQubits
	flips := make([]bool, size)
	for i := 0; i < size; i++ {
		state := BasisState(c.NumQubits, i)
		if err := Simulate(c, state); err != nil {
			return nil, err
		}
		for j, amp := range state {
			if j != i && cmplx.Abs(amp) > tolerance {
				return nil, errors.Errorf("basis state %d leaks amplitude %v into %d", i, amp, j)
			}
		}
		switch {
		case cmplx.Abs(state[i]-1) <= tolerance:
			flips[i] = false
		case cmplx.Abs(state[i]+1) <= tolerance:
			flips[i] = true
		default:
			return nil, errors.Errorf("basis state %d has phase %v, want ±1", i, state[i])
		}
	}
	return flips, nil
}
