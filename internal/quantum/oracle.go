package quantum

import (
	"github.com/pkg/errors"

	"github.com/roach88/qsynth/internal/logic"
)

// ErrEmptyExpression is returned when an oracle is requested for an empty expression.
var ErrEmptyExpression = errors.New("cannot synthesize an oracle from an empty expression")

// PhaseOracle is a synthesized phase oracle: the op to append plus the
// variable order that maps onto its qubits.
type PhaseOracle struct {
	Op        Op
	Variables []string
	Table     []bool
}

// NumQubits returns the oracle width.
func (p *PhaseOracle) NumQubits() int {
	return len(p.Op.Qubits)
}

// NewPhaseOracle synthesizes the gate that maps |x> to (-1)^f(x)|x> for the
// boolean expression f. Qubit j carries the j-th variable in order of first
// appearance.
//
// The definition has one block per true row r: X on every qubit whose bit of r
// is 0, a Z-family gate over all qubits, then the same X layer again.
func NewPhaseOracle(expression string) (*PhaseOracle, error) {
	e, err := logic.Parse(expression)
	if errors.Is(err, logic.ErrEmptyExpression) {
		return nil, ErrEmptyExpression
	}
	if err != nil {
		return nil, errors.Wrap(err, "parse expression")
	}

	table, vars := logic.TruthTable(e)
	n := len(vars)

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	def := NewCircuit(n)
	for row, on := range table {
		if !on {
			continue
		}
		var zeros []int
		for j := 0; j < n; j++ {
			if row>>j&1 == 0 {
				zeros = append(zeros, j)
			}
		}
		for _, q := range zeros {
			def.mustAppend(Op{Name: GateX, Qubits: []int{q}})
		}
		def.mustAppend(Op{Name: ZGateName(n - 1), Qubits: append([]int(nil), all...)})
		for _, q := range zeros {
			def.mustAppend(Op{Name: GateX, Qubits: []int{q}})
		}
	}

	return &PhaseOracle{
		Op: Op{
			Name:   GatePhaseOracle,
			Qubits: all,
			Def:    def,
			Label:  "Oracle",
		},
		Variables: vars,
		Table:     table,
	}, nil
}
