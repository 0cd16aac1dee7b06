package quantum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qsynth/internal/logic"
)

const tolerance = 1e-9

// synthesize builds the oracle for a truth table and wraps it in a circuit,
// the same way the oracle tool does.
func synthesize(t *testing.T, table string) (*PhaseOracle, *Circuit) {
	t.Helper()
	expr, err := logic.FromTruthTable(table)
	require.NoError(t, err)

	oracle, err := NewPhaseOracle(expr)
	require.NoError(t, err)

	qc := NewCircuit(oracle.NumQubits())
	require.NoError(t, qc.Append(oracle.Op))
	return oracle, qc
}

func TestNewPhaseOracle_XOR(t *testing.T) {
	oracle, _ := synthesize(t, "0110")

	assert.Equal(t, 2, oracle.NumQubits())
	assert.Equal(t, []string{"x0", "x1"}, oracle.Variables)
	assert.Equal(t, []bool{false, true, true, false}, oracle.Table)
	assert.Equal(t, GatePhaseOracle, oracle.Op.Name)

	def := oracle.Op.Def
	require.NotNil(t, def)
	names := make([]string, len(def.Ops))
	for i, op := range def.Ops {
		names[i] = op.Name
	}
	// Row 1 flips x1 around the CZ, row 2 flips x0.
	assert.Equal(t, []string{"x", "cz", "x", "x", "cz", "x"}, names)
	assert.Equal(t, []int{1}, def.Ops[0].Qubits)
	assert.Equal(t, []int{0}, def.Ops[3].Qubits)
}

func TestNewPhaseOracle_EmptyExpression(t *testing.T) {
	_, err := NewPhaseOracle("")
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestNewPhaseOracle_SyntaxError(t *testing.T) {
	_, err := NewPhaseOracle("(x0 &")
	require.Error(t, err)

	var se *logic.SyntaxError
	assert.ErrorAs(t, err, &se)
}

func TestNewPhaseOracle_Contradiction(t *testing.T) {
	oracle, err := NewPhaseOracle("x0 & ~x0")
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.NumQubits())
	assert.Empty(t, oracle.Op.Def.Ops)
}

func TestPhaseOracle_SimulatesTruthTable(t *testing.T) {
	tables := []string{
		"01",
		"10",
		"0110",
		"1111",
		"1000",
		"10010110",
		"00000001",
		"0110100110010110",
		"00000000000000010000000000000001",
	}

	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			_, qc := synthesize(t, table)

			// Every decomposition depth must implement the same unitary.
			for depth := 0; depth <= 3; depth++ {
				flips, err := PhaseFlips(qc, tolerance)
				require.NoError(t, err, "depth %d", depth)
				for i, flipped := range flips {
					assert.Equal(t, table[i] == '1', flipped, "depth %d row %d", depth, i)
				}
				qc = qc.Decompose()
			}
		})
	}
}

func TestDecompose_TwiceReachesToffoliLevel(t *testing.T) {
	_, qc := synthesize(t, "00000001")
	qc = qc.Decompose().Decompose()

	assert.True(t, qc.IsBasis())
	assert.Equal(t, map[string]int{"h": 2, "ccx": 1}, qc.CountOps())
}

func TestDecompose_TwiceIsAFixedPolicy(t *testing.T) {
	// Six variables leave a five-control X after two rounds: basis in this
	// package, but not a Toffoli/CNOT-level circuit.
	table := strings.Repeat("0", 63) + "1"
	_, qc := synthesize(t, table)
	qc = qc.Decompose().Decompose()

	assert.True(t, qc.IsBasis())
	assert.Equal(t, 5, qc.MaxControls())
	assert.Equal(t, 1, qc.CountOps()[GateMCX])

	// One more round changes nothing.
	again := qc.Decompose()
	assert.Equal(t, qc.Ops, again.Ops)
}

func TestDecompose_OneRoundKeepsZFamily(t *testing.T) {
	_, qc := synthesize(t, "0001")
	once := qc.Decompose()

	assert.False(t, once.IsBasis())
	assert.Equal(t, map[string]int{"cz": 1}, once.CountOps())
}
