package oracle

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	"github.com/roach88/qsynth/internal/logic"
	"github.com/roach88/qsynth/internal/quantum"
)

const (
	// DecomposeRounds is how many times the oracle circuit is expanded.
	DecomposeRounds = 2

	// DrawScale is the scale factor passed to the renderer.
	DrawScale = 1.0

	// MaxVariables caps the truth table at 2^8 rows.
	MaxVariables = 8
)

// DrawStyle is the renderer style for every diagram.
var DrawStyle = quantum.Style{Name: quantum.StyleBW}

// Result is a successful synthesis.
type Result struct {
	Expression string
	NumQubits  int
	QASM       string
	PNG        []byte
	Circuit    *quantum.Circuit
	Table      []bool
}

// ImageBase64 returns the diagram as standard base64.
func (r *Result) ImageBase64() string {
	return base64.StdEncoding.EncodeToString(r.PNG)
}

// NormalizeArg trims surrounding whitespace and then one layer of matching
// double or single quotes.
func NormalizeArg(arg string) string {
	s := strings.TrimSpace(arg)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return s
}

// Synthesize runs the whole chain for an already normalized truth table:
// expression, phase oracle, two rounds of decomposition, diagram and QASM.
func Synthesize(table string) (*Result, error) {
	n, err := logic.NumVariables(table)
	if err != nil {
		return nil, newError(KindInvalidInput, err)
	}
	if n > MaxVariables {
		return nil, newError(KindInvalidInput, errors.Errorf("%d variables exceeds limit of %d", n, MaxVariables))
	}

	expr, err := logic.FromTruthTable(table)
	if err != nil {
		return nil, newError(KindInvalidInput, err)
	}

	po, err := quantum.NewPhaseOracle(expr)
	if err != nil {
		return nil, newError(KindSynthesisFailure, err)
	}

	qc := quantum.NewCircuit(po.NumQubits())
	if err := qc.Append(po.Op); err != nil {
		return nil, newError(KindSynthesisFailure, err)
	}
	for i := 0; i < DecomposeRounds; i++ {
		qc = qc.Decompose()
	}

	img, err := quantum.Draw(qc, DrawStyle, DrawScale)
	if err != nil {
		return nil, newError(KindRenderFailure, err)
	}
	data, err := quantum.EncodePNG(img)
	if err != nil {
		return nil, newError(KindRenderFailure, err)
	}

	return &Result{
		Expression: expr,
		NumQubits:  qc.NumQubits,
		QASM:       quantum.QASM(qc),
		PNG:        data,
		Circuit:    qc,
		Table:      po.Table,
	}, nil
}

// Verify simulates the synthesized circuit and checks that it flips the phase
// of exactly the true rows of the table.
func Verify(r *Result) error {
	flips, err := quantum.PhaseFlips(r.Circuit, 1e-9)
	if err != nil {
		return newError(KindSynthesisFailure, errors.Wrap(err, "verify"))
	}
	for i, flipped := range flips {
		if flipped != r.Table[i] {
			return newError(KindSynthesisFailure, errors.Errorf("verify: row %d phase flip=%v, want %v", i, flipped, r.Table[i]))
		}
	}
	return nil
}
