package cli

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qsynth/internal/oracle"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(arg string) oracle.Response {
	return m.Called(arg).Get(0).(oracle.Response)
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestOracle_NoInput(t *testing.T) {
	out, err := executeRoot(t, "oracle")
	require.NoError(t, err)
	assert.Equal(t, "{\"success\":false,\"error\":\"No input\"}\n", out)
}

func TestOracle_Success(t *testing.T) {
	out, err := executeRoot(t, "oracle", "0110")
	require.NoError(t, err)

	var resp oracle.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, 2, resp.NumQubits)
	assert.Contains(t, resp.QASM, "OPENQASM 2.0;")

	raw, err := base64.StdEncoding.DecodeString(resp.Image)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
}

func TestOracle_QuotedArgument(t *testing.T) {
	quoted, err := executeRoot(t, "oracle", `"1010"`)
	require.NoError(t, err)
	plain, err := executeRoot(t, "oracle", "1010")
	require.NoError(t, err)
	assert.Equal(t, plain, quoted)
}

func TestOracle_FailureExitsZero(t *testing.T) {
	out, err := executeRoot(t, "oracle", "011")
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "synthesis failed: ")
	assert.NotContains(t, resp, "qasm")
}

func TestOracle_Verify(t *testing.T) {
	out, err := executeRoot(t, "oracle", "--verify", "10010110")
	require.NoError(t, err)

	var resp oracle.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success, resp.Error)
	assert.Equal(t, 3, resp.NumQubits)
}

func TestOracle_ExtraArgsIgnored(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", "01").Return(oracle.Response{Success: true, NumQubits: 1, QASM: "q", Image: "i"})

	buf := &bytes.Buffer{}
	opts := &OracleOptions{RootOptions: &RootOptions{Format: "json"}, Runner: runner}
	cmd := NewOracleCommand(opts.RootOptions)
	require.NoError(t, runOracle(opts, []string{"01", "ignored"}, withOutput(cmd, buf)))

	assert.JSONEq(t, `{"success":true,"num_qubits":1,"qasm":"q","image":"i"}`, buf.String())
	runner.AssertExpectations(t)
}

func TestOracle_TextFormat(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", "01").Return(oracle.Response{Success: true, NumQubits: 1, QASM: "OPENQASM 2.0;\n"})
	runner.On("Run", "2").Return(oracle.Response{Success: false, Error: "synthesis failed: bad"})

	opts := &OracleOptions{RootOptions: &RootOptions{Format: "text"}, Runner: runner}

	buf := &bytes.Buffer{}
	require.NoError(t, runOracle(opts, []string{"01"}, withOutput(NewOracleCommand(opts.RootOptions), buf)))
	assert.Contains(t, buf.String(), "1 qubit(s)")
	assert.Contains(t, buf.String(), "OPENQASM 2.0;")

	buf.Reset()
	require.NoError(t, runOracle(opts, []string{"2"}, withOutput(NewOracleCommand(opts.RootOptions), buf)))
	assert.Contains(t, buf.String(), "synthesis failed: bad")
}

func withOutput(cmd *cobra.Command, buf *bytes.Buffer) *cobra.Command {
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}
