package oracle

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedService(t *testing.T, opts ...Option) (*Service, *observer.ObservedLogs, *Metrics) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.Collectors()...)

	svc, err := NewService(zap.New(core), append(opts, WithMetrics(m))...)
	require.NoError(t, err)
	return svc, logs, m
}

func TestService_RunQuotedArgument(t *testing.T) {
	svc, logs, m := newObservedService(t)

	resp := svc.Run(`"1010"`)
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, 2, resp.NumQubits)

	entries := logs.FilterMessage("oracle synthesized").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "1010", entries[0].ContextMap()["table"])
	assert.Equal(t, "(~x0 & ~x1) | (~x0 & x1)", entries[0].ContextMap()["expression"])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("success")))
}

func TestService_FailureIsReportedNotReturned(t *testing.T) {
	svc, logs, m := newObservedService(t)

	resp := svc.Run("011")
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "synthesis failed: ")

	entries := logs.FilterMessage("oracle synthesis failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(KindInvalidInput), entries[0].ContextMap()["kind"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("failure")))
}

func TestService_Cache(t *testing.T) {
	svc, logs, m := newObservedService(t, WithCache(4))

	first := svc.Run("0110")
	second := svc.Run(" '0110' ")
	assert.Equal(t, first, second)

	assert.Equal(t, 1, logs.FilterMessage("oracle synthesized").Len())
	assert.Equal(t, 1, logs.FilterMessage("oracle cache hit").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Runs.WithLabelValues("success")))
}

func TestService_CacheDisabled(t *testing.T) {
	svc, logs, _ := newObservedService(t, WithCache(0))

	svc.Run("01")
	svc.Run("01")
	assert.Equal(t, 2, logs.FilterMessage("oracle synthesized").Len())
}

func TestService_InvalidCacheSize(t *testing.T) {
	_, err := NewService(nil, WithCache(-1))
	assert.Error(t, err)
}

func TestService_Verify(t *testing.T) {
	svc, _, _ := newObservedService(t, WithVerify(true))

	resp := svc.Run("10010110")
	assert.True(t, resp.Success, resp.Error)
}

func TestResponse_JSONShape(t *testing.T) {
	data, err := json.Marshal(NoInput())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": false, "error": "No input"}`, string(data))

	svc, err := NewService(nil)
	require.NoError(t, err)
	data, err = json.Marshal(svc.Run("01"))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.ElementsMatch(t, []string{"success", "num_qubits", "qasm", "image"}, keys(fields))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
