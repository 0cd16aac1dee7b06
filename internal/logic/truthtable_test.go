package logic

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTruthTable(t *testing.T) {
	tests := []struct {
		name  string
		table string
		want  string
	}{
		{"one variable identity", "01", "(x0)"},
		{"one variable negation", "10", "(~x0)"},
		{"xor keeps rows 1 and 2", "0110", "(x0 & ~x1) | (~x0 & x1)"},
		{"all false", "0000", ""},
		{"all true", "1111", "(~x0 & ~x1) | (x0 & ~x1) | (~x0 & x1) | (x0 & x1)"},
		{"row 1 of three variables", "01000000", "(x0 & ~x1 & ~x2)"},
		{"row 4 of three variables", "00001000", "(~x0 & ~x1 & x2)"},
		{"1010", "1010", "(~x0 & ~x1) | (~x0 & x1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromTruthTable(tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromTruthTable_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"empty", ""},
		{"single row", "1"},
		{"length three", "011"},
		{"length six", "010101"},
		{"non binary character", "01a1"},
		{"quoted", `"01"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromTruthTable(tt.table)
			require.Error(t, err)
			assert.True(t, IsInvalidInput(err), "want InvalidInputError, got %T", err)

			var ie *InvalidInputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.table, ie.Input)
		})
	}
}

func TestNumVariables(t *testing.T) {
	for n := 1; n <= 10; n++ {
		table := make([]byte, 1<<n)
		for i := range table {
			table[i] = '0'
		}
		got, err := NumVariables(string(table))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestMinterm_BitReversal(t *testing.T) {
	// Row 6 is 110 in binary; reversed it reads 011, so x0 is false.
	assert.Equal(t, "~x0 & x1 & x2", Minterm(6, 3))
	assert.Equal(t, "x0 & ~x1 & ~x2", Minterm(1, 3))
}

func TestFromTruthTable_RoundTrip(t *testing.T) {
	tables := []string{"01", "10", "0110", "1111", "10010110", "0001000100010001"}

	for _, table := range tables {
		t.Run(table, func(t *testing.T) {
			exprText, err := FromTruthTable(table)
			require.NoError(t, err)

			e, err := Parse(exprText)
			require.NoError(t, err)

			rows, vars := TruthTable(e)
			require.Len(t, rows, len(table))
			for j, name := range vars {
				assert.Equal(t, VariableName(j), name)
			}
			for i, row := range rows {
				assert.Equal(t, table[i] == '1', row, "row %d", i)
			}
		})
	}
}

func TestFromTruthTable_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	got, err := FromTruthTable("10010110")
	require.NoError(t, err)
	g.Assert(t, "parity3", []byte(got+"\n"))
}
