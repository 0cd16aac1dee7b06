package logic

import (
	"fmt"
	"math/bits"
	"strings"
)

// VariableName returns the canonical name of variable j.
func VariableName(j int) string {
	return fmt.Sprintf("x%d", j)
}

// NumVariables returns n for a truth table of length 2^n.
// Tables shorter than two rows or not a power of two are rejected, as are
// characters other than '0' and '1'.
func NumVariables(table string) (int, error) {
	size := len(table)
	if size < 2 {
		return 0, &InvalidInputError{Input: table, Reason: fmt.Sprintf("length %d: need at least 2 rows", size)}
	}
	if size&(size-1) != 0 {
		return 0, &InvalidInputError{Input: table, Reason: fmt.Sprintf("length %d is not a power of two", size)}
	}
	for i := 0; i < size; i++ {
		if table[i] != '0' && table[i] != '1' {
			return 0, &InvalidInputError{Input: table, Reason: fmt.Sprintf("character %q at %d is not 0 or 1", table[i], i)}
		}
	}
	return bits.TrailingZeros(uint(size)), nil
}

// FromTruthTable builds the DNF expression whose minterms are the true rows of
// table, in ascending row order. An all-false table yields "".
func FromTruthTable(table string) (string, error) {
	n, err := NumVariables(table)
	if err != nil {
		return "", err
	}

	terms := make([]string, 0)
	for i := 0; i < len(table); i++ {
		if table[i] == '1' {
			terms = append(terms, "("+Minterm(i, n)+")")
		}
	}
	return strings.Join(terms, " | "), nil
}

// Minterm returns the AND-clause selecting row i of an n-variable table.
// Bit j of i (least significant first) decides whether xj appears negated.
func Minterm(i, n int) string {
	lits := make([]string, n)
	for j := 0; j < n; j++ {
		if i>>j&1 == 1 {
			lits[j] = VariableName(j)
		} else {
			lits[j] = "~" + VariableName(j)
		}
	}
	return strings.Join(lits, " & ")
}
