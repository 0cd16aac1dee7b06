package logic

import (
	"strings"
)

// Expr is a node of a parsed boolean expression.
type Expr interface {
	// Eval evaluates the expression. Unassigned variables are false.
	Eval(assign map[string]bool) bool
	String() string
}

// Var is a variable reference.
type Var struct {
	Name string
}

// Not negates its operand.
type Not struct {
	X Expr
}

// And is a conjunction of two or more operands.
type And struct {
	Terms []Expr
}

// Or is a disjunction of two or more operands.
type Or struct {
	Terms []Expr
}

func (v *Var) Eval(assign map[string]bool) bool { return assign[v.Name] }
func (v *Var) String() string                   { return v.Name }

func (n *Not) Eval(assign map[string]bool) bool { return !n.X.Eval(assign) }
func (n *Not) String() string {
	switch n.X.(type) {
	case *Var, *Not:
		return "~" + n.X.String()
	}
	return "~(" + n.X.String() + ")"
}

func (a *And) Eval(assign map[string]bool) bool {
	for _, t := range a.Terms {
		if !t.Eval(assign) {
			return false
		}
	}
	return true
}

func (a *And) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		if _, ok := t.(*Or); ok {
			parts[i] = "(" + t.String() + ")"
		} else {
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, " & ")
}

func (o *Or) Eval(assign map[string]bool) bool {
	for _, t := range o.Terms {
		if t.Eval(assign) {
			return true
		}
	}
	return false
}

func (o *Or) String() string {
	parts := make([]string, len(o.Terms))
	for i, t := range o.Terms {
		if _, ok := t.(*And); ok {
			parts[i] = "(" + t.String() + ")"
		} else {
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, " | ")
}

// Variables returns the distinct variable names of e in order of first appearance.
func Variables(e Expr) []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Var:
			if !seen[n.Name] {
				seen[n.Name] = true
				names = append(names, n.Name)
			}
		case *Not:
			walk(n.X)
		case *And:
			for _, t := range n.Terms {
				walk(t)
			}
		case *Or:
			for _, t := range n.Terms {
				walk(t)
			}
		}
	}
	walk(e)
	return names
}

// TruthTable evaluates e over every assignment of its variables.
// Row i sets variable j (in Variables order) to bit j of i.
func TruthTable(e Expr) ([]bool, []string) {
	vars := Variables(e)
	rows := make([]bool, 1<<len(vars))
	assign := make(map[string]bool, len(vars))
	for i := range rows {
		for j, name := range vars {
			assign[name] = i>>j&1 == 1
		}
		rows[i] = e.Eval(assign)
	}
	return rows, vars
}
