package quantum

import (
	"fmt"
	"strings"
)

// qelib1 lists the gates of qelib1.inc that this package emits.
var qelib1 = map[string]bool{
	GateX:   true,
	GateZ:   true,
	GateH:   true,
	GateCX:  true,
	GateCZ:  true,
	GateCCX: true,
	GateC3X: true,
	GateC4X: true,
}

// qasmName returns the statement name for op. Gates outside qelib1.inc are
// suffixed with their width so each opaque declaration has a single arity.
func qasmName(op Op) string {
	if qelib1[op.Name] {
		return op.Name
	}
	return fmt.Sprintf("%s_%d", op.Name, len(op.Qubits))
}

// QASM serializes c as OpenQASM 2.0 over a single register q.
// Gates not defined by qelib1.inc are declared opaque before the register.
func QASM(c *Circuit) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")

	declared := make(map[string]bool)
	for _, op := range c.Ops {
		name := qasmName(op)
		if qelib1[op.Name] || declared[name] {
			continue
		}
		declared[name] = true
		args := make([]string, len(op.Qubits))
		for i := range args {
			args[i] = fmt.Sprintf("q%d", i)
		}
		fmt.Fprintf(&sb, "opaque %s %s;\n", name, strings.Join(args, ","))
	}

	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits)
	for _, op := range c.Ops {
		refs := make([]string, len(op.Qubits))
		for i, q := range op.Qubits {
			refs[i] = fmt.Sprintf("q[%d]", q)
		}
		fmt.Fprintf(&sb, "%s %s;\n", qasmName(op), strings.Join(refs, ","))
	}
	return sb.String()
}
