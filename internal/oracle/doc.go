// Package oracle is the oracle synthesis tool: it takes a truth-table bitstring,
// builds its DNF expression, synthesizes a phase oracle, expands it twice, and
// packages the OpenQASM text and a base64 PNG diagram into a Response.
//
// Every stage shares one failure domain for callers: any error becomes
// {"success": false, "error": "synthesis failed: ..."}. Internally errors are
// tagged with an ErrorKind so logs and tests can tell the stages apart.
package oracle
