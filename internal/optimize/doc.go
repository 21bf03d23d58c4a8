// Package optimize builds solver-ready scheduling models over a project
// graph: minimum makespan (LP), net-present-value maximization with
// discrete completion-time choice (binary MILP), and duration/cost
// crashing (LP).
//
// Every builder is two-phase. Build* registers variables, constraints,
// and the objective against a caller-supplied solver; Solve runs the
// solver and copies the optimal values back into the model. Reading a
// resolved value before a successful solve is a contract violation.
package optimize
