// Package domain holds the board collaboration aggregates: projects, boards,
// columns, tasks, comments and the audit trail they produce.
//
// Entity methods never perform I/O. Callers load an aggregate with its
// membership, column, task and comment collections fully populated, invoke a
// mutator, persist the result, and then drain the accumulated events. A
// role-gated method that runs against a partially loaded membership
// collection treats the actor as a non-member and rejects the call.
package domain
