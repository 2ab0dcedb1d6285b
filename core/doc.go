// Package core defines the shared contract types of TaskMesh: the Handler
// interface consumed by the router and executor, the immutable Request that
// flows through the system, the Outcome returned by a handler invocation,
// and the Step/Report structures produced by multi-step delegation.
//
// Everything in this package is plain data or a narrow interface. Routing,
// decomposition and execution logic live in their own packages (router,
// decompose, executor, engine) to avoid cyclic dependencies; concrete
// handlers live in the handler package.
package core
