/*
Package creal implements arbitrary-precision computable-real arithmetic.

A computable real is not stored as a fixed-width approximation. Instead it is
represented by a Node: a procedure that, given a requested binary precision p,
produces an integer approximation of the real x such that

	|x - value·2**p| < 2**p

Composing Nodes (Add, Multiply, Sqrt, Exp, ...) builds a lazy expression graph;
no arithmetic happens until a caller asks a Node to Evaluate at some precision.
Rendering a final decimal or hexadecimal string is the last step, performed by
ToString once a requested number of fractional digits is known.

Iterative Newton kernels with guard bits, an AGM-based Pi, and small typed
errors for domain violations all operate on base-2 binary precision, since a
Node's contract is inherently binary.

The zero value of most Node-producing functions is not meaningful; use the
New* constructors. Nodes are immutable after construction and safe for
concurrent use: any mutable state (the per-node approximation cache) is
guarded by a private mutex.
*/
package creal
