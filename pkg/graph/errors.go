package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrInvalidGraph is returned when a graph cannot carry a modularity
	// objective: no nodes, no edge weight, or malformed edges.
	ErrInvalidGraph = errors.New("invalid graph")
	// ErrNodeNotFound is returned when an identifier is not part of the graph.
	ErrNodeNotFound = errors.New("node not found")
)

// GraphError provides structured error information for graph construction.
type GraphError struct {
	Op      string // Operation that failed (e.g., "New", "AddEdge", "ReadEdgeList")
	Node    int    // Node index (-1 if not applicable)
	Line    int    // Input line for edge list parsing (0 if not applicable)
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	switch {
	case e.Line > 0 && e.Context != "":
		return fmt.Sprintf("%s line %d (%s): %v", e.Op, e.Line, e.Context, e.Cause)
	case e.Line > 0:
		return fmt.Sprintf("%s line %d: %v", e.Op, e.Line, e.Cause)
	case e.Node >= 0 && e.Context != "":
		return fmt.Sprintf("%s node %d (%s): %v", e.Op, e.Node, e.Context, e.Cause)
	case e.Node >= 0:
		return fmt.Sprintf("%s node %d: %v", e.Op, e.Node, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op, Node: -1}}
}

// Node sets the offending node index.
func (b *ErrorBuilder) Node(i int) *ErrorBuilder {
	b.err.Node = i
	return b
}

// Line sets the offending input line.
func (b *ErrorBuilder) Line(n int) *ErrorBuilder {
	b.err.Line = n
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	e := b.err
	return &e
}

// invalid is shorthand for an ErrInvalidGraph failure.
func invalid(op, format string, args ...any) error {
	return NewError(op).Cause(ErrInvalidGraph).Context(format, args...).Err()
}

// IsInvalid returns true if the error reports an unusable graph.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidGraph)
}
