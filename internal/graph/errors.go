package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned when an id does not name a node of the graph.
	ErrNodeNotFound = errors.New("node not found")
	// ErrInvalidLink is returned when a link's endpoints cannot exchange its item.
	ErrInvalidLink = errors.New("invalid link")
)

// ProgrammerError is the panic value raised when the model is used in a way
// no controller call can produce, such as asking a supplier for its input
// rate. User misconfiguration never raises it.
type ProgrammerError struct {
	Msg string
}

func (e *ProgrammerError) Error() string {
	return "graph: programmer error: " + e.Msg
}

func fault(format string, args ...any) {
	panic(&ProgrammerError{Msg: fmt.Sprintf(format, args...)})
}
