package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for structural failures. All are fatal to compilation;
// callers match with errors.Is.
var (
	ErrNoRoot = errors.New("no root node")
	ErrCycle  = errors.New("cycle detected")
)

// NoRootError reports that no entry node could be determined.
type NoRootError struct {
	Reason string
}

func (e *NoRootError) Error() string {
	if e.Reason == "" {
		return ErrNoRoot.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNoRoot.Error(), e.Reason)
}

func (e *NoRootError) Unwrap() error { return ErrNoRoot }

// CycleError names one cycle found in the graph, in forward order with the
// entry node repeated at the end, e.g. [X, Y, X].
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }
