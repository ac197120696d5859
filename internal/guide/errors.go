package guide

import (
	"errors"
	"fmt"
)

// Sentinel kinds for build-time failures; match with errors.Is.
var (
	ErrReference       = errors.New("unresolved reference")
	ErrMissingMetadata = errors.New("missing result metadata")
)

// ReferenceError reports an option destination that does not resolve to a
// node.
type ReferenceError struct {
	Src string // referencing node
	Dst string // missing destination id
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: node %q references unknown node %q", ErrReference.Error(), e.Src, e.Dst)
}

func (e *ReferenceError) Unwrap() error { return ErrReference }

// MissingMetadataError reports a terminal node without the required result
// fields.
type MissingMetadataError struct {
	Node string
	Msg  string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("%s: node %q: %s", ErrMissingMetadata.Error(), e.Node, e.Msg)
}

func (e *MissingMetadataError) Unwrap() error { return ErrMissingMetadata }
