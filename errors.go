package meshgo

import (
	"fmt"

	"github.com/hupe1980/meshgo/attribute"
)

// NotFoundError indicates a lookup of an attribute that does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("attribute %q not found", e.Name)
}

// DuplicateNameError indicates an attempt to create an attribute under a
// name that is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("attribute %q already exists", e.Name)
}

// ReservedNameError indicates a user-level operation on a reserved
// attribute (names starting with '$').
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("attribute name %q is reserved", e.Name)
}

// OutOfRangeError indicates a vertex, facet, or corner index outside the
// mesh.
type OutOfRangeError struct {
	What  string // "vertex", "facet", "corner", or "attribute id"
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.What, e.Index, e.Size)
}

// DimensionError indicates input whose dimension does not match the
// mesh.
type DimensionError struct {
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: got %d, want %d", e.Got, e.Want)
}

// ElementMismatchError indicates an attribute attached to the wrong
// element type for an operation.
type ElementMismatchError struct {
	Name string
	Got  attribute.Element
	Want attribute.Element
}

func (e *ElementMismatchError) Error() string {
	return fmt.Sprintf("attribute %q is attached to %s elements, want %s", e.Name, e.Got, e.Want)
}

// UnsupportedKindError indicates an attribute whose value kind an
// operation cannot handle.
type UnsupportedKindError struct {
	Name string
	Op   string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("attribute %q has a value kind unsupported by %s", e.Name, e.Op)
}
