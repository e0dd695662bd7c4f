package attribute

import "fmt"

// Op names the attribute operation that a policy applies to.
type Op string

const (
	OpGrow   Op = "grow"
	OpWrite  Op = "write"
	OpCopy   Op = "copy"
	OpExport Op = "export"
)

// ConfigurationError indicates an invalid combination of element, usage,
// channel count, and value kind at attribute creation.
type ConfigurationError struct {
	Usage       Usage
	NumChannels int
	Kind        ValueKind
	Reason      string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid attribute configuration (usage %s, %d channels, kind %s): %s",
		e.Usage, e.NumChannels, e.Kind, e.Reason)
}

// BoundsError indicates an element or channel index outside the
// attribute's current extent.
type BoundsError struct {
	What  string // "element" or "channel"
	Index int
	Size  int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.What, e.Index, e.Size)
}

// PolicyViolationError indicates an operation rejected by the attribute's
// growth, write, copy, or export policy.
type PolicyViolationError struct {
	Op     Op
	Policy string
	Detail string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("%s rejected by policy %s: %s", e.Op, e.Policy, e.Detail)
}

// TypeMismatchError indicates a Cast to the wrong value type.
type TypeMismatchError struct {
	Expected ValueKind
	Actual   ValueKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("attribute holds %s values, not %s", e.Actual, e.Expected)
}

// InvalidIndexError indicates an indexed attribute whose index buffer
// references a value row outside the value buffer.
type InvalidIndexError struct {
	Position  int // offset into the index buffer
	Value     int // the offending index
	NumValues int // rows in the value buffer
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("index %d at position %d exceeds value count %d",
		e.Value, e.Position, e.NumValues)
}
