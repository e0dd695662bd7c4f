package attribute

// Base is the type-erased view of an attribute, used by containers that
// hold attributes of mixed value types. Recover the typed form with
// Cast or CastIndexed.
type Base interface {
	// Element returns the mesh element type the attribute is attached to.
	Element() Element

	// Usage returns the attribute's semantic usage tag.
	Usage() Usage

	// NumChannels returns the number of values per row.
	NumChannels() int

	// NumElements returns the number of rows.
	NumElements() int

	// Empty reports whether the attribute has no rows.
	Empty() bool

	// IsExternal reports whether the attribute wraps a caller-provided
	// buffer.
	IsExternal() bool

	// IsReadOnly reports whether the wrapped buffer is read-only.
	IsReadOnly() bool

	// ValueKind returns the runtime tag for the value type.
	ValueKind() ValueKind

	// Resize changes the number of rows, subject to the growth policy.
	Resize(numElements int) error

	// Gather replaces the attribute's rows with the given rows, in order.
	Gather(rows []int) error

	// CloneBase returns a type-erased copy, subject to the copy policy.
	CloneBase() (Base, error)
}

// Cast recovers the typed attribute behind a Base. It fails with a
// TypeMismatchError when V does not match the stored value type, and
// when b is an indexed attribute (cast those with CastIndexed).
func Cast[V Value](b Base) (*Attribute[V], error) {
	a, ok := b.(*Attribute[V])
	if !ok {
		return nil, &TypeMismatchError{Expected: KindOf[V](), Actual: b.ValueKind()}
	}
	return a, nil
}

// CastIndexed recovers the typed indexed attribute behind a Base. Both
// the value type V and the index type I must match.
func CastIndexed[V Value, I IndexValue](b Base) (*IndexedAttribute[V, I], error) {
	a, ok := b.(*IndexedAttribute[V, I])
	if !ok {
		return nil, &TypeMismatchError{Expected: KindOf[V](), Actual: b.ValueKind()}
	}
	return a, nil
}
