package attribute

// IndexedAttribute pairs a value buffer with a per-corner index buffer,
// so corners sharing a value (e.g. UVs along a seam-free region) store
// it once. The value buffer is a free-standing ElementValue attribute;
// the index buffer is a per-corner attribute of offsets into it.
type IndexedAttribute[V Value, I IndexValue] struct {
	values  *Attribute[V]
	indices *Attribute[I]
}

// NewIndexed creates an indexed attribute with numValues value rows and
// numIndices corner indices, all initialized to zero. Options apply to
// the value buffer.
func NewIndexed[V Value, I IndexValue](usage Usage, numChannels, numValues, numIndices int, optFns ...func(o *Options[V])) (*IndexedAttribute[V, I], error) {
	values, err := New[V](ElementValue, usage, numChannels, numValues, optFns...)
	if err != nil {
		return nil, err
	}

	indices, err := New[I](ElementCorner, UsageScalar, 1, numIndices)
	if err != nil {
		return nil, err
	}

	return &IndexedAttribute[V, I]{values: values, indices: indices}, nil
}

// Values returns the value buffer.
func (a *IndexedAttribute[V, I]) Values() *Attribute[V] { return a.values }

// Indices returns the per-corner index buffer.
func (a *IndexedAttribute[V, I]) Indices() *Attribute[I] { return a.indices }

// Element returns ElementIndexed.
func (a *IndexedAttribute[V, I]) Element() Element { return ElementIndexed }

// Usage returns the value buffer's usage tag.
func (a *IndexedAttribute[V, I]) Usage() Usage { return a.values.Usage() }

// NumChannels returns the number of values per value row.
func (a *IndexedAttribute[V, I]) NumChannels() int { return a.values.NumChannels() }

// NumElements returns the number of corner indices.
func (a *IndexedAttribute[V, I]) NumElements() int { return a.indices.NumElements() }

// Empty reports whether the attribute has no corner indices.
func (a *IndexedAttribute[V, I]) Empty() bool { return a.indices.Empty() }

// IsExternal reports whether either buffer wraps caller-provided memory.
func (a *IndexedAttribute[V, I]) IsExternal() bool {
	return a.values.IsExternal() || a.indices.IsExternal()
}

// IsReadOnly reports whether either wrapped buffer is read-only.
func (a *IndexedAttribute[V, I]) IsReadOnly() bool {
	return a.values.IsReadOnly() || a.indices.IsReadOnly()
}

// ValueKind returns the runtime tag for the value type.
func (a *IndexedAttribute[V, I]) ValueKind() ValueKind { return KindOf[V]() }

// Resize changes the number of corner indices. The value buffer is left
// untouched; new indices point at value row 0.
func (a *IndexedAttribute[V, I]) Resize(numElements int) error {
	return a.indices.Resize(numElements)
}

// Gather replaces the corner indices with the given rows, in order. The
// value buffer is left untouched.
func (a *IndexedAttribute[V, I]) Gather(rows []int) error {
	return a.indices.Gather(rows)
}

// ValidateIndices checks that every corner index points at an existing
// value row. Indices are not validated on write, so call this after
// bulk-filling the index buffer.
func (a *IndexedAttribute[V, I]) ValidateIndices() error {
	numValues := a.values.NumElements()
	for pos, idx := range a.indices.GetAll() {
		if int(idx) >= numValues {
			return &InvalidIndexError{Position: pos, Value: int(idx), NumValues: numValues}
		}
	}
	return nil
}

// CloneBase returns a type-erased copy, subject to the copy policies.
func (a *IndexedAttribute[V, I]) CloneBase() (Base, error) {
	return a.Clone()
}

// Clone returns a deep copy of both buffers, subject to their copy
// policies.
func (a *IndexedAttribute[V, I]) Clone() (*IndexedAttribute[V, I], error) {
	values, err := a.values.Clone()
	if err != nil {
		return nil, err
	}

	indices, err := a.indices.Clone()
	if err != nil {
		return nil, err
	}

	return &IndexedAttribute[V, I]{values: values, indices: indices}, nil
}
