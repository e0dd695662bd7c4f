package attribute

import (
	"log/slog"
	"slices"
)

// Options contains configuration for an attribute.
type Options[V Value] struct {
	// DefaultValue is the value newly exposed rows are filled with when
	// the attribute grows.
	DefaultValue V

	// GrowthPolicy controls resizing when the attribute wraps an
	// external buffer.
	GrowthPolicy GrowthPolicy

	// WritePolicy controls writes when the attribute wraps a read-only
	// external buffer.
	WritePolicy WritePolicy

	// CopyPolicy controls cloning when the attribute wraps an external
	// buffer.
	CopyPolicy CopyPolicy

	// Logger is used by the WarnAndCopy policies.
	Logger *slog.Logger
}

// Attribute is a dense row-major array of numeric values attached to a
// mesh element type. Each of its NumElements rows holds NumChannels
// values of type V.
//
// An attribute either owns its storage or wraps a caller-provided
// buffer. Operations that would mutate, grow, or alias a wrapped buffer
// are gated by the attribute's policies. Attributes are not safe for
// concurrent mutation.
type Attribute[V Value] struct {
	element      Element
	usage        Usage
	numChannels  int
	numElements  int
	defaultValue V
	growthPolicy GrowthPolicy
	writePolicy  WritePolicy
	copyPolicy   CopyPolicy
	logger       *slog.Logger

	data     []V // internal storage, nil when wrapping
	external []V // wrapped buffer, nil when internal
	readOnly bool
}

// New creates an internally-owned attribute with numElements rows of
// numChannels values each, filled with the default value.
func New[V Value](element Element, usage Usage, numChannels, numElements int, optFns ...func(o *Options[V])) (*Attribute[V], error) {
	opts := Options[V]{
		GrowthPolicy: GrowthErrorIfExternal,
		WritePolicy:  WriteErrorIfReadOnly,
		CopyPolicy:   CopyIfExternal,
		Logger:       slog.New(slog.DiscardHandler),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := validate[V](usage, numChannels, numElements); err != nil {
		return nil, err
	}

	a := &Attribute[V]{
		element:      element,
		usage:        usage,
		numChannels:  numChannels,
		defaultValue: opts.DefaultValue,
		growthPolicy: opts.GrowthPolicy,
		writePolicy:  opts.WritePolicy,
		copyPolicy:   opts.CopyPolicy,
		logger:       opts.Logger,
		data:         make([]V, 0),
	}

	if err := a.Resize(numElements); err != nil {
		return nil, err
	}

	return a, nil
}

// Wrap creates an attribute aliasing a caller-provided writable buffer.
// The buffer must hold at least numElements*numChannels values; any
// excess is treated as spare capacity for GrowthAllowWithinCapacity.
func Wrap[V Value](element Element, usage Usage, numChannels int, buffer []V, numElements int, optFns ...func(o *Options[V])) (*Attribute[V], error) {
	return wrap(element, usage, numChannels, buffer, numElements, false, optFns)
}

// WrapConst creates an attribute aliasing a caller-provided read-only
// buffer. Writes are gated by the attribute's write policy.
func WrapConst[V Value](element Element, usage Usage, numChannels int, buffer []V, numElements int, optFns ...func(o *Options[V])) (*Attribute[V], error) {
	return wrap(element, usage, numChannels, buffer, numElements, true, optFns)
}

func wrap[V Value](element Element, usage Usage, numChannels int, buffer []V, numElements int, readOnly bool, optFns []func(o *Options[V])) (*Attribute[V], error) {
	opts := Options[V]{
		GrowthPolicy: GrowthErrorIfExternal,
		WritePolicy:  WriteErrorIfReadOnly,
		CopyPolicy:   CopyIfExternal,
		Logger:       slog.New(slog.DiscardHandler),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := validate[V](usage, numChannels, numElements); err != nil {
		return nil, err
	}

	if len(buffer) < numElements*numChannels {
		return nil, &ConfigurationError{
			Usage:       usage,
			NumChannels: numChannels,
			Kind:        KindOf[V](),
			Reason:      "buffer smaller than numElements * numChannels",
		}
	}

	return &Attribute[V]{
		element:      element,
		usage:        usage,
		numChannels:  numChannels,
		numElements:  numElements,
		defaultValue: opts.DefaultValue,
		growthPolicy: opts.GrowthPolicy,
		writePolicy:  opts.WritePolicy,
		copyPolicy:   opts.CopyPolicy,
		logger:       opts.Logger,
		external:     buffer,
		readOnly:     readOnly,
	}, nil
}

func validate[V Value](usage Usage, numChannels, numElements int) error {
	kind := KindOf[V]()

	switch {
	case numChannels < 1:
		return &ConfigurationError{Usage: usage, NumChannels: numChannels, Kind: kind, Reason: "at least one channel required"}
	case numElements < 0:
		return &ConfigurationError{Usage: usage, NumChannels: numChannels, Kind: kind, Reason: "negative element count"}
	case !usage.validChannels(numChannels):
		return &ConfigurationError{Usage: usage, NumChannels: numChannels, Kind: kind, Reason: "channel count not allowed for usage"}
	case usage.requiresIntegerKind() && !kind.IsInteger():
		return &ConfigurationError{Usage: usage, NumChannels: numChannels, Kind: kind, Reason: "usage requires an integer value kind"}
	}

	return nil
}

// Element returns the mesh element type the attribute is attached to.
func (a *Attribute[V]) Element() Element { return a.element }

// Usage returns the attribute's semantic usage tag.
func (a *Attribute[V]) Usage() Usage { return a.usage }

// NumChannels returns the number of values per row.
func (a *Attribute[V]) NumChannels() int { return a.numChannels }

// NumElements returns the number of rows.
func (a *Attribute[V]) NumElements() int { return a.numElements }

// Empty reports whether the attribute has no rows.
func (a *Attribute[V]) Empty() bool { return a.numElements == 0 }

// IsExternal reports whether the attribute wraps a caller-provided
// buffer.
func (a *Attribute[V]) IsExternal() bool { return a.external != nil }

// IsReadOnly reports whether the wrapped buffer is read-only.
func (a *Attribute[V]) IsReadOnly() bool { return a.readOnly }

// ValueKind returns the runtime tag for V.
func (a *Attribute[V]) ValueKind() ValueKind { return KindOf[V]() }

// DefaultValue returns the fill value used when the attribute grows.
func (a *Attribute[V]) DefaultValue() V { return a.defaultValue }

// SetDefaultValue changes the fill value used when the attribute grows.
func (a *Attribute[V]) SetDefaultValue(v V) { a.defaultValue = v }

// buf returns the full backing buffer, internal or wrapped.
func (a *Attribute[V]) buf() []V {
	if a.external != nil {
		return a.external
	}
	return a.data
}

// values returns the active rows of the backing buffer.
func (a *Attribute[V]) values() []V {
	return a.buf()[:a.numElements*a.numChannels]
}

// Get returns the value at (element, channel).
func (a *Attribute[V]) Get(element, channel int) (V, error) {
	if element < 0 || element >= a.numElements {
		return 0, &BoundsError{What: "element", Index: element, Size: a.numElements}
	}
	if channel < 0 || channel >= a.numChannels {
		return 0, &BoundsError{What: "channel", Index: channel, Size: a.numChannels}
	}
	return a.buf()[element*a.numChannels+channel], nil
}

// Set writes the value at (element, channel), subject to the write
// policy.
func (a *Attribute[V]) Set(element, channel int, v V) error {
	if element < 0 || element >= a.numElements {
		return &BoundsError{What: "element", Index: element, Size: a.numElements}
	}
	if channel < 0 || channel >= a.numChannels {
		return &BoundsError{What: "channel", Index: channel, Size: a.numChannels}
	}
	if err := a.writeCheck(); err != nil {
		return err
	}
	a.buf()[element*a.numChannels+channel] = v
	return nil
}

// GetRow returns the row at element as a view into the backing buffer.
// Callers must treat the result as read-only; use RefRow to mutate.
func (a *Attribute[V]) GetRow(element int) ([]V, error) {
	if element < 0 || element >= a.numElements {
		return nil, &BoundsError{What: "element", Index: element, Size: a.numElements}
	}
	off := element * a.numChannels
	return a.buf()[off : off+a.numChannels : off+a.numChannels], nil
}

// RefRow returns a writable view of the row at element, subject to the
// write policy.
func (a *Attribute[V]) RefRow(element int) ([]V, error) {
	if element < 0 || element >= a.numElements {
		return nil, &BoundsError{What: "element", Index: element, Size: a.numElements}
	}
	if err := a.writeCheck(); err != nil {
		return nil, err
	}
	off := element * a.numChannels
	return a.buf()[off : off+a.numChannels : off+a.numChannels], nil
}

// GetAll returns all active rows as a flat row-major view. Callers must
// treat the result as read-only; use RefAll to mutate.
func (a *Attribute[V]) GetAll() []V {
	return a.values()
}

// RefAll returns a writable flat view of all active rows, subject to the
// write policy.
func (a *Attribute[V]) RefAll() ([]V, error) {
	if err := a.writeCheck(); err != nil {
		return nil, err
	}
	return a.values(), nil
}

// writeCheck enforces the write policy before any mutation of the
// backing buffer. A WarnAndCopy or SilentCopy outcome converts the
// attribute to internal storage.
func (a *Attribute[V]) writeCheck() error {
	if a.external == nil || !a.readOnly {
		return nil
	}

	switch a.writePolicy {
	case WriteWarnAndCopy:
		a.logger.Warn("writing to a read-only attribute buffer, copying to internal storage",
			slog.String("usage", a.usage.String()))
		a.createInternalCopy()
		return nil
	case WriteSilentCopy:
		a.createInternalCopy()
		return nil
	default:
		return &PolicyViolationError{
			Op:     OpWrite,
			Policy: a.writePolicy.String(),
			Detail: "attribute wraps a read-only buffer",
		}
	}
}

// Resize changes the number of rows. Newly exposed rows of an
// internally-owned attribute are filled with the default value. For
// wrapped buffers the growth policy decides between adjusting the view,
// copying to internal storage, and failing.
func (a *Attribute[V]) Resize(numElements int) error {
	if numElements < 0 {
		return &ConfigurationError{
			Usage:       a.usage,
			NumChannels: a.numChannels,
			Kind:        KindOf[V](),
			Reason:      "negative element count",
		}
	}

	need := numElements * a.numChannels

	if a.external != nil {
		switch a.growthPolicy {
		case GrowthAllowWithinCapacity:
			if need > len(a.external) {
				return &PolicyViolationError{
					Op:     OpGrow,
					Policy: a.growthPolicy.String(),
					Detail: "requested size exceeds wrapped buffer capacity",
				}
			}
			a.numElements = numElements
			return nil
		case GrowthWarnAndCopy, GrowthSilentCopy:
			if need <= len(a.external) {
				a.numElements = numElements
				return nil
			}
			if a.growthPolicy == GrowthWarnAndCopy {
				a.logger.Warn("growing attribute beyond wrapped buffer capacity, copying to internal storage",
					slog.String("usage", a.usage.String()),
					slog.Int("capacity", len(a.external)),
					slog.Int("requested", need))
			}
			a.createInternalCopy()
		default:
			return &PolicyViolationError{
				Op:     OpGrow,
				Policy: a.growthPolicy.String(),
				Detail: "attribute wraps an external buffer",
			}
		}
	}

	old := a.numElements * a.numChannels
	if need <= cap(a.data) {
		a.data = a.data[:need]
	} else {
		grown := make([]V, need)
		copy(grown, a.data)
		a.data = grown
	}
	for i := old; i < need; i++ {
		a.data[i] = a.defaultValue
	}
	a.numElements = numElements

	return nil
}

// Clear removes all rows. Subject to the growth policy when wrapping an
// external buffer.
func (a *Attribute[V]) Clear() error {
	return a.Resize(0)
}

// Gather replaces the attribute's rows with the given rows, in order.
// The same source row may appear multiple times. The result is always
// internally-owned.
func (a *Attribute[V]) Gather(rows []int) error {
	for _, r := range rows {
		if r < 0 || r >= a.numElements {
			return &BoundsError{What: "element", Index: r, Size: a.numElements}
		}
	}

	src := a.values()
	gathered := make([]V, len(rows)*a.numChannels)
	for i, r := range rows {
		copy(gathered[i*a.numChannels:(i+1)*a.numChannels], src[r*a.numChannels:(r+1)*a.numChannels])
	}

	a.data = gathered
	a.external = nil
	a.readOnly = false
	a.numElements = len(rows)

	return nil
}

// Clone returns a copy of the attribute. Internally-owned storage is
// deep-copied; wrapped buffers follow the copy policy.
func (a *Attribute[V]) Clone() (*Attribute[V], error) {
	c := &Attribute[V]{
		element:      a.element,
		usage:        a.usage,
		numChannels:  a.numChannels,
		numElements:  a.numElements,
		defaultValue: a.defaultValue,
		growthPolicy: a.growthPolicy,
		writePolicy:  a.writePolicy,
		copyPolicy:   a.copyPolicy,
		logger:       a.logger,
	}

	if a.external != nil {
		switch a.copyPolicy {
		case KeepExternalPtr:
			c.external = a.external
			c.readOnly = a.readOnly
		case ErrorIfExternal:
			return nil, &PolicyViolationError{
				Op:     OpCopy,
				Policy: a.copyPolicy.String(),
				Detail: "attribute wraps an external buffer",
			}
		default:
			c.data = slices.Clone(a.external)
		}
	} else {
		c.data = slices.Clone(a.data)
	}

	return c, nil
}

// CloneBase returns a type-erased copy, subject to the copy policy.
func (a *Attribute[V]) CloneBase() (Base, error) {
	return a.Clone()
}

// Export yields the attribute's values as a flat row-major slice.
// Internally-owned storage is returned directly; wrapped buffers follow
// the given policy. With KeepExternalPtr the result aliases the wrapped
// buffer, including read-only ones.
func (a *Attribute[V]) Export(policy CopyPolicy) ([]V, error) {
	if a.external == nil {
		return a.values(), nil
	}

	switch policy {
	case KeepExternalPtr:
		return a.values(), nil
	case ErrorIfExternal:
		return nil, &PolicyViolationError{
			Op:     OpExport,
			Policy: policy.String(),
			Detail: "attribute wraps an external buffer",
		}
	default:
		return slices.Clone(a.values()), nil
	}
}

// CreateInternalCopy converts a wrapping attribute to internal storage
// by deep-copying the wrapped buffer. No-op for internally-owned
// attributes.
func (a *Attribute[V]) CreateInternalCopy() {
	a.createInternalCopy()
}

func (a *Attribute[V]) createInternalCopy() {
	if a.external == nil {
		return
	}
	a.data = slices.Clone(a.external)
	a.external = nil
	a.readOnly = false
}
