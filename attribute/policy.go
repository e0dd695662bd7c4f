package attribute

import "fmt"

// GrowthPolicy controls what happens when an attribute wrapping an
// external buffer is resized.
type GrowthPolicy int

const (
	// GrowthErrorIfExternal refuses to resize an external buffer, even
	// when the requested size fits within its capacity.
	GrowthErrorIfExternal GrowthPolicy = iota

	// GrowthAllowWithinCapacity allows resizing an external buffer as
	// long as the requested size fits within its capacity.
	GrowthAllowWithinCapacity

	// GrowthWarnAndCopy logs a warning and copies the data into an
	// internally-owned buffer when growing beyond the external capacity.
	GrowthWarnAndCopy

	// GrowthSilentCopy copies the data into an internally-owned buffer
	// when growing beyond the external capacity, without any warning.
	GrowthSilentCopy
)

// String returns a string representation of the GrowthPolicy.
func (p GrowthPolicy) String() string {
	switch p {
	case GrowthErrorIfExternal:
		return "ErrorIfExternal"
	case GrowthAllowWithinCapacity:
		return "AllowWithinCapacity"
	case GrowthWarnAndCopy:
		return "WarnAndCopy"
	case GrowthSilentCopy:
		return "SilentCopy"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// WritePolicy controls what happens when writing to an attribute that
// wraps a read-only external buffer.
type WritePolicy int

const (
	// WriteErrorIfReadOnly refuses writes to a read-only buffer.
	WriteErrorIfReadOnly WritePolicy = iota

	// WriteWarnAndCopy logs a warning and copies the data into an
	// internally-owned buffer on the first write.
	WriteWarnAndCopy

	// WriteSilentCopy copies the data into an internally-owned buffer on
	// the first write, without any warning.
	WriteSilentCopy
)

// String returns a string representation of the WritePolicy.
func (p WritePolicy) String() string {
	switch p {
	case WriteErrorIfReadOnly:
		return "ErrorIfReadOnly"
	case WriteWarnAndCopy:
		return "WarnAndCopy"
	case WriteSilentCopy:
		return "SilentCopy"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// CopyPolicy controls how an attribute wrapping an external buffer
// behaves when cloned or exported.
type CopyPolicy int

const (
	// CopyIfExternal deep-copies external buffers into internal storage.
	CopyIfExternal CopyPolicy = iota

	// KeepExternalPtr keeps aliasing the external buffer. The caller is
	// responsible for keeping the buffer alive and consistent across all
	// aliases.
	KeepExternalPtr

	// ErrorIfExternal refuses to clone or export an external buffer.
	ErrorIfExternal
)

// String returns a string representation of the CopyPolicy.
func (p CopyPolicy) String() string {
	switch p {
	case CopyIfExternal:
		return "CopyIfExternal"
	case KeepExternalPtr:
		return "KeepExternalPtr"
	case ErrorIfExternal:
		return "ErrorIfExternal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// DeletePolicy controls whether reserved attributes (names starting with
// '$') may be deleted from a mesh.
type DeletePolicy int

const (
	// DeleteErrorIfReserved refuses to delete reserved attributes.
	DeleteErrorIfReserved DeletePolicy = iota

	// DeleteForce deletes the attribute regardless of its name. Meant
	// for internal bookkeeping; removing a reserved attribute can leave
	// the owning mesh in an invalid state.
	DeleteForce
)

// String returns a string representation of the DeletePolicy.
func (p DeletePolicy) String() string {
	switch p {
	case DeleteErrorIfReserved:
		return "ErrorIfReserved"
	case DeleteForce:
		return "Force"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}
