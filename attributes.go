package meshgo

import (
	"github.com/hupe1980/meshgo/attribute"
)

// CreateAttribute creates a named attribute attached to the given
// element type, sized to the mesh's current element count and filled
// with the default value. Names starting with '$' are rejected.
func CreateAttribute[V attribute.Value, S Scalar, I Index](m *SurfaceMesh[S, I], name string, element attribute.Element, usage attribute.Usage, numChannels int, optFns ...func(o *attribute.Options[V])) (AttributeID, error) {
	if err := m.checkNewName(name); err != nil {
		return 0, err
	}

	attr, err := attribute.New[V](element, usage, numChannels, m.elementCount(element), optFns...)
	if err != nil {
		return 0, err
	}

	return m.register(name, attr), nil
}

// WrapAttribute creates a named attribute aliasing a caller-provided
// writable buffer. The buffer must cover the mesh's current element
// count.
func WrapAttribute[V attribute.Value, S Scalar, I Index](m *SurfaceMesh[S, I], name string, element attribute.Element, usage attribute.Usage, numChannels int, buffer []V, optFns ...func(o *attribute.Options[V])) (AttributeID, error) {
	if err := m.checkNewName(name); err != nil {
		return 0, err
	}

	attr, err := attribute.Wrap(element, usage, numChannels, buffer, m.elementCount(element), optFns...)
	if err != nil {
		return 0, err
	}

	return m.register(name, attr), nil
}

// WrapConstAttribute creates a named attribute aliasing a
// caller-provided read-only buffer. The buffer must cover the mesh's
// current element count.
func WrapConstAttribute[V attribute.Value, S Scalar, I Index](m *SurfaceMesh[S, I], name string, element attribute.Element, usage attribute.Usage, numChannels int, buffer []V, optFns ...func(o *attribute.Options[V])) (AttributeID, error) {
	if err := m.checkNewName(name); err != nil {
		return 0, err
	}

	attr, err := attribute.WrapConst(element, usage, numChannels, buffer, m.elementCount(element), optFns...)
	if err != nil {
		return 0, err
	}

	return m.register(name, attr), nil
}

// CreateIndexedAttribute creates a named indexed attribute with
// numValues value rows and one index per facet corner. The index type
// matches the mesh's vertex index type.
func CreateIndexedAttribute[V attribute.Value, S Scalar, I Index](m *SurfaceMesh[S, I], name string, usage attribute.Usage, numChannels, numValues int, optFns ...func(o *attribute.Options[V])) (AttributeID, error) {
	if err := m.checkNewName(name); err != nil {
		return 0, err
	}

	attr, err := attribute.NewIndexed[V, I](usage, numChannels, numValues, m.NumCorners(), optFns...)
	if err != nil {
		return 0, err
	}

	return m.register(name, attr), nil
}

// AttributeOf returns the typed attribute registered under name.
func AttributeOf[V attribute.Value, S Scalar, I Index](m *SurfaceMesh[S, I], name string) (*attribute.Attribute[V], error) {
	base, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return attribute.Cast[V](base)
}

// IndexedOf returns the typed indexed attribute registered under name.
func IndexedOf[V attribute.Value, S Scalar, I Index](m *SurfaceMesh[S, I], name string) (*attribute.IndexedAttribute[V, I], error) {
	base, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return attribute.CastIndexed[V, I](base)
}

func (m *SurfaceMesh[S, I]) checkNewName(name string) error {
	if IsReservedName(name) {
		return &ReservedNameError{Name: name}
	}
	if _, ok := m.byName[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	return nil
}

func (m *SurfaceMesh[S, I]) lookup(name string) (attribute.Base, error) {
	id, ok := m.byName[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return m.entries[id].attr, nil
}

// HasAttribute reports whether an attribute is registered under name.
func (m *SurfaceMesh[S, I]) HasAttribute(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// AttributeID returns the id of the attribute registered under name.
func (m *SurfaceMesh[S, I]) AttributeID(name string) (AttributeID, error) {
	id, ok := m.byName[name]
	if !ok {
		return 0, &NotFoundError{Name: name}
	}
	return id, nil
}

// AttributeBase returns the type-erased attribute with the given id.
func (m *SurfaceMesh[S, I]) AttributeBase(id AttributeID) (attribute.Base, error) {
	if int(id) < 0 || int(id) >= len(m.entries) || m.entries[id].attr == nil {
		return nil, &OutOfRangeError{What: "attribute id", Index: int(id), Size: len(m.entries)}
	}
	return m.entries[id].attr, nil
}

// AttributeName returns the name of the attribute with the given id.
func (m *SurfaceMesh[S, I]) AttributeName(id AttributeID) (string, error) {
	if int(id) < 0 || int(id) >= len(m.entries) || m.entries[id].attr == nil {
		return "", &OutOfRangeError{What: "attribute id", Index: int(id), Size: len(m.entries)}
	}
	return m.entries[id].name, nil
}

// Attributes returns the names of all registered attributes in id
// order, reserved ones included.
func (m *SurfaceMesh[S, I]) Attributes() []string {
	names := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		if entry.attr != nil {
			names = append(names, entry.name)
		}
	}
	return names
}

// DeleteAttribute removes the attribute registered under name. Reserved
// attributes are only removed under attribute.DeleteForce; doing so
// leaves the mesh unusable and is meant for teardown paths.
func (m *SurfaceMesh[S, I]) DeleteAttribute(name string, policy attribute.DeletePolicy) error {
	id, ok := m.byName[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	if IsReservedName(name) && policy != attribute.DeleteForce {
		return &ReservedNameError{Name: name}
	}

	m.entries[id] = attrEntry{}
	delete(m.byName, name)

	return nil
}
