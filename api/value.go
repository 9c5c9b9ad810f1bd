package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind is the tag of a Value
type Kind int

const (
	// KindScalar is the kind of nil, bool, integer, float, and string values
	KindScalar = Kind(iota)

	// KindSequence is the kind of an ordered sequence of values
	KindSequence

	// KindMapping is the kind of a Fragment
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return `scalar`
	case KindSequence:
		return `sequence`
	case KindMapping:
		return `mapping`
	default:
		return fmt.Sprintf(`kind(%d)`, int(k))
	}
}

// Value is a configuration value. It is always one of Scalar, Sequence, or *Fragment and its
// Kind is decided when the value is created. The interface cannot be implemented outside of
// this package.
type Value interface {
	fmt.Stringer

	value()

	// Kind returns the tag of this value
	Kind() Kind

	// Equals returns true when other has the same kind and structural content. Mappings
	// are compared without regard to key order.
	Equals(other Value) bool
}

// Scalar is a primitive value. The wrapped Go value is one of nil, bool, int64, float64, or string.
type Scalar struct {
	v interface{}
}

// Nil is the scalar that represents an explicit null
var Nil = Scalar{}

// String returns a string scalar
func String(s string) Scalar {
	return Scalar{s}
}

// Int returns an integer scalar
func Int(i int64) Scalar {
	return Scalar{i}
}

// Float returns a floating point scalar. NaN and infinities cannot be rendered as JSON and are
// rejected by ToValue and by the data loaders.
func Float(f float64) Scalar {
	return Scalar{f}
}

// Bool returns a boolean scalar
func Bool(b bool) Scalar {
	return Scalar{b}
}

func (s Scalar) value() {}

// Kind returns KindScalar
func (s Scalar) Kind() Kind {
	return KindScalar
}

// GoValue returns the wrapped Go value
func (s Scalar) GoValue() interface{} {
	return s.v
}

// IsNil returns true if this is the null scalar
func (s Scalar) IsNil() bool {
	return s.v == nil
}

// Equals returns true if other is a scalar wrapping an equal Go value
func (s Scalar) Equals(other Value) bool {
	if os, ok := other.(Scalar); ok {
		return s.v == os.v
	}
	return false
}

func (s Scalar) String() string {
	switch v := s.v.(type) {
	case nil:
		return `null`
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf(`%v`, v)
	}
}

// MarshalJSON returns the JSON representation of the wrapped Go value
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.v)
}

// MarshalYAML returns the wrapped Go value
func (s Scalar) MarshalYAML() (interface{}, error) {
	return s.v, nil
}
