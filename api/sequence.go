package api

import (
	"bytes"
	"strings"
)

// Sequence is an ordered sequence of values. Functions that combine sequences always
// return a new slice and never append to their receiver.
type Sequence []Value

// Values returns a sequence of the given values. A nil value is stored as Nil.
func Values(values ...Value) Sequence {
	s := make(Sequence, len(values))
	for i, v := range values {
		s[i] = orNil(v)
	}
	return s
}

func orNil(v Value) Value {
	if v == nil {
		return Nil
	}
	return v
}

func (s Sequence) value() {}

// Kind returns KindSequence
func (s Sequence) Kind() Kind {
	return KindSequence
}

// Len returns the number of elements
func (s Sequence) Len() int {
	return len(s)
}

// With returns a new sequence with the elements of this sequence followed by v. Nil elements
// are stored as Nil.
func (s Sequence) With(v Value) Sequence {
	r := make(Sequence, 0, len(s)+1)
	for _, e := range s {
		r = append(r, orNil(e))
	}
	return append(r, orNil(v))
}

// WithAll returns a new sequence with the elements of this sequence followed by all elements of o.
// Nil elements are stored as Nil.
func (s Sequence) WithAll(o Sequence) Sequence {
	r := make(Sequence, 0, len(s)+len(o))
	for _, e := range s {
		r = append(r, orNil(e))
	}
	for _, e := range o {
		r = append(r, orNil(e))
	}
	return r
}

// Equals returns true if other is a sequence with pairwise equal elements
func (s Sequence) Equals(other Value) bool {
	os, ok := other.(Sequence)
	if !ok || len(s) != len(os) {
		return false
	}
	for i, v := range s {
		if !orNil(v).Equals(orNil(os[i])) {
			return false
		}
	}
	return true
}

func (s Sequence) String() string {
	b := strings.Builder{}
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteString(`, `)
		}
		b.WriteString(orNil(v).String())
	}
	b.WriteByte(']')
	return b.String()
}

// MarshalJSON writes the sequence as a JSON array
func (s Sequence) MarshalJSON() ([]byte, error) {
	b := bytes.Buffer{}
	if err := writeJSON(&b, s); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// MarshalYAML returns a sequence node
func (s Sequence) MarshalYAML() (interface{}, error) {
	return toNode(s)
}
