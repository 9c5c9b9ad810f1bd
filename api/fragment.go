package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fragment is an insertion ordered mapping from string keys to values. The order of the keys is
// retained for rendering purposes only, two fragments with the same entries in different order are equal.
//
// Put is intended for construction. Functions that take fragments as arguments never call Put on them,
// they produce new fragments. A nil *Fragment behaves as an empty fragment in all read operations.
type Fragment struct {
	keys    []string
	entries map[string]Value
}

// Entry is a key and value pair used when creating a Fragment
type Entry struct {
	Key   string
	Value Value
}

// NewFragment creates a fragment that contains the given entries in the given order. A later entry
// replaces an earlier entry with the same key.
func NewFragment(entries ...Entry) *Fragment {
	f := FragmentWithCapacity(len(entries))
	for _, e := range entries {
		f.Put(e.Key, e.Value)
	}
	return f
}

// FragmentWithCapacity creates an empty fragment with room for the given number of entries
func FragmentWithCapacity(capacity int) *Fragment {
	return &Fragment{keys: make([]string, 0, capacity), entries: make(map[string]Value, capacity)}
}

func (f *Fragment) value() {}

// Kind returns KindMapping
func (f *Fragment) Kind() Kind {
	return KindMapping
}

// Len returns the number of entries
func (f *Fragment) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Get returns the value stored under the given key and true, or nil and false if no such key exists
func (f *Fragment) Get(key string) (Value, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.entries[key]
	return v, ok
}

// ContainsKey returns true if the key is present
func (f *Fragment) ContainsKey(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Keys returns a copy of the keys in insertion order
func (f *Fragment) Keys() []string {
	if f == nil {
		return []string{}
	}
	ks := make([]string, len(f.keys))
	copy(ks, f.keys)
	return ks
}

// EachEntry calls the given function once for each entry in insertion order
func (f *Fragment) EachEntry(doer func(key string, value Value)) {
	if f == nil {
		return
	}
	for _, k := range f.keys {
		doer(k, f.entries[k])
	}
}

// Put stores the value under the given key. A new key is appended to the key order, an existing key
// keeps its position. A nil value is stored as Nil.
func (f *Fragment) Put(key string, value Value) {
	value = orNil(value)
	if f.entries == nil {
		f.entries = make(map[string]Value)
	}
	if _, ok := f.entries[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.entries[key] = value
}

// Copy returns a shallow copy of this fragment. The copy never shares its key slice or entry map
// with the original. Copying a nil fragment yields an empty fragment.
func (f *Fragment) Copy() *Fragment {
	c := FragmentWithCapacity(f.Len())
	f.EachEntry(c.Put)
	return c
}

// Equals returns true if other is a fragment with the same key set and equal values for each key
func (f *Fragment) Equals(other Value) bool {
	of, ok := other.(*Fragment)
	if !ok || f.Len() != of.Len() {
		return false
	}
	eq := true
	f.EachEntry(func(k string, v Value) {
		if eq {
			ov, found := of.Get(k)
			eq = found && v.Equals(ov)
		}
	})
	return eq
}

func (f *Fragment) String() string {
	b := strings.Builder{}
	b.WriteByte('{')
	i := 0
	f.EachEntry(func(k string, v Value) {
		if i > 0 {
			b.WriteString(`, `)
		}
		i++
		b.WriteString(k)
		b.WriteString(`: `)
		b.WriteString(v.String())
	})
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON writes the fragment as a JSON object with keys in insertion order
func (f *Fragment) MarshalJSON() ([]byte, error) {
	b := bytes.Buffer{}
	if err := writeJSON(&b, f); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// MarshalYAML returns a mapping node with keys in insertion order
func (f *Fragment) MarshalYAML() (interface{}, error) {
	return toNode(f)
}

func writeJSON(b *bytes.Buffer, v Value) error {
	switch v := v.(type) {
	case *Fragment:
		b.WriteByte('{')
		var err error
		i := 0
		v.EachEntry(func(k string, ev Value) {
			if err != nil {
				return
			}
			if i > 0 {
				b.WriteByte(',')
			}
			i++
			var kb []byte
			if kb, err = json.Marshal(k); err == nil {
				b.Write(kb)
				b.WriteByte(':')
				err = writeJSON(b, ev)
			}
		})
		if err != nil {
			return err
		}
		b.WriteByte('}')
	case Sequence:
		b.WriteByte('[')
		for i, ev := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, ev); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case nil:
		b.WriteString(`null`)
	case Scalar:
		sb, err := json.Marshal(v.v)
		if err != nil {
			return err
		}
		b.Write(sb)
	default:
		return NotConvertible(v)
	}
	return nil
}

func toNode(v Value) (*yaml.Node, error) {
	switch v := v.(type) {
	case *Fragment:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: `!!map`}
		var err error
		v.EachEntry(func(k string, ev Value) {
			if err != nil {
				return
			}
			var vn *yaml.Node
			if vn, err = toNode(ev); err == nil {
				n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: `!!str`, Value: k}, vn)
			}
		})
		return n, err
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: `!!seq`}
		for _, ev := range v {
			vn, err := toNode(ev)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, vn)
		}
		return n, nil
	case nil, Scalar:
		var gv interface{}
		if s, ok := v.(Scalar); ok {
			gv = s.v
		}
		n := &yaml.Node{}
		if err := n.Encode(gv); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, NotConvertible(v)
	}
}
