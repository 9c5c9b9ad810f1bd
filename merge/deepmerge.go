package merge

import (
	"github.com/lyraproj/configbyenv/api"
)

// Fragments merges the extension into the base and returns the result as a new fragment. Neither
// argument is modified. A nil fragment is treated as an empty fragment.
//
// When the policy is flat (Overwrite or Shallow), the result is a shallow copy of base with all
// top-level entries of extension assigned over it.
//
// Otherwise, each entry of extension is combined with the entry of the same key in base:
//
// Sequence and Sequence: the concatenation of the two
//
// Sequence and other: the base sequence with the other value appended
//
// other and Sequence: the base value followed by all elements of the extension sequence
//
// Mapping and Mapping: the recursive merge of the two, using the same policy
//
// any other combination: a two element sequence, or the extension value when the policy
// doesn't create arrays
//
// Entries that only exist in one of the fragments are passed through unchanged.
func Fragments(base, extension *api.Fragment, policy api.Policy) *api.Fragment {
	merged := base.Copy()
	if policy.IsFlat() {
		extension.EachEntry(merged.Put)
		return merged
	}
	extension.EachEntry(func(k string, ev api.Value) {
		if bv, ok := merged.Get(k); ok {
			merged.Put(k, deep(bv, ev, policy))
		} else {
			merged.Put(k, ev)
		}
	})
	return merged
}

// Values is like Fragments but accepts any Go value that can be converted into a fragment. An
// error wrapping api.ErrNotMapping is returned when one of the arguments doesn't represent a mapping.
func Values(base, extension interface{}, policy api.Policy) (*api.Fragment, error) {
	bf, err := api.ToFragment(`base`, base)
	if err != nil {
		return nil, err
	}
	ef, err := api.ToFragment(`extension`, extension)
	if err != nil {
		return nil, err
	}
	return Fragments(bf, ef, policy), nil
}

func deep(a, b api.Value, policy api.Policy) api.Value {
	switch av := a.(type) {
	case api.Sequence:
		if bs, ok := b.(api.Sequence); ok {
			return av.WithAll(bs)
		}
		return av.With(b)
	case *api.Fragment:
		if bf, ok := b.(*api.Fragment); ok {
			return Fragments(av, bf, policy)
		}
	}
	if bs, ok := b.(api.Sequence); ok {
		return api.Values(a).WithAll(bs)
	}
	if policy.CreateArray() {
		return api.Values(a, b)
	}
	return b
}
