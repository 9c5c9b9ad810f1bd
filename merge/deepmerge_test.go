package merge_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/lyraproj/configbyenv/api"
	"github.com/lyraproj/configbyenv/merge"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func ExampleFragments() {
	base := api.MustFragment(map[string]interface{}{`hosts`: []interface{}{`a`}, `port`: 80})
	extension := api.MustFragment(map[string]interface{}{`hosts`: `b`, `port`: 443, `tls`: true})

	fmt.Println(merge.Fragments(base, extension, api.Policy{}))
	fmt.Println(merge.Fragments(base, extension, api.Policy{NoCreateArray: true}))
	fmt.Println(merge.Fragments(base, extension, api.Policy{Overwrite: true}))
	// Output:
	// {hosts: [a, b], port: [80, 443], tls: true}
	// {hosts: [a, b], port: 443, tls: true}
	// {hosts: b, port: 443, tls: true}
}

func values(t *testing.T, base, extension interface{}, options map[string]interface{}) *api.Fragment {
	t.Helper()
	p, err := api.NewPolicy(options)
	require.NoError(t, err)
	r, err := merge.Values(base, extension, p)
	require.NoError(t, err)
	return r
}

func requireEqual(t *testing.T, expected interface{}, actual api.Value) {
	t.Helper()
	ev := api.MustValue(expected)
	require.True(t, ev.Equals(actual), "expected %s, got %s", ev, actual)
}

func TestValues_shallow(t *testing.T) {
	r := values(t,
		map[string]interface{}{`a`: 1, `b`: 2},
		map[string]interface{}{`a`: 99, `c`: 33},
		map[string]interface{}{`shallow`: true})
	requireEqual(t, map[string]interface{}{`a`: 99, `b`: 2, `c`: 33}, r)
}

func TestValues_overwriteDoesNotRecurse(t *testing.T) {
	r := values(t,
		map[string]interface{}{`m`: map[string]interface{}{`x`: 1, `y`: 2}, `s`: []interface{}{1}},
		map[string]interface{}{`m`: map[string]interface{}{`y`: 3}, `s`: 2},
		map[string]interface{}{`overwrite`: true})
	requireEqual(t, map[string]interface{}{`m`: map[string]interface{}{`y`: 3}, `s`: 2}, r)
}

func TestValues_overwriteWinsOverShallow(t *testing.T) {
	r := values(t,
		map[string]interface{}{`a`: 1},
		map[string]interface{}{`a`: 2},
		map[string]interface{}{`overwrite`: true, `shallow`: false, `createArray`: true})
	requireEqual(t, map[string]interface{}{`a`: 2}, r)
}

func TestValues_createsArrays(t *testing.T) {
	r := values(t,
		map[string]interface{}{`a`: 1, `b`: []interface{}{2, 3}, `c`: 4, `d`: []interface{}{5, 6}},
		map[string]interface{}{`a`: 99, `b`: 87, `c`: []interface{}{42, 12}, `d`: []interface{}{22, 33}},
		nil)
	requireEqual(t, map[string]interface{}{
		`a`: []interface{}{1, 99},
		`b`: []interface{}{2, 3, 87},
		`c`: []interface{}{4, 42, 12},
		`d`: []interface{}{5, 6, 22, 33},
	}, r)
}

func TestValues_noCreateArray(t *testing.T) {
	r := values(t,
		map[string]interface{}{`a`: 1, `b`: []interface{}{2, 3}, `c`: 4, `d`: []interface{}{5, 6}},
		map[string]interface{}{`a`: 99, `b`: 87, `c`: []interface{}{42, 12}, `d`: []interface{}{22, 33}},
		map[string]interface{}{`createArray`: false})
	requireEqual(t, map[string]interface{}{
		`a`: 99,
		`b`: []interface{}{2, 3, 87},
		`c`: []interface{}{4, 42, 12},
		`d`: []interface{}{5, 6, 22, 33},
	}, r)
}

func TestValues_deep(t *testing.T) {
	r := values(t,
		map[string]interface{}{
			`obj`: map[string]interface{}{`a`: 1, `b`: []interface{}{2, 3}, `c`: 4, `d`: []interface{}{5, 6}},
			`x`:   7,
			`y`:   map[string]interface{}{`e`: 8},
		},
		map[string]interface{}{
			`obj`: map[string]interface{}{`a`: 99, `b`: 87, `c`: []interface{}{42, 12}, `d`: []interface{}{22, 33}},
			`x`:   map[string]interface{}{`e`: 60},
			`y`:   70,
		},
		nil)
	requireEqual(t, map[string]interface{}{
		`obj`: map[string]interface{}{
			`a`: []interface{}{1, 99},
			`b`: []interface{}{2, 3, 87},
			`c`: []interface{}{4, 42, 12},
			`d`: []interface{}{5, 6, 22, 33},
		},
		`x`: []interface{}{7, map[string]interface{}{`e`: 60}},
		`y`: []interface{}{map[string]interface{}{`e`: 8}, 70},
	}, r)
}

func TestValues_sequenceWithMapping(t *testing.T) {
	r := values(t,
		map[string]interface{}{`s`: []interface{}{1}, `m`: map[string]interface{}{`a`: 1}},
		map[string]interface{}{`s`: map[string]interface{}{`b`: 2}, `m`: []interface{}{2}},
		map[string]interface{}{`createArray`: false})
	requireEqual(t, map[string]interface{}{
		`s`: []interface{}{1, map[string]interface{}{`b`: 2}},
		`m`: []interface{}{map[string]interface{}{`a`: 1}, 2},
	}, r)
}

func TestValues_nullIsPresent(t *testing.T) {
	r := values(t, map[string]interface{}{`a`: nil}, map[string]interface{}{`a`: 1}, nil)
	requireEqual(t, map[string]interface{}{`a`: []interface{}{nil, 1}}, r)
}

func TestValues_notMapping(t *testing.T) {
	_, err := merge.Values([]interface{}{1}, map[string]interface{}{}, api.Policy{})
	require.True(t, errors.Is(err, api.ErrNotMapping))
	require.Contains(t, err.Error(), `base must be a mapping`)

	_, err = merge.Values(map[string]interface{}{}, `x`, api.Policy{})
	require.True(t, errors.Is(err, api.ErrNotMapping))
	require.Contains(t, err.Error(), `extension must be a mapping`)
}

func TestFragments_keyOrder(t *testing.T) {
	base := api.NewFragment(api.Entry{Key: `z`, Value: api.Int(1)}, api.Entry{Key: `a`, Value: api.Int(2)})
	extension := api.NewFragment(api.Entry{Key: `m`, Value: api.Int(3)}, api.Entry{Key: `z`, Value: api.Int(4)})
	for _, p := range []api.Policy{{}, {Overwrite: true}} {
		require.Equal(t, []string{`z`, `a`, `m`}, merge.Fragments(base, extension, p).Keys())
	}
}

func TestFragments_nil(t *testing.T) {
	f := api.NewFragment(api.Entry{Key: `a`, Value: api.Int(1)})
	require.True(t, f.Equals(merge.Fragments(nil, f, api.Policy{})))
	require.True(t, f.Equals(merge.Fragments(f, nil, api.Policy{})))
	require.Equal(t, 0, merge.Fragments(nil, nil, api.Policy{}).Len())
}

func TestFragments_doesNotShareSequences(t *testing.T) {
	s := make(api.Sequence, 1, 8)
	s[0] = api.Int(1)
	base := api.NewFragment(api.Entry{Key: `s`, Value: s})
	r1 := merge.Fragments(base, api.NewFragment(api.Entry{Key: `s`, Value: api.Int(2)}), api.Policy{})
	r2 := merge.Fragments(base, api.NewFragment(api.Entry{Key: `s`, Value: api.Int(3)}), api.Policy{})
	requireEqual(t, map[string]interface{}{`s`: []interface{}{1, 2}}, r1)
	requireEqual(t, map[string]interface{}{`s`: []interface{}{1, 3}}, r2)
	requireEqual(t, map[string]interface{}{`s`: []interface{}{1}}, base)
}

var policies = []api.Policy{{}, {NoCreateArray: true}, {Shallow: true}, {Overwrite: true}, {Overwrite: true, Shallow: true}}

var scalars = []api.Value{api.Nil, api.Int(1), api.Int(2), api.Float(2.5), api.String(`a`), api.Bool(true)}

var keys = []string{`a`, `b`, `c`, `d`, `e`}

func drawValue(t *rapid.T, depth int) api.Value {
	kind := 0
	if depth > 0 {
		kind = rapid.IntRange(0, 2).Draw(t, `kind`)
	}
	switch kind {
	case 1:
		n := rapid.IntRange(0, 3).Draw(t, `len`)
		s := make(api.Sequence, n)
		for i := range s {
			s[i] = drawValue(t, depth-1)
		}
		return s
	case 2:
		return drawFragment(t, depth-1)
	default:
		return rapid.SampledFrom(scalars).Draw(t, `scalar`)
	}
}

func drawFragment(t *rapid.T, depth int) *api.Fragment {
	n := rapid.IntRange(0, len(keys)).Draw(t, `size`)
	f := api.FragmentWithCapacity(n)
	for i := 0; i < n; i++ {
		f.Put(rapid.SampledFrom(keys).Draw(t, `key`), drawValue(t, depth))
	}
	return f
}

func TestFragments_identity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := drawFragment(t, 3)
		p := rapid.SampledFrom(policies).Draw(t, `policy`)
		if r := merge.Fragments(f, api.NewFragment(), p); !r.Equals(f) {
			t.Fatalf(`merge with empty extension: expected %s, got %s`, f, r)
		}
		if r := merge.Fragments(api.NewFragment(), f, p); !r.Equals(f) {
			t.Fatalf(`merge into empty base: expected %s, got %s`, f, r)
		}
	})
}

func TestFragments_doesNotMutate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := drawFragment(t, 3)
		extension := drawFragment(t, 3)
		p := rapid.SampledFrom(policies).Draw(t, `policy`)
		bs, es := base.String(), extension.String()
		merge.Fragments(base, extension, p)
		if base.String() != bs {
			t.Fatalf(`base was modified: %s became %s`, bs, base)
		}
		if extension.String() != es {
			t.Fatalf(`extension was modified: %s became %s`, es, extension)
		}
	})
}

func TestFragments_keyUnion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := drawFragment(t, 2)
		extension := drawFragment(t, 2)
		p := rapid.SampledFrom(policies).Draw(t, `policy`)
		r := merge.Fragments(base, extension, p)

		expected := base.Keys()
		extension.EachEntry(func(k string, _ api.Value) {
			if !base.ContainsKey(k) {
				expected = append(expected, k)
			}
		})
		if fmt.Sprint(expected) != fmt.Sprint(r.Keys()) {
			t.Fatalf(`expected keys %v, got %v`, expected, r.Keys())
		}

		r.EachEntry(func(k string, v api.Value) {
			bv, inBase := base.Get(k)
			ev, inExt := extension.Get(k)
			switch {
			case !inExt:
				if !v.Equals(bv) {
					t.Fatalf(`base only key %s changed from %s to %s`, k, bv, v)
				}
			case !inBase || p.IsFlat():
				if !v.Equals(ev) {
					t.Fatalf(`key %s expected extension value %s, got %s`, k, ev, v)
				}
			}
		})
	})
}

func TestFragments_conflictingScalars(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SampledFrom(scalars).Draw(t, `a`)
		b := rapid.SampledFrom(scalars).Draw(t, `b`)
		base := api.NewFragment(api.Entry{Key: `k`, Value: a})
		extension := api.NewFragment(api.Entry{Key: `k`, Value: b})

		r, _ := merge.Fragments(base, extension, api.Policy{}).Get(`k`)
		if !r.Equals(api.Values(a, b)) {
			t.Fatalf(`expected [%s, %s], got %s`, a, b, r)
		}
		r, _ = merge.Fragments(base, extension, api.Policy{NoCreateArray: true}).Get(`k`)
		if !r.Equals(b) {
			t.Fatalf(`expected %s, got %s`, b, r)
		}
	})
}

type wrappedSequence struct {
	api.Sequence
}

func TestFragments_wrappedSequenceIsNotASequence(t *testing.T) {
	w := wrappedSequence{api.Values(api.Int(1))}
	base := api.NewFragment(api.Entry{Key: `k`, Value: w})
	extension := api.NewFragment(api.Entry{Key: `k`, Value: api.Int(2)})

	var r *api.Fragment
	require.NotPanics(t, func() { r = merge.Fragments(base, extension, api.Policy{}) })
	v, _ := r.Get(`k`)
	require.Equal(t, api.Values(w, api.Int(2)), v)

	require.NotPanics(t, func() { r = merge.Fragments(extension, base, api.Policy{}) })
	v, _ = r.Get(`k`)
	require.Equal(t, api.Values(api.Int(2), w), v)
}

func TestValues_jsonNumbers(t *testing.T) {
	r := values(t,
		map[string]interface{}{`n`: json.Number(`1`), `f`: json.Number(`0.5`)},
		map[string]interface{}{`n`: 2},
		nil)
	requireEqual(t, map[string]interface{}{`n`: []interface{}{1, 2}, `f`: 0.5}, r)
}
