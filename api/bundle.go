package api

import "sort"

// CommonKey is the reserved bundle key of the fragment that is used regardless of environment
const CommonKey = `common`

// Bundle maps environment names, and the reserved CommonKey, to fragments
type Bundle map[string]*Fragment

// ToBundle converts the given Go value into a Bundle. The value must represent a mapping. Entries
// whose value isn't a mapping are left out since they can never be selected.
func ToBundle(vi interface{}) (Bundle, error) {
	f, err := ToFragment(`bundle`, vi)
	if err != nil {
		return nil, err
	}
	return BundleFromFragment(f), nil
}

// BundleFromFragment returns a Bundle with all entries of the given fragment that are mappings
func BundleFromFragment(f *Fragment) Bundle {
	b := make(Bundle, f.Len())
	f.EachEntry(func(k string, v Value) {
		if ef, ok := v.(*Fragment); ok {
			b[k] = ef
		}
	})
	return b
}

// Names returns the sorted names of all fragments in the bundle
func (b Bundle) Names() []string {
	ns := make([]string, 0, len(b))
	for n := range b {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}
