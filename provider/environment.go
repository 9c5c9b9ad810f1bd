package provider

import "os"

// Lookup is the capability to read a named value from an environment. It returns the value and
// true when the name is set, or an empty string and false when it isn't.
type Lookup func(name string) (string, bool)

// OSLookup reads from the environment of the current process
var OSLookup Lookup = os.LookupEnv

// MapLookup returns a Lookup that reads from the given map. The map is not copied and must not
// be modified while the Lookup is in use.
func MapLookup(env map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

// Environment returns the value of the named variable using the given lookup, or OSLookup
// when lookup is nil. A variable that is set to the empty string is reported as absent.
func Environment(lookup Lookup, name string) (string, bool) {
	if lookup == nil {
		lookup = OSLookup
	}
	if v, ok := lookup(name); ok && v != `` {
		return v, true
	}
	return ``, false
}
