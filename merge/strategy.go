package merge

import (
	"sort"

	"github.com/lyraproj/configbyenv/api"
)

const (
	// Deep is the name of the default strategy. Conflicts are coalesced into sequences and
	// mappings are merged recursively.
	Deep = `deep`

	// Shallow is the name of the flat merge strategy
	Shallow = `shallow`

	// Overwrite is the name of the strategy where the extension wins every top-level conflict
	Overwrite = `overwrite`

	// Last is the name of the deep strategy where the extension wins conflicting scalars
	Last = `last`
)

var strategies = map[string]api.Policy{
	Deep:      {},
	Shallow:   {Shallow: true},
	Overwrite: {Overwrite: true},
	Last:      {NoCreateArray: true},
}

// GetStrategy returns the api.Policy that corresponds to the given strategy name. An empty name
// is the same as Deep.
func GetStrategy(n string) (api.Policy, error) {
	if n == `` {
		n = Deep
	}
	if p, ok := strategies[n]; ok {
		return p, nil
	}
	return api.Policy{}, api.UnknownMergeStrategy(n)
}

// StrategyNames returns the sorted names of all strategies
func StrategyNames() []string {
	ns := make([]string, 0, len(strategies))
	for n := range strategies {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}
