// Package configbyenv contains the functions that select and combine the configuration fragments
// of the active environments. It is the package to use when using configbyenv as a library.
package configbyenv

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/lyraproj/configbyenv/api"
	"github.com/lyraproj/configbyenv/merge"
	"github.com/lyraproj/configbyenv/provider"
)

const (
	// OverrideVariable is the environment variable that names the active environments. It takes
	// precedence over FallbackVariable.
	OverrideVariable = `CONFIG_BY_ENV`

	// FallbackVariable is consulted when OverrideVariable isn't set
	FallbackVariable = `NODE_ENV`

	// DefaultEnvironment is used when none of the variables are set
	DefaultEnvironment = `development`

	// DefaultSource is the source reported to an Explainer when DefaultEnvironment is used
	DefaultSource = `default`
)

// Options control a selection
type Options struct {
	// Policy is the merge policy used when folding fragments into the result
	Policy api.Policy

	// SkipCommon excludes the common fragment from the result
	SkipCommon bool

	// Lookup reads the environment variables. provider.OSLookup is used when it is nil.
	Lookup provider.Lookup

	// Explainer, when set, receives information about each step of the selection
	Explainer api.Explainer

	// Logger is used for debug output. The default logger is used when it is nil.
	Logger hclog.Logger
}

// NewOptions creates Options from an options map. The recognized keys are those recognized by
// api.NewPolicy and api.OptionSkipCommon.
func NewOptions(options map[string]interface{}) (Options, error) {
	opts := Options{}
	policyOptions := make(map[string]interface{}, len(options))
	for k, v := range options {
		if k != api.OptionSkipCommon {
			policyOptions[k] = v
			continue
		}
		skip, err := api.BoolOption(k, v)
		if err != nil {
			return Options{}, err
		}
		opts.SkipCommon = skip
	}
	p, err := api.NewPolicy(policyOptions)
	if err != nil {
		return Options{}, err
	}
	opts.Policy = p
	return opts, nil
}

func (o *Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.Default().Named(`configbyenv`)
	}
	return o.Logger
}

// EnvironmentSelector returns the environment selector string and its source. The OverrideVariable
// is read first, then the FallbackVariable. When none of them are set, DefaultEnvironment is returned
// with the DefaultSource.
func EnvironmentSelector(lookup provider.Lookup) (selector, source string) {
	for _, n := range []string{OverrideVariable, FallbackVariable} {
		if v, ok := provider.Environment(lookup, n); ok {
			return v, n
		}
	}
	return DefaultEnvironment, DefaultSource
}

// EnvironmentNames splits the selector on commas. Names are not trimmed, " production" does
// not select the "production" fragment.
func EnvironmentNames(selector string) []string {
	return strings.Split(selector, `,`)
}

// ByEnv selects the fragments named by the environment selector found using the Lookup of the
// given options and combines them with the common fragment. See Select.
func ByEnv(bundle api.Bundle, opts Options) *api.Fragment {
	selector, source := EnvironmentSelector(opts.Lookup)
	opts.logger().Debug(`environment selector`, `source`, source, `selector`, selector)
	if opts.Explainer != nil {
		opts.Explainer.AcceptSelector(source, selector)
	}
	return Select(bundle, EnvironmentNames(selector), opts)
}

// ByEnvValue is like ByEnv but accepts the bundle as any Go value that represents a mapping and the
// options as a map. An error is returned if config isn't a mapping or if the options are invalid.
func ByEnvValue(config interface{}, options map[string]interface{}) (*api.Fragment, error) {
	bundle, err := api.ToBundle(config)
	if err != nil {
		return nil, err
	}
	opts, err := NewOptions(options)
	if err != nil {
		return nil, err
	}
	return ByEnv(bundle, opts), nil
}

// Select combines the fragments of the bundle that are named by names. The result starts out as a
// copy of the common fragment, or empty if there is no common fragment or if SkipCommon is set. The
// fragment of each name is then merged into the result, in the order of the names, using the policy
// of the given options. Names that have no fragment in the bundle are ignored.
//
// The result is empty when nothing matched. The bundle is never modified.
func Select(bundle api.Bundle, names []string, opts Options) *api.Fragment {
	log := opts.logger()
	ex := opts.Explainer

	var result *api.Fragment
	common, found := bundle[api.CommonKey]
	switch {
	case opts.SkipCommon:
		log.Debug(`common fragment skipped`)
		result = api.FragmentWithCapacity(0)
	case found:
		log.Debug(`common fragment found`, `keys`, common.Len())
		result = common.Copy()
	default:
		log.Debug(`common fragment not found`)
		result = api.FragmentWithCapacity(0)
	}
	if ex != nil {
		ex.AcceptCommon(found, opts.SkipCommon)
	}

	for _, name := range names {
		f, ok := bundle[name]
		if ok {
			log.Debug(`merging fragment`, `name`, name, `keys`, f.Len())
			result = merge.Fragments(result, f, opts.Policy)
		} else {
			log.Debug(`no fragment found`, `name`, name)
		}
		if ex != nil {
			ex.AcceptFragment(name, ok)
		}
	}
	if ex != nil {
		ex.AcceptMergeResult(result)
	}
	return result
}
