package provider

import (
	"path/filepath"
	"strings"

	"github.com/lyraproj/configbyenv/api"
	"github.com/lyraproj/configbyenv/merge"
)

// DataFunction reads a file and returns its content as a Fragment
type DataFunction func(path string) (*api.Fragment, error)

// DataFunctions maps lower case file extensions to the function that reads such files
var DataFunctions = map[string]DataFunction{
	`.yaml`:   YamlData,
	`.yml`:    YamlData,
	`.json`:   JSONData,
	`.hcl`:    HclData,
	`.tfvars`: HclData,
}

// FragmentFromFile reads the given file using the DataFunction registered for its extension
func FragmentFromFile(path string) (*api.Fragment, error) {
	if df, ok := DataFunctions[strings.ToLower(filepath.Ext(path))]; ok {
		return df(path)
	}
	return nil, api.UnsupportedFileType(path)
}

// FragmentName returns the base name of the given path without its extension. A fragment file
// named "production.yaml" contains the fragment for the "production" environment.
func FragmentName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// LoadBundle creates a Bundle from files. Each bundle file contains a complete bundle, i.e. a mapping
// where each key is an environment name. Each fragment file contains the fragment of one environment,
// named by FragmentName. Bundle files are read before fragment files. When an environment is found in
// more than one file, its fragments are merged in that order using the given policy.
func LoadBundle(bundleFiles, fragmentFiles []string, policy api.Policy) (api.Bundle, error) {
	bundle := make(api.Bundle)
	add := func(name string, f *api.Fragment) {
		if prev, ok := bundle[name]; ok {
			f = merge.Fragments(prev, f, policy)
		}
		bundle[name] = f
	}

	for _, path := range bundleFiles {
		data, err := FragmentFromFile(path)
		if err != nil {
			return nil, err
		}
		fb := api.BundleFromFragment(data)
		data.EachEntry(func(name string, _ api.Value) {
			if f, ok := fb[name]; ok {
				add(name, f)
			}
		})
	}

	for _, path := range fragmentFiles {
		f, err := FragmentFromFile(path)
		if err != nil {
			return nil, err
		}
		add(FragmentName(path), f)
	}
	return bundle, nil
}
