package provider

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/lyraproj/configbyenv/api"
	"gopkg.in/yaml.v3"
)

// YamlData reads a YAML hash from a file and returns it as a Fragment. A file that doesn't exist
// yields an empty fragment.
func YamlData(path string) (*api.Fragment, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return api.FragmentWithCapacity(0), nil
		}
		return nil, err
	}
	return ParseYaml(bs, path)
}

// ParseYaml parses the given YAML data into a Fragment. The order of the keys in the data is
// retained. The path is only used in error messages.
func ParseYaml(data []byte, path string) (*api.Fragment, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(`file '%s': %w`, path, err)
	}
	if doc.Kind == 0 {
		return api.FragmentWithCapacity(0), nil
	}
	v, err := fromNode(&doc)
	if err != nil {
		return nil, fmt.Errorf(`file '%s': %w`, path, err)
	}
	if data, ok := v.(*api.Fragment); ok {
		return data, nil
	}
	return nil, api.YamlNotHash(path)
}

func fromNode(n *yaml.Node) (api.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return api.Nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		s := make(api.Sequence, len(n.Content))
		for i, en := range n.Content {
			ev, err := fromNode(en)
			if err != nil {
				return nil, err
			}
			s[i] = ev
		}
		return s, nil
	case yaml.MappingNode:
		f := api.FragmentWithCapacity(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			if kn.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf(`line %d: mapping keys must be scalars`, kn.Line)
			}
			v, err := fromNode(vn)
			if err != nil {
				return nil, err
			}
			if kn.Tag == `!!merge` {
				mergeKeys(f, v)
				continue
			}
			f.Put(kn.Value, v)
		}
		return f, nil
	default:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		if _, ok := v.(time.Time); ok {
			return api.String(n.Value), nil
		}
		sv, err := api.ToValue(v)
		if err != nil {
			return nil, fmt.Errorf(`line %d: %w`, n.Line, err)
		}
		return sv, nil
	}
}

// mergeKeys adds entries from the value of a YAML merge key ("<<") that are not already present
func mergeKeys(f *api.Fragment, v api.Value) {
	switch v := v.(type) {
	case *api.Fragment:
		v.EachEntry(func(k string, ev api.Value) {
			if !f.ContainsKey(k) {
				f.Put(k, ev)
			}
		})
	case api.Sequence:
		for _, ev := range v {
			mergeKeys(f, ev)
		}
	}
}
