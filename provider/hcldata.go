package provider

import (
	"fmt"
	"io/ioutil"
	"math/big"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lyraproj/configbyenv/api"
	"github.com/zclconf/go-cty/cty"
)

// HclData reads the top-level attributes of an HCL file, such as a .tfvars file, and returns them
// as a Fragment. A file that doesn't exist yields an empty fragment.
func HclData(path string) (*api.Fragment, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return api.FragmentWithCapacity(0), nil
		}
		return nil, err
	}
	return ParseHcl(bs, path)
}

// ParseHcl parses the given HCL data and evaluates each top-level attribute without variables or
// functions. The attributes are added to the fragment in the order they appear in the source.
func ParseHcl(data []byte, path string) (*api.Fragment, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	sorted := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		sorted = append(sorted, attr)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Range.Start.Byte < sorted[j].Range.Start.Byte })

	f := api.FragmentWithCapacity(len(sorted))
	for _, attr := range sorted {
		cv, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		v, err := FromCty(cv)
		if err != nil {
			return nil, fmt.Errorf(`file '%s', attribute '%s': %w`, path, attr.Name, err)
		}
		f.Put(attr.Name, v)
	}
	return f, nil
}

// FromCty converts a cty.Value into a configuration value. Objects and maps become fragments with
// sorted keys, lists, sets, and tuples become sequences. Unknown values cannot be converted.
func FromCty(cv cty.Value) (api.Value, error) {
	if cv.IsNull() {
		return api.Nil, nil
	}
	if !cv.IsKnown() {
		return nil, fmt.Errorf(`unknown value of type %s: %w`, cv.Type().FriendlyName(), api.ErrNotConvertible)
	}
	t := cv.Type()
	switch {
	case t.Equals(cty.String):
		return api.String(cv.AsString()), nil
	case t.Equals(cty.Bool):
		return api.Bool(cv.True()), nil
	case t.Equals(cty.Number):
		bf := cv.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return api.Int(i), nil
			}
		}
		f, _ := bf.Float64()
		return api.ToValue(f)
	case t.IsObjectType() || t.IsMapType():
		vm := cv.AsValueMap()
		ks := make([]string, 0, len(vm))
		for k := range vm {
			ks = append(ks, k)
		}
		sort.Strings(ks)
		f := api.FragmentWithCapacity(len(ks))
		for _, k := range ks {
			v, err := FromCty(vm[k])
			if err != nil {
				return nil, err
			}
			f.Put(k, v)
		}
		return f, nil
	case t.IsListType() || t.IsSetType() || t.IsTupleType():
		vs := cv.AsValueSlice()
		s := make(api.Sequence, len(vs))
		for i, ev := range vs {
			v, err := FromCty(ev)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return s, nil
	}
	return nil, fmt.Errorf(`value of type %s: %w`, t.FriendlyName(), api.ErrNotConvertible)
}
