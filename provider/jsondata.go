package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/lyraproj/configbyenv/api"
)

// JSONData reads a JSON object from a file and returns it as a Fragment. A file that doesn't exist
// yields an empty fragment.
func JSONData(path string) (*api.Fragment, error) {
	bs, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return api.FragmentWithCapacity(0), nil
		}
		return nil, err
	}
	return ParseJSON(bs, path)
}

// ParseJSON parses the given JSON data into a Fragment. The order of the keys in the data is
// retained. The path is only used in error messages.
func ParseJSON(data []byte, path string) (*api.Fragment, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return api.FragmentWithCapacity(0), nil
	}
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	v, err := decodeJSON(d)
	if err == nil {
		if _, err = d.Token(); err == io.EOF {
			err = nil
		} else if err == nil {
			err = fmt.Errorf(`unexpected data after top-level value`)
		}
	}
	if err != nil {
		return nil, fmt.Errorf(`file '%s': %w`, path, err)
	}
	if data, ok := v.(*api.Fragment); ok {
		return data, nil
	}
	return nil, api.JSONNotHash(path)
}

func decodeJSON(d *json.Decoder) (api.Value, error) {
	t, err := d.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := t.(type) {
	case json.Delim:
		if t == '{' {
			f := api.FragmentWithCapacity(8)
			for d.More() {
				kt, err := d.Token()
				if err != nil {
					return nil, err
				}
				v, err := decodeJSON(d)
				if err != nil {
					return nil, err
				}
				f.Put(kt.(string), v)
			}
			_, err = d.Token()
			return f, err
		}
		s := api.Sequence{}
		for d.More() {
			v, err := decodeJSON(d)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		_, err = d.Token()
		return s, err
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return api.Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return api.Float(f), nil
	default:
		return api.ToValue(t)
	}
}
