package configbyenv

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lyraproj/configbyenv/api"
	"gopkg.in/yaml.v3"
)

// RenderName is the name of the option value that describes how to render output
type RenderName string

const (
	// YAML render output in YAML
	YAML = RenderName(`yaml`)
	// JSON render output in JSON
	JSON = RenderName(`json`)
	// Text render output as plain text
	Text = RenderName(`s`)
)

// RenderNames are the valid render names
var RenderNames = []RenderName{YAML, JSON, Text}

// Render renders a value on a writer using a specified RenderName. Mapping keys are written in
// the order they were added.
func Render(renderAs RenderName, value api.Value, out io.Writer) error {
	var bs []byte
	var err error
	switch renderAs {
	case JSON:
		if value == nil {
			value = api.Nil
		}
		if bs, err = json.Marshal(value); err == nil {
			bs = append(bs, '\n')
		}
	case YAML:
		if value == nil || value.Equals(api.Nil) {
			bs = []byte("\n")
		} else {
			bs, err = yaml.Marshal(value)
		}
	case Text:
		if value == nil {
			value = api.Nil
		}
		bs = []byte(value.String() + "\n")
	default:
		return fmt.Errorf(`unknown rendering '%s'`, renderAs)
	}
	if err == nil {
		_, err = out.Write(bs)
	}
	return err
}
