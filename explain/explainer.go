// Package explain contains the configbyenv explainer logic
package explain

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lyraproj/configbyenv/api"
	"github.com/lyraproj/configbyenv/configbyenv"
)

type event string

const (
	selector event = `selector`
	common   event = `common`
	fragment event = `fragment`
	result   event = `result`
)

type explainNode struct {
	e     event
	key   string
	text  string
	found bool
	value *api.Fragment
}

type explainer struct {
	nodes []*explainNode
}

// NewExplainer returns an api.Explainer that collects the steps of a selection
func NewExplainer() api.Explainer {
	return &explainer{}
}

func (ex *explainer) AcceptSelector(source, sel string) {
	ex.nodes = append(ex.nodes, &explainNode{e: selector, key: source, text: sel})
}

func (ex *explainer) AcceptCommon(found, skipped bool) {
	n := &explainNode{e: common, key: api.CommonKey, found: found}
	if skipped {
		n.text = `skipped`
	}
	ex.nodes = append(ex.nodes, n)
}

func (ex *explainer) AcceptFragment(name string, found bool) {
	ex.nodes = append(ex.nodes, &explainNode{e: fragment, key: name, found: found})
}

func (ex *explainer) AcceptMergeResult(r *api.Fragment) {
	ex.nodes = append(ex.nodes, &explainNode{e: result, value: r})
}

func (ex *explainer) String() string {
	b := bytes.Buffer{}
	for _, n := range ex.nodes {
		n.appendTo(&b)
	}
	return b.String()
}

func (n *explainNode) appendTo(b *bytes.Buffer) {
	switch n.e {
	case selector:
		if n.key == configbyenv.DefaultSource {
			fmt.Fprintf(b, "Environment selector %q (default)\n", n.text)
		} else {
			fmt.Fprintf(b, "Environment selector %q found in %s\n", n.text, n.key)
		}
		names := configbyenv.EnvironmentNames(n.text)
		fmt.Fprintf(b, "  Environments: %s\n", strings.Join(quote(names), `, `))
	case common:
		switch {
		case n.text != ``:
			b.WriteString("Common fragment\n  Skipped\n")
		case n.found:
			b.WriteString("Common fragment\n  Used as base\n")
		default:
			b.WriteString("Common fragment\n  Not found\n")
		}
	case fragment:
		fmt.Fprintf(b, "Fragment %q\n", n.key)
		if n.found {
			b.WriteString("  Merged\n")
		} else {
			b.WriteString("  Not found\n")
		}
	case result:
		fmt.Fprintf(b, "Merged result\n  %s\n", n.value)
	}
}

func quote(names []string) []string {
	qs := make([]string, len(names))
	for i, n := range names {
		qs[i] = fmt.Sprintf(`%q`, n)
	}
	return qs
}
