package formwire

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// OptionNode is one entry in a select's option tree: either an Option leaf
// or an OptionGroup. The variants are explicit tags, so a group is never
// confused with a leaf that happens to carry a "value"-shaped payload.
type OptionNode interface {
	optionNode()
}

// Option is a selectable leaf.
type Option struct {
	Value    string
	Label    string
	Disabled bool
}

func (Option) optionNode() {}

// OptionGroup is a labeled, optionally disabled group of child nodes.
// Groups nest to unbounded depth and may be empty.
type OptionGroup struct {
	Label    string
	Disabled bool
	Options  []OptionNode
}

func (OptionGroup) optionNode() {}

// OptionList renders an option tree as <option> and <optgroup> elements.
//
// Traversal is depth-first pre-order and preserves the input array order at
// every level; each node is rendered exactly once. The option whose value
// equals selected is marked selected.
func OptionList(nodes []OptionNode, selected string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeOptionNodes(w, nodes, selected)
	})
}

func writeOptionNodes(w io.Writer, nodes []OptionNode, selected string) error {
	for _, node := range nodes {
		switch n := node.(type) {
		case Option:
			if err := writeOption(w, n, selected); err != nil {
				return err
			}
		case OptionGroup:
			if err := writeOptionGroup(w, n, selected); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeOption(w io.Writer, o Option, selected string) error {
	if _, err := io.WriteString(w, `<option value="`+html.EscapeString(o.Value)+`"`); err != nil {
		return err
	}
	if o.Disabled {
		if _, err := io.WriteString(w, ` disabled`); err != nil {
			return err
		}
	}
	if o.Value == selected {
		if _, err := io.WriteString(w, ` selected`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `>`+html.EscapeString(o.Label)+`</option>`)
	return err
}

func writeOptionGroup(w io.Writer, g OptionGroup, selected string) error {
	if _, err := io.WriteString(w, `<optgroup`); err != nil {
		return err
	}
	if g.Label != "" {
		if _, err := io.WriteString(w, ` label="`+html.EscapeString(g.Label)+`"`); err != nil {
			return err
		}
	}
	if g.Disabled {
		if _, err := io.WriteString(w, ` disabled`); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `>`); err != nil {
		return err
	}
	if err := writeOptionNodes(w, g.Options, selected); err != nil {
		return err
	}
	_, err := io.WriteString(w, `</optgroup>`)
	return err
}
