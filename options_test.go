package formwire

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func renderOptions(t *testing.T, nodes []OptionNode, selected string) string {
	t.Helper()
	result, err := RenderComponent(OptionList(nodes, selected))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return result.HTML
}

func TestOptionListLeaves(t *testing.T) {
	html := renderOptions(t, []OptionNode{
		Option{Value: "a", Label: "Alpha"},
		Option{Value: "b", Label: "Beta", Disabled: true},
	}, "b")

	want := `<option value="a">Alpha</option><option value="b" disabled selected>Beta</option>`
	if html != want {
		t.Errorf("rendered = %q, want %q", html, want)
	}
}

func TestOptionListNestedGroups(t *testing.T) {
	html := renderOptions(t, []OptionNode{
		OptionGroup{Label: "Outer", Options: []OptionNode{
			Option{Value: "x", Label: "X"},
			OptionGroup{Label: "Inner", Disabled: true, Options: []OptionNode{
				Option{Value: "y", Label: "Y"},
			}},
		}},
		Option{Value: "z", Label: "Z"},
	}, "")

	want := `<optgroup label="Outer"><option value="x">X</option>` +
		`<optgroup label="Inner" disabled><option value="y">Y</option></optgroup>` +
		`</optgroup><option value="z">Z</option>`
	if html != want {
		t.Errorf("rendered = %q, want %q", html, want)
	}
}

func TestOptionListEmptyGroup(t *testing.T) {
	html := renderOptions(t, []OptionNode{
		OptionGroup{Label: "Empty"},
	}, "")

	want := `<optgroup label="Empty"></optgroup>`
	if html != want {
		t.Errorf("rendered = %q, want %q", html, want)
	}
}

func TestOptionListEscapesContent(t *testing.T) {
	html := renderOptions(t, []OptionNode{
		Option{Value: `a"b`, Label: "<script>"},
	}, "")

	if strings.Contains(html, "<script>") {
		t.Error("label was not escaped")
	}
	if !strings.Contains(html, `value="a&#34;b"`) {
		t.Errorf("value was not escaped: %q", html)
	}
}

// collectLeaves walks a tree the same way the renderer must: depth-first,
// pre-order, array order at every level.
func collectLeaves(nodes []OptionNode) []Option {
	var leaves []Option
	for _, node := range nodes {
		switch n := node.(type) {
		case Option:
			leaves = append(leaves, n)
		case OptionGroup:
			leaves = append(leaves, collectLeaves(n.Options)...)
		}
	}
	return leaves
}

func genOptionTree() *rapid.Generator[[]OptionNode] {
	var nodes func(depth int) *rapid.Generator[[]OptionNode]
	leaf := rapid.Custom(func(t *rapid.T) OptionNode {
		return Option{
			Value: rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "value"),
			Label: rapid.StringMatching(`[A-Za-z ]{1,12}`).Draw(t, "label"),
		}
	})
	nodes = func(depth int) *rapid.Generator[[]OptionNode] {
		return rapid.Custom(func(t *rapid.T) []OptionNode {
			n := rapid.IntRange(0, 4).Draw(t, "n")
			out := make([]OptionNode, 0, n)
			for i := 0; i < n; i++ {
				if depth > 0 && rapid.Bool().Draw(t, "group") {
					out = append(out, OptionGroup{
						Label:   rapid.StringMatching(`[A-Za-z]{1,8}`).Draw(t, "glabel"),
						Options: nodes(depth - 1).Draw(t, "children"),
					})
				} else {
					out = append(out, leaf.Draw(t, "leaf"))
				}
			}
			return out
		})
	}
	return nodes(3)
}

func TestPropertyOptionTreeOrderPreserved(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genOptionTree().Draw(t, "tree")

		result, err := RenderComponent(OptionList(tree, ""))
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		html := result.HTML

		// Every leaf appears exactly once, in pre-order position.
		leaves := collectLeaves(tree)
		if got := strings.Count(html, "<option "); got != len(leaves) {
			t.Fatalf("rendered %d options, tree has %d leaves", got, len(leaves))
		}
		pos := 0
		for i, leaf := range leaves {
			// Generated labels are alphanumeric, so no escaping applies.
			marker := `>` + leaf.Label + `</option>`
			idx := strings.Index(html[pos:], marker)
			if idx == -1 {
				t.Fatalf("leaf %d (%q) missing or out of order", i, leaf.Label)
			}
			pos += idx + 1
		}
	})
}
