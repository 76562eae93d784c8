package graph

import (
	"fmt"
	"io"
	"strings"
)

// ExportDOT writes the whole model in Graphviz DOT format to the writer.
// Entry targets, terminal targets and plain targets each get their own
// style; each relation kind gets its own edge style.
func (s *Store) ExportDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph AttackModel {"); err != nil {
		return err
	}

	// Default styles
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=filled, fontname=\"Arial\"];")
	fmt.Fprintln(w, "  edge [fontname=\"Arial\", fontsize=10];")

	// Targets used as an entry point by any attacker
	entries := make(map[string]struct{})
	for _, a := range s.Attackers() {
		for _, id := range a.entries.order {
			entries[id] = struct{}{}
		}
	}

	// Write nodes
	for _, id := range s.targetOrder {
		t := s.targets[id]
		color := "white"
		shape := "box"

		switch {
		case t.Terminal:
			color = "#ffebee" // Light Red
			shape = "doubleoctagon"
		case hasKey(entries, id):
			color = "#e1f5fe" // Light Blue
			shape = "component"
		}

		label := t.Name
		if n := t.vulns.len(); n > 0 {
			label = fmt.Sprintf("%s\n(%d vulns)", t.Name, n)
		}
		fmt.Fprintf(w, "  \"%s\" [label=\"%s\", fillcolor=\"%s\", shape=\"%s\"];\n",
			t.ID, escapeLabel(label), color, shape)
	}

	// Write edges, one style per relation kind
	for _, k := range relationKinds {
		style := ""
		switch k {
		case RelationLateral:
			style = ", style=dashed"
		case RelationContains:
			style = ", style=dotted"
		}
		for _, src := range s.targetOrder {
			for _, dst := range s.relations[k][src].order {
				fmt.Fprintf(w, "  \"%s\" -> \"%s\" [label=\"%s\"%s];\n",
					src, dst, k, style)
			}
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return err
	}
	return nil
}

// ExportPathDOT writes a single attack path as a left-to-right chain.
func ExportPathDOT(w io.Writer, path AttackPath) error {
	if _, err := fmt.Fprintln(w, "digraph AttackPath {"); err != nil {
		return err
	}
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=filled, fillcolor=\"#e1f5fe\", fontname=\"Arial\"];")
	fmt.Fprintf(w, "  label=\"%s\";\n", escapeLabel(path.AttackerName))

	for i, node := range path.Nodes {
		label := node.Name
		if len(path.NodeVulns[i]) > 0 {
			label = fmt.Sprintf("%s\n%s", node.Name, strings.Join(path.NodeVulns[i], "\n"))
		}
		fmt.Fprintf(w, "  \"%s\" [label=\"%s\"];\n", node.ID, escapeLabel(label))
		if i > 0 {
			fmt.Fprintf(w, "  \"%s\" -> \"%s\";\n", path.Nodes[i-1].ID, node.ID)
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return err
	}
	return nil
}

// escapeLabel escapes quotes and newlines for DOT string literals.
func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\"", "\\\"")
	label = strings.ReplaceAll(label, "\n", "\\n")
	return label
}

func hasKey(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
