package graph

import (
	"fmt"
	"strings"

	"github.com/bbiangul/reasonmap/segment"
)

// Node fill colors, matching the map's visual language: blue context,
// orange intermediate steps, green/red terminal by correctness.
const (
	colorContext   = "#cceeff"
	colorStep      = "#ffddc1"
	colorCorrect   = "#aaffaa"
	colorIncorrect = "#ffaaaa"
	colorUnknown   = "#dddddd"
)

// nodeColor picks the fill color for a node.
func (g *Graph) nodeColor(n Node) string {
	switch n.Block.Kind {
	case segment.KindContext:
		return colorContext
	case segment.KindFinalConclusion:
		switch g.Terminal {
		case StatusCorrect:
			return colorCorrect
		case StatusIncorrect:
			return colorIncorrect
		default:
			return colorUnknown
		}
	case segment.KindUnknown:
		return colorUnknown
	default:
		return colorStep
	}
}

// nodeLabel returns the display label for a node.
func nodeLabel(n Node) string {
	if n.Block.Heading != "" {
		return n.Block.Heading
	}
	switch n.Block.Kind {
	case segment.KindUnknown:
		return "Unlabeled"
	case segment.KindContext:
		return "Context"
	default:
		return fmt.Sprintf("Step %d", n.ID+1)
	}
}

// DrawDOT generates a Graphviz DOT representation of the map with a
// deterministic top-down layout. Incomplete graphs carry a dashed
// annotation so a missing conclusion is visible in the rendered image.
func (g *Graph) DrawDOT() string {
	var sb strings.Builder

	sb.WriteString("digraph reasoning {\n")
	sb.WriteString("    rankdir=TB;\n")
	sb.WriteString("    node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	if g.ProblemID != "" {
		fmt.Fprintf(&sb, "    label=%q;\n", "Reasoning Map: "+g.ProblemID)
		sb.WriteString("    labelloc=t;\n")
	}

	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "    n%d [label=%q, fillcolor=%q];\n", n.ID, nodeLabel(n), g.nodeColor(n))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "    n%d -> n%d;\n", e.From, e.To)
	}

	if g.Incomplete && !g.Empty() {
		sb.WriteString("    incomplete [label=\"no final conclusion\", shape=note, style=dashed];\n")
		fmt.Fprintf(&sb, "    n%d -> incomplete [style=dashed, arrowhead=none];\n", g.Nodes[len(g.Nodes)-1].ID)
	}

	sb.WriteString("}\n")
	return sb.String()
}

// DrawMermaid generates a Mermaid flowchart for the map, top-down.
func (g *Graph) DrawMermaid() string {
	var sb strings.Builder

	sb.WriteString("flowchart TD\n")
	for _, n := range g.Nodes {
		label := strings.ReplaceAll(nodeLabel(n), "\"", "'")
		fmt.Fprintf(&sb, "    n%d[\"%s\"]\n", n.ID, label)
		fmt.Fprintf(&sb, "    style n%d fill:%s\n", n.ID, g.nodeColor(n))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "    n%d --> n%d\n", e.From, e.To)
	}
	if g.Incomplete && !g.Empty() {
		sb.WriteString("    incomplete([\"no final conclusion\"])\n")
		fmt.Fprintf(&sb, "    n%d -.-> incomplete\n", g.Nodes[len(g.Nodes)-1].ID)
	}
	return sb.String()
}
