// Package graph builds the per-problem reasoning map: a linear chain of
// typed nodes in block order. Reasoning is modeled as a step sequence,
// so the structure is an ordered node list with a derived adjacency
// view rather than a general graph.
package graph

import "github.com/bbiangul/reasonmap/segment"

// TerminalStatus records whether the final-conclusion node matched the
// ground-truth answer.
type TerminalStatus string

const (
	StatusCorrect   TerminalStatus = "correct"
	StatusIncorrect TerminalStatus = "incorrect"
	StatusUnknown   TerminalStatus = "unknown"
)

// Node is one reasoning block placed in the chain.
type Node struct {
	ID    int           `json:"id"`
	Block segment.Block `json:"block"`
}

// Edge is a directed link between consecutive nodes.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph is the reasoning map for a single problem. It is built once per
// LLM response and owned by the caller; nothing here is shared across
// problems.
type Graph struct {
	ProblemID  string         `json:"problem_id"`
	Nodes      []Node         `json:"nodes"`
	Edges      []Edge         `json:"edges"`
	Terminal   TerminalStatus `json:"terminal"`
	Incomplete bool           `json:"incomplete"` // no final-conclusion node found
}

// Build constructs the chain graph from ordered blocks. Node IDs are
// sequential from 0 and edges connect each node to its successor, so
// len(Edges) == len(Nodes)-1 for any non-empty input. The terminal
// status applies to the final-conclusion node; when that node is absent
// the graph is flagged incomplete and the status forced to unknown.
// An empty block sequence yields an empty, incomplete graph, not an
// error; the caller decides whether to skip rendering.
func Build(problemID string, blocks []segment.Block, correct bool) *Graph {
	g := &Graph{ProblemID: problemID, Terminal: StatusUnknown, Incomplete: true}

	for i, b := range blocks {
		g.Nodes = append(g.Nodes, Node{ID: i, Block: b})
		if i > 0 {
			g.Edges = append(g.Edges, Edge{From: i - 1, To: i})
		}
		if b.Kind == segment.KindFinalConclusion {
			g.Incomplete = false
		}
	}

	if !g.Incomplete {
		if correct {
			g.Terminal = StatusCorrect
		} else {
			g.Terminal = StatusIncorrect
		}
	}
	return g
}

// Empty reports whether the graph has no nodes at all.
func (g *Graph) Empty() bool { return len(g.Nodes) == 0 }

// Terminus returns the final-conclusion node, if present.
func (g *Graph) Terminus() (Node, bool) {
	for _, n := range g.Nodes {
		if n.Block.Kind == segment.KindFinalConclusion {
			return n, true
		}
	}
	return Node{}, false
}
