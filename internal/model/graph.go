package model

// NodeKind identifies what a graph node represents.
type NodeKind int

const (
	// NodeKindFunction is a declared function.
	NodeKindFunction NodeKind = iota

	// NodeKindClass is a declared class.
	NodeKindClass

	// NodeKindFile is a source file acting as a module-level symbol.
	// Import-style edges connect file nodes named by the extension-stripped
	// basename of the file.
	NodeKindFile
)

// String returns the kind name used in node identities.
func (k NodeKind) String() string {
	switch k {
	case NodeKindFunction:
		return "function"
	case NodeKindClass:
		return "class"
	case NodeKindFile:
		return "file"
	default:
		return "unknown"
	}
}

// EdgeKind identifies the relationship an edge expresses.
type EdgeKind int

const (
	// EdgeKindCalls marks a call-shaped relationship between functions.
	EdgeKindCalls EdgeKind = iota

	// EdgeKindImports marks an import/include relationship between files.
	EdgeKindImports
)

// String returns the edge type name used in reports.
func (k EdgeKind) String() string {
	switch k {
	case EdgeKindCalls:
		return "calls"
	case EdgeKindImports:
		return "imports"
	default:
		return "unknown"
	}
}

// NodeID is the identity of a graph node: "<kind>::<name>".
// Identity deliberately excludes the originating file, so two files
// declaring the same name contribute one node.
type NodeID string

// SymbolNode is one graph vertex: a declared function, class, or file.
type SymbolNode struct {
	// Kind is the node kind, unambiguous from the identity.
	Kind NodeKind

	// Name is the captured identifier or file basename.
	Name string

	// File is the relative path of the file that declared the symbol.
	// When the same identity is declared in several files, this records
	// whichever occurrence was added last.
	File string
}

// ID returns the node's identity.
func (n SymbolNode) ID() NodeID {
	return NodeID(n.Kind.String() + "::" + n.Name)
}

// Edge is a directed, typed relationship between two nodes.
type Edge struct {
	// Src and Dst are identities of nodes present in the same graph.
	Src NodeID
	Dst NodeID

	// Kind is the relationship type.
	Kind EdgeKind

	// File is the relative path of the file the relationship was observed in.
	File string
}

// edgeKey is the dedupe identity of an edge.
type edgeKey struct {
	src  NodeID
	dst  NodeID
	kind EdgeKind
}

// DependencyGraph owns the node and edge set for one language family in one
// scan. It is built once during extraction and read-only afterward; only its
// rendered projection outlives the scan.
//
// Design decision: Nodes and edges are stored in maps for idempotent upsert
// with parallel insertion-order slices for deterministic listing. Running
// the scanner twice over identical input must yield byte-identical diagram
// blocks, so iteration order cannot come from map ranging.
type DependencyGraph struct {
	// nodes maps identity to the node. Re-adding an existing identity
	// overwrites the recorded File (last write wins).
	nodes map[NodeID]SymbolNode

	// nodeOrder preserves first-insertion order of identities.
	nodeOrder []NodeID

	// edges maps (src, dst, kind) to the edge. Duplicates collapse; the
	// first recording wins, including its File metadata.
	edges map[edgeKey]Edge

	// edgeOrder preserves first-insertion order of edge keys.
	edgeOrder []edgeKey
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[NodeID]SymbolNode),
		edges: make(map[edgeKey]Edge),
	}
}

// AddNode upserts a node and returns its identity.
// Adding the same (kind, name) again keeps one node and overwrites its File
// attribute with the newer originating file. That merge policy is
// deliberate: identity excludes the path, and the last recorded occurrence
// wins.
func (g *DependencyGraph) AddNode(kind NodeKind, name, file string) NodeID {
	node := SymbolNode{Kind: kind, Name: name, File: file}
	id := node.ID()
	if _, ok := g.nodes[id]; !ok {
		g.nodeOrder = append(g.nodeOrder, id)
	}
	g.nodes[id] = node
	return id
}

// HasNode reports whether the identity exists in the graph.
func (g *DependencyGraph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// AddEdge records a directed edge between two existing nodes.
// It returns false without recording anything when either endpoint is
// unknown (edges never reference undiscovered symbols), when src equals dst
// (self-edges are excluded), or when the (src, dst, kind) triple is already
// present.
func (g *DependencyGraph) AddEdge(src, dst NodeID, kind EdgeKind, file string) bool {
	if src == dst {
		return false
	}
	if !g.HasNode(src) || !g.HasNode(dst) {
		return false
	}
	key := edgeKey{src: src, dst: dst, kind: kind}
	if _, ok := g.edges[key]; ok {
		return false
	}
	g.edges[key] = Edge{Src: src, Dst: dst, Kind: kind, File: file}
	g.edgeOrder = append(g.edgeOrder, key)
	return true
}

// Nodes returns all nodes in first-insertion order.
func (g *DependencyGraph) Nodes() []SymbolNode {
	nodes := make([]SymbolNode, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in first-insertion order.
func (g *DependencyGraph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		edges = append(edges, g.edges[key])
	}
	return edges
}

// NodeCount returns the number of nodes.
func (g *DependencyGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *DependencyGraph) EdgeCount() int {
	return len(g.edges)
}

// CountByKind returns the number of nodes of the given kind.
func (g *DependencyGraph) CountByKind(kind NodeKind) int {
	count := 0
	for _, node := range g.nodes {
		if node.Kind == kind {
			count++
		}
	}
	return count
}
