package graph // import "code.cloudfoundry.org/acl/graph"

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrDuplicateNode = errors.New("graph: node already exists")
	ErrNodeNotFound  = errors.New("graph: node not found")
	ErrCycleDetected = errors.New("graph: edge would create a cycle")
	ErrHasChildren   = errors.New("graph: node has children")
)

type NodeID string

type Node interface {
	NodeID() NodeID
}

// Graph is a directed acyclic graph of nodes linked by child-to-parent
// edges. Not safe for concurrent mutation; callers serialize writes.
type Graph struct {
	nodes    map[NodeID]Node
	parents  map[NodeID][]NodeID
	children map[NodeID][]NodeID
}

func New() *Graph {
	return &Graph{
		nodes:    make(map[NodeID]Node),
		parents:  make(map[NodeID][]NodeID),
		children: make(map[NodeID][]NodeID),
	}
}

// AddNode inserts node with edges to each named parent. Every parent is
// validated before any mutation, so a failed insert leaves the graph
// untouched. Duplicate parents collapse to a single edge.
func (g *Graph) AddNode(node Node, parents ...NodeID) error {
	id := node.NodeID()

	if _, exists := g.nodes[id]; exists {
		return ErrDuplicateNode
	}

	for _, parent := range parents {
		if parent == id {
			return ErrCycleDetected
		}
		if _, exists := g.nodes[parent]; !exists {
			return ErrNodeNotFound
		}
	}

	g.nodes[id] = node
	for _, parent := range parents {
		g.link(id, parent)
	}

	return nil
}

// AddEdge links child to parent. The edge is rejected if it would close a
// cycle, i.e. if child is already an ancestor of parent.
func (g *Graph) AddEdge(child, parent NodeID) error {
	if _, exists := g.nodes[child]; !exists {
		return ErrNodeNotFound
	}
	if _, exists := g.nodes[parent]; !exists {
		return ErrNodeNotFound
	}

	if child == parent || g.reachable(parent, child) {
		return ErrCycleDetected
	}

	g.link(child, parent)
	return nil
}

// DeleteNode removes the node. With cascade false the delete is restricted:
// a node with children is rejected and nothing is mutated. With cascade
// true the node's entire descendant closure is removed and no orphaned
// edges remain.
func (g *Graph) DeleteNode(id NodeID, cascade bool) error {
	if _, exists := g.nodes[id]; !exists {
		return ErrNodeNotFound
	}

	if !cascade {
		if len(g.children[id]) > 0 {
			return ErrHasChildren
		}
		g.remove(id)
		return nil
	}

	for _, descendant := range g.closure(id, g.children) {
		g.remove(descendant)
	}

	return nil
}

func (g *Graph) NodeExists(id NodeID) bool {
	_, exists := g.nodes[id]
	return exists
}

func (g *Graph) GetNode(id NodeID) (Node, error) {
	node, exists := g.nodes[id]
	if !exists {
		return nil, ErrNodeNotFound
	}

	return node, nil
}

// Nodes returns every node in the graph. Order is unspecified.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for _, node := range g.nodes {
		nodes = append(nodes, node)
	}

	return nodes
}

// Ancestors walks backward breadth-first from id toward the roots: the node
// itself first, then its parents, then grandparents. Order among ancestors
// at the same depth is unspecified. Shared ancestors are visited once.
func (g *Graph) Ancestors(id NodeID) ([]Node, error) {
	if _, exists := g.nodes[id]; !exists {
		return nil, ErrNodeNotFound
	}

	ids := g.closure(id, g.parents)

	nodes := make([]Node, 0, len(ids))
	for _, ancestor := range ids {
		nodes = append(nodes, g.nodes[ancestor])
	}

	return nodes, nil
}

func (g *Graph) Children(id NodeID) ([]Node, error) {
	if _, exists := g.nodes[id]; !exists {
		return nil, ErrNodeNotFound
	}

	children := make([]Node, 0, len(g.children[id]))
	for _, child := range g.children[id] {
		children = append(children, g.nodes[child])
	}

	return children, nil
}

// DOT renders the graph as a Graphviz digraph with edges pointing from
// child to parent. Nodes and edges are emitted in sorted order so the
// output is deterministic.
func (g *Graph) DOT(name string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "digraph %q {\n", name)

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Fprintf(&b, "    %q;\n", id)
	}

	for _, id := range ids {
		parents := make([]string, 0, len(g.parents[NodeID(id)]))
		for _, parent := range g.parents[NodeID(id)] {
			parents = append(parents, string(parent))
		}
		sort.Strings(parents)

		for _, parent := range parents {
			fmt.Fprintf(&b, "    %q -> %q;\n", id, parent)
		}
	}

	b.WriteString("}\n")

	return b.String()
}

// closure is the breadth-first closure of id over the given adjacency,
// starting with id itself. Visited nodes are recorded so diamonds do not
// repeat.
func (g *Graph) closure(id NodeID, adjacency map[NodeID][]NodeID) []NodeID {
	visited := map[NodeID]struct{}{id: {}}
	queue := []NodeID{id}

	var out []NodeID
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out = append(out, next)

		for _, neighbor := range adjacency[next] {
			if _, seen := visited[neighbor]; seen {
				continue
			}
			visited[neighbor] = struct{}{}
			queue = append(queue, neighbor)
		}
	}

	return out
}

// reachable reports whether to is an ancestor of from.
func (g *Graph) reachable(from, to NodeID) bool {
	for _, ancestor := range g.closure(from, g.parents) {
		if ancestor == to {
			return true
		}
	}

	return false
}

func (g *Graph) link(child, parent NodeID) {
	for _, existing := range g.parents[child] {
		if existing == parent {
			return
		}
	}

	g.parents[child] = append(g.parents[child], parent)
	g.children[parent] = append(g.children[parent], child)
}

func (g *Graph) remove(id NodeID) {
	for _, parent := range g.parents[id] {
		g.children[parent] = unlink(g.children[parent], id)
	}
	for _, child := range g.children[id] {
		g.parents[child] = unlink(g.parents[child], id)
	}

	delete(g.nodes, id)
	delete(g.parents, id)
	delete(g.children, id)
}

func unlink(ids []NodeID, id NodeID) []NodeID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
