// Package irviz renders IR control flow graphs to Graphviz dot for
// debugging passes and lowering output.
package irviz

import (
	"fmt"

	"github.com/emicklei/dot"

	"github.com/Natalie359738/sway/internal/ir"
)

// FunctionGraph builds a dot digraph for fn's CFG: one node per block
// labeled with the block label and its argument and instruction counts,
// one edge per CFG edge.  Edges that carry arguments are annotated with
// how many; edges without arguments have no label.
func FunctionGraph(c *ir.Context, fn ir.Function) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("label", fn.Name(c))
	addFunction(c, fn, g)
	return g
}

// ModuleGraph builds a dot digraph for every function in the module,
// one cluster per function.
func ModuleGraph(c *ir.Context, m ir.Module) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("label", m.Kind(c).String())
	for _, fn := range m.Functions(c) {
		cluster := g.Subgraph(fn.Name(c), dot.ClusterOption{})
		addFunction(c, fn, cluster)
	}
	return g
}

func addFunction(c *ir.Context, fn ir.Function, g *dot.Graph) {
	nodes := make(map[ir.Block]dot.Node)
	iter := fn.BlockIter(c)
	for block, ok := iter.Next(); ok; block, ok = iter.Next() {
		nodes[block] = blockNode(c, fn, block, g)
	}
	iter = fn.BlockIter(c)
	for block, ok := iter.Next(); ok; block, ok = iter.Next() {
		for _, branch := range block.Successors(c) {
			edge := g.Edge(nodes[block], nodes[branch.Block])
			if len(branch.Args) > 0 {
				edge.Label(fmt.Sprintf("%d args", len(branch.Args)))
			}
		}
	}
}

func blockNode(c *ir.Context, fn ir.Function, block ir.Block, g *dot.Graph) dot.Node {
	label := fmt.Sprintf("%s\n%d args, %d instrs",
		block.Label(c), block.NumArgs(c), block.NumInstructions(c))
	node := g.Node(fn.Name(c) + "." + block.Label(c)).Label(label)
	node.Attr("shape", "box")
	if block == fn.EntryBlock(c) {
		node.Attr("style", "bold")
	}
	if block.IsTerminatedByRetOrRevert(c) {
		node.Attr("peripheries", "2")
	}
	return node
}
