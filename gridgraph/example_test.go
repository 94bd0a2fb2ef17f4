package gridgraph_test

import (
	"fmt"

	"github.com/codeninelabs/cnl-patternlock/gridgraph"
)

// ExampleGrid_Neighbors lists the dots reachable in one stroke from a corner
// of the classic 3×3 unlock grid.
func ExampleGrid_Neighbors() {
	g, _ := gridgraph.New(3)
	for _, p := range g.Neighbors(gridgraph.Pt(0, 0)) {
		fmt.Println(p)
	}
	// Output:
	// (1,0)
	// (1,1)
	// (0,1)
}

// ExampleIsAdjacent shows that diagonals count, but skipping a dot does not.
func ExampleIsAdjacent() {
	fmt.Println(gridgraph.IsAdjacent(gridgraph.Pt(0, 0), gridgraph.Pt(1, 1)))
	fmt.Println(gridgraph.IsAdjacent(gridgraph.Pt(0, 0), gridgraph.Pt(2, 2)))
	// Output:
	// true
	// false
}
