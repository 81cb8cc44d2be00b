package reunion_test

import (
	"fmt"

	"github.com/papapumpkin/reunion"
)

func Example() {
	uf := reunion.New[string]()
	uf.Union("a", "b")
	uf.Union("c", "d")
	uf.Find("e")

	fmt.Println(uf.Connected("a", "b"), uf.Connected("a", "c"))
	fmt.Println(uf)
	// Output:
	// true false
	// <UnionFind size=5, non_trivial_subsets=[{a b} {c d}]>
}

func ExampleUnionFind_SamePartition() {
	a := reunion.New[int]()
	a.Union(1, 2)
	b := reunion.New[int]()
	b.Union(2, 1)

	fmt.Println(a.Equal(b), a.SamePartition(b))
	// Output: false true
}
