// Package hashlife advances Conway's Game of Life over an unbounded plane
// with Gosper's HashLife algorithm.
//
// The plane is a quadtree of immutable, hash-consed nodes: a Store hands out
// exactly one *Node per distinct content, so structural equality is pointer
// equality. Each node memoizes its own future, which lets a Universe jump
// 2^k generations in one recursive pass and reuse every repeated region.
//
// A Universe is single-threaded. Stores may be shared between universes on
// the same goroutine.
package hashlife
