package sat

import "sort"

// proofHandle indexes a node in a proofGraph's arena. noProofHandle marks
// "no proof tracked", the normal state when Parameters.UnsatProof is false.
type proofHandle int

const noProofHandle proofHandle = -1

type proofNodeKind uint8

const (
	proofLeaf proofNodeKind = iota
	proofResolution
)

type proofNode struct {
	kind      proofNodeKind
	refs      int
	clauseIdx int // valid for proofLeaf: original-constraint index (Solver.originalConstraintCount at add time)
	parents   []proofHandle
}

// proofGraph is an arena of resolution-proof nodes, reference counted so
// that deleting a learnt clause frees the part of the DAG no surviving
// clause still depends on. Component C11; only populated when
// Parameters.UnsatProof is set. See spec §9 for why this uses arena
// indices rather than pointers: the original tracks proof nodes with
// intrusive refcounted pointers, which Go's garbage collector makes
// unnecessary to hand-manage except for the DAG's own internal sharing.
type proofGraph struct {
	nodes []proofNode
	free  []proofHandle
}

func newProofGraph() *proofGraph {
	return &proofGraph{}
}

func (g *proofGraph) alloc(n proofNode) proofHandle {
	if len(g.free) > 0 {
		h := g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
		g.nodes[h] = n
		return h
	}
	g.nodes = append(g.nodes, n)
	return proofHandle(len(g.nodes) - 1)
}

// AddLeaf records an original problem clause as a proof leaf. The returned
// handle starts with one reference, owned by the caller.
func (g *proofGraph) AddLeaf(clauseIdx int) proofHandle {
	return g.alloc(proofNode{kind: proofLeaf, refs: 1, clauseIdx: clauseIdx})
}

// AddResolution records a resolution step combining parents, each of which
// gains a reference. The returned handle starts with one reference, owned
// by the caller.
func (g *proofGraph) AddResolution(parents []proofHandle) proofHandle {
	for _, p := range parents {
		g.incRef(p)
	}
	return g.alloc(proofNode{kind: proofResolution, refs: 1, parents: append([]proofHandle(nil), parents...)})
}

func (g *proofGraph) incRef(h proofHandle) {
	if h == noProofHandle {
		return
	}
	g.nodes[h].refs++
}

// decRef drops the caller's reference to h, recursively releasing parent
// references and freeing the slot once it reaches zero.
func (g *proofGraph) decRef(h proofHandle) {
	if h == noProofHandle {
		return
	}
	n := &g.nodes[h]
	n.refs--
	if n.refs > 0 {
		return
	}
	for _, p := range n.parents {
		g.decRef(p)
	}
	n.parents = nil
	g.free = append(g.free, h)
}

// ComputeUnsatCore walks the proof DAG rooted at h and returns the sorted,
// deduplicated original clause indices the UNSAT result depends on.
func (g *proofGraph) ComputeUnsatCore(h proofHandle) []int {
	seen := map[proofHandle]bool{}
	var leaves []int
	var visit func(proofHandle)
	visit = func(h proofHandle) {
		if h == noProofHandle || seen[h] {
			return
		}
		seen[h] = true
		n := g.nodes[h]
		if n.kind == proofLeaf {
			leaves = append(leaves, n.clauseIdx)
			return
		}
		for _, p := range n.parents {
			visit(p)
		}
	}
	visit(h)
	sort.Ints(leaves)
	return uniqueInts(leaves)
}

func uniqueInts(s []int) []int {
	if len(s) == 0 {
		return s
	}
	k := 1
	for i := 1; i < len(s); i++ {
		if s[i] != s[k-1] {
			s[k] = s[i]
			k++
		}
	}
	return s[:k]
}
