package lattice

import (
	"github.com/tategaki/tategaki/internal/queue"
)

// ref identifies one lattice node by (offset, index-within-offset),
// the same addressing Node.BestPrev uses.
type ref struct {
	offset int
	idx    int
}

func (l *Lattice) node(r ref) Node { return l.nodes[r.offset][r.idx] }

// pathNode is one node of the backward search tree KBest grows while
// walking from EOS toward BOS. parent indexes into the same paths
// slice; the EOS root has parent -1.
type pathNode struct {
	ref    ref
	cost   int32 // accumulated edge cost from EOS back to ref
	parent int32
}

// KBest runs A* backward from EOS to BOS over the lattice l (already
// populated by a prior Forward call on the same dict and input), using
// h(ref) = node(ref).MinTotal as the backward heuristic: the forward
// pass already computed the exact shortest distance
// from BOS to every node, which by symmetry of a single-source DAG is
// also the exact shortest distance from that node back to BOS. The
// heuristic is therefore exact rather than merely admissible, so paths
// come off the queue in nondecreasing total-cost order.
//
// Each underlying node is expanded at most k times: beyond that it
// cannot contribute to the global top k, since it would already anchor
// k distinct paths no worse than it. Returns up to k token slices,
// cheapest first; the first equals Forward's single-best result.
func KBest(l *Lattice, dict *Dictionary, input []byte, eosOffset, eosIdx int, k int) [][]Token {
	if k <= 0 {
		return nil
	}

	eos := ref{eosOffset, eosIdx}
	paths := []pathNode{{ref: eos, cost: 0, parent: -1}}

	open := queue.NewMin(k * 4)
	open.PushItem(queue.PriorityQueueItem{PathIndex: 0, Priority: l.node(eos).MinTotal})

	popCount := make(map[ref]int)

	var results [][]Token
	for open.Len() > 0 && len(results) < k {
		item, ok := open.PopItem()
		if !ok {
			break
		}
		pIdx := item.PathIndex
		p := paths[pIdx]

		if popCount[p.ref] >= k {
			continue
		}
		popCount[p.ref]++

		if p.ref.offset == 0 && p.ref.idx == 0 {
			results = append(results, materialize(l, dict, paths, int32(pIdx)))
			continue
		}

		n := l.node(p.ref)
		for predIdx, predNode := range l.nodes[n.PredOffset] {
			pred := ref{n.PredOffset, predIdx}
			if pred == eos {
				// EOS sits in the very node list it reads its
				// predecessors from; it is never its own predecessor.
				continue
			}
			g := p.cost + edgeCost(dict, predNode, n)

			newIdx := int32(len(paths))
			paths = append(paths, pathNode{ref: pred, cost: g, parent: int32(pIdx)})
			open.PushItem(queue.PriorityQueueItem{
				PathIndex: uint32(newIdx),
				Priority:  g + predNode.MinTotal,
			})
		}
	}
	return results
}

// edgeCost is the cost of the arrival edge into n from predNode,
// matching the formula Forward's addNode/addEOS use: the connector
// cost between predNode's right ID and n's left ID, plus n's own
// already right-biased word cost (zero for the synthetic EOS node).
func edgeCost(dict *Dictionary, predNode, n Node) int32 {
	return dict.Connector.Cost(predNode.RightID, n.LeftID) + n.WordCost
}

// materialize walks the parent chain from the path entry at bosIdx
// (whose ref is the BOS node) toward the EOS root. The chain is
// already in left-to-right surface order since the search walked
// backward from EOS to BOS; the EOS and BOS sentinels themselves never
// become tokens.
func materialize(l *Lattice, dict *Dictionary, paths []pathNode, bosIdx int32) []Token {
	var nodes []Node
	// Walk from BOS's successor toward EOS. Index 0 is always the EOS
	// root entry pushed at the start of KBest, never a real token, so
	// stopping at idx > 0 excludes it without a special-case check; for
	// empty input BOS's parent is that root entry itself, yielding zero
	// tokens.
	idx := paths[bosIdx].parent
	for idx > 0 {
		p := paths[idx]
		nodes = append(nodes, l.node(p.ref))
		idx = p.parent
	}

	tokens := make([]Token, len(nodes))
	for i, n := range nodes {
		tokens[i] = Token{Begin: n.Begin, End: n.End, Word: n.Word, Feature: wordFeature(dict, n.Word)}
	}
	return tokens
}
