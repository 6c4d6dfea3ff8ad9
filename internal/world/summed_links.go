package world

// nodePairKey canonicalises an unordered node pair for use as a map key.
func nodePairKey(a, b int) [2]int {
	if a <= b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// computeSummedLinks scans w.Links in load order, folding every link sharing
// an unordered node-pair into one SummedLink whose NumLanes is the sum of the
// underlying links' lane counts (spec.md §4.2). Idempotent: calling it again
// on the same Links rebuilds an identical SummedLinks slice.
func (w *StaticWorld) computeSummedLinks() {
	w.SummedLinks = w.SummedLinks[:0]
	w.nodePairIndex = make(map[[2]int]int, len(w.Links))
	for i := range w.Nodes {
		w.Nodes[i].ConnectedLinks = w.Nodes[i].ConnectedLinks[:0]
	}

	for _, l := range w.Links {
		key := nodePairKey(l.NodeA, l.NodeB)
		if idx, ok := w.nodePairIndex[key]; ok {
			w.SummedLinks[idx].NumLanes += l.NumLanes
			continue
		}
		idx := len(w.SummedLinks)
		w.nodePairIndex[key] = idx
		w.SummedLinks = append(w.SummedLinks, SummedLink{
			Index:    idx,
			NodeA:    l.NodeA,
			NodeB:    l.NodeB,
			NumLanes: l.NumLanes,
			Flow:     l.Flow,
			Speed:    l.Speed,
		})
		w.Nodes[l.NodeA].ConnectedLinks = append(w.Nodes[l.NodeA].ConnectedLinks, idx)
		w.Nodes[l.NodeB].ConnectedLinks = append(w.Nodes[l.NodeB].ConnectedLinks, idx)
	}
}
