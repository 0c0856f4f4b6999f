package games

import "sort"

// weightedSymbol pairs a symbol with its relative draw weight.
type weightedSymbol struct {
	symbol string
	weight int
}

// weightedPool is a discrete distribution drawn with a cumulative-weight
// table and one uniform pick, equivalent to duplicating each symbol
// weight-many times in a flat pool.
type weightedPool struct {
	symbols []string
	cum     []int
	total   int
}

func newWeightedPool(entries []weightedSymbol) *weightedPool {
	p := &weightedPool{
		symbols: make([]string, 0, len(entries)),
		cum:     make([]int, 0, len(entries)),
	}
	for _, e := range entries {
		if e.weight <= 0 {
			continue
		}
		p.total += e.weight
		p.symbols = append(p.symbols, e.symbol)
		p.cum = append(p.cum, p.total)
	}
	return p
}

// draw maps a uniform pick in [0, total) to its symbol via binary search.
func (p *weightedPool) draw(t *table) string {
	n := t.intn(p.total)
	i := sort.SearchInts(p.cum, n+1)
	return p.symbols[i]
}
