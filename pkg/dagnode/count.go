package dagnode

import "github.com/dxdlab/dxd/pkg/count"

// Count evaluates the number of exact covers a compiled node represents,
// memoising by node id since the DAG's whole point is that equal
// subproblems share a node.
func (t *Table) Count(id int32) count.Result {
	memo := make(map[int32]count.Result)
	return t.countMemo(id, memo)
}

func (t *Table) countMemo(id int32, memo map[int32]count.Result) count.Result {
	if r, ok := memo[id]; ok {
		return r
	}
	var r count.Result
	switch t.Kind(id) {
	case KindTerminal:
		if id == True {
			r = count.One
		} else {
			r = count.Zero
		}
	case KindDecision:
		lo, hi := t.Branches(id)
		r = t.countMemo(lo, memo).Add(t.countMemo(hi, memo))
	case KindDecomposed:
		r = count.One
		for _, c := range t.Children(id) {
			r = r.Mul(t.countMemo(c, memo))
		}
	}
	memo[id] = r
	return r
}
