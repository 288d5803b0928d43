package diff

import "github.com/dacharyc/diffx"

// myers runs the forward greedy search and backtracks the recorded choices
// into a script. Each round d keeps only the diagonals -d..d, so memory is
// O(D²) rather than O((N+M)²).
//
// At every choice point the predecessor reaching the larger x wins; equal x
// goes to the deletion so old tokens are consumed first. With longest set,
// both candidates are followed along their snakes and a tie on the endpoint
// goes to the one with the longer snake before falling back to the deletion.
func myers(a, b []string, longest bool) []step {
	n, m := len(a), len(b)

	snake := func(x, k int) int {
		for x < n && x-k < m && a[x] == b[x-k] {
			x++
		}
		return x
	}

	var (
		trace   [][]int  // trace[d][k+d]: furthest x on diagonal k, -1 when unreached
		fromDel [][]bool // fromDel[d][k+d]: reached by a deletion from k-1
	)

	for d := 0; d <= n+m; d++ {
		v := make([]int, 2*d+1)
		dels := make([]bool, 2*d+1)
		for k := -d; k <= d; k += 2 {
			if d == 0 {
				v[0] = snake(0, 0)
				continue
			}
			prev := trace[d-1]

			xDel, xIns := -1, -1
			if k-1 >= -(d-1) {
				if px := prev[k-1+d-1]; px >= 0 && px+1 <= n {
					xDel = px + 1
				}
			}
			if k+1 <= d-1 {
				if px := prev[k+1+d-1]; px >= 0 && px-k <= m {
					xIns = px
				}
			}

			var x int
			var del bool
			switch {
			case xDel < 0 && xIns < 0:
				v[k+d] = -1
				continue
			case xIns < 0:
				x, del = xDel, true
			case xDel < 0:
				x, del = xIns, false
			case longest:
				endDel, endIns := snake(xDel, k), snake(xIns, k)
				switch {
				case endDel != endIns:
					del = endDel > endIns
				case endDel-xDel != endIns-xIns:
					del = endDel-xDel > endIns-xIns
				default:
					del = true
				}
				if del {
					x = xDel
				} else {
					x = xIns
				}
			default:
				del = xDel >= xIns
				if del {
					x = xDel
				} else {
					x = xIns
				}
			}
			v[k+d] = snake(x, k)
			dels[k+d] = del
		}
		trace = append(trace, v)
		fromDel = append(fromDel, dels)

		if k := n - m; k >= -d && k <= d && (d-k)%2 == 0 && v[k+d] >= n {
			return backtrack(trace, fromDel, n, m)
		}
	}
	return nil
}

// backtrack walks the trace from (n, m) to the origin, emitting steps in
// reverse and flipping them at the end.
func backtrack(trace [][]int, fromDel [][]bool, n, m int) []step {
	var rev []step
	x, k := n, n-m
	for d := len(trace) - 1; d > 0; d-- {
		var start int
		if fromDel[d][k+d] {
			start = trace[d-1][k-1+d-1] + 1
		} else {
			start = trace[d-1][k+1+d-1]
		}
		rev = append(rev, step{kind: Equal, n: x - start})
		if fromDel[d][k+d] {
			rev = append(rev, step{kind: Delete, n: 1})
			k--
			x = start - 1
		} else {
			rev = append(rev, step{kind: Insert, n: 1})
			k++
			x = start
		}
	}
	rev = append(rev, step{kind: Equal, n: x})

	script := make([]step, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		script = append(script, rev[i])
	}
	return script
}

// histogram delegates alignment to diffx.
func histogram(a, b []string) []step {
	ops := diffx.DiffHistogram(a, b)
	script := make([]step, 0, len(ops))
	for _, op := range ops {
		switch op.Type {
		case diffx.Equal:
			script = append(script, step{kind: Equal, n: op.AEnd - op.AStart})
		case diffx.Delete:
			script = append(script, step{kind: Delete, n: op.AEnd - op.AStart})
		case diffx.Insert:
			script = append(script, step{kind: Insert, n: op.BEnd - op.BStart})
		}
	}
	return script
}
