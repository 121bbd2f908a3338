package asset

import (
	"container/heap"
	"sort"
)

// Resolution is the dependency-ordered output of a Registry.
//
// Resolution never fails. Dependencies that are not registered are ignored for
// ordering and listed in Missing. Styles that sit on a dependency cycle, or
// depend on one, are appended after the orderable part in registration order
// and listed in Cyclic.
type Resolution struct {
	Order   []Style
	Missing map[string][]string
	Cyclic  []string
}

// Handles returns the handles of Order.
func (r Resolution) Handles() []string {
	out := make([]string, 0, len(r.Order))
	for _, s := range r.Order {
		out = append(out, s.Handle)
	}
	return out
}

// Index returns the position of handle in Order, or -1.
func (r Resolution) Index(handle string) int {
	for i, s := range r.Order {
		if s.Handle == handle {
			return i
		}
	}
	return -1
}

// readyQueue orders ready styles by priority, then registration sequence.
type readyQueue struct {
	items    []int
	priority []int
}

func (q *readyQueue) Len() int { return len(q.items) }
func (q *readyQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if q.priority[a] != q.priority[b] {
		return q.priority[a] < q.priority[b]
	}
	return a < b
}
func (q *readyQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *readyQueue) Push(x any)   { q.items = append(q.items, x.(int)) }
func (q *readyQueue) Pop() any {
	old := q.items
	n := len(old)
	x := old[n-1]
	q.items = old[:n-1]
	return x
}

func resolve(styles []Style) Resolution {
	res := Resolution{Missing: make(map[string][]string)}
	if len(styles) == 0 {
		return res
	}

	index := make(map[string]int, len(styles))
	for i, s := range styles {
		index[s.Handle] = i
	}

	outgoing := make([][]int, len(styles))
	indeg := make([]int, len(styles))
	priority := make([]int, len(styles))
	for i, s := range styles {
		priority[i] = s.Priority
		for _, dep := range s.Deps {
			j, ok := index[dep]
			if !ok {
				res.Missing[s.Handle] = append(res.Missing[s.Handle], dep)
				continue
			}
			outgoing[j] = append(outgoing[j], i)
			indeg[i]++
		}
	}

	ready := &readyQueue{priority: priority}
	for i := range styles {
		if indeg[i] == 0 {
			ready.items = append(ready.items, i)
		}
	}
	heap.Init(ready)

	placed := make([]bool, len(styles))
	order := make([]Style, 0, len(styles))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		placed[n] = true
		order = append(order, styles[n])
		for _, m := range outgoing[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}

	if len(order) < len(styles) {
		var rest []int
		for i := range styles {
			if !placed[i] {
				rest = append(rest, i)
			}
		}
		sort.Ints(rest)
		for _, i := range rest {
			order = append(order, styles[i])
			res.Cyclic = append(res.Cyclic, styles[i].Handle)
		}
	}

	res.Order = order
	return res
}
