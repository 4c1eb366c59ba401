package sat

// clauseWatcher is an entry in a literal's watch list: a clause to inspect
// when the watched literal becomes false, plus a "blocking" literal that,
// if already true, lets propagation skip loading the clause entirely.
type clauseWatcher struct {
	clause *Clause
	guard  Literal
}

// watchList holds, for every literal index, the clauses currently watching
// it. It implements component C4: propagation over the two-watched-literal
// invariant. Detachment is eager: Unwatch removes the clause's entries
// from a list at once, keeping the remaining entries in their order.
type watchList struct {
	lists [][]clauseWatcher
	tmp   []clauseWatcher // scratch buffer reused across Propagate calls
}

func newWatchList() *watchList {
	return &watchList{}
}

func (w *watchList) addVariable() {
	w.lists = append(w.lists, nil, nil)
}

// Watch registers c to be inspected when watch becomes true (i.e. when the
// literal it watches, watch.Opposite(), becomes false). guard must be one
// of c's other literals.
func (w *watchList) Watch(c *Clause, watch Literal, guard Literal) {
	w.lists[watch.Index()] = append(w.lists[watch.Index()], clauseWatcher{clause: c, guard: guard})
}

// Unwatch removes c from watch's list.
func (w *watchList) Unwatch(c *Clause, watch Literal) {
	lst := w.lists[watch.Index()]
	j := 0
	for i := range lst {
		if lst[i].clause != c {
			lst[j] = lst[i]
			j++
		}
	}
	w.lists[watch.Index()] = lst[:j]
}

// Propagate inspects every clause registered under falseLiteral (which has
// just become true, so the watched literal falseLiteral.Opposite() has
// just become false) and returns the first clause found
// conflicting, or nil if every watched clause remains satisfiable.
func (w *watchList) Propagate(s *Solver, falseLiteral Literal) *Clause {
	idx := falseLiteral.Index()
	lst := w.lists[idx]

	w.tmp = append(w.tmp[:0], lst...)
	w.lists[idx] = lst[:0]

	for i, entry := range w.tmp {
		// Fast path: if the guard is already true, the clause is satisfied
		// and does not need to be inspected at all.
		if s.trail.LitValue(entry.guard) == True {
			w.lists[idx] = append(w.lists[idx], entry)
			continue
		}

		if entry.clause.Propagate(s, falseLiteral) {
			continue
		}

		// Conflict: re-attach the watchers we have not looked at yet and
		// report the failing clause.
		w.lists[idx] = append(w.lists[idx], w.tmp[i+1:]...)
		return entry.clause
	}

	return nil
}
