// Package layout computes generation levels for tree rendering.
//
// A level is the BFS distance (in parent-child edges) from the traversal
// start. The rendering surface groups all same-level people onto one rank so
// generations line up, whatever drawing technology consumes the result.
package layout

import (
	"sort"

	"github.com/lhartmann/guestree/pkg/store"
)

// Levels assigns each person a non-negative generation level via breadth-first
// traversal over parent-child edges only.
//
// The traversal starts at rootID when it names an existing person. Otherwise
// the first apparent root (a person with no incoming parent-child edge) in
// store order is used; if every person has a parent, the first person in
// store order is the fallback.
//
// Discovery is first-wins: a child reachable through several parents keeps the
// level assigned on first discovery, i.e. the BFS shortest level from the
// start, not the longest-path generation depth. People the traversal never
// reaches (disconnected components) get level 0. The mapping covers every
// person exactly once; an empty store yields an empty map.
func Levels(st *store.Store, rootID string) map[string]int {
	ids := st.IDs()
	if len(ids) == 0 {
		return map[string]int{}
	}

	start := rootID
	if start == "" || !st.Has(start) {
		start = inferStart(st, ids)
	}

	levels := map[string]int{start: 0}
	queue := []string{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range st.ChildrenOf(curr) {
			if _, seen := levels[child]; seen {
				continue
			}
			levels[child] = levels[curr] + 1
			queue = append(queue, child)
		}
	}

	for _, id := range ids {
		if _, ok := levels[id]; !ok {
			levels[id] = 0
		}
	}
	return levels
}

// inferStart picks the traversal start when no explicit root applies: the
// first person in store order with no parents, or the first person outright
// when everyone has one (cycles, fully connected sets).
func inferStart(st *store.Store, ids []string) string {
	for _, id := range ids {
		if len(st.ParentsOf(id)) == 0 {
			return id
		}
	}
	return ids[0]
}

// ByLevel groups person IDs by their computed level, each group in store
// order, for same-rank placement.
func ByLevel(st *store.Store, levels map[string]int) map[int][]string {
	grouped := make(map[int][]string)
	for _, id := range st.IDs() {
		lvl := levels[id]
		grouped[lvl] = append(grouped[lvl], id)
	}
	return grouped
}

// LevelOrder returns the distinct levels in ascending order.
func LevelOrder(grouped map[int][]string) []int {
	out := make([]int, 0, len(grouped))
	for lvl := range grouped {
		out = append(out, lvl)
	}
	sort.Ints(out)
	return out
}
