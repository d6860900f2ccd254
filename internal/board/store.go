package board

import "sort"

// Store operations are pure: every mutation returns a new slice and leaves
// its input untouched, so history snapshots can share older slices safely.
// Callers that change an element's Points must assign a fresh slice rather
// than append in place.

// Insert returns elems with el appended.
func Insert(elems []Element, el Element) []Element {
	out := make([]Element, 0, len(elems)+1)
	out = append(out, elems...)
	return append(out, el)
}

// ReplaceAll returns a copy of elems, detached from its backing array.
func ReplaceAll(elems []Element) []Element {
	out := make([]Element, len(elems))
	copy(out, elems)
	return out
}

// Update returns elems with mutate applied to a copy of the element with
// the given id. Unknown ids return the input unchanged.
func Update(elems []Element, id string, mutate func(*Element)) []Element {
	for i := range elems {
		if elems[i].ID != id {
			continue
		}
		out := make([]Element, len(elems))
		copy(out, elems)
		el := out[i]
		mutate(&el)
		out[i] = el
		return out
	}
	return elems
}

// Remove returns elems without the elements whose ids are listed.
func Remove(elems []Element, ids ...string) []Element {
	drop := idSet(ids)
	out := make([]Element, 0, len(elems))
	for _, el := range elems {
		if !drop[el.ID] {
			out = append(out, el)
		}
	}
	return out
}

// Duplicate copies the listed elements, offset by DuplicateOffset and
// stacked above everything else in the order the ids were given. It
// returns the new collection and the fresh ids.
func Duplicate(elems []Element, ids ...string) ([]Element, []string) {
	out := ReplaceAll(elems)
	maxZ := MaxZ(elems)
	fresh := make([]string, 0, len(ids))
	for _, id := range ids {
		el, ok := ByID(elems, id)
		if !ok {
			continue
		}
		el.ID = NewID()
		el.X += DuplicateOffset
		el.Y += DuplicateOffset
		el.ZIndex = maxZ + 1 + len(fresh)
		out = append(out, el)
		fresh = append(fresh, el.ID)
	}
	return out, fresh
}

// BringToFront moves the listed elements above all others. Every target
// gets the same zIndex; their relative order survives the stable sort.
func BringToFront(elems []Element, ids ...string) []Element {
	targets := idSet(ids)
	top := MaxZ(elems) + 1
	out := ReplaceAll(elems)
	for i := range out {
		if targets[out[i].ID] {
			out[i].ZIndex = top
		}
	}
	return SortByZ(out)
}

// SendToBack moves the listed elements below all others.
func SendToBack(elems []Element, ids ...string) []Element {
	targets := idSet(ids)
	bottom := MinZ(elems) - 1
	out := ReplaceAll(elems)
	for i := range out {
		if targets[out[i].ID] {
			out[i].ZIndex = bottom
		}
	}
	return SortByZ(out)
}

// ByID returns the element with the given id.
func ByID(elems []Element, id string) (Element, bool) {
	for _, el := range elems {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// MaxZ returns the highest zIndex in elems, 0 when empty.
func MaxZ(elems []Element) int {
	max := 0
	for i, el := range elems {
		if i == 0 || el.ZIndex > max {
			max = el.ZIndex
		}
	}
	return max
}

// MinZ returns the lowest zIndex in elems, 0 when empty.
func MinZ(elems []Element) int {
	min := 0
	for i, el := range elems {
		if i == 0 || el.ZIndex < min {
			min = el.ZIndex
		}
	}
	return min
}

// SortByZ returns elems ordered back to front. The sort is stable so
// equal zIndex values keep their slice order.
func SortByZ(elems []Element) []Element {
	out := ReplaceAll(elems)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
