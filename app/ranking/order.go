// Package ranking holds the dense 1-based ordering of wall sections and the
// filters that derive admin and public views from a record snapshot.
// Nothing here mutates its input; new orders come back as patch intents.
package ranking

import (
	"sort"

	"fiber/wof/app/model"
)

type Section string

const (
	SectionTop10      Section = "top10"
	SectionUnarchived Section = "unarchived"
	SectionArchived   Section = "archived"
)

func ParseSection(s string) (Section, bool) {
	switch Section(s) {
	case SectionTop10, SectionUnarchived, SectionArchived:
		return Section(s), true
	}
	return "", false
}

// SectionOf places a record by its flags. Top-10 membership wins over archived.
func SectionOf(a model.Achievement) Section {
	switch {
	case a.OverAllTop10:
		return SectionTop10
	case a.Archived:
		return SectionArchived
	default:
		return SectionUnarchived
	}
}

// Less orders by ascending order; records without one sort last.
func Less(a, b model.Achievement) bool {
	ao, aok := a.OrderValue()
	bo, bok := b.OrderValue()
	switch {
	case aok && bok:
		return ao < bo
	case aok:
		return true
	default:
		return false
	}
}

// SortByOrder sorts a copy of items, keeping input order among equals.
func SortByOrder(items []model.Achievement) []model.Achievement {
	out := make([]model.Achievement, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// Plan assigns index+1 to every item of the desired sequence and returns
// only the items whose stored order differs.
func Plan(sequence []model.Achievement) []model.OrderChange {
	var changes []model.OrderChange
	for i, a := range sequence {
		want := i + 1
		if cur, ok := a.OrderValue(); ok && cur == want {
			continue
		}
		c := model.OrderChange{ID: a.HexID(), Order: want}
		if a.Order != nil {
			c.OldOrder = model.IntPtr(*a.Order)
		}
		changes = append(changes, c)
	}
	return changes
}

// Patches turns planned changes into one batch of order-only patches.
func Patches(changes []model.OrderChange) []model.PatchItem {
	items := make([]model.PatchItem, 0, len(changes))
	for _, c := range changes {
		items = append(items, model.PatchItem{ID: c.ID, Fields: model.Fields{"order": c.Order}})
	}
	return items
}

// ArrayMove returns a copy with the element at from moved to to,
// shifting the elements in between by one.
func ArrayMove(items []model.Achievement, from, to int) []model.Achievement {
	out := make([]model.Achievement, 0, len(items))
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return append(out, items...)
	}
	moved := items[from]
	for i, a := range items {
		if i != from {
			out = append(out, a)
		}
	}
	out = append(out, model.Achievement{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

// Move drags fromID onto toID's position. It reports false when the ids are
// identical or either is not in items.
func Move(items []model.Achievement, fromID, toID string) ([]model.Achievement, bool) {
	if fromID == toID {
		return items, false
	}
	from, to := indexOf(items, fromID), indexOf(items, toID)
	if from < 0 || to < 0 {
		return items, false
	}
	return ArrayMove(items, from, to), true
}

func indexOf(items []model.Achievement, id string) int {
	for i := range items {
		if items[i].HexID() == id {
			return i
		}
	}
	return -1
}
