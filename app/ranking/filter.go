package ranking

import (
	"strings"

	"fiber/wof/app/model"
)

// Pseudo-categories of the admin board.
const (
	CategoryAll      = "All Achievements"
	CategoryTop10    = "Top 10"
	CategoryPending  = "Pending Students"
	CategoryArchived = "Archived"
)

func IsPseudoCategory(c string) bool {
	switch c {
	case CategoryAll, CategoryTop10, CategoryPending, CategoryArchived:
		return true
	}
	return false
}

// Axis is one toggle of the All Achievements filter set.
type Axis string

const (
	AxisUnset Axis = ""
	AxisYes   Axis = "yes"
	AxisNo    Axis = "no"
)

type FilterSet struct {
	Pending  Axis
	Rejected Axis
	Top10    Axis
}

func (a Axis) allows(v bool) bool {
	switch a {
	case AxisYes:
		return v
	case AxisNo:
		return !v
	}
	return true
}

func (f FilterSet) matches(a model.Achievement) bool {
	status := a.Status()
	return f.Pending.allows(status == model.StatusPending) &&
		f.Rejected.allows(status == model.StatusRejected) &&
		f.Top10.allows(a.OverAllTop10)
}

// MatchesSearch is a case-insensitive substring test over the searchable text fields.
func MatchesSearch(a model.Achievement, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{a.FullName, a.Title, a.Description, a.RegistrationNumber} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Filter selects the working subset for a board view. The result is a new
// slice; items are copied, never modified. An empty category means All.
func Filter(all []model.Achievement, category, query string, set FilterSet) []model.Achievement {
	if category == "" {
		category = CategoryAll
	}

	var keep func(model.Achievement) bool
	switch category {
	case CategoryTop10:
		keep = func(a model.Achievement) bool { return a.OverAllTop10 && !a.Archived }
	case CategoryPending:
		keep = func(a model.Achievement) bool { return a.Status() == model.StatusPending }
	case CategoryArchived:
		keep = func(a model.Achievement) bool { return a.Archived }
	case CategoryAll:
		keep = set.matches
	default:
		keep = func(a model.Achievement) bool { return a.AchievementCategory == category && !a.Archived }
	}

	out := []model.Achievement{}
	for _, a := range all {
		if MatchesSearch(a, query) && keep(a) {
			out = append(out, a.Clone())
		}
	}

	if !IsPseudoCategory(category) {
		out = top10First(out)
	}
	return out
}

func top10First(items []model.Achievement) []model.Achievement {
	out := make([]model.Achievement, 0, len(items))
	for _, a := range items {
		if a.OverAllTop10 {
			out = append(out, a)
		}
	}
	for _, a := range items {
		if !a.OverAllTop10 {
			out = append(out, a)
		}
	}
	return out
}

// Group splits a filtered view into its sections, each sorted by order.
// The Top 10, Pending and Archived views are a single unarchived list.
// All Achievements also groups the unarchived section by category.
func Group(items []model.Achievement, category string) model.Sections {
	if category == "" {
		category = CategoryAll
	}
	s := model.Sections{
		Top10:      []model.Achievement{},
		Unarchived: []model.Achievement{},
		Archived:   []model.Achievement{},
	}
	if IsPseudoCategory(category) && category != CategoryAll {
		s.Unarchived = SortByOrder(items)
		return s
	}

	for _, a := range items {
		switch SectionOf(a) {
		case SectionTop10:
			s.Top10 = append(s.Top10, a)
		case SectionArchived:
			s.Archived = append(s.Archived, a)
		default:
			s.Unarchived = append(s.Unarchived, a)
		}
	}
	s.Top10 = SortByOrder(s.Top10)
	s.Unarchived = SortByOrder(s.Unarchived)
	s.Archived = SortByOrder(s.Archived)

	if category == CategoryAll {
		s.ByCategory = make(map[string][]model.Achievement, len(model.Categories))
		for _, c := range model.Categories {
			s.ByCategory[c] = []model.Achievement{}
		}
		for _, a := range s.Unarchived {
			s.ByCategory[a.AchievementCategory] = append(s.ByCategory[a.AchievementCategory], a)
		}
	}
	return s
}

// Members returns the current, order-sorted members of one section of a view.
func Members(all []model.Achievement, category string, section Section) []model.Achievement {
	s := Group(Filter(all, category, "", FilterSet{}), category)
	switch section {
	case SectionTop10:
		return s.Top10
	case SectionArchived:
		return s.Archived
	default:
		return s.Unarchived
	}
}
