package ranking

import (
	"fiber/wof/app/model"
)

// WallTop10 is the public wall's curated category.
const WallTop10 = "Overall TOP 10"

// WallFilter is the store read behind the public wall: approved in good faith and not archived.
func WallFilter(category string) model.AchievementFilter {
	floor := model.PublicApprovedFloor
	f := model.AchievementFilter{
		ApprovedFrom: &floor,
		Archived:     model.BoolPtr(false),
		Blacklist:    []string{"certificateProof"},
	}
	if model.IsCategory(category) {
		f.Category = category
	}
	return f
}

// Wall arranges public records for one category. The Top 10 keeps at most
// ten members by order; a real category lists its top-10 members first.
func Wall(items []model.Achievement, category string) []model.Achievement {
	if category == WallTop10 {
		var top []model.Achievement
		for _, a := range items {
			if a.OverAllTop10 {
				top = append(top, a)
			}
		}
		top = SortByOrder(top)
		if len(top) > model.Top10Capacity {
			top = top[:model.Top10Capacity]
		}
		if top == nil {
			top = []model.Achievement{}
		}
		return top
	}

	var picked []model.Achievement
	for _, a := range items {
		if category == "" || a.AchievementCategory == category {
			picked = append(picked, a)
		}
	}
	ordered := SortByOrder(picked)
	return top10First(ordered)
}
