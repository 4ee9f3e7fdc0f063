package repo

import (
	"context"
	"sync"
	"time"

	"fiber/wof/app/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryAchievementRepo keeps records in insertion order. It backs tests and
// local runs without a Mongo server.
type MemoryAchievementRepo struct {
	mu    sync.RWMutex
	items []model.Achievement
}

var _ AchievementRepository = (*MemoryAchievementRepo)(nil)

func NewMemoryAchievementRepo(seed ...model.Achievement) *MemoryAchievementRepo {
	r := &MemoryAchievementRepo{}
	for _, a := range seed {
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
		r.items = append(r.items, a.Clone())
	}
	return r
}

func matches(a model.Achievement, f model.AchievementFilter, oid primitive.ObjectID) bool {
	if f.ID != "" && a.ID != oid {
		return false
	}
	if f.Category != "" && a.AchievementCategory != f.Category {
		return false
	}
	if f.ProfessorEmail != "" && a.ProfessorEmail != f.ProfessorEmail {
		return false
	}
	if f.ApprovedFrom != nil && (a.Approved == nil || a.Approved.Before(*f.ApprovedFrom)) {
		return false
	}
	if f.Archived != nil && a.Archived != *f.Archived {
		return false
	}
	return true
}

func (r *MemoryAchievementRepo) Find(_ context.Context, f model.AchievementFilter) ([]model.Achievement, error) {
	var oid primitive.ObjectID
	if f.ID != "" {
		var err error
		if oid, err = ObjectID(f.ID); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Achievement{}
	for _, a := range r.items {
		if matches(a, f, oid) {
			out = append(out, model.Project(a.Clone(), f.Whitelist, f.Blacklist))
		}
	}
	return out, nil
}

func (r *MemoryAchievementRepo) FindByID(_ context.Context, id string) (*model.Achievement, error) {
	oid, err := ObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.ID == oid {
			c := a.Clone()
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *MemoryAchievementRepo) Create(_ context.Context, a *model.Achievement) (string, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.SubmissionDate.IsZero() {
		a.SubmissionDate = time.Now().UTC()
	}

	r.mu.Lock()
	r.items = append(r.items, a.Clone())
	r.mu.Unlock()
	return a.ID.Hex(), nil
}

func (r *MemoryAchievementRepo) Patch(_ context.Context, id string, fields model.Fields) (int64, error) {
	if err := ValidatePatch(id, fields); err != nil {
		return 0, err
	}
	oid, err := ObjectID(id)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	matched, modified := r.apply(oid, fields)
	if !matched {
		return 0, model.ErrNotFound
	}
	return modified, nil
}

func (r *MemoryAchievementRepo) BatchPatch(_ context.Context, items []model.PatchItem) (model.BatchResult, error) {
	if err := ValidateBatch(items); err != nil {
		return model.BatchResult{}, err
	}
	oids := make([]primitive.ObjectID, len(items))
	for i, item := range items {
		oid, err := ObjectID(item.ID)
		if err != nil {
			return model.BatchResult{}, err
		}
		oids[i] = oid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var res model.BatchResult
	for i, item := range items {
		matched, modified := r.apply(oids[i], item.Fields)
		if matched {
			res.MatchedCount++
		}
		res.ModifiedCount += modified
	}
	return res, nil
}

func (r *MemoryAchievementRepo) CountTop10(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, a := range r.items {
		if a.OverAllTop10 {
			n++
		}
	}
	return n, nil
}

// caller holds mu
func (r *MemoryAchievementRepo) apply(oid primitive.ObjectID, fields model.Fields) (bool, int64) {
	for i := range r.items {
		if r.items[i].ID != oid {
			continue
		}
		if model.ApplyFields(&r.items[i], fields) {
			return true, 1
		}
		return true, 0
	}
	return false, 0
}
