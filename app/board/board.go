// Package board keeps the admin board's in-memory projection of every record
// and persists admin edits to the store through a write-behind queue.
//
// Edits land in the projection first and are visible to the next read at
// once. Each edit is queued in the same critical section that changes the
// projection, and a single writer goroutine drains the queue in order. A job that still
// fails after its retries is logged and the projection is reloaded from the
// store, so a failed write never leaves the board silently diverged.
package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"fiber/wof/app/metrics"
	"fiber/wof/app/model"
	"fiber/wof/app/ranking"
	"fiber/wof/app/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrClosed = errors.New("board is closed")

type Options struct {
	Retries int
	Backoff time.Duration
	Timeout time.Duration
	Queue   int
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

type job struct {
	id    uuid.UUID
	kind  string
	batch bool
	items []model.PatchItem
}

type Board struct {
	store   repo.AchievementRepository
	log     zerolog.Logger
	metrics *metrics.Metrics
	retries int
	backoff time.Duration
	timeout time.Duration

	mu    sync.RWMutex
	items map[string]model.Achievement
	ids   []string

	// qmu guards closed and queue. It is taken after mu, never before.
	qmu    sync.Mutex
	closed bool
	queue  []job
	wake   chan struct{}
	done   chan struct{}

	pmu     sync.Mutex
	pending int
	idle    chan struct{}
}

func New(store repo.AchievementRepository, opts Options) *Board {
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Queue <= 0 {
		opts.Queue = 64
	}
	b := &Board{
		store:   store,
		log:     opts.Logger.With().Str("component", "board").Logger(),
		metrics: opts.Metrics,
		retries: opts.Retries,
		backoff: opts.Backoff,
		timeout: opts.Timeout,
		items:   map[string]model.Achievement{},
		queue:   make([]job, 0, opts.Queue),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go b.writer()
	return b
}

// Load replaces the projection with a full read of the store, media excluded.
func (b *Board) Load(ctx context.Context) error {
	all, err := b.store.Find(ctx, model.AchievementFilter{Blacklist: model.MediaFields})
	if err != nil {
		return err
	}

	items := make(map[string]model.Achievement, len(all))
	ids := make([]string, 0, len(all))
	for _, a := range all {
		id := a.HexID()
		if _, dup := items[id]; !dup {
			ids = append(ids, id)
		}
		items[id] = a
	}

	b.mu.Lock()
	b.items, b.ids = items, ids
	b.mu.Unlock()

	b.log.Debug().Int("records", len(ids)).Msg("projection loaded")
	return nil
}

// Snapshot copies every record in load order.
func (b *Board) Snapshot() []model.Achievement {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Achievement, 0, len(b.ids))
	for _, id := range b.ids {
		out = append(out, b.items[id].Clone())
	}
	return out
}

func (b *Board) Get(id string) (model.Achievement, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	a, ok := b.items[id]
	if !ok {
		return model.Achievement{}, false
	}
	return a.Clone(), true
}

// Upsert places a record written elsewhere into the projection. Media is not kept.
func (b *Board) Upsert(a model.Achievement) {
	a = model.Project(a.Clone(), nil, model.MediaFields)
	id := a.HexID()

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.items[id]; !ok {
		b.ids = append(b.ids, id)
	}
	b.items[id] = a
}

// Apply merges fields already persisted by the caller. It reports whether the
// record is in the projection.
func (b *Board) Apply(id string, fields model.Fields) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.items[id]
	if !ok {
		return false
	}
	model.ApplyFields(&a, fields)
	b.items[id] = a
	return true
}

// Edit merges fields into the projection and queues the store write.
// Setting overAllTop10 on a record outside a full top 10 fails with
// model.ErrCapacityExceeded.
func (b *Board) Edit(id string, fields model.Fields) (model.Achievement, error) {
	if err := repo.ValidatePatch(id, fields); err != nil {
		return model.Achievement{}, err
	}
	return b.update("edit", id, func(a *model.Achievement) (model.Fields, error) {
		if top, ok := fields["overAllTop10"].(bool); ok && top && !a.OverAllTop10 && b.countTop10() >= model.Top10Capacity {
			return nil, model.ErrCapacityExceeded
		}
		model.ApplyFields(a, fields)
		return fields, nil
	})
}

func (b *Board) ToggleArchive(id string) (model.Achievement, error) {
	return b.update("archive", id, func(a *model.Achievement) (model.Fields, error) {
		a.Archived = !a.Archived
		return model.Fields{"archived": a.Archived}, nil
	})
}

// ToggleTop10 flips top-10 membership. Adding an eleventh member fails with
// model.ErrCapacityExceeded and leaves the record unchanged.
func (b *Board) ToggleTop10(id string) (model.Achievement, error) {
	return b.update("top10", id, func(a *model.Achievement) (model.Fields, error) {
		if !a.OverAllTop10 && b.countTop10() >= model.Top10Capacity {
			return nil, model.ErrCapacityExceeded
		}
		a.OverAllTop10 = !a.OverAllTop10
		return model.Fields{"overAllTop10": a.OverAllTop10}, nil
	})
}

func (b *Board) Top10Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.countTop10()
}

// caller holds mu
func (b *Board) countTop10() int {
	n := 0
	for _, a := range b.items {
		if a.OverAllTop10 {
			n++
		}
	}
	return n
}

// Reorder takes the complete desired sequence of one section of a view.
// ids must be exactly the section's current members. Only changed orders are
// written, as one batch; an unchanged sequence writes nothing.
func (b *Board) Reorder(ctx context.Context, section ranking.Section, category string, ids []string) ([]model.OrderChange, error) {
	if err := b.lock(); err != nil {
		return nil, err
	}
	members := ranking.Members(b.snapshotLocked(), category, section)
	if err := samePermutation(members, ids); err != nil {
		b.unlock()
		return nil, err
	}
	byID := make(map[string]model.Achievement, len(members))
	for _, a := range members {
		byID[a.HexID()] = a
	}
	sequence := make([]model.Achievement, len(ids))
	for i, id := range ids {
		sequence[i] = byID[id]
	}
	changes := b.applyPlanLocked(sequence)
	b.unlock()

	b.recordReorder(ctx, section, changes)
	return changes, nil
}

// Move drags one record onto another's position within a section.
// Identical ids are a no-op.
func (b *Board) Move(ctx context.Context, section ranking.Section, category, fromID, toID string) ([]model.OrderChange, error) {
	if fromID == toID {
		return []model.OrderChange{}, nil
	}

	if err := b.lock(); err != nil {
		return nil, err
	}
	members := ranking.Members(b.snapshotLocked(), category, section)
	sequence, ok := ranking.Move(members, fromID, toID)
	if !ok {
		b.unlock()
		return nil, model.NewValidationError("ids", "both records must belong to the "+string(section)+" section")
	}
	changes := b.applyPlanLocked(sequence)
	b.unlock()

	b.recordReorder(ctx, section, changes)
	return changes, nil
}

func (b *Board) recordReorder(ctx context.Context, section ranking.Section, changes []model.OrderChange) {
	if len(changes) > 0 {
		b.metrics.RecordReorder(ctx, string(section), len(changes))
	}
}

// applyPlanLocked writes the dense order of sequence into the projection and
// queues the changed orders as one batch. Caller holds mu and qmu.
func (b *Board) applyPlanLocked(sequence []model.Achievement) []model.OrderChange {
	changes := ranking.Plan(sequence)
	if len(changes) == 0 {
		return []model.OrderChange{}
	}
	for _, c := range changes {
		a := b.items[c.ID]
		a.Order = model.IntPtr(c.Order)
		b.items[c.ID] = a
	}
	b.pushLocked("reorder", true, ranking.Patches(changes))
	return changes
}

// caller holds mu
func (b *Board) snapshotLocked() []model.Achievement {
	out := make([]model.Achievement, 0, len(b.ids))
	for _, id := range b.ids {
		out = append(out, b.items[id])
	}
	return out
}

// update changes one record and queues the fields fn returns. The record is
// untouched when fn fails or the board is closed.
func (b *Board) update(kind, id string, fn func(*model.Achievement) (model.Fields, error)) (model.Achievement, error) {
	if err := b.lock(); err != nil {
		return model.Achievement{}, err
	}
	defer b.unlock()

	a, ok := b.items[id]
	if !ok {
		return model.Achievement{}, model.ErrNotFound
	}
	a = a.Clone()
	fields, err := fn(&a)
	if err != nil {
		return model.Achievement{}, err
	}
	b.items[id] = a
	b.pushLocked(kind, false, []model.PatchItem{{ID: id, Fields: fields}})
	return a.Clone(), nil
}

func samePermutation(members []model.Achievement, ids []string) error {
	if len(ids) != len(members) {
		return model.NewValidationError("ids", "must list every record of the section exactly once")
	}
	want := make(map[string]bool, len(members))
	for _, a := range members {
		want[a.HexID()] = true
	}
	for _, id := range ids {
		if !want[id] {
			return model.NewValidationError("ids", "must list every record of the section exactly once")
		}
		delete(want, id)
	}
	return nil
}
