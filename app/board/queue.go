package board

import (
	"context"
	"time"

	"fiber/wof/app/model"

	"github.com/google/uuid"
)

// lock takes mu then qmu. Once Close has run it holds neither and returns ErrClosed.
func (b *Board) lock() error {
	b.mu.Lock()
	b.qmu.Lock()
	if b.closed {
		b.qmu.Unlock()
		b.mu.Unlock()
		return ErrClosed
	}
	return nil
}

func (b *Board) unlock() {
	b.qmu.Unlock()
	b.mu.Unlock()
}

// pushLocked appends a job without blocking. Caller holds qmu on an open board.
func (b *Board) pushLocked(kind string, batch bool, items []model.PatchItem) {
	b.pmu.Lock()
	if b.pending == 0 {
		b.idle = make(chan struct{})
	}
	b.pending++
	b.pmu.Unlock()

	b.queue = append(b.queue, job{id: uuid.New(), kind: kind, batch: batch, items: items})
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest job, waiting for one. It reports false once the board
// is closed and the queue is empty.
func (b *Board) next() (job, bool) {
	for {
		b.qmu.Lock()
		if len(b.queue) > 0 {
			j := b.queue[0]
			b.queue[0] = job{}
			b.queue = b.queue[1:]
			b.qmu.Unlock()
			return j, true
		}
		closed := b.closed
		b.qmu.Unlock()
		if closed {
			return job{}, false
		}
		<-b.wake
	}
}

func (b *Board) writer() {
	defer close(b.done)
	for {
		j, ok := b.next()
		if !ok {
			return
		}
		b.run(j)

		b.pmu.Lock()
		b.pending--
		if b.pending == 0 {
			close(b.idle)
		}
		b.pmu.Unlock()
	}
}

// run retries a job with linear backoff. Only storage errors are retried.
func (b *Board) run(j job) {
	start := time.Now()
	defer func() { b.metrics.RecordSyncDuration(context.Background(), time.Since(start)) }()

	var err error
	for attempt := 0; attempt <= b.retries; attempt++ {
		if attempt > 0 && b.backoff > 0 {
			time.Sleep(time.Duration(attempt) * b.backoff)
		}
		if err = b.persist(j); err == nil {
			return
		}
		b.log.Warn().Err(err).Str("job", j.id.String()).Str("kind", j.kind).Int("attempt", attempt+1).Msg("write-behind attempt failed")
		if !model.IsStorage(err) {
			break
		}
	}

	b.log.Error().Err(&model.StorageError{Op: j.kind, Err: err}).
		Str("job", j.id.String()).
		Int("items", len(j.items)).
		Msg("write-behind job failed, reloading projection")
	b.metrics.RecordSyncFailure(context.Background(), j.kind)

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	if err := b.Load(ctx); err != nil {
		b.log.Error().Err(err).Msg("projection reload failed")
	}
}

func (b *Board) persist(j job) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if j.batch {
		_, err := b.store.BatchPatch(ctx, j.items)
		return err
	}
	for _, item := range j.items {
		if _, err := b.store.Patch(ctx, item.ID, item.Fields); err != nil {
			return err
		}
	}
	return nil
}

// Flush waits until every queued job has been written or has failed.
func (b *Board) Flush(ctx context.Context) error {
	b.pmu.Lock()
	if b.pending == 0 {
		b.pmu.Unlock()
		return nil
	}
	idle := b.idle
	b.pmu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting edits, drains the queue and stops the writer.
func (b *Board) Close(ctx context.Context) error {
	b.qmu.Lock()
	if !b.closed {
		b.closed = true
		close(b.wake)
	}
	b.qmu.Unlock()

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
