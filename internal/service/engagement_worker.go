package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EngagementWorker listens for PostgreSQL NOTIFY on the
// 'engagement_changes' channel and batches cache invalidations. If 50
// likes hit clip X in 5 seconds, the cached document is dropped once.
type EngagementWorker struct {
	pool    *pgxpool.Pool
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // clip IDs waiting for invalidation
}

// NewEngagementWorker creates a cache invalidation worker.
func NewEngagementWorker(pool *pgxpool.Pool, cache *CacheService) *EngagementWorker {
	return &EngagementWorker{
		pool:    pool,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for engagement_changes notifications and
// processing batches. It reconnects on listen errors until the context
// is cancelled.
func (w *EngagementWorker) Start(ctx context.Context) {
	log.Printf("engagement-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("engagement-worker: stopping (context cancelled)")
				return
			}
			log.Printf("engagement-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("engagement-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on
// engagement_changes, and collects notifications into batch windows.
func (w *EngagementWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN engagement_changes")
	if err != nil {
		return err
	}
	log.Println("engagement-worker: listening on engagement_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		clipID := notification.Payload
		if clipID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[clipID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *EngagementWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and invalidates each clip's cache entry.
func (w *EngagementWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	invalidated := 0
	for clipID := range batch {
		if err := w.cache.InvalidateClip(ctx, clipID); err != nil {
			log.Printf("engagement-worker: cache invalidate error for %s: %v", clipID, err)
			continue
		}
		invalidated++
	}

	if invalidated > 0 {
		log.Printf("engagement-worker: batch complete, %d clips invalidated (from %d notifications)",
			invalidated, len(batch))
	}
}
