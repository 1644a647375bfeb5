package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// defaultSweepInterval is how often the sweeper prunes expired records.
const defaultSweepInterval = 1 * time.Hour

// Sweeper periodically deletes expired translations and their archived QR
// images. It is storage hygiene only: the resolver checks expiry on every
// read, so correctness never depends on the sweeper running.
type Sweeper struct {
	store    *TranslationStore
	archive  *ImageArchive
	interval time.Duration

	mu            sync.Mutex
	lastSweepTime time.Time
	removedTotal  int64
}

// SweepStatus reports sweeper activity for the admin endpoint.
type SweepStatus struct {
	LastSweepTime time.Time `json:"last_sweep_time"`
	RemovedTotal  int64     `json:"removed_total"`
	Interval      string    `json:"interval"`
}

func NewSweeper(store *TranslationStore, archive *ImageArchive) *Sweeper {
	return &Sweeper{
		store:    store,
		archive:  archive,
		interval: defaultSweepInterval,
	}
}

// Start runs the sweep loop until ctx is cancelled. It sweeps once
// immediately, then on every tick.
func (w *Sweeper) Start(ctx context.Context) {
	log.Printf("Sweeper started: pruning expired translations every %s", w.interval)

	if _, err := w.sweep(); err != nil {
		log.Printf("Sweeper: initial sweep failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Sweeper stopping...")
			return
		case <-ticker.C:
			if _, err := w.sweep(); err != nil {
				log.Printf("Sweeper: sweep failed: %v", err)
			}
		}
	}
}

// SweepNow runs one sweep pass; used by the admin endpoint.
func (w *Sweeper) SweepNow() (int64, error) {
	return w.sweep()
}

func (w *Sweeper) sweep() (int64, error) {
	ids, err := w.store.DeleteExpired(time.Now())
	if err != nil {
		return 0, err
	}

	if w.archive != nil {
		for _, id := range ids {
			if err := w.archive.Delete(id); err != nil {
				infoLog("Sweeper: failed to delete archived QR image %s: %v", id, err)
			}
		}
	}

	removed := int64(len(ids))
	if removed > 0 {
		log.Printf("Sweeper: removed %d expired translations", removed)
	}

	w.mu.Lock()
	w.lastSweepTime = time.Now()
	w.removedTotal += removed
	w.mu.Unlock()

	return removed, nil
}

// GetStatus returns current sweeper stats.
func (w *Sweeper) GetStatus() SweepStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return SweepStatus{
		LastSweepTime: w.lastSweepTime,
		RemovedTotal:  w.removedTotal,
		Interval:      w.interval.String(),
	}
}
