package usecase

import (
	"sync"
	"time"
)

// MutationBatch is one burst of structural document changes, reduced to the
// class names present on or under the added nodes. It decouples the scan
// pipeline from any live-document facility: whoever observes the real
// document feeds batches in here.
type MutationBatch struct {
	AddedClasses []string
}

// Watcher turns mutation batches into debounced scan triggers. Batches that
// introduce no candidate price element are ignored; qualifying bursts
// collapse into a single trigger after the delay.
type Watcher struct {
	mutex      sync.Mutex
	delay      time.Duration
	trigger    func()
	timer      *time.Timer
	stopped    bool
	candidates map[string]bool
}

// NewWatcher creates a watcher that calls trigger after a qualifying
// mutation burst goes quiet for delay.
func NewWatcher(delay time.Duration, trigger func()) *Watcher {
	candidates := make(map[string]bool, len(PriceSelectors))
	for _, selector := range PriceSelectors {
		candidates[selector] = true
	}
	return &Watcher{
		delay:      delay,
		trigger:    trigger,
		candidates: candidates,
	}
}

// Observe feeds one mutation batch in. Safe to call from any goroutine.
func (w *Watcher) Observe(batch MutationBatch) {
	if !w.qualifies(batch) {
		return
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.stopped {
		return
	}

	// Collapse rapid bursts: reset the pending timer instead of stacking
	// one trigger per batch.
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

// Stop cancels any pending trigger and ignores further batches.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) qualifies(batch MutationBatch) bool {
	for _, class := range batch.AddedClasses {
		if w.candidates[class] {
			return true
		}
	}
	return false
}

func (w *Watcher) fire() {
	w.mutex.Lock()
	if w.stopped {
		w.mutex.Unlock()
		return
	}
	w.timer = nil
	w.mutex.Unlock()

	w.trigger()
}
