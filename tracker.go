package nls

import (
	"fmt"
	"sync"
	"time"
)

// FeedTracker counts accepted and rejected records per feed across runs.
type FeedTracker struct {
	accepted map[string]int
	rejected map[string]int
	lastRun  map[string]int64
	notified map[string]bool
	mutex    *sync.Mutex
}

func NewFeedTracker(names []string) *FeedTracker {
	tracker := new(FeedTracker)
	tracker.accepted = make(map[string]int)
	tracker.rejected = make(map[string]int)
	tracker.lastRun = make(map[string]int64)
	tracker.notified = make(map[string]bool)
	tracker.mutex = &sync.Mutex{}

	for _, name := range names {
		tracker.Add(name)
	}

	return tracker
}

// Add registers a feed; feeds already known are left alone.
func (t *FeedTracker) Add(name string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.accepted[name]; ok {
		return
	}

	t.accepted[name] = 0
	t.rejected[name] = 0
	t.lastRun[name] = 0
	t.notified[name] = false
}

// Record adds the outcome of one validation run and returns the feed's
// rejection count so far.
func (t *FeedTracker) Record(result *FeedResult) int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	prevRejected, ok := t.rejected[result.Name]
	if !ok {
		panic(fmt.Errorf("Name not found in feed tracker object: %s", result.Name))
	}

	t.lastRun[result.Name] = time.Now().Unix()
	t.accepted[result.Name] += len(result.Accepted)
	t.rejected[result.Name] = prevRejected + result.Rejected()

	return t.rejected[result.Name]
}

// ShouldNotify reports true once per feed, the first time its rejection
// count reaches threshold.
func (t *FeedTracker) ShouldNotify(name string, threshold int) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.notified[name] || t.rejected[name] < threshold {
		return false
	}

	t.notified[name] = true
	return true
}

func (t *FeedTracker) Counts(name string) (int, int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.accepted[name], t.rejected[name]
}

func (t *FeedTracker) LastRun(name string) int64 {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	lastRun, ok := t.lastRun[name]
	if ok {
		return lastRun
	}

	return 0
}
