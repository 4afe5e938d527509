package dirstat

import (
	"sort"
	"sync"
)

// tracker keeps the k largest folders seen so far. It is shared by every
// scanning goroutine and guarded by a single mutex covering the whole
// compare-evict-insert-recompute sequence.
//
// Ties are resolved by arrival: when a candidate equals the current minimum
// of a full tracker it is rejected, so whichever equal-sized folder got its
// update in first keeps the slot. Under concurrency that order is not
// deterministic.
type tracker struct {
	mu      sync.Mutex
	k       int
	entries map[string]int64
	// min caches the smallest entry; valid whenever entries is non-empty.
	min SizeRecord
}

func newTracker(k int) *tracker {
	if k < 1 {
		k = 1
	}

	return &tracker{
		k:       k,
		entries: make(map[string]int64, k),
	}
}

// tryInsert offers a candidate and reports whether it was kept.
func (t *tracker) tryInsert(path string, size int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= t.k {
		if size <= t.min.Size {
			return false
		}

		delete(t.entries, t.min.Path)
	}

	t.entries[path] = size
	t.recomputeMin()

	return true
}

// recomputeMin rescans the entries for the smallest one. Caller must hold mu.
func (t *tracker) recomputeMin() {
	first := true

	for path, size := range t.entries {
		if first || size < t.min.Size {
			t.min = SizeRecord{Path: path, Size: size}
			first = false
		}
	}

	if first {
		t.min = SizeRecord{}
	}
}

// len returns the number of tracked entries.
func (t *tracker) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// minimum returns the cached smallest entry and whether the tracker is non-empty.
func (t *tracker) minimum() (SizeRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.min, len(t.entries) > 0
}

// snapshot returns the tracked entries sorted by size, largest first.
// Equal sizes are ordered by path so a snapshot of a settled tracker is stable.
func (t *tracker) snapshot() []SizeRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := make([]SizeRecord, 0, len(t.entries))
	for path, size := range t.entries {
		records = append(records, SizeRecord{Path: path, Size: size})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Size != records[j].Size {
			return records[i].Size > records[j].Size
		}

		return records[i].Path < records[j].Path
	})

	return records
}
