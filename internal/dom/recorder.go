package dom

import "sync"

// Recorder is a Sink that keeps every patch. Useful in tests and for
// building static snapshots.
type Recorder struct {
	mu      sync.Mutex
	patches []Patch
}

// Apply implements Sink.
func (r *Recorder) Apply(p Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, p)
}

// Patches returns a copy of the recorded patches.
func (r *Recorder) Patches() []Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Patch, len(r.patches))
	copy(out, r.patches)
	return out
}

// Last returns the most recent patch with the given op and target.
// An empty target matches any target.
func (r *Recorder) Last(op Op, target string) (Patch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.patches) - 1; i >= 0; i-- {
		p := r.patches[i]
		if p.Op == op && (target == "" || p.Target == target) {
			return p, true
		}
	}
	return Patch{}, false
}

// Count returns how many patches with the given op were recorded.
func (r *Recorder) Count(op Op) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.patches {
		if p.Op == op {
			n++
		}
	}
	return n
}

// Reset discards recorded patches.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = nil
}

// Statuses returns the recorded status messages in order.
func (r *Recorder) Statuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, p := range r.patches {
		if p.Op == OpStatus {
			out = append(out, p.Text)
		}
	}
	return out
}
