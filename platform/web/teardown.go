package web

import "sync"

// Teardown runs release functions once, in registration order. Later Run calls and
// functions added after Run are ignored, so a page may call destroy as often as it likes.
type Teardown struct {
	mu   sync.Mutex
	done bool
	fns  []func()
}

// Add registers fn. It reports false, without keeping fn, once Run has happened.
func (t *Teardown) Add(fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.fns = append(t.fns, fn)
	return true
}

// Run releases everything registered so far. Only the first call does any work.
func (t *Teardown) Run() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	fns := t.fns
	t.fns = nil
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (t *Teardown) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}
