package services

import (
	"context"
	"sync"
)

// QueryGuard makes sure only the newest listing run per session key can
// deliver results. Beginning a run cancels the previous run of that key.
type QueryGuard struct {
	mu   sync.Mutex
	seq  uint64
	runs map[string]*guardedRun
}

type guardedRun struct {
	gen    uint64
	cancel context.CancelFunc
}

// QueryTicket identifies one guarded run.
type QueryTicket struct {
	guard *QueryGuard
	key   string
	gen   uint64
}

func NewQueryGuard() *QueryGuard {
	return &QueryGuard{runs: map[string]*guardedRun{}}
}

// Begin starts a run for key and returns its context. An empty key is not
// guarded.
func (g *QueryGuard) Begin(ctx context.Context, key string) (context.Context, *QueryTicket) {
	if key == "" {
		return ctx, &QueryTicket{}
	}
	runCtx, cancel := context.WithCancel(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if prev, ok := g.runs[key]; ok {
		prev.cancel()
	}
	g.seq++
	gen := g.seq
	g.runs[key] = &guardedRun{gen: gen, cancel: cancel}
	return runCtx, &QueryTicket{guard: g, key: key, gen: gen}
}

// Current reports whether no newer run for the same key has started.
func (t *QueryTicket) Current() bool {
	if t == nil || t.guard == nil {
		return true
	}
	t.guard.mu.Lock()
	defer t.guard.mu.Unlock()
	run, ok := t.guard.runs[t.key]
	return ok && run.gen == t.gen
}

// Done releases the run. The key's entry is dropped only if it still
// belongs to this run.
func (t *QueryTicket) Done() {
	if t == nil || t.guard == nil {
		return
	}
	t.guard.mu.Lock()
	defer t.guard.mu.Unlock()
	if run, ok := t.guard.runs[t.key]; ok && run.gen == t.gen {
		run.cancel()
		delete(t.guard.runs, t.key)
	}
}
