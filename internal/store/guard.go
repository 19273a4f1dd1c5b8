package store

import "sync"

// guard is a mutex that remembers whether a holder ever unwound through a
// panic. After that, the protected state is treated as unusable.
type guard struct {
	mu       sync.Mutex
	poisoned bool
}

// with runs fn while holding the lock. A panic inside fn poisons the guard
// and keeps propagating to the caller.
func (g *guard) with(fn func()) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.poisoned {
		return ErrLockPoisoned
	}

	completed := false
	defer func() {
		if !completed {
			g.poisoned = true
		}
	}()
	fn()
	completed = true
	return nil
}

func (g *guard) isPoisoned() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.poisoned
}
