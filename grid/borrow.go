package grid

import (
	"sync"
	"sync/atomic"
)

// borrowState counts the views that are live on a Grid.
//
// shared counts read-only views. exclusive counts the mutable views
// descended from a single root; it is non-zero for as long as any of them
// is live. Transitions take mu, checks on the access path only load.
type borrowState struct {
	mu        sync.Mutex
	shared    atomic.Int64
	exclusive atomic.Int64
}

func (b *borrowState) acquireShared() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n := b.exclusive.Load(); n != 0 {
		panic(aliasedf("cannot create a view while %d mutable views are live", n))
	}
	b.shared.Add(1)
}

// addShared registers n more read-only views derived from a live one.
func (b *borrowState) addShared(n int64) {
	b.shared.Add(n)
}

func (b *borrowState) releaseShared() {
	b.shared.Add(-1)
}

func (b *borrowState) acquireExclusive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n := b.exclusive.Load(); n != 0 {
		panic(aliasedf("cannot create a mutable view while %d mutable views are live", n))
	}
	if n := b.shared.Load(); n != 0 {
		panic(aliasedf("cannot create a mutable view while %d views are live", n))
	}
	b.exclusive.Store(1)
}

// fork replaces one live mutable view by two.
func (b *borrowState) fork() {
	b.exclusive.Add(1)
}

func (b *borrowState) releaseExclusive() {
	b.exclusive.Add(-1)
}

func (b *borrowState) checkRead() {
	if n := b.exclusive.Load(); n != 0 {
		panic(aliasedf("grid read while %d mutable views are live", n))
	}
}

func (b *borrowState) checkWrite() {
	b.checkRead()
	if n := b.shared.Load(); n != 0 {
		panic(aliasedf("grid write while %d views are live", n))
	}
}
