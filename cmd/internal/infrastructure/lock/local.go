package lock

import (
	"context"
	"sync"
)

type slot struct {
	ch   chan struct{}
	refs int
}

// LocalLocker only serializes callers within this process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	opts  Options
}

func NewLocalLocker(opts Options) *LocalLocker {
	return &LocalLocker{
		slots: make(map[string]*slot),
		opts:  opts.withDefaults(),
	}
}

func (l *LocalLocker) Obtain(ctx context.Context, key string) (func(), error) {
	s := l.acquire(key)

	waitCtx, cancel := context.WithTimeout(ctx, l.opts.Wait)
	defer cancel()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.release(key, s)
			})
		}, nil

	case <-waitCtx.Done():
		l.release(key, s)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotObtained
	}
}

func (l *LocalLocker) acquire(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
