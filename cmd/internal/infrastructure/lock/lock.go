// Package lock serializes conflicting mutations of the same request.
//
// The database transaction remains the consistency boundary; the lock only
// keeps two admins from interleaving, say, a quote submission and a price
// refresh on one request.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotObtained is returned when the lock is still held by someone else
// once the wait budget runs out.
var ErrNotObtained = errors.New("lock: not obtained")

// Locker hands out exclusive, expiring locks by key.
type Locker interface {
	// Obtain blocks until the key is free, the wait budget is spent or ctx
	// is done. The returned release func is safe to call more than once.
	Obtain(ctx context.Context, key string) (release func(), err error)
}

type Options struct {
	// TTL bounds how long a crashed holder keeps a distributed lock.
	TTL time.Duration

	// Wait bounds how long Obtain waits for a busy key.
	Wait time.Duration
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 30 * time.Second
	}
	if o.Wait <= 0 {
		o.Wait = 5 * time.Second
	}
	return o
}

// RequestKey is the lock key guarding one request.
func RequestKey(requestID int64) string {
	return fmt.Sprintf("request:%d", requestID)
}
