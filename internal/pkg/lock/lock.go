// Package lock provides channel-level locking so that at most one session
// mutation is in flight per chat channel at a time. Different channels are
// independent and proceed in parallel.
package lock

import "sync"

// channelMutex wraps a mutex with reference counting for cleanup.
type channelMutex struct {
	mu       sync.Mutex
	refCount int
}

// ChannelLock provides per-channel mutual exclusion keyed by channel id.
type ChannelLock struct {
	locks sync.Map // map[string]*channelMutex
	pool  sync.Pool
}

// NewChannelLock creates a new ChannelLock instance.
func NewChannelLock() *ChannelLock {
	return &ChannelLock{
		pool: sync.Pool{
			New: func() any {
				return &channelMutex{}
			},
		},
	}
}

// getLock retrieves or creates a mutex for the given channel.
func (cl *ChannelLock) getLock(channelID string) *channelMutex {
	if v, ok := cl.locks.Load(channelID); ok {
		return v.(*channelMutex)
	}

	newLock := cl.pool.Get().(*channelMutex)
	newLock.refCount = 0

	// Another goroutine may have stored a lock first.
	actual, loaded := cl.locks.LoadOrStore(channelID, newLock)
	if loaded {
		cl.pool.Put(newLock)
	}
	return actual.(*channelMutex)
}

// Lock acquires the lock for a channel.
func (cl *ChannelLock) Lock(channelID string) {
	lock := cl.getLock(channelID)
	lock.mu.Lock()
	lock.refCount++
}

// Unlock releases the lock for a channel.
func (cl *ChannelLock) Unlock(channelID string) {
	if v, ok := cl.locks.Load(channelID); ok {
		lock := v.(*channelMutex)
		lock.refCount--
		lock.mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (cl *ChannelLock) TryLock(channelID string) bool {
	lock := cl.getLock(channelID)
	if lock.mu.TryLock() {
		lock.refCount++
		return true
	}
	return false
}

// WithLock executes fn while holding the channel's lock.
func (cl *ChannelLock) WithLock(channelID string, fn func()) {
	cl.Lock(channelID)
	defer cl.Unlock(channelID)
	fn()
}

// IsLocked checks if a channel currently has an active lock.
// This is a point-in-time check and may change immediately after.
func (cl *ChannelLock) IsLocked(channelID string) bool {
	if v, ok := cl.locks.Load(channelID); ok {
		lock := v.(*channelMutex)
		if lock.mu.TryLock() {
			lock.mu.Unlock()
			return false
		}
		return true
	}
	return false
}
