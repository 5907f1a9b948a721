package core

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

type refLock struct {
	mu  sync.Mutex
	ref int32
}

// KeyLocker hands out one lock per composite key. Keys are joined with ":",
// so Lock("delete", "r1") and Lock("delete:r1") guard the same thing.
type KeyLocker struct {
	locks sync.Map
	sep   string
}

// NewKeyLocker creates a new KeyLocker.
func NewKeyLocker() *KeyLocker {
	return &KeyLocker{sep: ":"}
}

func (kl *KeyLocker) key(keys ...any) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%v", k))
	}
	return strings.Join(parts, kl.sep)
}

// Lock blocks until the key is free and returns a function that unlocks it.
func (kl *KeyLocker) Lock(keys ...any) func() {
	combinedKey := kl.key(keys...)
	lock := kl.acquireRef(combinedKey)
	lock.mu.Lock()
	return kl.unlocker(combinedKey, lock)
}

// TryLock takes the key only if nobody holds it. The returned unlock function is safe to call more than once.
func (kl *KeyLocker) TryLock(keys ...any) (func(), bool) {
	combinedKey := kl.key(keys...)
	lock := kl.acquireRef(combinedKey)
	if !lock.mu.TryLock() {
		kl.releaseRef(combinedKey, lock)
		return nil, false
	}
	return kl.unlocker(combinedKey, lock), true
}

// Held reports whether the key is currently locked or waited on.
func (kl *KeyLocker) Held(keys ...any) bool {
	_, ok := kl.locks.Load(kl.key(keys...))
	return ok
}

func (kl *KeyLocker) acquireRef(combinedKey string) *refLock {
	lockIface, _ := kl.locks.LoadOrStore(combinedKey, &refLock{})
	lock := lockIface.(*refLock)
	atomic.AddInt32(&lock.ref, 1)
	return lock
}

func (kl *KeyLocker) releaseRef(combinedKey string, lock *refLock) {
	if atomic.AddInt32(&lock.ref, -1) == 0 {
		kl.locks.CompareAndDelete(combinedKey, lock)
	}
}

func (kl *KeyLocker) unlocker(combinedKey string, lock *refLock) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			lock.mu.Unlock()
			kl.releaseRef(combinedKey, lock)
		})
	}
}
