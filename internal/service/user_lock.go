package service

import "sync"

// UserLock serializes turn processing per end user. The store's
// copy-modify-append profile updates would otherwise lose writes when two
// messages from the same user interleave.
type UserLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserLock() *UserLock {
	return &UserLock{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *UserLock) Lock(userId string) {
	l.mu.Lock()
	m, ok := l.locks[userId]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userId] = m
	}
	l.mu.Unlock()
	m.Lock()
}

func (l *UserLock) Unlock(userId string) {
	l.mu.Lock()
	m := l.locks[userId]
	l.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
