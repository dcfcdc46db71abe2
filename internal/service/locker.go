package service

import "sync"

// employeeLocker serializes pipeline writes per employee. Status resolution
// followed by event append is a read-then-write sequence; without the lock
// two concurrent messages from the same sender could both pass validation.
type employeeLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newEmployeeLocker() *employeeLocker {
	return &employeeLocker{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the employee's mutex and returns the release func.
func (l *employeeLocker) lock(employeeID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[employeeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
