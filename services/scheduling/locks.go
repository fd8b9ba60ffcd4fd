package scheduling

import "sync"

// accountLocks serializes the conflict-check-then-insert critical section per
// account. Bookings for different accounts never block each other. Entries
// are never removed; the map is bounded by the number of accounts that ever
// take a booking in this process.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the account's mutex and returns its unlock function.
func (l *accountLocks) acquire(accountID string) func() {
	l.mu.Lock()
	m, ok := l.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accountID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
