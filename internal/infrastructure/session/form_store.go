package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/saleform"
)

// FormSession is one open sale-entry dialog belonging to a user.
// Callers must hold Lock while using Controller.
type FormSession struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Controller *saleform.Controller
	CreatedAt  time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Lock serializes access to the session's controller
func (s *FormSession) Lock() { s.mu.Lock() }

// Unlock releases the session
func (s *FormSession) Unlock() { s.mu.Unlock() }

// FormStoreConfig holds configuration for the session store
type FormStoreConfig struct {
	EntryTTL        time.Duration // How long an untouched session is kept
	CleanupInterval time.Duration // How often to evict stale sessions; 0 disables the loop
	OnEvict         func(*FormSession)
	Now             func() time.Time
}

// FormStore keeps sale form sessions in memory and evicts idle ones
type FormStore struct {
	sessions    map[uuid.UUID]*FormSession
	mu          sync.RWMutex
	entryTTL    time.Duration
	cleanupTick time.Duration
	onEvict     func(*FormSession)
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewFormStore creates a session store and starts its cleanup loop
func NewFormStore(cfg FormStoreConfig) *FormStore {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &FormStore{
		sessions:    make(map[uuid.UUID]*FormSession),
		entryTTL:    cfg.EntryTTL,
		cleanupTick: cfg.CleanupInterval,
		onEvict:     cfg.OnEvict,
		now:         cfg.Now,
		stop:        make(chan struct{}),
	}

	if s.cleanupTick > 0 {
		go s.cleanupLoop()
	}

	return s
}

// Create registers a new session for owner
func (s *FormStore) Create(ownerID uuid.UUID, ctrl *saleform.Controller) *FormSession {
	now := s.now()
	sess := &FormSession{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Controller: ctrl,
		CreatedAt:  now,
		lastSeen:   now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session and marks it as recently used
func (s *FormStore) Get(id uuid.UUID) (*FormSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// Delete removes a session
func (s *FormStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions
func (s *FormStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictExpired removes sessions unused for longer than the TTL and returns how many went
func (s *FormStore) EvictExpired() int {
	var evicted []*FormSession

	s.mu.Lock()
	cutoff := s.now().Add(-s.entryTTL)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted = append(evicted, sess)
		}
	}
	s.mu.Unlock()

	if s.onEvict != nil {
		for _, sess := range evicted {
			s.onEvict(sess)
		}
	}
	return len(evicted)
}

// Stop ends the cleanup loop
func (s *FormStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *FormStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.EvictExpired()
		case <-s.stop:
			return
		}
	}
}
