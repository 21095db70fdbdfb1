package service

import (
	"sync"
	"time"

	"coursecraft/internal/domain"
	"coursecraft/internal/logger"

	"go.uber.org/zap"
)

// PendingQuizStore bridges the stateless gap between serving a quiz and
// scoring its submission. It maps a (user, course) identity to that quiz's
// answer key for a bounded time. An answer key is consumed exactly once:
// Take is the only read path and it removes the entry.
type PendingQuizStore interface {
	// Put stores the answer key for identity, replacing any prior entry.
	// The entry is evicted automatically after the store's TTL unless
	// taken sooner.
	Put(identity domain.QuizIdentity, key domain.AnswerKey)

	// Take atomically reads and removes the entry for identity. An expired
	// entry is indistinguishable from an absent one.
	Take(identity domain.QuizIdentity) (domain.AnswerKey, bool)
}

type pendingEntry struct {
	key domain.AnswerKey
	// gen ties the eviction timer to this specific insertion, so a stale
	// timer from an overwritten entry never evicts its replacement.
	gen   uint64
	timer *time.Timer
}

type memoryPendingQuizStore struct {
	mu      sync.Mutex
	entries map[domain.QuizIdentity]*pendingEntry
	nextGen uint64
	ttl     time.Duration

	afterFunc func(d time.Duration, f func()) *time.Timer
}

// NewPendingQuizStore creates an in-process store whose entries expire
// after ttl. Construct one at startup and share it between the quiz-serving
// and quiz-scoring flows.
func NewPendingQuizStore(ttl time.Duration) PendingQuizStore {
	return newPendingQuizStore(ttl, time.AfterFunc)
}

func newPendingQuizStore(ttl time.Duration, afterFunc func(time.Duration, func()) *time.Timer) *memoryPendingQuizStore {
	return &memoryPendingQuizStore{
		entries:   make(map[domain.QuizIdentity]*pendingEntry),
		ttl:       ttl,
		afterFunc: afterFunc,
	}
}

func (s *memoryPendingQuizStore) Put(identity domain.QuizIdentity, key domain.AnswerKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[identity]; ok {
		old.timer.Stop()
	}

	s.nextGen++
	gen := s.nextGen
	entry := &pendingEntry{key: key, gen: gen}
	entry.timer = s.afterFunc(s.ttl, func() {
		s.evict(identity, gen)
	})
	s.entries[identity] = entry
}

func (s *memoryPendingQuizStore) Take(identity domain.QuizIdentity) (domain.AnswerKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[identity]
	if !ok {
		return nil, false
	}
	entry.timer.Stop()
	delete(s.entries, identity)
	return entry.key, true
}

// evict removes the entry for identity only if it is still the insertion
// the timer was scheduled for.
func (s *memoryPendingQuizStore) evict(identity domain.QuizIdentity, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[identity]
	if !ok || entry.gen != gen {
		return
	}
	delete(s.entries, identity)
	logger.Get().Debug("Pending quiz expired",
		zap.Int64("user_id", identity.UserID),
		zap.Int64("course_id", identity.CourseID),
	)
}
