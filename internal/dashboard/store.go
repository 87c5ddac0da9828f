package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jbacule/ph-earthquakes/internal/observability"
)

// Store holds sessions in memory, evicting the least recently used once
// capacity is exceeded.
type Store struct {
	catalog   Catalog
	publisher Publisher
	queueSize int
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool

	publishing sync.WaitGroup

	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *Session
	prev  *entry
	next  *entry
}

// NewStore creates a session store. publisher may be nil to disable the feed.
func NewStore(catalog Catalog, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, capacity, queueSize int) *Store {
	return &Store{
		catalog:    catalog,
		publisher:  publisher,
		queueSize:  queueSize,
		logger:     logger,
		metrics:    metrics,
		maxEntries: max(capacity, 1),
		entries:    make(map[string]*entry),
	}
}

// CheckReadiness returns nil once any session has completed a successful
// fetch.
func (st *Store) CheckReadiness(_ context.Context) error {
	if !st.ready.Load() {
		return errors.New("no successful earthquake fetch yet")
	}
	return nil
}

// Create registers a new session in its initial state. It does not fetch.
func (st *Store) Create() *Session {
	s := NewSession(uuid.NewString(), st.catalog, st.publisher, st.queueSize, st.logger, st.metrics)
	s.onFetched = func() { st.ready.Store(true) }
	s.publishing = &st.publishing
	st.put(s.ID(), s)
	st.logger.Debug("session created", "session", s.ID())
	return s
}

// Get returns a session and marks it recently used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	st.moveToFront(e)
	return e.value, nil
}

// WaitPublished waits for in-flight feed publishes of every session, or
// until ctx is done.
func (st *Store) WaitPublished(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		st.publishing.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of held sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

func (st *Store) put(key string, value *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e := &entry{key: key, value: value}
	st.entries[key] = e
	st.addToFront(e)

	if len(st.entries) > st.maxEntries {
		st.evictTail()
	}
	st.metrics.SessionsActive.Set(float64(len(st.entries)))
}

func (st *Store) moveToFront(e *entry) {
	if e == st.head {
		return
	}
	st.remove(e)
	st.addToFront(e)
}

func (st *Store) addToFront(e *entry) {
	e.next = st.head
	e.prev = nil
	if st.head != nil {
		st.head.prev = e
	}
	st.head = e
	if st.tail == nil {
		st.tail = e
	}
}

func (st *Store) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		st.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		st.tail = e.prev
	}
}

func (st *Store) evictTail() {
	if st.tail == nil {
		return
	}
	evicted := st.tail.key
	delete(st.entries, evicted)
	st.remove(st.tail)
	st.metrics.SessionsEvicted.Inc()
	st.logger.Debug("session evicted", "session", evicted)
}
