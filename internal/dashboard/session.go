package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jbacule/ph-earthquakes/internal/domain"
	"github.com/jbacule/ph-earthquakes/internal/observability"
	"github.com/jbacule/ph-earthquakes/internal/pipeline"
)

// Catalog fetches the earthquakes matching a query.
type Catalog interface {
	Fetch(ctx context.Context, q domain.QuerySpec) (domain.Collection, error)
}

// Publisher forwards a freshly fetched batch of earthquakes downstream.
type Publisher interface {
	Publish(ctx context.Context, fetchedAt time.Time, features []domain.Feature) error
}

// PublishTimeout bounds one background feed publish.
const PublishTimeout = 30 * time.Second

// Session is one user's dashboard. All methods are safe for concurrent use.
type Session struct {
	id         string
	catalog    Catalog
	publisher  Publisher
	commands   *CommandQueue
	logger     *slog.Logger
	metrics    *observability.Metrics
	onFetched  func()
	publishing *sync.WaitGroup

	mu      sync.Mutex
	state   State
	nextGen uint64
}

// NewSession creates a session in the initial state. publisher may be nil.
func NewSession(id string, catalog Catalog, publisher Publisher, queueSize int, logger *slog.Logger, metrics *observability.Metrics) *Session {
	return &Session{
		id:         id,
		catalog:    catalog,
		publisher:  publisher,
		commands:   NewCommandQueue(queueSize),
		logger:     logger.With("session", id),
		metrics:    metrics,
		publishing: &sync.WaitGroup{},
		state:      NewState(),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View derives the visible records from the current collection and filter.
func (s *Session) View() (State, pipeline.View) {
	st := s.State()
	return st, pipeline.Derive(st.Features(), st.Filter)
}

func (s *Session) dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state
}

// SetQuery replaces the catalog query. Call Fetch to apply it.
func (s *Session) SetQuery(q domain.QuerySpec) error {
	if q.OrderBy != "" && !q.OrderBy.Valid() {
		return fmt.Errorf("%w: order_by %q", ErrInvalidQuery, q.OrderBy)
	}
	for _, m := range []*float64{q.MinMagnitude, q.MaxMagnitude} {
		if m != nil && (math.IsNaN(*m) || math.IsInf(*m, 0)) {
			return fmt.Errorf("%w: magnitude must be finite", ErrInvalidQuery)
		}
	}
	s.dispatch(SetQuery{Query: q})
	return nil
}

// ApplyPreset replaces the query's date range with a named preset, keeping
// the rest of the query. Call Fetch to apply it.
func (s *Session) ApplyPreset(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.state.Query.WithPreset(name)
	if err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	s.state = Reduce(s.state, SetQuery{Query: q})
	return nil
}

// SetFilter replaces the display filter.
func (s *Session) SetFilter(f domain.DisplayFilter) error {
	for _, a := range f.AlertLevels {
		if !a.Valid() {
			return fmt.Errorf("%w: alert level %q", ErrInvalidFilter, a)
		}
	}
	s.dispatch(SetFilter{Filter: f})
	return nil
}

// ClearFilters restores the default display filter.
func (s *Session) ClearFilters() {
	s.dispatch(ClearFilters{})
}

// SetTheme selects a map theme by id.
func (s *Session) SetTheme(id string) error {
	if _, ok := domain.ThemeByID(id); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownTheme, id)
	}
	s.dispatch(SetTheme{ID: id})
	return nil
}

// Fetch requests the current query from the catalog and applies the result
// unless a newer fetch was started in the meantime. The error is non-nil only
// when this fetch's own failure was applied to the state.
//
// Cancellation of ctx does not abort the catalog request; only the catalog's
// own timeout ends it. The feed publish runs in the background afterwards.
func (s *Session) Fetch(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	q := s.state.Query
	s.state = Reduce(s.state, FetchStarted{Generation: gen})
	s.mu.Unlock()

	coll, err := s.catalog.Fetch(ctx, q)
	at := domain.Clock().Now()

	s.mu.Lock()
	if IsStale(s.state, gen) {
		s.mu.Unlock()
		s.metrics.StaleResponses.Inc()
		s.logger.Debug("discarding stale fetch result", "generation", gen)
		return nil
	}
	if err != nil {
		s.state = Reduce(s.state, FetchFailed{Generation: gen})
		s.mu.Unlock()
		s.logger.Warn("earthquake fetch failed", "error", err, "generation", gen)
		return err
	}
	s.state = Reduce(s.state, FetchSucceeded{Generation: gen, Collection: coll, At: at})
	s.mu.Unlock()

	s.logger.Info("earthquakes fetched", "count", len(coll.Features), "generation", gen,
		"start", q.StartTime, "end", q.EndTime)
	if s.onFetched != nil {
		s.onFetched()
	}
	s.publish(ctx, at, coll.Features)
	return nil
}

// publish never affects dashboard state; failures are logged and counted.
func (s *Session) publish(ctx context.Context, at time.Time, features []domain.Feature) {
	if s.publisher == nil || len(features) == 0 {
		return
	}
	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()

		ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
		defer cancel()

		if err := s.publisher.Publish(ctx, at, features); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Warn("publish earthquakes failed", "error", err, "count", len(features))
			return
		}
		s.metrics.MessagesProduced.Add(float64(len(features)))
	}()
}

// WaitPublished blocks until background publishes started so far finish.
func (s *Session) WaitPublished() {
	s.publishing.Wait()
}

// Locate queues a fly-to followed by a delayed popup for a visible earthquake.
func (s *Session) Locate(id string) (Command, error) {
	_, view := s.View()
	for _, f := range view.Visible {
		if f.ID != id {
			continue
		}
		fly := FlyTo(f.ID, f.Latitude(), f.Longitude(), domain.DefaultMapView.LocateZoom)
		s.commands.Push(fly, OpenPopup(f.ID))
		return fly, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrEarthquakeNotFound, id)
}

// Commands drains the pending map commands.
func (s *Session) Commands() []Command {
	return s.commands.Drain()
}
