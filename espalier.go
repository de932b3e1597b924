package espalier

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier/internal/compiler"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/metrics"
	"github.com/aretw0/espalier/internal/resolver"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/plan"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/session"
)

// Engine is the high-level entry point for the Espalier library.
// It wires the compiler, resolver, plan source and progress store behind
// a session-oriented API. Each session owns its own Curriculum/Progress
// pair exclusively; there is no ambient process-wide state.
type Engine struct {
	source   ports.PlanSource
	store    ports.ProgressStore
	sessions *session.Manager
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu        sync.RWMutex
	curricula map[string]*domain.Curriculum // sessionID -> compiled graph
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithPlanSource injects the source plans are loaded from.
func WithPlanSource(src ports.PlanSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithProgressStore injects a custom progress store, bypassing the
// default in-memory one.
func WithProgressStore(store ports.ProgressStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics registers the engine collectors on the given registry.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.metrics = metrics.New(reg)
	}
}

// New initializes a new Espalier Engine.
// Without options it uses an in-memory progress store and an empty plan
// source, which is enough for LoadDocument-driven sessions.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		curricula: make(map[string]*domain.Curriculum),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.source == nil {
		eng.source = memory.NewSource(nil)
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.metrics == nil {
		eng.metrics = metrics.NewNop()
	}

	eng.sessions = session.NewManager(eng.store, session.WithLogger(eng.logger))
	return eng, nil
}

// Plans returns the IDs of all plans available from the source.
func (e *Engine) Plans(ctx context.Context) ([]string, error) {
	return e.source.List()
}

// Sessions returns the IDs of all active sessions.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// StartSession compiles the identified plan, seeds the session's
// progress from the plan's declared statuses, and returns the initial
// eligibility mapping.
func (e *Engine) StartSession(ctx context.Context, sessionID, planID string) (map[string]domain.Eligibility, error) {
	raw, format, err := e.source.Get(planID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan %q: %w", planID, err)
	}

	doc, err := plan.Parse(raw, format)
	if err != nil {
		e.metrics.LoadFailures.Inc()
		return nil, err
	}

	return e.LoadDocument(ctx, sessionID, planID, doc)
}

// LoadDocument starts a session from an already-decoded document, the
// path used for uploads. The document is compiled and validated in full
// before any session state is touched.
func (e *Engine) LoadDocument(ctx context.Context, sessionID, name string, doc plan.Document) (map[string]domain.Eligibility, error) {
	cur, err := Compile(name, doc)
	if err != nil {
		e.metrics.LoadFailures.Inc()
		return nil, err
	}

	var elig map[string]domain.Eligibility
	err = e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		progress := domain.NewProgress(cur)
		if err := e.store.Save(ctx, sessionID, progress); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}

		e.mu.Lock()
		e.curricula[sessionID] = cur
		e.mu.Unlock()

		elig = e.resolve(cur, progress)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.SessionsStarted.Inc()
	e.logger.Info("session started",
		"session_id", sessionID,
		"plan", cur.Name(),
		"courses", cur.Len(),
	)
	return elig, nil
}

// Eligibility returns the current eligibility mapping for the session.
func (e *Engine) Eligibility(ctx context.Context, sessionID string) (map[string]domain.Eligibility, error) {
	var elig map[string]domain.Eligibility
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		cur, progress, err := e.snapshot(ctx, sessionID)
		if err != nil {
			return err
		}
		elig = e.resolve(cur, progress)
		return nil
	})
	return elig, err
}

// UpdateStatus sets the status of one course and returns the recomputed
// eligibility mapping. The mutate-resolve sequence runs atomically under
// the session lock. An unknown course code rejects the update without
// touching the prior progress.
func (e *Engine) UpdateStatus(ctx context.Context, sessionID, code string, status domain.Status) (map[string]domain.Eligibility, error) {
	return e.update(ctx, sessionID, status, func(cur *domain.Curriculum) ([]string, error) {
		if _, ok := cur.Course(code); !ok {
			return nil, &domain.UnknownCourseError{Course: code}
		}
		return []string{code}, nil
	})
}

// UpdateGroup applies one status to the whole co-requisite package
// containing code, so mutual co-requisites can be started together.
func (e *Engine) UpdateGroup(ctx context.Context, sessionID, code string, status domain.Status) (map[string]domain.Eligibility, error) {
	return e.update(ctx, sessionID, status, func(cur *domain.Curriculum) ([]string, error) {
		group, ok := domain.GroupFor(cur, code)
		if !ok {
			return nil, &domain.UnknownCourseError{Course: code}
		}
		return group.Codes, nil
	})
}

func (e *Engine) update(ctx context.Context, sessionID string, status domain.Status, targets func(*domain.Curriculum) ([]string, error)) (map[string]domain.Eligibility, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %d: must be 0, 1 or 2", int(status))
	}

	var elig map[string]domain.Eligibility
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		cur, progress, err := e.snapshot(ctx, sessionID)
		if err != nil {
			return err
		}

		codes, err := targets(cur)
		if err != nil {
			return err
		}

		for _, c := range codes {
			progress[c] = status
		}
		if err := e.store.Save(ctx, sessionID, progress); err != nil {
			return fmt.Errorf("failed to persist progress: %w", err)
		}

		e.metrics.StatusUpdates.WithLabelValues(status.String()).Add(float64(len(codes)))
		elig = e.resolve(cur, progress)
		return nil
	})
	return elig, err
}

// Groups returns the enrollable co-requisite packages of the session,
// ordered by earliest declared semester (then by first course code).
func (e *Engine) Groups(ctx context.Context, sessionID string) ([]domain.CoreqGroup, error) {
	var groups []domain.CoreqGroup
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		cur, progress, err := e.snapshot(ctx, sessionID)
		if err != nil {
			return err
		}

		for _, g := range domain.CoreqGroups(cur) {
			if domain.GroupEnrollable(cur, progress, g) {
				groups = append(groups, g)
			}
		}
		sort.Slice(groups, func(i, j int) bool {
			si, sj := groups[i].Semester(cur), groups[j].Semester(cur)
			if si != sj {
				return si < sj
			}
			return groups[i].Codes[0] < groups[j].Codes[0]
		})
		return nil
	})
	return groups, err
}

// Export serializes the session's curriculum with its current statuses,
// in the same document shape the loader accepts.
func (e *Engine) Export(ctx context.Context, sessionID string) (plan.Document, error) {
	var doc plan.Document
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		cur, progress, err := e.snapshot(ctx, sessionID)
		if err != nil {
			return err
		}
		doc = plan.FromCurriculum(cur, progress)
		return nil
	})
	return doc, err
}

// Reset sets every course in the session back to not-taken and returns
// the recomputed mapping.
func (e *Engine) Reset(ctx context.Context, sessionID string) (map[string]domain.Eligibility, error) {
	var elig map[string]domain.Eligibility
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		cur, progress, err := e.snapshot(ctx, sessionID)
		if err != nil {
			return err
		}

		progress.Reset()
		if err := e.store.Save(ctx, sessionID, progress); err != nil {
			return fmt.Errorf("failed to persist progress: %w", err)
		}
		elig = e.resolve(cur, progress)
		return nil
	})
	return elig, err
}

// EndSession discards the session's progress and compiled curriculum.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	return e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if err := e.store.Delete(ctx, sessionID); err != nil {
			return err
		}
		e.mu.Lock()
		delete(e.curricula, sessionID)
		e.mu.Unlock()
		return nil
	})
}

// Inspect returns the session's courses for visualization or
// introspection tools.
func (e *Engine) Inspect(ctx context.Context, sessionID string) ([]*domain.Course, error) {
	cur, err := e.curriculum(sessionID)
	if err != nil {
		return nil, err
	}
	return cur.Courses(), nil
}

// Name returns the plan name a session was started from.
func (e *Engine) Name(ctx context.Context, sessionID string) (string, error) {
	cur, err := e.curriculum(sessionID)
	if err != nil {
		return "", err
	}
	return cur.Name(), nil
}

// snapshot loads the session's curriculum and progress and re-checks the
// post-load invariants. Callers must hold the session lock.
func (e *Engine) snapshot(ctx context.Context, sessionID string) (*domain.Curriculum, domain.Progress, error) {
	cur, err := e.curriculum(sessionID)
	if err != nil {
		return nil, nil, err
	}

	progress, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := resolver.CheckInvariants(cur, progress); err != nil {
		// Unrecoverable: the compiler and the update paths make this
		// state unreachable, so surface it loudly instead of guessing.
		e.logger.Error("session state corrupt", "session_id", sessionID, "error", err)
		return nil, nil, err
	}
	return cur, progress, nil
}

func (e *Engine) curriculum(sessionID string) (*domain.Curriculum, error) {
	e.mu.RLock()
	cur, ok := e.curricula[sessionID]
	e.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cur, nil
}

func (e *Engine) resolve(cur *domain.Curriculum, progress domain.Progress) map[string]domain.Eligibility {
	start := time.Now()
	elig := resolver.Resolve(cur, progress)
	e.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	return elig
}

// Compile builds a validated, immutable Curriculum from a plan document.
// It is exposed at the root so tooling (validate, graph) can compile
// plans without starting a session.
func Compile(name string, doc plan.Document) (*domain.Curriculum, error) {
	return compiler.Compile(name, doc)
}
