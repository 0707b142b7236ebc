// Package engine is the reconciliation core: missed-dose backfill, the
// inventory ledger, the today projection, and outcome recording. All
// store mutation funnels through the engine's single mutex, which is the
// "one logical thread" the stores assume.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/dosetrack/internal/gateway"
	"github.com/alexanderramin/dosetrack/internal/store"
)

// Engine owns the stores and coordinates every reconciliation pass.
type Engine struct {
	mu         sync.Mutex
	treatments *store.TreatmentStore
	history    *store.HistoryStore
	gw         gateway.Gateway
	ledger     *InventoryLedger
	log        *slog.Logger
	obs        Observer

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall-clock source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithObserver sets the telemetry observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.obs = o }
}

// New wires an engine around empty stores. Call Load to hydrate them.
func New(gw gateway.Gateway, opts ...Option) *Engine {
	e := &Engine{
		treatments: store.NewTreatmentStore(),
		history:    store.NewHistoryStore(),
		gw:         gw,
		log:        slog.New(slog.DiscardHandler),
		now:        time.Now,
		obs:        NoopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.obs = observerOrNoop(e.obs)

	// The ledger reacts to history changes synchronously. It reads and
	// writes treatments only, so it never re-enters the history store.
	e.ledger = NewInventoryLedger(e.treatments, e.log)
	e.ledger.now = e.now
	e.history.Subscribe(e.ledger.OnHistoryEvent)

	return e
}

// Load hydrates both stores from the gateway and runs the initial
// reconciliation pass. Load and parse failures degrade to an empty store:
// the application stays usable with zero treatments.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if doc, err := e.gw.Load(ctx, gateway.KindTreatments); err != nil {
		e.log.Warn("loading treatments failed, starting empty", "error", err)
		_ = e.treatments.LoadDocument(gateway.EmptyDocument())
	} else if err := e.treatments.LoadDocument(doc); err != nil {
		e.log.Warn("some treatment records were unreadable", "error", err)
	}

	if doc, err := e.gw.Load(ctx, gateway.KindHistory); err != nil {
		e.log.Warn("loading history failed, starting empty", "error", err)
		_ = e.history.LoadDocument(gateway.EmptyDocument())
	} else if err := e.history.LoadDocument(doc); err != nil {
		e.log.Warn("some history records were unreadable", "error", err)
	}

	e.reconcileLocked(ctx, "load")
}

// Reconcile runs a full pass: backfill missed doses, then persist. The
// midnight scheduler and every mutating operation end up here.
func (e *Engine) Reconcile(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reconcileLocked(ctx, "reconcile")
}

func (e *Engine) reconcileLocked(ctx context.Context, pass string) {
	started := e.now()
	missed := e.backfillLocked(started)
	e.saveLocked(ctx)
	e.obs.Observe(Event{
		Name:     pass,
		Duration: e.now().Sub(started),
		Success:  true,
		Fields:   map[string]any{"backfilled": missed},
	})
}

// saveLocked persists both stores. Failures are logged, never propagated:
// the in-memory state stays authoritative and the next save retries.
func (e *Engine) saveLocked(ctx context.Context) {
	if doc, err := e.treatments.Document(); err != nil {
		e.log.Error("encoding treatments failed", "error", err)
	} else if err := e.gw.Save(ctx, gateway.KindTreatments, doc); err != nil {
		e.log.Error("saving treatments failed", "error", err)
	}

	if doc, err := e.history.Document(); err != nil {
		e.log.Error("encoding history failed", "error", err)
	} else if err := e.gw.Save(ctx, gateway.KindHistory, doc); err != nil {
		e.log.Error("saving history failed", "error", err)
	}
}
