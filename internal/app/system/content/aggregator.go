// internal/app/system/content/aggregator.go

// Package content maintains the in-memory snapshot of all public site
// content. The snapshot starts from compiled-in defaults and is merged with
// database content collection by collection: a collection that cannot be
// loaded, or that is empty, keeps its previous value so visitors never see
// a half-empty site.
package content

import (
	"context"
	"sync"
	"time"

	galleryStore "github.com/dalemusser/glowsite/internal/app/store/gallery"
	priceStore "github.com/dalemusser/glowsite/internal/app/store/prices"
	promotionStore "github.com/dalemusser/glowsite/internal/app/store/promotions"
	serviceStore "github.com/dalemusser/glowsite/internal/app/store/services"
	settingsStore "github.com/dalemusser/glowsite/internal/app/store/settings"
	testimonialStore "github.com/dalemusser/glowsite/internal/app/store/testimonials"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.uber.org/zap"
)

// Sync states for the snapshot as a whole.
const (
	StateBootstrapped = "bootstrapped" // serving compiled-in defaults
	StateSynced       = "synced"       // at least one successful database merge
)

// Scopes name the independently refreshable parts of the snapshot.
const (
	ScopeSettings     = "settings"
	ScopeServices     = "services"
	ScopePrices       = "prices"
	ScopeGallery      = "gallery"
	ScopeTestimonials = "testimonials"
	ScopePromotions   = "promotions"
	ScopeLegal        = "legal"
)

// Stores bundles the collection stores the aggregator reads from.
type Stores struct {
	Settings     *settingsStore.Store
	Services     *serviceStore.Store
	Prices       *priceStore.Store
	Gallery      *galleryStore.Store
	Testimonials *testimonialStore.Store
	Promotions   *promotionStore.Store
}

// allScopes lists every scope in merge order.
var allScopes = []string{
	ScopeSettings,
	ScopeServices,
	ScopePrices,
	ScopeGallery,
	ScopeTestimonials,
	ScopePromotions,
	ScopeLegal,
}

// Aggregator holds the current content snapshot and keeps it fresh.
type Aggregator struct {
	stores Stores
	logger *zap.Logger

	mu         sync.RWMutex
	snapshot   models.ContentSnapshot
	state      string
	generation uint64            // bumped on every applied merge
	passSeq    uint64            // monotonic refresh pass counter
	scopePass  map[string]uint64 // pass that last wrote each scope
	lastSync   time.Time
}

// New creates an aggregator serving the compiled-in default snapshot.
func New(stores Stores, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		stores:    stores,
		logger:    logger,
		snapshot:  models.DefaultSnapshot(),
		state:     StateBootstrapped,
		scopePass: make(map[string]uint64),
	}
}

// Snapshot returns the current snapshot. The returned value shares slice
// backing arrays with the internal state; callers must not mutate it.
func (a *Aggregator) Snapshot() models.ContentSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// State returns the sync state and the time of the last successful merge.
func (a *Aggregator) State() (string, time.Time) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state, a.lastSync
}

// Refresh merges every collection from the database into the snapshot.
// Collections that fail to load are skipped with a log line and the rest
// still merge; Refresh only returns an error when the context is done.
func (a *Aggregator) Refresh(ctx context.Context) error {
	pass := a.beginPass()
	for _, scope := range allScopes {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.refreshScope(ctx, scope, pass)
	}
	return nil
}

// RefreshScope re-syncs a single part of the snapshot. Unknown scopes are
// ignored. Used after admin mutations so changes show up without waiting
// for the next periodic refresh.
func (a *Aggregator) RefreshScope(ctx context.Context, scope string) {
	a.refreshScope(ctx, scope, a.beginPass())
}

// beginPass assigns the next pass number. Passes can overlap; the number
// decides which write wins when they race on the same scope.
func (a *Aggregator) beginPass() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.passSeq++
	return a.passSeq
}

func (a *Aggregator) refreshScope(ctx context.Context, scope string, pass uint64) {
	switch scope {
	case ScopeSettings:
		settings, err := a.stores.Settings.GetSiteSettings(ctx)
		if err != nil {
			a.skip(scope, err)
			return
		}
		hours, hoursErr := a.stores.Settings.GetOpeningHours(ctx)
		a.merge(scope, pass, func(s *models.ContentSnapshot) {
			s.SiteSettings = *settings
			if hoursErr == nil && len(hours) > 0 {
				s.OpeningHours = hours
			}
		})

	case ScopeServices:
		services, err := a.stores.Services.List(ctx)
		if err != nil {
			a.skip(scope, err)
			return
		}
		a.merge(scope, pass, func(s *models.ContentSnapshot) {
			if len(services) > 0 {
				s.Services = services
			}
		})

	case ScopePrices:
		prices, err := a.stores.Prices.List(ctx)
		if err != nil {
			a.skip(scope, err)
			return
		}
		a.merge(scope, pass, func(s *models.ContentSnapshot) {
			if len(prices) > 0 {
				s.Prices = prices
			}
		})

	case ScopeGallery:
		imgs, err := a.stores.Gallery.List(ctx)
		if err != nil {
			a.skip(scope, err)
			return
		}
		a.merge(scope, pass, func(s *models.ContentSnapshot) {
			if len(imgs) > 0 {
				s.Gallery = imgs
			}
		})

	case ScopeTestimonials:
		ts, err := a.stores.Testimonials.List(ctx)
		if err != nil {
			a.skip(scope, err)
			return
		}
		a.merge(scope, pass, func(s *models.ContentSnapshot) {
			if len(ts) > 0 {
				s.Testimonials = ts
			}
		})

	case ScopePromotions:
		ps, err := a.stores.Promotions.List(ctx)
		if err != nil {
			a.skip(scope, err)
			return
		}
		a.merge(scope, pass, func(s *models.ContentSnapshot) {
			if len(ps) > 0 {
				s.Promotions = ps
			}
		})

	case ScopeLegal:
		legal, err := a.stores.Settings.GetLegal(ctx)
		if err != nil {
			a.skip(scope, err)
			return
		}
		a.merge(scope, pass, func(s *models.ContentSnapshot) {
			s.Legal = *legal
		})
	}
}

func (a *Aggregator) skip(scope string, err error) {
	// A scope that fails keeps its previous content.
	a.logger.Warn("content sync skipped",
		zap.String("scope", scope),
		zap.Error(err))
}

// merge applies a scope write unless a newer pass already wrote that scope,
// in which case the stale result is dropped.
func (a *Aggregator) merge(scope string, pass uint64, apply func(*models.ContentSnapshot)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.scopePass[scope] > pass {
		a.logger.Debug("content sync discarded, scope already rewritten",
			zap.String("scope", scope))
		return
	}
	a.scopePass[scope] = pass
	apply(&a.snapshot)
	a.generation++
	a.state = StateSynced
	a.lastSync = time.Now()
}

// Generation returns the merge counter, useful for tests and change
// detection.
func (a *Aggregator) Generation() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.generation
}

// Reset discards all merged content and returns to the default snapshot.
// Refresh passes already in flight are marked stale so their results do not
// overwrite the defaults.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshot = models.DefaultSnapshot()
	a.state = StateBootstrapped
	a.generation++
	a.passSeq++
	for _, scope := range allScopes {
		a.scopePass[scope] = a.passSeq
	}
}
