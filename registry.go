package enumparam

import (
	"context"
	"errors"
	"fmt"
	"github.com/gburgyan/go-enumparam/internal/ctxlog"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"io"
	"log/slog"
	"math/rand"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Registry runs discovery, synthesis and catalog registration for a set of
// modules and answers lookups on the result.
//
// Load may run again, for example on hot reload. Each run holds one lock for
// the whole discovery and registration sequence and publishes its result in
// a single swap, so lookups see either the previous or the new state and
// never a partial one. Lookups take no lock.
type Registry struct {
	mu      sync.Mutex
	catalog HostCatalog
	logger  *slog.Logger
	entropy io.Reader
	state   atomic.Pointer[registryState]
}

type registryState struct {
	runID     string
	order     []Association
	byNative  map[reflect.Type]Association
	byWrapper map[reflect.Type]Association
	byName    map[string]*Type
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used when the load context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry returns a registry that registers parameter types in catalog.
func NewRegistry(catalog HostCatalog, opts ...Option) *Registry {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	r := &Registry{
		catalog: catalog,
		entropy: ulid.Monotonic(src, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.state.Store(newRegistryState(""))
	return r
}

func newRegistryState(runID string) *registryState {
	return &registryState{
		runID:     runID,
		byNative:  map[reflect.Type]Association{},
		byWrapper: map[reflect.Type]Association{},
		byName:    map[string]*Type{},
	}
}

// Load discovers the enumeration wrappers of modules, synthesizes missing
// parameter types and registers every parameter type in the catalog once.
// When several modules wrap the same native enumeration the first one wins.
//
// A parameter type without a usable component id is reported as a
// MissingMetadata error, joined with any others, and left out of the
// catalog; its wrapper still parses and formats. All proxies of a run reach
// the catalog together: a BatchCatalog adds them as one unit, and a catalog
// implementing ProxyRemover has the already added ones removed when a later
// one fails. A catalog failure aborts the run and keeps the previous state.
//
// Parameters:
//   - ctx: Context for the catalog calls. A logger carried by ctx (see
//     internal/ctxlog) takes precedence over WithLogger.
//   - modules: The modules to load, in priority order.
//
// Returns:
//   - nil on success.
//   - The joined MissingMetadata errors, with the new state published.
//   - A catalog error, with the previous state kept.
func (r *Registry) Load(ctx context.Context, modules ...*Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	runID := ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String()
	logger := r.loggerFor(ctx).With("run", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Loading enumeration modules.", "modules", len(modules))

	staged := newRegistryState(runID)
	for _, m := range modules {
		for _, a := range discover(ctx, m) {
			native := a.Wrapper.native
			if _, exists := staged.byNative[native]; exists {
				logger.Debug("Native enumeration already registered by an earlier module.", "native", native.String(), "module", m.name)
				continue
			}
			staged.add(a)
		}
	}

	// Proxies are staged first; the catalog receives all of them or none.
	var metadataErrs []error
	var pending []*ObjectProxy
	staging := map[uuid.UUID]bool{}
	for _, a := range staged.order {
		proxy, err := NewProxy(a.Param)
		if err != nil {
			logger.Warn("Parameter type left out of the catalog.", "param", a.Param.String(), "error", err)
			metadataErrs = append(metadataErrs, err)
			continue
		}
		if staging[proxy.ID] {
			continue
		}
		cached, err := r.catalog.IsCached(ctx, proxy.ID)
		if err != nil {
			logger.Error("Catalog lookup failed.", "param", a.Param.String(), "error", err)
			return fmt.Errorf("catalog lookup of %s: %w", proxy.TypeName, err)
		}
		if cached {
			continue
		}
		staging[proxy.ID] = true
		proxy.RunID = runID
		pending = append(pending, proxy)
	}

	if err := addProxies(ctx, r.catalog, pending); err != nil {
		logger.Error("Catalog registration failed.", "pending", len(pending), "error", err)
		return err
	}
	for _, proxy := range pending {
		logger.Debug("Registered parameter type.", "param", proxy.TypeName, "id", proxy.ID.String(), "synthesized", proxy.Synthesized)
	}
	added := len(pending)

	r.state.Store(staged)
	logger.Info("Enumeration modules loaded.", "enumerations", len(staged.order), "registered", added)
	return errors.Join(metadataErrs...)
}

func (r *Registry) loggerFor(ctx context.Context) *slog.Logger {
	if logger, ok := ctxlog.Lookup(ctx); ok {
		return logger
	}
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

func (s *registryState) add(a Association) {
	s.order = append(s.order, a)
	s.byNative[a.Wrapper.native] = a
	s.byWrapper[a.Wrapper.goType] = a
	for _, name := range []string{a.Wrapper.Name(), a.Wrapper.goType.Name()} {
		key := strings.ToLower(name)
		if _, exists := s.byName[key]; !exists {
			s.byName[key] = a.Wrapper
		}
	}
}

// TryGetParamTypes returns the association for a native enumeration type.
func (r *Registry) TryGetParamTypes(native reflect.Type) (Association, bool) {
	a, ok := r.state.Load().byNative[native]
	return a, ok
}

// AssociationFor returns the association for a wrapper type.
func (r *Registry) AssociationFor(wrapper reflect.Type) (Association, bool) {
	if wrapper != nil && wrapper.Kind() == reflect.Pointer {
		wrapper = wrapper.Elem()
	}
	a, ok := r.state.Load().byWrapper[wrapper]
	return a, ok
}

// TypeByName finds a wrapper by its display name or Go type name, ignoring
// case.
func (r *Registry) TypeByName(name string) (*Type, bool) {
	t, ok := r.state.Load().byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Associations returns every association ordered by wrapper display name.
func (r *Registry) Associations() []Association {
	state := r.state.Load()
	result := make([]Association, len(state.order))
	copy(result, state.order)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Wrapper.Name() < result[j].Wrapper.Name()
	})
	return result
}

// RunID identifies the last successful Load, or is empty before the first.
func (r *Registry) RunID() string {
	return r.state.Load().runID
}
