package enumparam

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"sync"
)

// ObjectProxy is a catalog entry: the identity and display metadata of a
// parameter type plus a factory creating instances of it.
type ObjectProxy struct {
	ID          uuid.UUID
	Name        string
	NickName    string
	Description string
	Category    string
	SubCategory string
	Exposure    Exposure
	// TypeName is the Go type of the parameter.
	TypeName string
	// Target is the Go type of the wrapper the parameter presents.
	Target      string
	Synthesized bool
	// RunID identifies the Registry.Load that added the entry, if any.
	RunID string
	New   func() Parameter
}

// HostCatalog is the host's global registry of creatable types.
type HostCatalog interface {
	AddProxy(ctx context.Context, proxy *ObjectProxy) error
	IsCached(ctx context.Context, id uuid.UUID) (bool, error)
}

// BatchCatalog is a HostCatalog that adds several entries as one unit:
// either every entry is added or none is.
type BatchCatalog interface {
	HostCatalog
	AddProxies(ctx context.Context, proxies []*ObjectProxy) error
}

// ProxyRemover is implemented by catalogs that can take an entry back out.
// Registry.Load uses it to undo a partial registration on catalogs that are
// not BatchCatalogs.
type ProxyRemover interface {
	RemoveProxy(ctx context.Context, id uuid.UUID) error
}

// NewProxy constructs one instance of pt to read its identity and metadata.
// It fails with MissingMetadata when the type has no usable component id.
func NewProxy(pt *ParamType) (*ObjectProxy, error) {
	p := pt.New()
	id, err := p.ComponentID()
	if err != nil {
		return nil, err
	}
	info := p.Info()
	return &ObjectProxy{
		ID:          id,
		Name:        info.Name,
		NickName:    info.NickName,
		Description: info.Description,
		Category:    info.Category,
		SubCategory: info.SubCategory,
		Exposure:    info.Exposure,
		TypeName:    pt.goType.String(),
		Target:      pt.target.String(),
		Synthesized: pt.synthesized,
		New:         pt.newParam,
	}, nil
}

// RegisterOnce adds pt to the catalog unless an entry with its identity is
// already there.
//
// Parameters:
//   - ctx: Context for the catalog calls.
//   - catalog: The host catalog to register in.
//   - pt: The parameter type. One instance is constructed to read its
//     component id and metadata.
//
// Returns:
//   - Whether an entry was added.
//   - A MissingMetadata *Error when pt has no usable component id, or the
//     wrapped catalog error.
func RegisterOnce(ctx context.Context, catalog HostCatalog, pt *ParamType) (bool, error) {
	proxy, err := NewProxy(pt)
	if err != nil {
		return false, err
	}
	return addIfAbsent(ctx, catalog, proxy)
}

func addIfAbsent(ctx context.Context, catalog HostCatalog, proxy *ObjectProxy) (bool, error) {
	cached, err := catalog.IsCached(ctx, proxy.ID)
	if err != nil {
		return false, fmt.Errorf("catalog lookup of %s: %w", proxy.TypeName, err)
	}
	if cached {
		return false, nil
	}
	if err := catalog.AddProxy(ctx, proxy); err != nil {
		return false, fmt.Errorf("catalog add of %s: %w", proxy.TypeName, err)
	}
	return true, nil
}

// addProxies adds proxies to catalog as one unit when the catalog supports it,
// and otherwise one at a time, removing the ones already added when a later
// one fails.
func addProxies(ctx context.Context, catalog HostCatalog, proxies []*ObjectProxy) error {
	if len(proxies) == 0 {
		return nil
	}
	if batch, ok := catalog.(BatchCatalog); ok {
		if err := batch.AddProxies(ctx, proxies); err != nil {
			return fmt.Errorf("catalog add of %d parameter types: %w", len(proxies), err)
		}
		return nil
	}

	for i, proxy := range proxies {
		err := catalog.AddProxy(ctx, proxy)
		if err == nil {
			continue
		}
		err = fmt.Errorf("catalog add of %s: %w", proxy.TypeName, err)
		if remover, ok := catalog.(ProxyRemover); ok {
			for _, added := range proxies[:i] {
				if rmErr := remover.RemoveProxy(ctx, added.ID); rmErr != nil {
					err = errors.Join(err, fmt.Errorf("catalog rollback of %s: %w", added.TypeName, rmErr))
				}
			}
		}
		return err
	}
	return nil
}

// MemoryCatalog is an in-process HostCatalog.
type MemoryCatalog struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*ObjectProxy
	order []uuid.UUID
}

// NewMemoryCatalog returns an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		byID: map[uuid.UUID]*ObjectProxy{},
	}
}

// AddProxy adds proxy. Adding a second entry with the same identity is an
// error; use RegisterOnce for idempotent registration.
func (c *MemoryCatalog) AddProxy(ctx context.Context, proxy *ObjectProxy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, exists := c.byID[proxy.ID]; exists {
		return fmt.Errorf("object %s already registered for %s", proxy.ID, existing.TypeName)
	}
	c.byID[proxy.ID] = proxy
	c.order = append(c.order, proxy.ID)
	return nil
}

// AddProxies adds every proxy or, when any of them is already registered or
// appears twice, none of them.
func (c *MemoryCatalog) AddProxies(ctx context.Context, proxies []*ObjectProxy) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[uuid.UUID]bool, len(proxies))
	for _, proxy := range proxies {
		if existing, exists := c.byID[proxy.ID]; exists {
			return fmt.Errorf("object %s already registered for %s", proxy.ID, existing.TypeName)
		}
		if seen[proxy.ID] {
			return fmt.Errorf("object %s appears twice in one batch", proxy.ID)
		}
		seen[proxy.ID] = true
	}
	for _, proxy := range proxies {
		c.byID[proxy.ID] = proxy
		c.order = append(c.order, proxy.ID)
	}
	return nil
}

// RemoveProxy removes the entry for id. Removing an absent entry is a no-op.
func (c *MemoryCatalog) RemoveProxy(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[id]; !exists {
		return nil
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *MemoryCatalog) IsCached(ctx context.Context, id uuid.UUID) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.byID[id]
	return exists, nil
}

// Proxy returns the entry for id.
func (c *MemoryCatalog) Proxy(id uuid.UUID) (*ObjectProxy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	proxy, exists := c.byID[id]
	return proxy, exists
}

// Proxies returns the entries in registration order.
func (c *MemoryCatalog) Proxies() []*ObjectProxy {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*ObjectProxy, len(c.order))
	for i, id := range c.order {
		result[i] = c.byID[id]
	}
	return result
}

func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// CreateInstance constructs a new instance of the parameter type with id.
func (c *MemoryCatalog) CreateInstance(id uuid.UUID) (Parameter, bool) {
	proxy, exists := c.Proxy(id)
	if !exists {
		return nil, false
	}
	return proxy.New(), true
}
