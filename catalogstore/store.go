// Package catalogstore persists the parameter catalog in a SQL database so
// that component identities survive restarts and can be shared between hosts.
// Factories cannot be stored. A row written by an earlier process is adopted
// when this process registers the same identity again: the row keeps its
// original metadata and run id and gains this process's factory.
package catalogstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/gburgyan/go-enumparam"
)

// Config selects the database. Driver is one of sqlite, postgres or mysql.
// An empty DSN with the sqlite driver opens a private in-memory database.
type Config struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	QueryLog bool   `yaml:"query_log"`
}

// proxyRecord is one catalog row.
type proxyRecord struct {
	bun.BaseModel `bun:"table:catalog_proxies,alias:cp"`

	ID          string    `bun:"id,pk,type:varchar(36)"`
	Name        string    `bun:"name,notnull"`
	NickName    string    `bun:"nick_name"`
	Description string    `bun:"description"`
	Category    string    `bun:"category"`
	SubCategory string    `bun:"sub_category"`
	Exposure    int       `bun:"exposure,notnull,default:0"`
	TypeName    string    `bun:"type_name,notnull"`
	Target      string    `bun:"target,notnull"`
	Synthesized bool      `bun:"synthesized,notnull,default:false"`
	RunID       string    `bun:"run_id"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Store is an enumparam.HostCatalog backed by a database table. It is safe
// for concurrent use. factories holds one key per identity registered by
// this process; the value may be nil.
type Store struct {
	db *bun.DB

	mu        sync.RWMutex
	factories map[uuid.UUID]func() enumparam.Parameter
}

var (
	_ enumparam.BatchCatalog = (*Store)(nil)
	_ enumparam.ProxyRemover = (*Store)(nil)
)

// Open connects to the database described by cfg and creates the catalog
// table when it does not exist.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.QueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}

	s := New(db)
	if err := s.CreateSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func openDB(cfg Config) (*bun.DB, error) {
	switch cfg.Driver {
	case "sqlite", "sqlite3", "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		sqlDB, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, err
		}
		// A second connection to an in-memory database would see an empty one.
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "postgresql":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case "mysql":
		sqlDB, err := sql.Open("mysql", cfg.DSN)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqlDB, mysqldialect.New()), nil
	}
	return nil, fmt.Errorf("unsupported catalog driver: %s, supported drivers: [sqlite postgres mysql]", cfg.Driver)
}

// New wraps an open database. The schema is not created; call CreateSchema.
func New(db *bun.DB) *Store {
	return &Store{
		db:        db,
		factories: map[uuid.UUID]func() enumparam.Parameter{},
	}
}

// CreateSchema creates the catalog table if needed.
func (s *Store) CreateSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*proxyRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("creating catalog table: %w", err)
	}
	return nil
}

// DB returns the underlying database.
func (s *Store) DB() *bun.DB {
	return s.db
}

func newRecord(proxy *enumparam.ObjectProxy) *proxyRecord {
	return &proxyRecord{
		ID:          proxy.ID.String(),
		Name:        proxy.Name,
		NickName:    proxy.NickName,
		Description: proxy.Description,
		Category:    proxy.Category,
		SubCategory: proxy.SubCategory,
		Exposure:    int(proxy.Exposure),
		TypeName:    proxy.TypeName,
		Target:      proxy.Target,
		Synthesized: proxy.Synthesized,
		RunID:       proxy.RunID,
	}
}

// insert writes rec unless a row with its id exists.
func insert(ctx context.Context, db bun.IDB, rec *proxyRecord) error {
	q := db.NewInsert().Model(rec)
	if db.Dialect().Name() == dialect.MySQL {
		q = q.Ignore()
	} else {
		q = q.On("CONFLICT (id) DO NOTHING")
	}
	if _, err := q.Exec(ctx); err != nil {
		return fmt.Errorf("storing %s: %w", rec.ID, err)
	}
	return nil
}

// AddProxy stores proxy and binds its factory. A row left by an earlier
// process is kept as it is. Registering an identity twice in one process
// fails.
func (s *Store) AddProxy(ctx context.Context, proxy *enumparam.ObjectProxy) error {
	return s.AddProxies(ctx, []*enumparam.ObjectProxy{proxy})
}

// AddProxies stores every proxy in one transaction and binds their factories
// once it commits. Nothing is stored when any of them fails.
func (s *Store) AddProxies(ctx context.Context, proxies []*enumparam.ObjectProxy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]bool, len(proxies))
	for _, proxy := range proxies {
		if _, bound := s.factories[proxy.ID]; bound || seen[proxy.ID] {
			return fmt.Errorf("object %s already registered for %s", proxy.ID, proxy.TypeName)
		}
		seen[proxy.ID] = true
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, proxy := range proxies {
			if err := insert(ctx, tx, newRecord(proxy)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, proxy := range proxies {
		s.factories[proxy.ID] = proxy.New
	}
	return nil
}

// RemoveProxy deletes the row for id and forgets its factory.
func (s *Store) RemoveProxy(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.NewDelete().
		Model((*proxyRecord)(nil)).
		Where("id = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("removing %s: %w", id, err)
	}
	delete(s.factories, id)
	return nil
}

// IsCached reports whether id is registered by this process. A row left by
// an earlier process does not count until it is registered again.
func (s *Store) IsCached(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, bound := s.factories[id]
	return bound, nil
}

// Stored reports whether the database holds a row for id, whichever process
// wrote it.
func (s *Store) Stored(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.db.NewSelect().
		Model((*proxyRecord)(nil)).
		Where("id = ?", id.String()).
		Exists(ctx)
}

// Proxies lists the stored entries ordered by name. Entries registered by this
// process carry their factory; the others have a nil New.
func (s *Store) Proxies(ctx context.Context) ([]*enumparam.ObjectProxy, error) {
	var records []proxyRecord
	err := s.db.NewSelect().
		Model(&records).
		Order("name ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*enumparam.ObjectProxy, 0, len(records))
	for _, rec := range records {
		id, err := uuid.Parse(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("catalog row %q: %w", rec.ID, err)
		}
		result = append(result, &enumparam.ObjectProxy{
			ID:          id,
			Name:        rec.Name,
			NickName:    rec.NickName,
			Description: rec.Description,
			Category:    rec.Category,
			SubCategory: rec.SubCategory,
			Exposure:    enumparam.Exposure(rec.Exposure),
			TypeName:    rec.TypeName,
			Target:      rec.Target,
			Synthesized: rec.Synthesized,
			RunID:       rec.RunID,
			New:         s.factories[id],
		})
	}
	return result, nil
}

// CreateInstance constructs a parameter registered by this process.
func (s *Store) CreateInstance(id uuid.UUID) (enumparam.Parameter, bool) {
	s.mu.RLock()
	newParam := s.factories[id]
	s.mu.RUnlock()
	if newParam == nil {
		return nil, false
	}
	return newParam(), true
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
